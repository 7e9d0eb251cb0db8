package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"
	"time"

	"github.com/leafscan/leafscan/internal/grading"
)

const (
	analyzePath = "/analizar-muestra/"
	healthPath  = "/"

	// DefaultTimeout bounds one upload round trip.
	DefaultTimeout = 60 * time.Second
)

// HTTPClient implements Client against the phytopathology analysis API.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTP creates a client for the analyzer service at baseURL.
// A zero timeout falls back to DefaultTimeout.
func NewHTTP(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("analyzer: endpoint not configured")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}, nil
}

func (c *HTTPClient) Name() string { return "http" }

// Analyze uploads one image as a multipart form and parses the per-sample
// metrics from the service response.
func (c *HTTPClient) Analyze(ctx context.Context, fileName string, image io.Reader) (grading.Measurement, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filepath.Base(fileName)))
	// The service rejects parts whose content type is not image/*.
	ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(fileName)))
	if !strings.HasPrefix(ct, "image/") {
		ct = "image/jpeg"
	}
	hdr.Set("Content-Type", ct)

	part, err := mw.CreatePart(hdr)
	if err != nil {
		return grading.Measurement{}, fmt.Errorf("analyzer: build form: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return grading.Measurement{}, fmt.Errorf("analyzer: read image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return grading.Measurement{}, fmt.Errorf("analyzer: build form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+analyzePath, &buf)
	if err != nil {
		return grading.Measurement{}, fmt.Errorf("analyzer: create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return grading.Measurement{}, fmt.Errorf("analyzer: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return grading.Measurement{}, fmt.Errorf("analyzer: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var fail errorResponse
		if json.Unmarshal(body, &fail) == nil && fail.Detail != "" {
			return grading.Measurement{}, fmt.Errorf("analyzer: service returned %d: %s", resp.StatusCode, fail.Detail)
		}
		return grading.Measurement{}, fmt.Errorf("analyzer: service returned %d: %s", resp.StatusCode, string(body))
	}

	var result analyzeResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return grading.Measurement{}, fmt.Errorf("analyzer: parse response: %w", err)
	}
	if err := result.validate(); err != nil {
		return grading.Measurement{}, err
	}

	return grading.Measurement{
		FileName:      fileName,
		StoredName:    result.StoredName,
		AreaDamagePct: result.Results.AreaDamagePct,
		LesionCount:   result.Results.LesionCount,
		AvgLesionPx:   result.Results.AvgLesionPx,
	}, nil
}

// Ping checks the service health endpoint.
func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return fmt.Errorf("analyzer: create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("analyzer: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("analyzer: health check returned %d", resp.StatusCode)
	}
	var health healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return fmt.Errorf("analyzer: parse health response: %w", err)
	}
	if health.Status != "OK" {
		return fmt.Errorf("analyzer: service unhealthy: %q", health.Status)
	}
	return nil
}

// Wire types mirror the service's JSON schema.

type analyzeResponse struct {
	OriginalName string        `json:"nombre_archivo_original"`
	StoredName   string        `json:"nombre_archivo_guardado"`
	Results      analyzeResult `json:"resultados"`
}

type analyzeResult struct {
	AreaDamagePct float64 `json:"area_afectada_pct"`
	LesionCount   int     `json:"conteo_lesiones"`
	AvgLesionPx   float64 `json:"tamanio_promedio_lesion_px"`
	Success       bool    `json:"procesamiento_exitoso"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// validate rejects payloads that decode but carry implausible metrics, so
// a malformed response excludes the sample instead of skewing the batch.
func (r *analyzeResponse) validate() error {
	res := r.Results
	if !res.Success {
		return fmt.Errorf("analyzer: service reported unsuccessful processing")
	}
	if math.IsNaN(res.AreaDamagePct) || res.AreaDamagePct < 0 || res.AreaDamagePct > 100 {
		return fmt.Errorf("analyzer: damaged area %v out of range [0,100]", res.AreaDamagePct)
	}
	if res.LesionCount < 0 {
		return fmt.Errorf("analyzer: negative lesion count %d", res.LesionCount)
	}
	return nil
}
