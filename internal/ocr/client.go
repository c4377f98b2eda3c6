package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/PMCGrupo4/handwritely-excelizer-73/internal/parse"
)

// Config for the remote OCR endpoint.
type Config struct {
	Endpoint string
	Timeout  time.Duration // handwriting OCR is slow; default 60s
}

// Client calls a remote OCR/receipt-extraction service with a base64 image and
// returns its reply as a parse.Result. It is a thin pass-through: recognition
// quality, retries and caching are the endpoint's and the caller's concern.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

type recognizeRequest struct {
	UserID string `json:"userId"`
	Image  string `json:"image"`
}

// Recognize posts the image and decodes the reply. The body is validated
// against BuildResponseSchema before decoding, so malformed replies surface
// as transport-level errors rather than leaking into parsing.
func (c *Client) Recognize(ctx context.Context, userID, imageB64 string) (parse.Result, error) {
	rid := uuid.New().String()
	start := time.Now()

	bs, err := json.Marshal(recognizeRequest{UserID: userID, Image: imageB64})
	if err != nil {
		return parse.Result{}, fmt.Errorf("encode json: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(bs))
	if err != nil {
		return parse.Result{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Info("ocr.request",
		"req_id", rid,
		"endpoint", c.cfg.Endpoint,
		"content_length", len(bs),
	)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("ocr.send_error", "req_id", rid, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return parse.Result{}, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("ocr.response_body_close_error", "req_id", rid, "error", cerr)
		}
	}()

	raw, _ := io.ReadAll(resp.Body)

	c.logger.Info("ocr.response",
		"req_id", rid,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode/100 != 2 {
		return parse.Result{}, fmt.Errorf("ocr endpoint returned status %d", resp.StatusCode)
	}
	if err := ValidateJSONAgainstSchema(BuildResponseSchema(), raw); err != nil {
		c.logger.Error("ocr.invalid_response", "req_id", rid, "error", err)
		return parse.Result{}, fmt.Errorf("ocr response rejected: %w", err)
	}

	var res parse.Result
	if err := json.Unmarshal(raw, &res); err != nil {
		return parse.Result{}, fmt.Errorf("decode ocr response: %w", err)
	}
	res.Text = CleanText(res.Text)
	return res, nil
}
