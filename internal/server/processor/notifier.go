// Package processor triggers the external document-processing pipeline.
// The pipeline is an n8n workflow reached over a single webhook; it answers
// synchronously and later reports extraction results through the callback
// endpoint.
package processor

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"gestoria/internal/api"
	"gestoria/internal/logging"
	sc "gestoria/internal/server/config"
)

// StatusUnreachable is the synthetic status reported when the webhook call
// never produced an HTTP response (unset URL, DNS failure, timeout).
const StatusUnreachable = 599

// Job names one stored document for the processing pipeline.
type Job struct {
	Tipo     api.DocumentKind `json:"tipo"`
	Storage  string           `json:"storage"`
	User     string           `json:"user"`
	Filename string           `json:"filename"`
}

// Notifier posts jobs to the configured webhook.
type Notifier struct {
	url    string
	secret string
	client *http.Client
	log    logging.Logger
}

func New(cfg *sc.Config, log logging.Logger) *Notifier {
	return &Notifier{
		url:    cfg.WebhookURL,
		secret: cfg.WebhookSecret,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log.With("module", "processor"),
	}
}

// Notify posts the job and returns the webhook's status code and body text.
// It never returns an error: failures to reach the webhook at all come back
// as StatusUnreachable with a diagnostic detail, so callers handle exactly
// one shape. Statuses >= 300 mean the job was not accepted.
func (n *Notifier) Notify(ctx context.Context, job Job) (int, string) {
	if n.url == "" {
		n.log.Warn(ctx, "webhook url not configured, skipping call")
		return StatusUnreachable, "N8N_WEBHOOK_URL no configurado"
	}

	body, err := json.Marshal(job)
	if err != nil {
		return StatusUnreachable, "ex:" + err.Error()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return StatusUnreachable, "ex:" + err.Error()
	}
	req.Header.Set("Content-Type", "application/json")
	if n.secret != "" {
		req.Header.Set("X-Webhook-Secret", n.secret)
	}

	n.log.Info(ctx, "webhook =>", "url", n.url, "tipo", job.Tipo, "filename", job.Filename)

	resp, err := n.client.Do(req)
	if err != nil {
		n.log.Error(ctx, "webhook call failed", "error", err)
		return StatusUnreachable, "ex:" + err.Error()
	}
	defer resp.Body.Close()

	text, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	n.log.Info(ctx, "webhook <=", "status", resp.StatusCode, "body_len", len(text))

	return resp.StatusCode, string(text)
}
