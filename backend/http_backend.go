package backend

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	summarizePath = "/summarize"
	answerPath    = "/qa"
)

// HTTPBackend talks to the summarization service over HTTP.
// Requests are never retried.
type HTTPBackend struct {
	client *resty.Client
}

func NewHTTPBackend(baseURL string, timeout time.Duration) *HTTPBackend {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(0)

	return &HTTPBackend{client: client}
}

func (b *HTTPBackend) Summarize(ctx context.Context, req SummarizeRequest) (*Summary, error) {
	resp, err := b.client.R().
		SetContext(ctx).
		SetMultipartField("file", req.FileName, req.MediaType, bytes.NewReader(req.Data)).
		SetFormData(map[string]string{"lang": string(req.Language)}).
		Post(summarizePath)
	if err != nil {
		return nil, fmt.Errorf("error making summarize request: %w", err)
	}

	if !resp.IsSuccess() {
		detail := parseDetail(resp.Body())
		logger.Error("Summarize request failed", zap.Int("status", resp.StatusCode()), zap.String("detail", detail))
		return nil, &Error{StatusCode: resp.StatusCode(), Detail: detail}
	}

	return parseSummary(resp.Body())
}

func (b *HTTPBackend) Answer(ctx context.Context, req AnswerRequest) (string, error) {
	resp, err := b.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(answerPath)
	if err != nil {
		return "", fmt.Errorf("error making answer request: %w", err)
	}

	if !resp.IsSuccess() {
		detail := parseDetail(resp.Body())
		logger.Error("Answer request failed", zap.Int("status", resp.StatusCode()), zap.String("detail", detail))
		return "", &Error{StatusCode: resp.StatusCode(), Detail: detail}
	}

	body := resp.Body()
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("invalid answer response")
	}

	answer := gjson.GetBytes(body, "answer")
	if !answer.Exists() {
		return "", fmt.Errorf("no answer in response")
	}
	return answer.String(), nil
}

// parseSummary decodes {"document_id": ..., "structured_summary": {...}},
// keeping the section order of the response body.
func parseSummary(body []byte) (*Summary, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("invalid summarize response")
	}

	summary := &Summary{DocumentID: gjson.GetBytes(body, "document_id").String()}

	sections := gjson.GetBytes(body, "structured_summary")
	if !sections.IsObject() {
		return nil, fmt.Errorf("no structured summary in response")
	}
	sections.ForEach(func(label, text gjson.Result) bool {
		summary.Sections = append(summary.Sections, Section{Label: label.String(), Text: text.String()})
		return true
	})

	return summary, nil
}
