package backend

import (
	"context"

	"github.com/SaiNageswarS/docqa-boot/document"
)

// Backend is the summarization and question answering service.
type Backend interface {
	Summarize(ctx context.Context, req SummarizeRequest) (*Summary, error)
	Answer(ctx context.Context, req AnswerRequest) (string, error)
}

type SummarizeRequest struct {
	FileName  string
	MediaType string
	Data      []byte
	Language  document.Language
}

// AnswerRequest scopes a question to a document. An empty DocumentID means no document.
type AnswerRequest struct {
	DocumentID string            `json:"document_id,omitempty"`
	Question   string            `json:"question"`
	Language   document.Language `json:"lang"`
}
