package summarizer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/SaiNageswarS/docqa-boot/backend"
	"github.com/SaiNageswarS/docqa-boot/document"
	"github.com/SaiNageswarS/docqa-boot/llm"
	"github.com/SaiNageswarS/docqa-boot/prompts"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	invalidFileTypeDetail = "Invalid file type. Please upload a PDF."
	noTextDetail          = "Failed to extract meaningful text from PDF."
	badSummaryDetail      = "Failed to parse summary from LLM."
)

type Config struct {
	MapChunkSize       int
	MapChunkOverlap    int
	IndexChunkSize     int
	IndexChunkOverlap  int
	DocumentThreshold  float32 // max distance for a document hit
	LibraryThreshold   float32 // max distance for a library hit
	MinLibraryFileSize int64
	MapConcurrency     int // chunk summaries in flight at once
	IngestConcurrency  int
}

func DefaultConfig() Config {
	return Config{
		MapChunkSize:       3000,
		MapChunkOverlap:    200,
		IndexChunkSize:     1000,
		IndexChunkOverlap:  150,
		DocumentThreshold:  1.0,
		LibraryThreshold:   1.2,
		MinLibraryFileSize: 20 * 1024,
		MapConcurrency:     4,
		IngestConcurrency:  4,
	}
}

// withDefaults fills non-positive fields from DefaultConfig. A chunk overlap
// is only replaced together with its size.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MapChunkSize <= 0 {
		c.MapChunkSize, c.MapChunkOverlap = d.MapChunkSize, d.MapChunkOverlap
	}
	if c.IndexChunkSize <= 0 {
		c.IndexChunkSize, c.IndexChunkOverlap = d.IndexChunkSize, d.IndexChunkOverlap
	}
	if c.DocumentThreshold <= 0 {
		c.DocumentThreshold = d.DocumentThreshold
	}
	if c.LibraryThreshold <= 0 {
		c.LibraryThreshold = d.LibraryThreshold
	}
	if c.MinLibraryFileSize <= 0 {
		c.MinLibraryFileSize = d.MinLibraryFileSize
	}
	if c.MapConcurrency <= 0 {
		c.MapConcurrency = d.MapConcurrency
	}
	if c.IngestConcurrency <= 0 {
		c.IngestConcurrency = d.IngestConcurrency
	}
	return c
}

// Service summarizes PDFs and answers questions about them in process. It
// implements backend.Backend.
type Service struct {
	llm      llm.LLMClient
	embedder llm.Embedder
	index    *Index
	cfg      Config
}

var _ backend.Backend = (*Service)(nil)

func NewService(client llm.LLMClient, embedder llm.Embedder, index *Index, cfg Config) *Service {
	return &Service{
		llm:      client,
		embedder: embedder,
		index:    index,
		cfg:      cfg.withDefaults(),
	}
}

func (s *Service) Summarize(ctx context.Context, req backend.SummarizeRequest) (*backend.Summary, error) {
	if !strings.HasSuffix(strings.ToLower(req.FileName), ".pdf") {
		return nil, &backend.Error{StatusCode: http.StatusBadRequest, Detail: invalidFileTypeDetail}
	}

	lang := req.Language.OrDefault()
	documentID := uuid.NewString()

	summary, err := s.summarize(ctx, documentID, req.Data, lang)
	if err != nil {
		logger.Error("Failed to summarize document", zap.String("file", req.FileName), zap.Error(err))
		s.index.Delete(documentID)

		var be *backend.Error
		if errors.As(err, &be) {
			return nil, be
		}
		return nil, &backend.Error{StatusCode: http.StatusInternalServerError, Detail: "Internal server error: " + err.Error()}
	}

	logger.Info("Document summarized", zap.String("file", req.FileName), zap.String("documentId", documentID))
	return summary, nil
}

func (s *Service) summarize(ctx context.Context, documentID string, data []byte, lang document.Language) (*backend.Summary, error) {
	raw, err := pdfExtractor(data)
	if err != nil {
		return nil, err
	}

	cleaned := CleanText(raw)
	if cleaned == "" {
		return nil, &backend.Error{StatusCode: http.StatusInternalServerError, Detail: noTextDetail}
	}

	chunks := ChunkText(cleaned, s.cfg.MapChunkSize, s.cfg.MapChunkOverlap)
	chunkSummaries, err := s.mapChunks(ctx, lang, chunks)
	if err != nil {
		return nil, err
	}

	summary, err := s.reduce(ctx, lang, strings.Join(chunkSummaries, "\n\n"))
	if err != nil {
		return nil, err
	}

	if err := s.vectorize(ctx, documentID, cleaned); err != nil {
		return nil, err
	}

	summary.DocumentID = documentID
	return summary, nil
}

func (s *Service) mapChunks(ctx context.Context, lang document.Language, chunks []string) ([]string, error) {
	summaries := make([]string, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MapConcurrency)

	for i, chunk := range chunks {
		g.Go(func() error {
			logger.Info("Summarizing chunk", zap.Int("chunk", i+1), zap.Int("total", len(chunks)))

			systemPrompt, userPrompt, err := prompts.RenderMapPrompt(string(lang), chunk)
			if err != nil {
				return err
			}
			summary, err := s.complete(gctx, systemPrompt, userPrompt, llm.WithMaxTokens(512), llm.WithTemperature(0.2))
			if err != nil {
				return err
			}
			summaries[i] = summary
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

func (s *Service) reduce(ctx context.Context, lang document.Language, combined string) (*backend.Summary, error) {
	systemPrompt, userPrompt, err := prompts.RenderReducePrompt(string(lang), combined)
	if err != nil {
		return nil, err
	}

	output, err := s.complete(ctx, systemPrompt, userPrompt,
		llm.WithMaxTokens(1024), llm.WithTemperature(0.1), llm.WithJSONOutput())
	if err != nil {
		return nil, err
	}

	return parseStructuredSummary(output, lang)
}

// parseStructuredSummary maps the reduce output onto labelled sections in a
// fixed order. Keys absent from the output get a "not found" text.
func parseStructuredSummary(output string, lang document.Language) (*backend.Summary, error) {
	output = strings.TrimSpace(output)
	start := strings.Index(output, "{")
	end := strings.LastIndex(output, "}")
	if start == -1 || end == -1 || start >= end {
		return nil, &backend.Error{StatusCode: http.StatusInternalServerError, Detail: badSummaryDetail}
	}

	jsonStr := output[start : end+1]
	if !gjson.Valid(jsonStr) {
		return nil, &backend.Error{StatusCode: http.StatusInternalServerError, Detail: badSummaryDetail}
	}

	labels := sectionLabels[lang]
	summary := &backend.Summary{}
	for _, key := range summaryKeys {
		value := gjson.Get(jsonStr, key)
		text := notFoundText[lang]
		if value.Exists() {
			text = value.String()
		}
		summary.Set(labels[key], text)
	}
	return summary, nil
}

func (s *Service) vectorize(ctx context.Context, documentID, text string) error {
	chunks := ChunkText(text, s.cfg.IndexChunkSize, s.cfg.IndexChunkOverlap)

	vectors, err := s.embedder.Embed(ctx, chunks)
	if err != nil {
		return fmt.Errorf("error embedding document: %w", err)
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("expected %d embeddings, got %d", len(chunks), len(vectors))
	}

	collection := &Collection{}
	collection.Add(chunks, vectors)
	s.index.Put(documentID, collection)

	logger.Info("Document vectorized", zap.String("documentId", documentID), zap.Int("chunks", len(chunks)))
	return nil
}

func (s *Service) Answer(ctx context.Context, req backend.AnswerRequest) (string, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return "", &backend.Error{StatusCode: http.StatusUnprocessableEntity, Detail: "question is required"}
	}
	lang := req.Language.OrDefault()

	vectors, err := s.embedder.Embed(ctx, []string{question})
	if err == nil && len(vectors) != 1 {
		err = fmt.Errorf("expected 1 embedding, got %d", len(vectors))
	}
	if err != nil {
		logger.Error("Failed to embed question", zap.Error(err))
		return "", &backend.Error{StatusCode: http.StatusInternalServerError, Detail: "Internal server error: " + err.Error()}
	}

	contextText, found := s.retrieve(vectors[0], req.DocumentID)
	if !found {
		logger.Info("No relevant context found", zap.String("documentId", req.DocumentID))
		return noContextAnswer[lang], nil
	}

	systemPrompt, userPrompt, err := prompts.RenderQAPrompt(string(lang), contextText, question)
	if err != nil {
		return "", &backend.Error{StatusCode: http.StatusInternalServerError, Detail: "Internal server error: " + err.Error()}
	}

	answer, err := s.complete(ctx, systemPrompt, userPrompt, llm.WithMaxTokens(512), llm.WithTemperature(0.3))
	if err != nil {
		logger.Error("Failed to generate answer", zap.Error(err))
		return "", &backend.Error{StatusCode: http.StatusInternalServerError, Detail: "Internal server error: " + err.Error()}
	}
	return answer, nil
}

// retrieve looks in the document collection first and falls back to the library.
func (s *Service) retrieve(vector []float32, documentID string) (string, bool) {
	if documentID != "" {
		if collection, ok := s.index.Get(documentID); ok {
			if text, ok := joinHits(collection.Query(vector, 2), s.cfg.DocumentThreshold); ok {
				return text, true
			}
		} else {
			logger.Info("Unknown document, using library", zap.String("documentId", documentID))
		}
	}

	return joinHits(s.index.Library().Query(vector, 1), s.cfg.LibraryThreshold)
}

// joinHits accepts the hits when the closest one is under threshold.
func joinHits(hits []Hit, threshold float32) (string, bool) {
	if len(hits) == 0 || hits[0].Distance >= threshold {
		return "", false
	}

	texts := make([]string, len(hits))
	for i, h := range hits {
		texts[i] = h.Text
	}
	return strings.Join(texts, "\n\n"), true
}

func (s *Service) complete(ctx context.Context, systemPrompt, userPrompt string, opts ...llm.LLMOption) (string, error) {
	var out strings.Builder
	opts = append([]llm.LLMOption{llm.WithSystemPrompt(systemPrompt)}, opts...)

	err := s.llm.GenerateInference(ctx,
		[]llm.Message{{Role: "user", Content: userPrompt}},
		func(chunk string) error {
			out.WriteString(chunk)
			return nil
		},
		opts...)
	if err != nil {
		return "", err
	}
	return out.String(), nil
}
