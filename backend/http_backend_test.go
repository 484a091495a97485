package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SaiNageswarS/docqa-boot/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPBackendSummarize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/summarize", r.URL.Path)

		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "en", r.FormValue("lang"))

		file, header, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		defer file.Close()
		assert.Equal(t, "paper.pdf", header.Filename)
		assert.Equal(t, "application/pdf", header.Header.Get("Content-Type"))
		data, _ := io.ReadAll(file)
		assert.Equal(t, "%PDF-1.4 body", string(data))

		// key order deliberately not alphabetical
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"filename":"paper.pdf","structured_summary":{"Methods":"m","Abstract":"a","Conclusion":""},"document_id":"doc-1"}`))
	}))
	defer server.Close()

	b := NewHTTPBackend(server.URL, 5*time.Second)
	summary, err := b.Summarize(context.Background(), SummarizeRequest{
		FileName:  "paper.pdf",
		MediaType: "application/pdf",
		Data:      []byte("%PDF-1.4 body"),
		Language:  document.English,
	})

	require.NoError(t, err)
	assert.Equal(t, "doc-1", summary.DocumentID)
	assert.Equal(t, []string{"Methods", "Abstract", "Conclusion"}, summary.Labels())

	text, ok := summary.Get("Conclusion")
	assert.True(t, ok)
	assert.Equal(t, "", text)
}

func TestHTTPBackendSummarizeErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantDetail string
	}{
		{"string detail", http.StatusInternalServerError, `{"detail":"parse error"}`, "parse error"},
		{"validation detail", http.StatusUnprocessableEntity, `{"detail":[{"loc":["body","file"],"msg":"field required"},{"msg":"bad lang"}]}`, "field required; bad lang"},
		{"no detail", http.StatusBadGateway, `<html>bad gateway</html>`, ""},
		{"null detail", http.StatusBadRequest, `{"detail":null}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			b := NewHTTPBackend(server.URL, 5*time.Second)
			_, err := b.Summarize(context.Background(), SummarizeRequest{FileName: "a.pdf", MediaType: "application/pdf"})

			var be *Error
			require.ErrorAs(t, err, &be)
			assert.Equal(t, tt.status, be.StatusCode)
			assert.Equal(t, tt.wantDetail, be.Detail)
			if tt.wantDetail == "" {
				assert.Equal(t, "fallback", Detail(err, "fallback"))
			} else {
				assert.Equal(t, tt.wantDetail, Detail(err, "fallback"))
			}
		})
	}
}

func TestHTTPBackendSummarizeMalformed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"document_id":"doc-1"}`))
	}))
	defer server.Close()

	b := NewHTTPBackend(server.URL, 5*time.Second)
	_, err := b.Summarize(context.Background(), SummarizeRequest{FileName: "a.pdf"})
	assert.Error(t, err)
	assert.Equal(t, "fallback", Detail(err, "fallback"))
}

func TestHTTPBackendAnswer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/qa", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "What is 2+2?", body["question"])
		assert.Equal(t, "en", body["lang"])
		_, hasDoc := body["document_id"]
		assert.False(t, hasDoc, "no document must be sent as an absent document_id")

		json.NewEncoder(w).Encode(map[string]string{"answer": "4"})
	}))
	defer server.Close()

	b := NewHTTPBackend(server.URL, 5*time.Second)
	answer, err := b.Answer(context.Background(), AnswerRequest{Question: "What is 2+2?", Language: document.English})
	require.NoError(t, err)
	assert.Equal(t, "4", answer)
}

func TestHTTPBackendAnswerWithDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "doc-1", body["document_id"])
		assert.Equal(t, "id", body["lang"])
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail":"Internal server error: boom"}`))
	}))
	defer server.Close()

	b := NewHTTPBackend(server.URL, 5*time.Second)
	_, err := b.Answer(context.Background(), AnswerRequest{DocumentID: "doc-1", Question: "q", Language: document.Indonesian})
	assert.Equal(t, "Internal server error: boom", Detail(err, "fallback"))
}

func TestHTTPBackendTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	b := NewHTTPBackend(url, time.Second)
	_, err := b.Answer(context.Background(), AnswerRequest{Question: "q"})
	assert.Error(t, err)
	assert.Equal(t, "fallback", Detail(err, "fallback"))
}
