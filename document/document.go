package document

import (
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const MediaTypePDF = "application/pdf"

// ErrUnsupportedFileType is returned for candidates whose declared media type is not PDF.
var ErrUnsupportedFileType = errors.New("unsupported file type")

// Candidate is a file picked or dropped by the user, before validation.
type Candidate struct {
	Name      string
	MediaType string // declared media type
	Data      []byte
}

// FromBytes builds a candidate and declares its media type by sniffing the payload.
func FromBytes(name string, data []byte) Candidate {
	return Candidate{
		Name:      name,
		MediaType: detectMediaType(data),
		Data:      data,
	}
}

// FromFile reads a file from disk and builds a candidate out of it.
func FromFile(path string) (Candidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Candidate{}, fmt.Errorf("error reading %s: %w", path, err)
	}

	return FromBytes(filepath.Base(path), data), nil
}

// IsAcceptable reports whether the candidate can enter the document pipeline.
func IsAcceptable(c Candidate) bool {
	return Validate(c) == nil
}

// Validate returns ErrUnsupportedFileType when the declared type is not PDF.
func Validate(c Candidate) error {
	mediaType, _, err := mime.ParseMediaType(c.MediaType)
	if err != nil || !strings.EqualFold(mediaType, MediaTypePDF) {
		return ErrUnsupportedFileType
	}
	return nil
}

func detectMediaType(data []byte) string {
	if len(data) == 0 {
		return "application/octet-stream"
	}
	return mimetype.Detect(data).String()
}
