package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var minimalPDF = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mediaType string
		wantErr   bool
	}{
		{"pdf", "application/pdf", false},
		{"pdf upper case", "Application/PDF", false},
		{"pdf with params", "application/pdf; charset=binary", false},
		{"plain text", "text/plain", true},
		{"empty", "", true},
		{"garbage", ";;;", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(Candidate{Name: "x", MediaType: tt.mediaType})
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFileType)
				assert.False(t, IsAcceptable(Candidate{MediaType: tt.mediaType}))
			} else {
				assert.NoError(t, err)
				assert.True(t, IsAcceptable(Candidate{MediaType: tt.mediaType}))
			}
		})
	}
}

func TestFromBytes(t *testing.T) {
	c := FromBytes("paper.pdf", minimalPDF)
	assert.Equal(t, "paper.pdf", c.Name)
	assert.Equal(t, MediaTypePDF, c.MediaType)
	assert.True(t, IsAcceptable(c))

	txt := FromBytes("notes.pdf", []byte("just some notes"))
	assert.False(t, IsAcceptable(txt), "extension alone must not make a file acceptable")

	empty := FromBytes("empty.pdf", nil)
	assert.Equal(t, "application/octet-stream", empty.MediaType)
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "paper.pdf")
	require.NoError(t, os.WriteFile(path, minimalPDF, 0o600))

	c, err := FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "paper.pdf", c.Name)
	assert.Equal(t, minimalPDF, c.Data)
	assert.True(t, IsAcceptable(c))

	_, err = FromFile(filepath.Join(dir, "missing.pdf"))
	assert.Error(t, err)
}

func TestParseLanguage(t *testing.T) {
	l, ok := ParseLanguage(" EN ")
	assert.True(t, ok)
	assert.Equal(t, English, l)

	l, ok = ParseLanguage("id")
	assert.True(t, ok)
	assert.Equal(t, Indonesian, l)

	_, ok = ParseLanguage("fr")
	assert.False(t, ok)

	assert.Equal(t, English, Language("fr").OrDefault())
	assert.Equal(t, Indonesian, Indonesian.OrDefault())
}
