package summarizer

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

var (
	tableRowRe  = regexp.MustCompile(`\|.*\|`)
	citationRe  = regexp.MustCompile(`\[\d+\]`)
	headingRe   = regexp.MustCompile(`#+\s.*`)
	blankLineRe = regexp.MustCompile(`\n\s*\n`)
	tagRe       = regexp.MustCompile(`<[^<]+?>`)

	abstractRe = regexp.MustCompile(`(?i)\b(abstract|abstrak)\b`)
	endRe      = regexp.MustCompile(`(?i)\b(conclusion|conclusions|kesimpulan|references|daftar pustaka|acknowledgements)\b`)
)

var pdfExtractor = ExtractText

// ExtractText returns the plain text of a PDF.
func ExtractText(data []byte) (text string, err error) {
	// the pdf reader panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("error reading pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("error opening pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("error extracting pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("error extracting pdf text: %w", err)
	}
	return buf.String(), nil
}

// CleanText drops table rows, numeric citations, headings and blank lines.
func CleanText(text string) string {
	text = tableRowRe.ReplaceAllString(text, "")
	text = citationRe.ReplaceAllString(text, "")
	text = headingRe.ReplaceAllString(text, "")
	text = blankLineRe.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

// RelevantSection returns the text from the first "abstract" heading up to
// and including the first closing section keyword, with markup removed and
// whitespace collapsed. ok is false when either boundary is missing.
func RelevantSection(text string) (section string, ok bool) {
	start := abstractRe.FindStringIndex(text)
	if start == nil {
		return "", false
	}

	rest := text[start[0]:]
	end := endRe.FindStringIndex(rest)
	if end == nil {
		return "", false
	}

	section = tagRe.ReplaceAllString(rest[:end[1]], " ")
	return strings.Join(strings.Fields(section), " "), true
}

// ChunkText splits text into windows of size runes, each starting
// size-overlap runes after the previous one. A non-positive size returns text
// as a single chunk.
func ChunkText(text string, size, overlap int) []string {
	runes := []rune(text)
	if size <= 0 || len(runes) <= size {
		return []string{text}
	}

	step := size - overlap
	if step <= 0 {
		step = size
	}

	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
