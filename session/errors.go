package session

import "errors"

var (
	ErrClosed              = errors.New("session closed")
	ErrNoFile              = errors.New("no file selected")
	ErrSummarizeInFlight   = errors.New("summarization already in progress")
	ErrAnswerInFlight      = errors.New("answer already in progress")
	ErrEmptyQuestion       = errors.New("question is empty")
	ErrUnsupportedLanguage = errors.New("unsupported language")

	errMissingDocumentID = errors.New("summarize response has no document id")
)

// Messages surfaced to the user.
const (
	UnsupportedFileTypeMessage = "unsupported file type"
	SummarizeFailedMessage     = "Failed to summarize the document."
	AnswerFailedMessage        = "Failed to get an answer from the server."
	AnswerErrorPrefix          = "Error: "
)

// IsGated reports whether err is one of the precondition errors that leave
// the session untouched.
func IsGated(err error) bool {
	return errors.Is(err, ErrSummarizeInFlight) ||
		errors.Is(err, ErrAnswerInFlight) ||
		errors.Is(err, ErrNoFile) ||
		errors.Is(err, ErrEmptyQuestion)
}
