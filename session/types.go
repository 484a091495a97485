package session

import (
	"github.com/SaiNageswarS/docqa-boot/backend"
	"github.com/SaiNageswarS/docqa-boot/document"
)

// Phase is the state of the document pipeline.
type Phase int

const (
	Idle Phase = iota
	Selecting
	Summarizing
	Summarized
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Selecting:
		return "selecting"
	case Summarizing:
		return "summarizing"
	case Summarized:
		return "summarized"
	default:
		return "unknown"
	}
}

// Snapshot is a copy of the session state at one point in time.
type Snapshot struct {
	Phase    Phase
	FileName string
	HasFile  bool
	Language document.Language

	// Summary and DocumentID are set together from one successful response.
	Summary    *backend.Summary
	DocumentID string
	LastError  string

	Draft      string
	Answering  bool
	Transcript []Turn
}
