package backend

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Error is a non-success response from the backend.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("backend request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend request failed with status %d: %s", e.StatusCode, e.Detail)
}

// Detail returns the human readable detail carried by err, or fallback when
// err carries none. Transport failures always yield the fallback.
func Detail(err error, fallback string) string {
	var be *Error
	if errors.As(err, &be) && strings.TrimSpace(be.Detail) != "" {
		return be.Detail
	}
	return fallback
}

// parseDetail extracts "detail" from an error body. FastAPI sends a string for
// HTTPException and a list of {loc, msg, type} objects for validation errors.
func parseDetail(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}

	detail := gjson.GetBytes(body, "detail")
	switch {
	case detail.Type == gjson.String:
		return detail.String()
	case detail.IsArray():
		var msgs []string
		detail.ForEach(func(_, item gjson.Result) bool {
			if msg := item.Get("msg").String(); msg != "" {
				msgs = append(msgs, msg)
			}
			return true
		})
		return strings.Join(msgs, "; ")
	case detail.Exists() && detail.Type != gjson.Null:
		return detail.Raw
	}
	return ""
}
