package document

import "strings"

// Language is a summary and answer language code.
type Language string

const (
	Indonesian Language = "id"
	English    Language = "en"
)

const DefaultLanguage = English

func (l Language) Valid() bool {
	return l == Indonesian || l == English
}

// ParseLanguage normalizes a user supplied code. ok is false for unknown codes.
func ParseLanguage(code string) (Language, bool) {
	l := Language(strings.ToLower(strings.TrimSpace(code)))
	return l, l.Valid()
}

// OrDefault returns l, or English when l is not a supported code.
func (l Language) OrDefault() Language {
	if l.Valid() {
		return l
	}
	return DefaultLanguage
}
