package session

type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Turn is one immutable entry of the chat transcript.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Transcript is an append-only list of turns in insertion order.
type Transcript struct {
	turns []Turn
}

func (t *Transcript) AddUserTurn(text string) {
	t.turns = append(t.turns, Turn{Role: RoleUser, Text: text})
}

func (t *Transcript) AddBotTurn(text string) {
	t.turns = append(t.turns, Turn{Role: RoleBot, Text: text})
}

func (t *Transcript) Len() int {
	return len(t.turns)
}

// Turns returns a copy of the transcript.
func (t *Transcript) Turns() []Turn {
	out := make([]Turn, len(t.turns))
	copy(out, t.turns)
	return out
}
