package backend

// Section is one labelled part of a structured summary.
type Section struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Summary is a structured summary of one document. Sections keep the order
// in which the backend produced them.
type Summary struct {
	DocumentID string    `json:"document_id"`
	Sections   []Section `json:"sections"`
}

// Get returns the text of the section with the given label.
func (s *Summary) Get(label string) (string, bool) {
	if s == nil {
		return "", false
	}
	for _, sec := range s.Sections {
		if sec.Label == label {
			return sec.Text, true
		}
	}
	return "", false
}

// Labels returns the section labels in backend order.
func (s *Summary) Labels() []string {
	if s == nil {
		return nil
	}
	labels := make([]string, len(s.Sections))
	for i, sec := range s.Sections {
		labels[i] = sec.Label
	}
	return labels
}

// Set replaces the text of an existing label or appends a new section.
func (s *Summary) Set(label, text string) {
	for i := range s.Sections {
		if s.Sections[i].Label == label {
			s.Sections[i].Text = text
			return
		}
	}
	s.Sections = append(s.Sections, Section{Label: label, Text: text})
}

func (s *Summary) Clone() *Summary {
	if s == nil {
		return nil
	}
	out := &Summary{DocumentID: s.DocumentID, Sections: make([]Section, len(s.Sections))}
	copy(out.Sections, s.Sections)
	return out
}
