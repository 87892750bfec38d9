package domain

// Question is one record from the question bank. The bank is loaded once at
// startup and never mutated afterwards.
type Question struct {
	Subject string   `json:"subject"`
	Topic   string   `json:"topic"`
	Level   int      `json:"level"`
	Text    string   `json:"question"`
	Answer  string   `json:"answer"`
	Options []string `json:"options,omitempty"`
}

// QuestionBank is the ordered, immutable collection of questions.
type QuestionBank []Question

// Filter describes start-game question criteria. Zero values match everything.
type Filter struct {
	Subject string
	Topic   string
	Level   *int
}

// Select returns the questions matching every provided criterion, preserving
// bank order. An omitted criterion matches all records.
func (b QuestionBank) Select(f Filter) []Question {
	matched := make([]Question, 0, len(b))
	for _, q := range b {
		if f.Subject != "" && q.Subject != f.Subject {
			continue
		}
		if f.Topic != "" && q.Topic != f.Topic {
			continue
		}
		if f.Level != nil && q.Level != *f.Level {
			continue
		}
		matched = append(matched, q)
	}
	return matched
}

// Player is one connection's seat in a room. The connection id doubles as the
// player identity.
type Player struct {
	ConnID     string
	Name       string
	Country    string
	Eliminated bool
}

// PlayerView is the roster entry broadcast to clients.
type PlayerView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Score   int    `json:"score"`
}
