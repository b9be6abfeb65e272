package domain

import (
	"time"

	"github.com/google/uuid"
)

// Entry is a persisted journal record: the user's raw text and the analysis
// produced for it. Both fields are set once at creation and never updated.
type Entry struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	Analysis  string    `json:"analysis"`
	CreatedAt time.Time `json:"created_at"`
}

// Preview returns the first line of the entry content.
func (e *Entry) Preview() string {
	for i, r := range e.Content {
		if r == '\n' {
			return e.Content[:i]
		}
	}
	return e.Content
}
