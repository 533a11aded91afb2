package history

import (
	"time"

	"github.com/2beens/liftlog/internal/sets"
)

// Entry is one append-only exercise log record, with the template name
// and (optional) workout name resolved for display.
type Entry struct {
	ID           int        `json:"id"`
	TemplateID   int        `json:"templateId"`
	TemplateName string     `json:"templateName"`
	WorkoutID    *int       `json:"workoutId,omitempty"`
	WorkoutName  string     `json:"workoutName,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	Sets         []sets.Set `json:"sets"`
}
