package templates

import (
	"time"

	"github.com/2beens/liftlog/internal/history"
)

type Template struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	UserID      int       `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TemplateHistory is one template together with all of its log entries.
type TemplateHistory struct {
	Template Template        `json:"template"`
	Entries  []history.Entry `json:"entries"`
}

// GroupHistory distributes log entries to their templates. Every template
// shows up in the result, templates without entries get an empty list.
func GroupHistory(templates []Template, entries []history.Entry) []TemplateHistory {
	grouped := make([]TemplateHistory, 0, len(templates))
	templateIdx := make(map[int]int, len(templates))
	for _, t := range templates {
		templateIdx[t.ID] = len(grouped)
		grouped = append(grouped, TemplateHistory{
			Template: t,
			Entries:  make([]history.Entry, 0),
		})
	}

	for _, e := range entries {
		if i, ok := templateIdx[e.TemplateID]; ok {
			grouped[i].Entries = append(grouped[i].Entries, e)
		}
	}

	return grouped
}
