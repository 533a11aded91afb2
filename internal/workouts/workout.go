package workouts

import (
	"time"

	"github.com/2beens/liftlog/internal/sets"
	"github.com/2beens/liftlog/internal/templates"
)

type Workout struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	UserID      int       `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Exercise is one template attached to a workout, always loaded together
// with its template and sets.
type Exercise struct {
	ID        int                `json:"id"`
	WorkoutID int                `json:"workoutId"`
	Template  templates.Template `json:"template"`
	Sets      []sets.Set         `json:"sets"`
	CreatedAt time.Time          `json:"createdAt"`
}
