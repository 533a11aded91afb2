package sets

import "time"

// MaxSetValue caps reps, weight and rest seconds. Values outside
// [0, MaxSetValue] are clamped, not rejected.
const MaxSetValue = 999

type Set struct {
	ID                int       `json:"id"`
	Reps              int       `json:"reps"`
	Weight            int       `json:"weight"`
	RestSeconds       int       `json:"restSeconds"`
	WorkoutExerciseID *int      `json:"workoutExerciseId,omitempty"`
	ExerciseLogID     *int      `json:"exerciseLogId,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

func (s *Set) Clamp() {
	s.Reps = clampValue(s.Reps)
	s.Weight = clampValue(s.Weight)
	s.RestSeconds = clampValue(s.RestSeconds)
}

func clampValue(v int) int {
	if v < 0 {
		return 0
	}
	if v > MaxSetValue {
		return MaxSetValue
	}
	return v
}
