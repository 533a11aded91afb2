package sets

import "github.com/jackc/pgx/v5"

// Rows2Sets scans rows in the shape
// (id, reps, weight, rest_seconds, workout_exercise_id, exercise_log_id, created_at).
func Rows2Sets(rows pgx.Rows) ([]Set, error) {
	ss := make([]Set, 0)
	for rows.Next() {
		var s Set
		if err := rows.Scan(
			&s.ID, &s.Reps, &s.Weight, &s.RestSeconds,
			&s.WorkoutExerciseID, &s.ExerciseLogID, &s.CreatedAt,
		); err != nil {
			return nil, err
		}
		ss = append(ss, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ss, nil
}
