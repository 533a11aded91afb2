//go:build integration

package test

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/2beens/liftlog/internal/history"
	"github.com/2beens/liftlog/internal/sets"
	"github.com/2beens/liftlog/internal/templates"
	"github.com/2beens/liftlog/internal/workouts"
)

func (s *IntegrationTestSuite) createTemplate(token, name string) templates.Template {
	status, body := s.request(token, "POST", "/templates", map[string]string{"name": name})
	s.Require().Equal(http.StatusCreated, status)
	var template templates.Template
	s.Require().NoError(json.Unmarshal(body, &template))
	return template
}

func (s *IntegrationTestSuite) createWorkout(token, name string) workouts.Workout {
	status, body := s.request(token, "POST", "/workouts", map[string]string{"name": name})
	s.Require().Equal(http.StatusCreated, status)
	var workout workouts.Workout
	s.Require().NoError(json.Unmarshal(body, &workout))
	return workout
}

func (s *IntegrationTestSuite) attachExercise(token string, workoutID, templateID int) workouts.Exercise {
	status, body := s.request(
		token, "POST",
		fmt.Sprintf("/workouts/%d/exercises", workoutID),
		map[string]int{"templateId": templateID},
	)
	s.Require().Equal(http.StatusCreated, status)
	var exercise workouts.Exercise
	s.Require().NoError(json.Unmarshal(body, &exercise))
	return exercise
}

func (s *IntegrationTestSuite) TestWorkouts_EmptyForFreshUser() {
	token := s.login("fresh-user@liftlog.test")

	status, body := s.request(token, "GET", "/workouts", nil)
	s.Require().Equal(http.StatusOK, status)

	var allWorkouts []workouts.Workout
	s.Require().NoError(json.Unmarshal(body, &allWorkouts))
	s.Empty(allWorkouts)
}

func (s *IntegrationTestSuite) TestTemplates_VisibleRightAfterCreate() {
	token := s.login("templates-user@liftlog.test")

	// warm the template list cache first
	status, _ := s.request(token, "GET", "/templates", nil)
	s.Require().Equal(http.StatusOK, status)

	created := s.createTemplate(token, "Bench Press")

	status, body := s.request(token, "GET", "/templates", nil)
	s.Require().Equal(http.StatusOK, status)

	var allTemplates []templates.Template
	s.Require().NoError(json.Unmarshal(body, &allTemplates))

	occurrences := 0
	for _, t := range allTemplates {
		if t.ID == created.ID {
			occurrences++
		}
	}
	s.Equal(1, occurrences)
}

func (s *IntegrationTestSuite) TestSets_BatchUpsert() {
	token := s.login("sets-user@liftlog.test")

	template := s.createTemplate(token, "Squat")
	workout := s.createWorkout(token, "Leg Day")
	exercise := s.attachExercise(token, workout.ID, template.ID)

	// a fresh attachment starts with one empty set
	s.Require().Len(exercise.Sets, 1)
	starterSetID := exercise.Sets[0].ID

	// one update (the starter set) and one create, in a single batch;
	// out of range values get clamped
	status, body := s.request(token, "PUT", "/sets", map[string]any{
		"workoutExerciseId": exercise.ID,
		"sets": []map[string]int{
			{"id": starterSetID, "reps": 5, "weight": 1500, "restSeconds": 120},
			{"reps": 8, "weight": 80, "restSeconds": -10},
		},
	})
	s.Require().Equal(http.StatusOK, status)

	var upserted []sets.Set
	s.Require().NoError(json.Unmarshal(body, &upserted))
	s.Require().Len(upserted, 2)
	s.Equal(starterSetID, upserted[0].ID)
	s.Equal(sets.MaxSetValue, upserted[0].Weight)
	s.NotEqual(starterSetID, upserted[1].ID)
	s.Equal(0, upserted[1].RestSeconds)

	// still exactly two sets on the exercise, no duplicates
	status, body = s.request(token, "GET", fmt.Sprintf("/exercises/%d", exercise.ID), nil)
	s.Require().Equal(http.StatusOK, status)
	var reloaded workouts.Exercise
	s.Require().NoError(json.Unmarshal(body, &reloaded))
	s.Len(reloaded.Sets, 2)
}

func (s *IntegrationTestSuite) TestWorkouts_CascadeDelete() {
	token := s.login("cascade-user@liftlog.test")

	template := s.createTemplate(token, "Deadlift")
	workout := s.createWorkout(token, "Pull Day")
	exercise := s.attachExercise(token, workout.ID, template.ID)

	status, _ := s.request(token, "PUT", "/sets", map[string]any{
		"workoutExerciseId": exercise.ID,
		"sets": []map[string]int{
			{"reps": 5, "weight": 140, "restSeconds": 180},
		},
	})
	s.Require().Equal(http.StatusOK, status)

	status, _ = s.request(token, "DELETE", fmt.Sprintf("/workouts/%d", workout.ID), nil)
	s.Require().Equal(http.StatusOK, status)

	// the workout and everything attached to it is gone
	status, _ = s.request(token, "GET", fmt.Sprintf("/workouts/%d", workout.ID), nil)
	s.Equal(http.StatusNotFound, status)
	status, _ = s.request(token, "GET", fmt.Sprintf("/exercises/%d", exercise.ID), nil)
	s.Equal(http.StatusNotFound, status)

	// the template itself survives the workout deletion
	status, _ = s.request(token, "GET", "/templates", nil)
	s.Equal(http.StatusOK, status)
}

func (s *IntegrationTestSuite) TestForeignResources_NotAccessible() {
	ownerToken := s.login("owner@liftlog.test")
	intruderToken := s.login("intruder@liftlog.test")

	workout := s.createWorkout(ownerToken, "Push Day")

	status, _ := s.request(intruderToken, "GET", fmt.Sprintf("/workouts/%d", workout.ID), nil)
	s.Equal(http.StatusForbidden, status)

	status, _ = s.request(intruderToken, "DELETE", fmt.Sprintf("/workouts/%d", workout.ID), nil)
	s.Equal(http.StatusForbidden, status)

	// still there for the owner
	status, _ = s.request(ownerToken, "GET", fmt.Sprintf("/workouts/%d", workout.ID), nil)
	s.Equal(http.StatusOK, status)

	// a log entry cannot point at somebody else's workout either
	intruderTemplate := s.createTemplate(intruderToken, "Curl")
	status, _ = s.request(intruderToken, "POST", "/history", map[string]any{
		"templateId": intruderTemplate.ID,
		"workoutId":  workout.ID,
	})
	s.Equal(http.StatusForbidden, status)
}

func (s *IntegrationTestSuite) TestHistory_LogAndFrequency() {
	token := s.login("history-user@liftlog.test")

	template := s.createTemplate(token, "Overhead Press")
	workout := s.createWorkout(token, "Shoulder Day")

	status, body := s.request(token, "POST", "/history", map[string]any{
		"templateId": template.ID,
		"workoutId":  workout.ID,
		"sets": []map[string]int{
			{"reps": 5, "weight": 50, "restSeconds": 120},
			{"reps": 5, "weight": 50, "restSeconds": 120},
		},
	})
	s.Require().Equal(http.StatusCreated, status)

	var entry history.Entry
	s.Require().NoError(json.Unmarshal(body, &entry))
	s.Require().Len(entry.Sets, 2)

	status, body = s.request(token, "GET", "/history/frequency?window=year", nil)
	s.Require().Equal(http.StatusOK, status)

	var report history.FrequencyReport
	s.Require().NoError(json.Unmarshal(body, &report))
	s.Require().Len(report.Labels, 12)
	s.Require().Len(report.Series, 1)
	s.Equal("Shoulder Day", report.Series[0].Workout)

	total := 0
	for _, c := range report.Series[0].Counts {
		total += c
	}
	s.Equal(1, total)
}
