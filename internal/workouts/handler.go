package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/2beens/liftlog/internal/sets"
	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/templates"
	"github.com/2beens/liftlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=workouts

type workoutsRepo interface {
	Create(ctx context.Context, w Workout) (*Workout, error)
	Get(ctx context.Context, id int) (*Workout, error)
	ListAll(ctx context.Context, userID int) ([]Workout, error)
	Delete(ctx context.Context, id int) error
	AttachExercise(ctx context.Context, workoutID, templateID int) (*Exercise, error)
	GetExercise(ctx context.Context, exerciseID int) (*Exercise, error)
	ListExercises(ctx context.Context, workoutID int) ([]Exercise, error)
	DetachExercise(ctx context.Context, exerciseID int) error
	ReplaceSets(ctx context.Context, exerciseID int, ss []sets.Set) ([]sets.Set, error)
}

type templatesGetter interface {
	Get(ctx context.Context, id int) (*templates.Template, error)
}

type Handler struct {
	repo          workoutsRepo
	templatesRepo templatesGetter
	metrics       *metrics.Manager
}

func NewHandler(repo workoutsRepo, templatesRepo templatesGetter, metrics *metrics.Manager) *Handler {
	return &Handler{
		repo:          repo,
		templatesRepo: templatesRepo,
		metrics:       metrics,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/workouts", handler.HandleList).Methods("GET", "OPTIONS").Name("get-workouts")
	router.HandleFunc("/workouts", handler.HandleCreate).Methods("POST").Name("create-workout")
	router.HandleFunc("/workouts/{id}", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-workout")
	router.HandleFunc("/workouts/{id}", handler.HandleDelete).Methods("DELETE").Name("delete-workout")
	router.HandleFunc("/workouts/{id}/exercises", handler.HandleAttachExercise).Methods("POST", "OPTIONS").Name("attach-exercise")
	router.HandleFunc("/workouts/{id}/exercises", handler.HandleListExercises).Methods("GET").Name("list-exercises")
	router.HandleFunc("/exercises/{id}", handler.HandleGetExercise).Methods("GET", "OPTIONS").Name("get-exercise")
	router.HandleFunc("/exercises/{id}", handler.HandleDetachExercise).Methods("DELETE").Name("detach-exercise")
	router.HandleFunc("/exercises/{id}/sets", handler.HandleReplaceSets).Methods("PUT", "OPTIONS").Name("replace-exercise-sets")
}

type CreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type AttachExerciseRequest struct {
	TemplateID int `json:"templateId"`
}

type ReplaceSetsRequest struct {
	Sets []sets.Set `json:"sets"`
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := pkg.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	workouts, err := handler.repo.ListAll(r.Context(), userID)
	if err != nil {
		log.Errorf("get workouts for user %d: %s", userID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	workoutsJson, err := json.Marshal(workouts)
	if err != nil {
		log.Errorf("get workouts, marshal response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, workoutsJson)
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := pkg.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "name required", http.StatusBadRequest)
		return
	}

	created, err := handler.repo.Create(r.Context(), Workout{
		Name:        req.Name,
		Description: req.Description,
		UserID:      userID,
	})
	if err != nil {
		log.Errorf("create workout for user %d: %s", userID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterWorkoutsCreated.Inc()

	createdJson, err := json.Marshal(created)
	if err != nil {
		log.Errorf("create workout, marshal response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, createdJson, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := pkg.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	workout, done := handler.ownedWorkout(w, r, userID)
	if done {
		return
	}

	workoutJson, err := json.Marshal(workout)
	if err != nil {
		log.Errorf("get workout %d, marshal response: %s", workout.ID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, workoutJson)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := pkg.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	workout, done := handler.ownedWorkout(w, r, userID)
	if done {
		return
	}

	if err := handler.repo.Delete(r.Context(), workout.ID); err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			http.Error(w, "workout not found", http.StatusNotFound)
			return
		}
		log.Errorf("delete workout %d: %s", workout.ID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, "deleted")
}

// HandleAttachExercise links a template to a workout. Both have to belong
// to the caller, otherwise nothing is attached.
func (handler *Handler) HandleAttachExercise(w http.ResponseWriter, r *http.Request) {
	userID, ok := pkg.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	workout, done := handler.ownedWorkout(w, r, userID)
	if done {
		return
	}

	var req AttachExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.TemplateID <= 0 {
		http.Error(w, "template id required", http.StatusBadRequest)
		return
	}

	template, err := handler.templatesRepo.Get(r.Context(), req.TemplateID)
	if err != nil {
		if errors.Is(err, templates.ErrTemplateNotFound) {
			http.Error(w, "template not found", http.StatusNotFound)
			return
		}
		log.Errorf("attach exercise, get template %d: %s", req.TemplateID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if template.UserID != userID {
		http.Error(w, "not yours", http.StatusForbidden)
		return
	}

	exercise, err := handler.repo.AttachExercise(r.Context(), workout.ID, req.TemplateID)
	if err != nil {
		log.Errorf("attach template %d to workout %d: %s", req.TemplateID, workout.ID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	exerciseJson, err := json.Marshal(exercise)
	if err != nil {
		log.Errorf("attach exercise, marshal response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, exerciseJson, http.StatusCreated)
}

func (handler *Handler) HandleListExercises(w http.ResponseWriter, r *http.Request) {
	userID, ok := pkg.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	workout, done := handler.ownedWorkout(w, r, userID)
	if done {
		return
	}

	exercises, err := handler.repo.ListExercises(r.Context(), workout.ID)
	if err != nil {
		log.Errorf("list exercises of workout %d: %s", workout.ID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	exercisesJson, err := json.Marshal(exercises)
	if err != nil {
		log.Errorf("list exercises, marshal response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, exercisesJson)
}

func (handler *Handler) HandleGetExercise(w http.ResponseWriter, r *http.Request) {
	userID, ok := pkg.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	exercise, done := handler.ownedExercise(w, r, userID)
	if done {
		return
	}

	exerciseJson, err := json.Marshal(exercise)
	if err != nil {
		log.Errorf("get exercise %d, marshal response: %s", exercise.ID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, exerciseJson)
}

func (handler *Handler) HandleDetachExercise(w http.ResponseWriter, r *http.Request) {
	userID, ok := pkg.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	exercise, done := handler.ownedExercise(w, r, userID)
	if done {
		return
	}

	if err := handler.repo.DetachExercise(r.Context(), exercise.ID); err != nil {
		if errors.Is(err, ErrExerciseNotFound) {
			http.Error(w, "workout exercise not found", http.StatusNotFound)
			return
		}
		log.Errorf("detach exercise %d: %s", exercise.ID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, "detached")
}

func (handler *Handler) HandleReplaceSets(w http.ResponseWriter, r *http.Request) {
	userID, ok := pkg.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	exercise, done := handler.ownedExercise(w, r, userID)
	if done {
		return
	}

	var req ReplaceSetsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	replaced, err := handler.repo.ReplaceSets(r.Context(), exercise.ID, req.Sets)
	if err != nil {
		log.Errorf("replace sets of exercise %d: %s", exercise.ID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	replacedJson, err := json.Marshal(replaced)
	if err != nil {
		log.Errorf("replace sets, marshal response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, replacedJson)
}

func (handler *Handler) ownedWorkout(w http.ResponseWriter, r *http.Request, userID int) (workout *Workout, done bool) {
	idParam := mux.Vars(r)["id"]
	id, err := strconv.Atoi(idParam)
	if err != nil {
		http.Error(w, "invalid workout id", http.StatusBadRequest)
		return nil, true
	}

	workout, err = handler.repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			http.Error(w, "workout not found", http.StatusNotFound)
			return nil, true
		}
		log.Errorf("get workout %d: %s", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return nil, true
	}

	if workout.UserID != userID {
		http.Error(w, "not yours", http.StatusForbidden)
		return nil, true
	}

	return workout, false
}

// ownedExercise resolves the {id} path variable to a workout exercise and
// verifies the owning workout belongs to the caller.
func (handler *Handler) ownedExercise(w http.ResponseWriter, r *http.Request, userID int) (exercise *Exercise, done bool) {
	idParam := mux.Vars(r)["id"]
	id, err := strconv.Atoi(idParam)
	if err != nil {
		http.Error(w, "invalid exercise id", http.StatusBadRequest)
		return nil, true
	}

	exercise, err = handler.repo.GetExercise(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrExerciseNotFound) {
			http.Error(w, "workout exercise not found", http.StatusNotFound)
			return nil, true
		}
		log.Errorf("get exercise %d: %s", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return nil, true
	}

	workout, err := handler.repo.Get(r.Context(), exercise.WorkoutID)
	if err != nil {
		log.Errorf("get workout %d of exercise %d: %s", exercise.WorkoutID, id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return nil, true
	}

	if workout.UserID != userID {
		http.Error(w, "not yours", http.StatusForbidden)
		return nil, true
	}

	return exercise, false
}
