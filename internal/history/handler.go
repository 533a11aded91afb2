package history

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/2beens/liftlog/internal/sets"
	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=history

type historyRepo interface {
	Add(ctx context.Context, templateID int, workoutID *int, ss []sets.Set) (*Entry, error)
	ListForUser(ctx context.Context, userID int) ([]Entry, error)
	TemplateOwner(ctx context.Context, templateID int) (int, error)
	WorkoutOwner(ctx context.Context, workoutID int) (int, error)
}

type frequencyAnalyzer interface {
	Frequency(ctx context.Context, userID int, window Window, now time.Time) (*FrequencyReport, error)
}

type Handler struct {
	repo     historyRepo
	analyzer frequencyAnalyzer
	metrics  *metrics.Manager
}

func NewHandler(repo historyRepo, analyzer frequencyAnalyzer, metrics *metrics.Manager) *Handler {
	return &Handler{
		repo:     repo,
		analyzer: analyzer,
		metrics:  metrics,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/history", handler.HandleAdd).Methods("POST", "OPTIONS").Name("add-log-entry")
	router.HandleFunc("/history", handler.HandleList).Methods("GET").Name("list-log-entries")
	router.HandleFunc("/history/frequency", handler.HandleFrequency).Methods("GET", "OPTIONS").Name("frequency")
}

type AddRequest struct {
	TemplateID int        `json:"templateId"`
	WorkoutID  *int       `json:"workoutId,omitempty"`
	Sets       []sets.Set `json:"sets"`
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	userID, ok := pkg.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var req AddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.TemplateID <= 0 {
		http.Error(w, "template id required", http.StatusBadRequest)
		return
	}

	ownerID, err := handler.repo.TemplateOwner(r.Context(), req.TemplateID)
	if err != nil {
		if errors.Is(err, ErrTemplateNotFound) {
			http.Error(w, "template not found", http.StatusNotFound)
			return
		}
		log.Errorf("add log entry, get owner of template %d: %s", req.TemplateID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if ownerID != userID {
		http.Error(w, "not yours", http.StatusForbidden)
		return
	}

	// an entry may reference a workout, which then has to be the caller's too
	if req.WorkoutID != nil {
		workoutOwnerID, err := handler.repo.WorkoutOwner(r.Context(), *req.WorkoutID)
		if err != nil {
			if errors.Is(err, ErrWorkoutNotFound) {
				http.Error(w, "workout not found", http.StatusNotFound)
				return
			}
			log.Errorf("add log entry, get owner of workout %d: %s", *req.WorkoutID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if workoutOwnerID != userID {
			http.Error(w, "not yours", http.StatusForbidden)
			return
		}
	}

	entry, err := handler.repo.Add(r.Context(), req.TemplateID, req.WorkoutID, req.Sets)
	if err != nil {
		log.Errorf("add log entry for template %d: %s", req.TemplateID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterExercisesLogged.Inc()

	entryJson, err := json.Marshal(entry)
	if err != nil {
		log.Errorf("add log entry, marshal response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, entryJson, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := pkg.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	entries, err := handler.repo.ListForUser(r.Context(), userID)
	if err != nil {
		log.Errorf("list log entries for user %d: %s", userID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	entriesJson, err := json.Marshal(entries)
	if err != nil {
		log.Errorf("list log entries, marshal response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, entriesJson)
}

func (handler *Handler) HandleFrequency(w http.ResponseWriter, r *http.Request) {
	userID, ok := pkg.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	windowParam := r.URL.Query().Get("window")
	if windowParam == "" {
		windowParam = string(WindowWeek)
	}
	window, err := ParseWindow(windowParam)
	if err != nil {
		http.Error(w, "invalid window", http.StatusBadRequest)
		return
	}

	report, err := handler.analyzer.Frequency(r.Context(), userID, window, time.Now())
	if err != nil {
		log.Errorf("frequency report for user %d: %s", userID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	reportJson, err := json.Marshal(report)
	if err != nil {
		log.Errorf("frequency report, marshal response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, reportJson)
}
