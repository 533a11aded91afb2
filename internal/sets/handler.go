package sets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=sets

type setsRepo interface {
	Upsert(ctx context.Context, workoutExerciseID int, ss []Set) ([]Set, error)
	RemoveMany(ctx context.Context, userID int, ids []int) (int64, error)
	WorkoutExerciseOwner(ctx context.Context, workoutExerciseID int) (int, error)
}

type Handler struct {
	repo    setsRepo
	metrics *metrics.Manager
}

func NewHandler(repo setsRepo, metrics *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		metrics: metrics,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/sets", handler.HandleUpsert).Methods("PUT", "OPTIONS").Name("upsert-sets")
	router.HandleFunc("/sets", handler.HandleRemove).Methods("DELETE").Name("remove-sets")
}

type UpsertRequest struct {
	WorkoutExerciseID int   `json:"workoutExerciseId"`
	Sets              []Set `json:"sets"`
}

type RemoveRequest struct {
	IDs []int `json:"ids"`
}

type RemoveResponse struct {
	Removed int64 `json:"removed"`
}

func (handler *Handler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	userID, ok := pkg.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var req UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.WorkoutExerciseID <= 0 {
		http.Error(w, "workout exercise id required", http.StatusBadRequest)
		return
	}

	ownerID, err := handler.repo.WorkoutExerciseOwner(r.Context(), req.WorkoutExerciseID)
	if err != nil {
		if errors.Is(err, ErrWorkoutExerciseNotFound) {
			http.Error(w, "workout exercise not found", http.StatusNotFound)
			return
		}
		log.Errorf("upsert sets, get owner of workout exercise %d: %s", req.WorkoutExerciseID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if ownerID != userID {
		http.Error(w, "not yours", http.StatusForbidden)
		return
	}

	upserted, err := handler.repo.Upsert(r.Context(), req.WorkoutExerciseID, req.Sets)
	if err != nil {
		if errors.Is(err, ErrSetNotFound) {
			http.Error(w, "set not found", http.StatusNotFound)
			return
		}
		log.Errorf("upsert sets for workout exercise %d: %s", req.WorkoutExerciseID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterSetsUpserted.Add(float64(len(upserted)))

	upsertedJson, err := json.Marshal(upserted)
	if err != nil {
		log.Errorf("upsert sets, marshal response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, upsertedJson)
}

func (handler *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	userID, ok := pkg.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var req RemoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if len(req.IDs) == 0 {
		http.Error(w, "ids required", http.StatusBadRequest)
		return
	}

	removed, err := handler.repo.RemoveMany(r.Context(), userID, req.IDs)
	if err != nil {
		log.Errorf("remove sets %v: %s", req.IDs, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(
		w, pkg.ContentType.JSON,
		[]byte(fmt.Sprintf(`{"removed":%d}`, removed)),
	)
}
