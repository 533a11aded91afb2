package templates

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/2beens/liftlog/internal/history"
	"github.com/2beens/liftlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=templates

type templatesRepo interface {
	Create(ctx context.Context, t Template) (*Template, error)
	Get(ctx context.Context, id int) (*Template, error)
	GetAll(ctx context.Context, userID int) ([]Template, error)
	Delete(ctx context.Context, id int) (int, error)
}

type logEntriesProvider interface {
	ListForTemplate(ctx context.Context, templateID int) ([]history.Entry, error)
	ListForUser(ctx context.Context, userID int) ([]history.Entry, error)
}

type Handler struct {
	repo       templatesRepo
	logEntries logEntriesProvider
}

func NewHandler(repo templatesRepo, logEntries logEntriesProvider) *Handler {
	return &Handler{
		repo:       repo,
		logEntries: logEntries,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/templates", handler.HandleGetAll).Methods("GET", "OPTIONS").Name("get-templates")
	router.HandleFunc("/templates", handler.HandleCreate).Methods("POST").Name("create-template")
	router.HandleFunc("/templates/history", handler.HandleAllHistory).Methods("GET", "OPTIONS").Name("templates-history")
	router.HandleFunc("/templates/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-template")
	router.HandleFunc("/templates/{id}/history", handler.HandleHistory).Methods("GET", "OPTIONS").Name("template-history")
}

type CreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (handler *Handler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := pkg.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	templates, err := handler.repo.GetAll(r.Context(), userID)
	if err != nil {
		log.Errorf("get templates for user %d: %s", userID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	templatesJson, err := json.Marshal(templates)
	if err != nil {
		log.Errorf("get templates, marshal response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, templatesJson)
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

	created, err := handler.repo.Create(r.Context(), Template{
		Name:        req.Name,
		Description: req.Description,
		UserID:      userID,
	})
	if err != nil {
		log.Errorf("create template for user %d: %s", userID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	createdJson, err := json.Marshal(created)
	if err != nil {
		log.Errorf("create template, marshal response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, createdJson, http.StatusCreated)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := pkg.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	template, done := handler.ownedTemplate(w, r, userID)
	if done {
		return
	}

	if _, err := handler.repo.Delete(r.Context(), template.ID); err != nil {
		if errors.Is(err, ErrTemplateNotFound) {
			http.Error(w, "template not found", http.StatusNotFound)
			return
		}
		log.Errorf("delete template %d: %s", template.ID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, "deleted")
}

func (handler *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := pkg.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	template, done := handler.ownedTemplate(w, r, userID)
	if done {
		return
	}

	entries, err := handler.logEntries.ListForTemplate(r.Context(), template.ID)
	if err != nil {
		log.Errorf("get history of template %d: %s", template.ID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	historyJson, err := json.Marshal(TemplateHistory{
		Template: *template,
		Entries:  entries,
	})
	if err != nil {
		log.Errorf("get history of template %d, marshal response: %s", template.ID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, historyJson)
}

func (handler *Handler) HandleAllHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := pkg.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	templates, err := handler.repo.GetAll(r.Context(), userID)
	if err != nil {
		log.Errorf("get templates history for user %d: %s", userID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	entries, err := handler.logEntries.ListForUser(r.Context(), userID)
	if err != nil {
		log.Errorf("get log entries for user %d: %s", userID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	groupedJson, err := json.Marshal(GroupHistory(templates, entries))
	if err != nil {
		log.Errorf("get templates history, marshal response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, groupedJson)
}

// ownedTemplate resolves the {id} path variable to a template and verifies
// ownership. When it returns done=true a response was already written.
func (handler *Handler) ownedTemplate(w http.ResponseWriter, r *http.Request, userID int) (template *Template, done bool) {
	idParam := mux.Vars(r)["id"]
	id, err := strconv.Atoi(idParam)
	if err != nil {
		http.Error(w, "invalid template id", http.StatusBadRequest)
		return nil, true
	}

	template, err = handler.repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrTemplateNotFound) {
			http.Error(w, "template not found", http.StatusNotFound)
			return nil, true
		}
		log.Errorf("get template %d: %s", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return nil, true
	}

	if template.UserID != userID {
		http.Error(w, "not yours", http.StatusForbidden)
		return nil, true
	}

	return template, false
}
