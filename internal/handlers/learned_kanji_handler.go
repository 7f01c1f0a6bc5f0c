package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/japanesestudent/kanji-service/internal/auth/middleware"
	"github.com/japanesestudent/kanji-service/internal/models"
	"github.com/japanesestudent/kanji-service/internal/services"
	"go.uber.org/zap"
)

// Response messages of the learned kanji endpoints
const (
	MsgMarked          = "Kanji marked as learned"
	MsgAlreadyMarked   = "Kanji already marked as learned"
	MsgUnmarked        = "Kanji unmarked as learned"
	MsgUnauthorized    = "Unauthorized"
	MsgKanjiRequired   = "Kanji is required"
	MsgKanjiTooLong    = "Kanji is too long"
	MsgInvalidBody     = "Invalid request body"
	MsgInternalFailure = "Internal server error"
)

// LearnedKanjiService is the interface that wraps methods for learned kanji business logic.
type LearnedKanjiService interface {
	// Method MarkLearned record a kanji as learned by the user.
	//
	// Returns true when the kanji was newly marked and false when it already was; both are successes.
	// services.ErrKanjiRequired and services.ErrKanjiTooLong are returned for invalid kanji values.
	MarkLearned(ctx context.Context, userID, kanji string) (bool, error)
	// Method UnmarkLearned remove a kanji from the user's learned set.
	//
	// Succeeds regardless of whether the kanji was learned. Validation errors are the same as for MarkLearned.
	UnmarkLearned(ctx context.Context, userID, kanji string) error
	// Method IsLearned report whether the user has learned a kanji.
	IsLearned(ctx context.Context, userID, kanji string) (bool, error)
	// Method ListLearned retrieve all kanji learned by the user together with their count.
	ListLearned(ctx context.Context, userID string) (*models.LearnedKanjiList, error)
}

// LearnedKanjiHandler handles HTTP requests for the learned kanji progress API
type LearnedKanjiHandler struct {
	BaseHandler
	service  LearnedKanjiService
	validate *validator.Validate
}

// NewLearnedKanjiHandler creates a new learned kanji handler
func NewLearnedKanjiHandler(svc LearnedKanjiService, logger *zap.Logger) *LearnedKanjiHandler {
	return &LearnedKanjiHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     svc,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes registers all learned kanji handler routes
func (h *LearnedKanjiHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/learned-kanji", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", h.MarkLearned)
		r.Delete("/", h.UnmarkLearned)
		r.Get("/", h.GetLearned)
	})
}

// MarkLearned handles POST /api/learned-kanji
// @Summary Mark kanji as learned
// @Description Add a kanji to the learned set of the current user. Marking an already learned kanji succeeds with a different message.
// @Tags learned-kanji
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.LearnedKanjiRequest true "Kanji to mark"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/learned-kanji [post]
func (h *LearnedKanjiHandler) MarkLearned(w http.ResponseWriter, r *http.Request) {
	userID, kanji, ok := h.readRequest(w, r)
	if !ok {
		return
	}

	created, err := h.service.MarkLearned(r.Context(), userID, kanji)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	if created {
		h.RespondMessage(w, MsgMarked)
		return
	}
	h.RespondMessage(w, MsgAlreadyMarked)
}

// UnmarkLearned handles DELETE /api/learned-kanji
// @Summary Unmark learned kanji
// @Description Remove a kanji from the learned set of the current user. Succeeds even if the kanji was not learned.
// @Tags learned-kanji
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.LearnedKanjiRequest true "Kanji to unmark"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/learned-kanji [delete]
func (h *LearnedKanjiHandler) UnmarkLearned(w http.ResponseWriter, r *http.Request) {
	userID, kanji, ok := h.readRequest(w, r)
	if !ok {
		return
	}

	if err := h.service.UnmarkLearned(r.Context(), userID, kanji); err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.RespondMessage(w, MsgUnmarked)
}

// GetLearned handles GET /api/learned-kanji
// @Summary Get learned kanji
// @Description Without a kanji parameter (or with an empty one) returns the full learned set with its count; with it returns whether that kanji is learned. Values that cannot be marked are reported as not learned.
// @Tags learned-kanji
// @Produce json
// @Security ApiKeyAuth
// @Param kanji query string false "Kanji to check"
// @Success 200 {object} models.LearnedKanjiList
// @Success 200 {object} models.LearnedStatus
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/learned-kanji [get]
func (h *LearnedKanjiHandler) GetLearned(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, MsgUnauthorized)
		return
	}

	if kanji := r.URL.Query().Get("kanji"); kanji != "" {
		learned, err := h.service.IsLearned(r.Context(), userID, kanji)
		// A value that could never be marked is simply not learned
		if errors.Is(err, services.ErrKanjiRequired) || errors.Is(err, services.ErrKanjiTooLong) {
			learned, err = false, nil
		}
		if err != nil {
			h.respondServiceError(w, err)
			return
		}
		h.RespondJSON(w, http.StatusOK, models.LearnedStatus{Learned: learned})
		return
	}

	list, err := h.service.ListLearned(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, list)
}

// readRequest resolves the session user and the validated kanji of a mark/unmark request
//
// On failure the error response is already written and ok is false.
func (h *LearnedKanjiHandler) readRequest(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, MsgUnauthorized)
		return "", "", false
	}

	var req models.LearnedKanjiRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		h.Logger.Warn("failed to decode request body", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, MsgInvalidBody)
		return "", "", false
	}

	if err := h.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 && validationErrs[0].Tag() == "max" {
			h.RespondError(w, http.StatusBadRequest, MsgKanjiTooLong)
			return "", "", false
		}
		h.RespondError(w, http.StatusBadRequest, MsgKanjiRequired)
		return "", "", false
	}

	return userID, req.Kanji, true
}

// respondServiceError maps service errors to HTTP responses
func (h *LearnedKanjiHandler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrKanjiRequired):
		h.RespondError(w, http.StatusBadRequest, MsgKanjiRequired)
	case errors.Is(err, services.ErrKanjiTooLong):
		h.RespondError(w, http.StatusBadRequest, MsgKanjiTooLong)
	default:
		h.Logger.Error("learned kanji request failed", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, MsgInternalFailure)
	}
}
