package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/japanesestudent/kanji-service/internal/auth/middleware"
	"github.com/japanesestudent/kanji-service/internal/kanjiapi"
	"github.com/japanesestudent/kanji-service/internal/models"
	"github.com/japanesestudent/kanji-service/internal/services"
	"go.uber.org/zap"
)

// Response messages of the catalogue endpoints
const (
	MsgGradeNotFound    = "Grade not found"
	MsgJLPTNotFound     = "JLPT level not found"
	MsgKanjiNotFound    = "Kanji not found"
	MsgReadingNotFound  = "Reading not found"
	MsgReadingRequired  = "Reading is required"
	MsgKanjiDataFailure = "Failed to load kanji data"
)

// KanjiService is the interface that wraps methods for the kanji catalogue.
//
// An empty userID means an anonymous request: progress and learned fields are left out.
type KanjiService interface {
	// Method GradeOverview retrieve the cards of grades 1 to 6.
	//
	// For signed-in users every card carries its completion, or a load error if its list failed.
	GradeOverview(ctx context.Context, userID string) ([]models.LevelOverview, error)
	// Method JLPTOverview retrieve the cards of JLPT levels N5 to N1.
	//
	// Please reference GradeOverview method for more information.
	JLPTOverview(ctx context.Context, userID string) ([]models.LevelOverview, error)
	// Method GradeKanji retrieve the kanji list of a grade (1 to 6 or 8).
	//
	// services.ErrInvalidGrade is returned for other grades. Provider failures wrap kanjiapi.ErrUpstreamFetch.
	GradeKanji(ctx context.Context, grade int, userID string) (*models.LevelKanji, error)
	// Method JLPTKanji retrieve the kanji list of a JLPT level (1 to 5).
	//
	// services.ErrInvalidJLPTLevel is returned for other levels.
	JLPTKanji(ctx context.Context, level int, userID string) (*models.LevelKanji, error)
	// Method JoyoKanji retrieve the full Joyo kanji list.
	JoyoKanji(ctx context.Context, userID string) (*models.LevelKanji, error)
	// Method KanjiPage retrieve details and words of a kanji.
	//
	// A words failure does not fail the page; it is reported in KanjiPage.WordsError.
	KanjiPage(ctx context.Context, kanji, userID string) (*models.KanjiPage, error)
	// Method ByReading retrieve the kanji that have a reading.
	ByReading(ctx context.Context, reading string) (*models.ReadingKanji, error)
}

// KanjiHandler handles HTTP requests for the kanji catalogue
type KanjiHandler struct {
	BaseHandler
	service KanjiService
}

// NewKanjiHandler creates a new kanji catalogue handler
func NewKanjiHandler(svc KanjiService, logger *zap.Logger) *KanjiHandler {
	return &KanjiHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     svc,
	}
}

// RegisterRoutes registers all kanji catalogue routes
//
// "sessionMiddleware" should attach the user when a session is present without rejecting anonymous requests.
func (h *KanjiHandler) RegisterRoutes(r chi.Router, sessionMiddleware func(http.Handler) http.Handler) {
	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Use(sessionMiddleware)
		r.Get("/grades", h.GetGrades)
		r.Get("/grades/{grade}", h.GetGradeKanji)
		r.Get("/jlpt", h.GetJLPTLevels)
		r.Get("/jlpt/{level}", h.GetJLPTKanji)
		r.Get("/joyo", h.GetJoyoKanji)
		r.Get("/kanji/{kanji}", h.GetKanji)
		r.Get("/readings/{reading}", h.GetReading)
	})
}

// Health handles GET /health
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *KanjiHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetGrades handles GET /api/grades
// @Summary Get grade overview
// @Description Get the cards of school grades 1-6. Signed-in users also get their completion per grade.
// @Tags catalogue
// @Produce json
// @Success 200 {array} models.LevelOverview
// @Failure 500 {object} map[string]string
// @Router /api/grades [get]
func (h *KanjiHandler) GetGrades(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	overview, err := h.service.GradeOverview(r.Context(), userID)
	if err != nil {
		h.respondCatalogueError(w, err, MsgKanjiNotFound)
		return
	}

	h.RespondJSON(w, http.StatusOK, overview)
}

// GetGradeKanji handles GET /api/grades/{grade}
// @Summary Get kanji of a grade
// @Description Get the kanji taught in a school grade (1-6, or 8 for secondary school)
// @Tags catalogue
// @Produce json
// @Param grade path int true "School grade"
// @Success 200 {object} models.LevelKanji
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/grades/{grade} [get]
func (h *KanjiHandler) GetGradeKanji(w http.ResponseWriter, r *http.Request) {
	grade, err := strconv.Atoi(chi.URLParam(r, "grade"))
	if err != nil {
		h.RespondError(w, http.StatusNotFound, MsgGradeNotFound)
		return
	}
	userID, _ := middleware.GetUserID(r.Context())

	result, err := h.service.GradeKanji(r.Context(), grade, userID)
	if err != nil {
		h.respondCatalogueError(w, err, MsgGradeNotFound)
		return
	}

	h.RespondJSON(w, http.StatusOK, result)
}

// GetJLPTLevels handles GET /api/jlpt
// @Summary Get JLPT overview
// @Description Get the cards of JLPT levels N5 to N1. Signed-in users also get their completion per level.
// @Tags catalogue
// @Produce json
// @Success 200 {array} models.LevelOverview
// @Failure 500 {object} map[string]string
// @Router /api/jlpt [get]
func (h *KanjiHandler) GetJLPTLevels(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	overview, err := h.service.JLPTOverview(r.Context(), userID)
	if err != nil {
		h.respondCatalogueError(w, err, MsgJLPTNotFound)
		return
	}

	h.RespondJSON(w, http.StatusOK, overview)
}

// GetJLPTKanji handles GET /api/jlpt/{level}
// @Summary Get kanji of a JLPT level
// @Tags catalogue
// @Produce json
// @Param level path int true "JLPT level (1-5)"
// @Success 200 {object} models.LevelKanji
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/jlpt/{level} [get]
func (h *KanjiHandler) GetJLPTKanji(w http.ResponseWriter, r *http.Request) {
	level, err := strconv.Atoi(chi.URLParam(r, "level"))
	if err != nil {
		h.RespondError(w, http.StatusNotFound, MsgJLPTNotFound)
		return
	}
	userID, _ := middleware.GetUserID(r.Context())

	result, err := h.service.JLPTKanji(r.Context(), level, userID)
	if err != nil {
		h.respondCatalogueError(w, err, MsgJLPTNotFound)
		return
	}

	h.RespondJSON(w, http.StatusOK, result)
}

// GetJoyoKanji handles GET /api/joyo
// @Summary Get Joyo kanji
// @Tags catalogue
// @Produce json
// @Success 200 {object} models.LevelKanji
// @Failure 502 {object} map[string]string
// @Router /api/joyo [get]
func (h *KanjiHandler) GetJoyoKanji(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	result, err := h.service.JoyoKanji(r.Context(), userID)
	if err != nil {
		h.respondCatalogueError(w, err, MsgKanjiNotFound)
		return
	}

	h.RespondJSON(w, http.StatusOK, result)
}

// GetKanji handles GET /api/kanji/{kanji}
// @Summary Get kanji page
// @Description Get details and words of a kanji. Signed-in users also get its learned state.
// @Tags catalogue
// @Produce json
// @Param kanji path string true "Kanji character"
// @Success 200 {object} models.KanjiPage
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/kanji/{kanji} [get]
func (h *KanjiHandler) GetKanji(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	page, err := h.service.KanjiPage(r.Context(), chi.URLParam(r, "kanji"), userID)
	if err != nil {
		h.respondCatalogueError(w, err, MsgKanjiNotFound)
		return
	}

	h.RespondJSON(w, http.StatusOK, page)
}

// GetReading handles GET /api/readings/{reading}
// @Summary Get kanji by reading
// @Tags catalogue
// @Produce json
// @Param reading path string true "Kun or on reading in kana"
// @Success 200 {object} models.ReadingKanji
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/readings/{reading} [get]
func (h *KanjiHandler) GetReading(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ByReading(r.Context(), chi.URLParam(r, "reading"))
	if err != nil {
		h.respondCatalogueError(w, err, MsgReadingNotFound)
		return
	}

	h.RespondJSON(w, http.StatusOK, result)
}

// respondCatalogueError maps service and provider errors to HTTP responses
//
// "notFound" is the message used when the provider does not know the requested resource.
func (h *KanjiHandler) respondCatalogueError(w http.ResponseWriter, err error, notFound string) {
	switch {
	case errors.Is(err, services.ErrInvalidGrade):
		h.RespondError(w, http.StatusNotFound, MsgGradeNotFound)
	case errors.Is(err, services.ErrInvalidJLPTLevel):
		h.RespondError(w, http.StatusNotFound, MsgJLPTNotFound)
	case errors.Is(err, services.ErrKanjiRequired):
		h.RespondError(w, http.StatusBadRequest, MsgKanjiRequired)
	case errors.Is(err, services.ErrReadingRequired):
		h.RespondError(w, http.StatusBadRequest, MsgReadingRequired)
	case kanjiapi.IsNotFound(err):
		h.RespondError(w, http.StatusNotFound, notFound)
	case errors.Is(err, kanjiapi.ErrUpstreamFetch):
		h.RespondError(w, http.StatusBadGateway, MsgKanjiDataFailure)
	default:
		h.Logger.Error("catalogue request failed", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, MsgInternalFailure)
	}
}
