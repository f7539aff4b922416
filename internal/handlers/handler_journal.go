package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/edujournal/journal_backend/internal/apperrors"
	"github.com/edujournal/journal_backend/internal/core/domain"
	portssvc "github.com/edujournal/journal_backend/internal/core/ports/services"
	"github.com/edujournal/journal_backend/internal/dto"
	"github.com/edujournal/journal_backend/internal/middleware"
	"github.com/edujournal/journal_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests related to journals.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
	mediaService   portssvc.MediaUploaderSvc
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(services *portssvc.ServiceContainer) *journalHandler {
	return &journalHandler{
		journalService: services.Journal,
		mediaService:   services.Media,
	}
}

// registerJournalRoutes registers all routes under /journal. Every route
// requires authentication; mutations additionally require the TEACHER role.
func registerJournalRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newJournalHandler(services)

	teacherOnly := middleware.RequireRoles(domain.RoleTeacher)

	journals := r.Group("/journal", middleware.AuthMiddleware(cfg.JWTSecret))
	{
		journals.POST("/create", teacherOnly, h.createJournal)
		journals.GET("/", h.listJournals)
		journals.GET("/:id", h.getJournal)
		journals.PUT("/:id", teacherOnly, h.updateJournal)
		journals.DELETE("/:id", teacherOnly, h.deleteJournal)
		journals.POST("/:id/publish", teacherOnly, h.publishJournal)
	}
}

// uploadIfPresent uploads the optional multipart file field "media" and
// returns its URL, or "" when no file was sent.
func (h *journalHandler) uploadIfPresent(c *gin.Context) (string, error) {
	fileHeader, err := c.FormFile("media")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", fmt.Errorf("%w: invalid media file", apperrors.ErrValidation)
	}
	return h.mediaService.UploadFile(c.Request.Context(), fileHeader)
}

// createJournal godoc
// @Summary Create a journal
// @Description Creates a journal post, optionally uploading one media file and tagging students
// @Tags journals
// @Accept  mpfd
// @Produce  json
// @Param   title formData string true "Title"
// @Param   content formData string true "Content"
// @Param   media formData file false "Media file"
// @Param   mediaType formData string false "IMAGE, VIDEO, AUDIO or PDF"
// @Param   taggedStudents formData []string false "Student IDs, repeated or as a JSON array string"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /journal/create [post]
func (h *journalHandler) createJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	authUser, ok := middleware.GetAuthUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Unauthorized", ""))
		return
	}

	var req dto.CreateJournalRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.Warn("Failed to bind create journal form", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request format", err.Error()))
		return
	}

	mediaURL, err := h.uploadIfPresent(c)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error(), ""))
			return
		}
		logger.Error("Media upload failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Failed to upload media", ""))
		return
	}
	if mediaURL != "" {
		req.Media = append(req.Media, mediaURL)
	}

	journal, err := h.journalService.CreateJournal(c.Request.Context(), authUser.UserID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error(), ""))
			return
		}
		logger.Error("Failed to create journal", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Failed to create journal", ""))
		return
	}

	logger.Info("Journal created", slog.String("journal_id", journal.JournalID))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

// listJournals godoc
// @Summary List all journals
// @Description Returns every journal regardless of caller identity
// @Tags journals
// @Produce  json
// @Success 200 {object} dto.ListJournalsResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /journal/ [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	journals, err := h.journalService.ListJournals(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list journals", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Failed to list journals", ""))
		return
	}

	c.JSON(http.StatusOK, dto.ToListJournalsResponse(journals))
}

// getJournal godoc
// @Summary Get a journal by ID
// @Tags journals
// @Produce  json
// @Param   id path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /journal/{id} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("id")

	journal, err := h.journalService.GetJournalByID(c.Request.Context(), journalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.NewErrorResponse("Journal not found", ""))
			return
		}
		logger.Error("Failed to get journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Failed to retrieve journal", ""))
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// updateJournal godoc
// @Summary Update a journal
// @Description Replaces the journal's fields; omitted optional fields are left unchanged
// @Tags journals
// @Accept  mpfd
// @Produce  json
// @Param   id path string true "Journal ID"
// @Param   title formData string true "Title"
// @Param   content formData string true "Content"
// @Success 200 {object} dto.JournalResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /journal/{id} [put]
func (h *journalHandler) updateJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("id")

	var req dto.UpdateJournalRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.Warn("Failed to bind update journal form", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request format", err.Error()))
		return
	}

	// Presence matters for the optional fields: omitted means "leave
	// unchanged", so they are read off the raw form instead of bound.
	if form, err := c.MultipartForm(); err == nil && form != nil {
		if values, present := form.Value["media"]; present {
			req.Media = &values
		}
		if values, present := form.Value["mediaType"]; present && len(values) > 0 {
			req.MediaType = &values[0]
		}
		if values, present := form.Value["taggedStudents"]; present {
			req.TaggedStudentIDs = &values
		}
	}

	mediaURL, err := h.uploadIfPresent(c)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error(), ""))
			return
		}
		logger.Error("Media upload failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Failed to upload media", ""))
		return
	}
	if mediaURL != "" {
		if req.Media == nil {
			req.Media = &[]string{mediaURL}
		} else {
			appended := append(*req.Media, mediaURL)
			req.Media = &appended
		}
	}

	journal, err := h.journalService.UpdateJournal(c.Request.Context(), journalID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, dto.NewErrorResponse("Journal not found", ""))
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error(), ""))
		default:
			logger.Error("Failed to update journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
			c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Failed to update journal", ""))
		}
		return
	}

	logger.Info("Journal updated", slog.String("journal_id", journalID))
	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// deleteJournal godoc
// @Summary Delete a journal
// @Description Removes the journal; tag associations cascade
// @Tags journals
// @Produce  json
// @Param   id path string true "Journal ID"
// @Success 200 {object} dto.ConfirmationResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /journal/{id} [delete]
func (h *journalHandler) deleteJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("id")

	if err := h.journalService.DeleteJournal(c.Request.Context(), journalID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.NewErrorResponse("Journal not found", ""))
			return
		}
		logger.Error("Failed to delete journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Failed to delete journal", ""))
		return
	}

	logger.Info("Journal deleted", slog.String("journal_id", journalID))
	c.JSON(http.StatusOK, dto.ConfirmationResponse{Success: true, Message: "Journal deleted"})
}

// publishJournal godoc
// @Summary Publish a journal
// @Description Sets publish_at to the supplied strict ISO-8601 timestamp, or to now when omitted
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   id path string true "Journal ID"
// @Param   body body dto.PublishRequest false "Publish time"
// @Success 200 {object} dto.JournalResponse
// @Failure 400 {object} dto.ErrorResponse "Malformed timestamp"
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /journal/{id}/publish [post]
func (h *journalHandler) publishJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("id")

	var req dto.PublishRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request format", err.Error()))
			return
		}
	}

	journal, err := h.journalService.PublishJournal(c.Request.Context(), journalID, req.PublishAt)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, dto.NewErrorResponse("Journal not found", ""))
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error(), ""))
		default:
			logger.Error("Failed to publish journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
			c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Failed to publish journal", ""))
		}
		return
	}

	logger.Info("Journal published", slog.String("journal_id", journalID))
	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}
