package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/edujournal/journal_backend/internal/apperrors"
	"github.com/edujournal/journal_backend/internal/core/domain"
	portssvc "github.com/edujournal/journal_backend/internal/core/ports/services"
	"github.com/edujournal/journal_backend/internal/dto"
	"github.com/edujournal/journal_backend/internal/middleware"
	"github.com/edujournal/journal_backend/internal/platform/config"
	"github.com/edujournal/journal_backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// userHandler handles registration, login and the role-routed feeds.
type userHandler struct {
	userService    portssvc.UserSvcFacade
	journalService portssvc.JournalSvcFacade
	googleAuth     portssvc.GoogleAuthSvcFacade
	cfg            *config.Config
}

// newUserHandler creates a new userHandler.
func newUserHandler(cfg *config.Config, services *portssvc.ServiceContainer) *userHandler {
	return &userHandler{
		userService:    services.User,
		journalService: services.Journal,
		googleAuth:     services.GoogleAuth,
		cfg:            cfg,
	}
}

// registerUserRoutes registers all routes under /user.
func registerUserRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newUserHandler(cfg, services)

	// Credential endpoints share an IP rate limit: 5 requests per minute.
	rate, _ := limiter.NewRateFromFormatted("5-M")
	ipLimiter := limiter.New(memory.NewStore(), rate)
	limitMiddleware := middleware.RateLimit(ipLimiter)

	auth := middleware.AuthMiddleware(cfg.JWTSecret)

	users := r.Group("/user")
	{
		users.POST("/register", limitMiddleware, h.register)
		users.POST("/login", limitMiddleware, h.login)
		users.POST("/google", limitMiddleware, h.googleLogin)
		users.GET("/feed", auth, h.feed)
		users.GET("/teacher", auth, middleware.RequireRoles(domain.RoleTeacher), h.teacherFeed)
		users.GET("/student", auth, middleware.RequireRoles(domain.RoleStudent), h.studentFeed)
	}
}

// register godoc
// @Summary Register a new user
// @Description Creates a user account; role defaults to STUDENT
// @Tags users
// @Accept  json
// @Produce  json
// @Param   user body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Router /user/register [post]
func (h *userHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for register", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request format", err.Error()))
		return
	}

	user, err := h.userService.RegisterUser(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			logger.Warn("Duplicate registration attempt", slog.String("email", req.Email))
			c.JSON(http.StatusConflict, dto.NewErrorResponse("A user with this email already exists", ""))
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error(), ""))
		default:
			logger.Error("Failed to register user", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Failed to register user", ""))
		}
		return
	}

	logger.Info("User registered", slog.String("new_user_id", user.UserID), slog.String("role", string(user.Role)))
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// login godoc
// @Summary User login
// @Description Authenticates a user and returns a JWT token
// @Tags users
// @Accept  json
// @Produce  json
// @Param   login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse "Invalid email or password"
// @Router /user/login [post]
func (h *userHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request format", err.Error()))
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// Missing user and bad password are indistinguishable to the client.
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrUnauthorized) {
			logger.Warn("Failed login attempt", slog.String("email", req.Email))
			c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Invalid email or password", ""))
			return
		}
		logger.Error("Login failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Failed to log in", ""))
		return
	}

	h.respondWithToken(c, user)
}

// googleLogin godoc
// @Summary Sign in with Google
// @Description Exchanges a Google authorization code for a local session token
// @Tags users
// @Accept  json
// @Produce  json
// @Param   code body dto.GoogleLoginRequest true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /user/google [post]
func (h *userHandler) googleLogin(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request format", err.Error()))
		return
	}

	oauth2Token, err := h.googleAuth.ExchangeCodeForToken(ctx, req.Code)
	if err != nil {
		logger.Warn("Google code exchange failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid or expired authorization code", ""))
		return
	}

	idTokenString, ok := oauth2Token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		logger.Error("ID token missing from Google token response")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Failed to retrieve ID token from Google", ""))
		return
	}

	payload, err := h.googleAuth.ValidateGoogleIDToken(ctx, idTokenString)
	if err != nil {
		logger.Warn("Google ID token validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Invalid Google ID token", ""))
		return
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	if email == "" || payload.Subject == "" {
		logger.Error("Essential claims missing from Google ID token")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Essential user information missing from Google token", ""))
		return
	}

	user, err := h.userService.FindOrCreateGoogleUser(ctx, payload.Subject, email, name)
	if err != nil {
		logger.Error("Failed to resolve Google user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Failed to sign in with Google", ""))
		return
	}

	h.respondWithToken(c, user)
}

func (h *userHandler) respondWithToken(c *gin.Context, user *domain.User) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	token, err := utils.GenerateJWT(user, h.cfg.JWTSecret, h.cfg.JWTExpiryDuration, h.cfg.JWTIssuer)
	if err != nil {
		logger.Error("Failed to sign JWT token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Failed to generate token", ""))
		return
	}

	logger.Info("User logged in", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, dto.LoginResponse{
		User:  dto.ToUserResponse(user),
		Token: token,
	})
}

// feed godoc
// @Summary Personalized feed
// @Description Returns the authored feed for teachers or the tagged-and-published feed for students; the role is re-verified against the store
// @Tags users
// @Produce  json
// @Success 200 {object} dto.ListJournalsResponse
// @Failure 400 {object} dto.ErrorResponse "Role has no feed"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "User no longer exists"
// @Security BearerAuth
// @Router /user/feed [get]
func (h *userHandler) feed(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	authUser, ok := middleware.GetAuthUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Unauthorized", ""))
		return
	}

	journals, err := h.journalService.FeedForUser(c.Request.Context(), authUser.UserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, dto.NewErrorResponse("User not found", ""))
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error(), ""))
		default:
			logger.Error("Failed to build feed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Failed to retrieve feed", ""))
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListJournalsResponse(journals))
}

// teacherFeed godoc
// @Summary Teacher feed (legacy)
// @Description Journals authored by the authenticated teacher
// @Tags users
// @Produce  json
// @Success 200 {object} dto.ListJournalsResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /user/teacher [get]
func (h *userHandler) teacherFeed(c *gin.Context) {
	h.roleFeed(c, domain.RoleTeacher, h.journalService.TeacherFeed)
}

// studentFeed godoc
// @Summary Student feed (legacy)
// @Description Published journals the authenticated student is tagged on
// @Tags users
// @Produce  json
// @Success 200 {object} dto.ListJournalsResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /user/student [get]
func (h *userHandler) studentFeed(c *gin.Context) {
	h.roleFeed(c, domain.RoleStudent, h.journalService.StudentFeed)
}

// roleFeed backs the legacy single-role feed endpoints. The role guard has
// already checked the token claim; the store is still consulted so a role
// change takes effect without waiting for the token to expire.
func (h *userHandler) roleFeed(c *gin.Context, role domain.Role, fetch func(ctx context.Context, userID string) ([]domain.Journal, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	authUser, ok := middleware.GetAuthUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Unauthorized", ""))
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), authUser.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.NewErrorResponse("User not found", ""))
			return
		}
		logger.Error("Failed to verify role", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Failed to retrieve feed", ""))
		return
	}
	if user.Role != role {
		logger.Warn("Stored role does not match token role", slog.String("stored_role", string(user.Role)))
		c.JSON(http.StatusForbidden, dto.NewErrorResponse("Access restricted to role: "+string(role), ""))
		return
	}

	journals, err := fetch(c.Request.Context(), authUser.UserID)
	if err != nil {
		logger.Error("Failed to build feed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Failed to retrieve feed", ""))
		return
	}

	c.JSON(http.StatusOK, dto.ToListJournalsResponse(journals))
}
