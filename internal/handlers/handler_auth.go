package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skywalker/milestone_backend/internal/apperrors"
	portssvc "github.com/skywalker/milestone_backend/internal/core/ports/services"
	"github.com/skywalker/milestone_backend/internal/dto"
	"github.com/skywalker/milestone_backend/internal/middleware"
)

// AuthHandler handles local (email+password) authentication requests.
type AuthHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade) *AuthHandler {
	return &AuthHandler{
		userService:  us,
		tokenService: ts,
	}
}

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError answers with the status and message carried by an AppError.
// Anything else is logged and reported as an opaque 500.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		logger.Warn(fallback, slog.String("error", appErr.Error()))
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
		return
	}
	logger.Error(fallback, slog.String("error", err.Error()))
	internal := apperrors.NewInternalServerError(fallback)
	c.JSON(internal.Code, ErrorResponse{Error: internal.Message})
}

// registerAuthRoutes sets up the routes for authentication. /signup and
// /login are public; /me requires a verified bearer token.
func registerAuthRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(services.User, services.Token)

	auth := r.Group("/api/auth")
	{
		auth.POST("/signup", h.Signup)
		auth.POST("/login", h.Login)
		auth.GET("/me", middleware.AuthMiddleware(services.Token), h.GetCurrentUser)
	}
}

// Signup godoc
// @Summary Register a new user
// @Description Creates a local account with an email and password.
// @Tags auth
// @Accept json
// @Produce json
// @Param signup body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 500 {object} ErrorResponse
// @Router /api/auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	user, err := h.userService.RegisterUser(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Email already registered"})
			return
		}
		respondError(c, logger, err, "Failed to register user")
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		Success: true,
		Message: "User registered successfully",
		User:    dto.ToUserResponse(user),
	})
}

// Login godoc
// @Summary User login
// @Description Authenticates a user and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			// Never reveal whether the email or the password was wrong.
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
			return
		}
		respondError(c, logger, err, "Failed to authenticate")
		return
	}

	token, _, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		respondError(c, logger, err, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Success: true,
		Message: "Login successful",
		Token:   token,
		User:    dto.ToUserResponse(user),
	})
}

// GetCurrentUser godoc
// @Summary Get the authenticated user
// @Description Returns the profile of the user identified by the bearer token.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/auth/me [get]
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
			return
		}
		respondError(c, logger, err, "Failed to load user")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
