package handler

import (
	"log/slog"
	"time"

	"github.com/banking-transfer-api/internal/api_gateway/service"
	"github.com/banking-transfer-api/internal/domain/user"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration and login
type AuthHandler struct {
	userService service.UserService
	logger      *slog.Logger
}

func NewAuthHandler(logger *slog.Logger, userService service.UserService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		logger:      logger,
	}
}

// Register creates a user, answering 409 when the email is taken
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	profile := user.Profile{
		IdentityType:   req.IdentityType,
		IdentityNumber: req.IdentityNumber,
		Address:        req.Address,
	}
	u, err := h.userService.Register(c.Request.Context(), req.Name, req.Email, req.Password, profile)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	RespondCreated(c, mapUserToResponse(u))
}

// Login exchanges credentials for a bearer token
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	token, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	RespondOK(c, TokenResponse{
		Token:     token.AccessToken,
		TokenType: "Bearer",
		ExpiresAt: token.ExpiresAt.UTC().Format(time.RFC3339),
		User:      mapUserToResponse(token.User),
	})
}
