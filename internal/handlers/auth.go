package handlers

import (
	"errors"
	"net/http"

	"github.com/buildseason/roadmap-api/internal/constants"
	"github.com/buildseason/roadmap-api/internal/dto"
	apierrors "github.com/buildseason/roadmap-api/internal/errors"
	"github.com/buildseason/roadmap-api/internal/identity"
	"github.com/buildseason/roadmap-api/internal/middleware"
	"github.com/buildseason/roadmap-api/internal/services"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// AuthHandler coordinates login, logout and session introspection.
type AuthHandler struct {
	verifier    identity.Verifier
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(verifier identity.Verifier, authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		verifier:    verifier,
		authService: authService,
	}
}

// Login verifies a provider-issued ID token, syncs the user record and
// initializes the session. First-time logins get a student record with no
// team; returning users come back unchanged.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		IDToken string `json:"id_token" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	ident, err := h.verifier.Verify(req.IDToken)
	if err != nil {
		apierrors.Unauthorized(c, "Sign-in rejected")
		return
	}

	user, err := h.authService.SyncOnLogin(ident)
	if err != nil {
		apierrors.ServiceUnavailable(c, "Failed to sync user")
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	h.authService.Publish(services.SessionEvent{
		Type:   services.SessionLogin,
		UserID: user.ID,
		Email:  user.Email,
	})

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	h.authService.Publish(services.SessionEvent{
		Type:   services.SessionLogout,
		UserID: userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.ServiceUnavailable(c, "Failed to load user")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}
