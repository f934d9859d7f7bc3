package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fenceplan/fenceplan/internal/config"
	"github.com/fenceplan/fenceplan/internal/middleware"
	"github.com/fenceplan/fenceplan/internal/models"
	"github.com/fenceplan/fenceplan/internal/services"
	"github.com/fenceplan/fenceplan/pkg/response"
)

type AuthHandler struct {
	authService *services.AuthService
	sessionCfg  *config.SessionConfig
}

func NewAuthHandler(db *gorm.DB, sessionCfg *config.SessionConfig) *AuthHandler {
	return &AuthHandler{
		authService: services.NewAuthService(db, sessionCfg),
		sessionCfg:  sessionCfg,
	}
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, session *models.Session) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.sessionCfg.CookieName, session.ID, h.sessionCfg.TTLHours*3600, "/", "", h.sessionCfg.Secure, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.sessionCfg.CookieName, "", -1, "/", "", h.sessionCfg.Secure, true)
}

// Register creates an account and signs the new user in.
// POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	user, session, err := h.authService.Register(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setSessionCookie(c, session)
	response.Created(c, gin.H{"user": user})
}

// Login verifies credentials and opens a session.
// POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	user, session, err := h.authService.Login(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setSessionCookie(c, session)
	response.OK(c, gin.H{"user": user})
}

// Logout deletes the server-side session and expires the cookie. It is a
// no-op for requests that carry no session.
// POST /api/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if sessionID, err := c.Cookie(h.sessionCfg.CookieName); err == nil && sessionID != "" {
		if err := h.authService.Logout(sessionID); err != nil {
			response.Error(c, err)
			return
		}
	}
	h.clearSessionCookie(c)
	response.OK(c, gin.H{"message": "Logged out"})
}

// Me returns the signed-in user, or null for anonymous requests.
// GET /api/user
func (h *AuthHandler) Me(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == nil {
		response.OK(c, gin.H{"user": nil})
		return
	}

	user, err := h.authService.GetUser(*userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"user": user})
}
