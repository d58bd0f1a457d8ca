package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/groupsix/gymbook/internal/auth"
)

// AdminVerifier checks a credential pair against the admin table.
type AdminVerifier interface {
	Verify(ctx context.Context, username, password string) (bool, error)
}

type AuthHandler struct {
	verifier AdminVerifier
	sessions *auth.Manager
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func NewAuthHandler(verifier AdminVerifier, sessions *auth.Manager) *AuthHandler {
	return &AuthHandler{verifier: verifier, sessions: sessions}
}

func (h *AuthHandler) Register(router *gin.RouterGroup) {
	router.POST("/login", h.login)
	router.POST("/logout", h.logout)
}

// RequireAdmin rejects requests without a valid admin session cookie.
func (h *AuthHandler) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := h.sessions.Username(c.Request); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin login required"})
			return
		}
		c.Next()
	}
}

func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ok, err := h.verifier.Verify(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	if err := h.sessions.LogIn(c.Writer, c.Request, req.Username); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged in", "username": req.Username})
}

func (h *AuthHandler) logout(c *gin.Context) {
	if err := h.sessions.LogOut(c.Writer, c.Request); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}
