// Package handlers provides HTTP request handlers.
package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"valora/internal/core/apperror"
	"valora/internal/domain/auth"
	"valora/internal/infrastructure/http/v1/dto"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	*BaseHandler
	service      *auth.Service
	secureCookie bool
}

// NewAuthHandler creates a new auth handler. secureCookie should be true
// everywhere except local development over plain HTTP.
func NewAuthHandler(base *BaseHandler, service *auth.Service, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		BaseHandler:  base,
		service:      service,
		secureCookie: secureCookie,
	}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	session, err := h.service.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		h.Error(c, err)
		return
	}

	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.SessionCookie, session.Token, maxAge, "/", "", h.secureCookie, true)

	redirect := req.Redirect
	if redirect == "" {
		redirect = c.Query("redirect")
	}

	h.OK(c, dto.FromSession(session, sanitizeRedirect(redirect)))
}

// Logout handles POST /auth/logout
// Clearing the cookie is the whole operation; repeating it is harmless.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.SessionCookie, "", -1, "/", "", h.secureCookie, true)
	c.Status(http.StatusNoContent)
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user := h.User(c)
	if user == nil {
		h.Error(c, apperror.NewUnauthorized("not authenticated"))
		return
	}

	h.OK(c, dto.UserResponse{
		ID:       user.UserID,
		Username: user.Username,
	})
}

// RegisterRoutes registers auth routes.
func (h *AuthHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.POST("/login", h.Login)
	public.POST("/logout", h.Logout)

	protected.GET("/me", h.Me)
}

// defaultRedirect is the landing location after login when the caller did
// not ask for one.
const defaultRedirect = "/api/v1/reports/purchases"

// sanitizeRedirect keeps post-login redirects on this origin. Anything that
// is not a simple local path collapses to the default landing report.
func sanitizeRedirect(target string) string {
	if target == "" {
		return defaultRedirect
	}
	if !strings.HasPrefix(target, "/") ||
		strings.HasPrefix(target, "//") ||
		strings.ContainsAny(target, "\\\r\n") {
		return defaultRedirect
	}
	return target
}
