// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/vinyl-store/internal/config"
	"github.com/your-org/vinyl-store/internal/domain/user"
	"github.com/your-org/vinyl-store/internal/interfaces/http/middleware"
	"github.com/your-org/vinyl-store/internal/pkg/auth"
	"gorm.io/gorm"
)

// AuthHandler bridges credential auth onto the cookie session contract
type AuthHandler struct {
	userService *user.Service
	jwtManager  *auth.JWTManager
	config      *config.Config
	logger      *logrus.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(db *gorm.DB, cfg *config.Config, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		userService: user.NewService(db, cfg),
		jwtManager:  auth.NewJWTManager(cfg),
		config:      cfg,
		logger:      logger,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Email, password, name and lastname are required",
		})
		return
	}

	newUser, err := h.userService.Register(&req)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		h.logger.WithError(err).Error("Registration failed")
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Account created",
		"user": gin.H{
			"id":    newUser.ID,
			"email": newUser.Email,
		},
	})
}

// Login handles POST /auth/login. A successful login sets the session
// cookie pair and echoes the session material in the body.
func (h *AuthHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Email and password are required",
		})
		return
	}

	result, err := h.userService.Login(&req)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		h.logger.WithError(err).Error("Login failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not log in"})
		return
	}

	h.setSessionCookies(c, result.AccessToken, result.RefreshToken)

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged in",
		"session": gin.H{
			"access_token":  result.AccessToken,
			"refresh_token": result.RefreshToken,
			"expires_at":    result.ExpiresAt.Unix(),
			"expires_in":    result.ExpiresIn,
			"token_type":    "bearer",
		},
		"user": gin.H{
			"id":    result.User.ID,
			"email": result.User.Email,
		},
	})
}

// Logout handles POST /auth/logout. Both cookies are cleared whether or
// not a session existed.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.clearSessionCookies(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Session handles GET /auth/session. It resolves the cookie pair into
// the current user without failing: an incomplete pair means an
// anonymous visitor, not an error. An expired access token with a live
// refresh token rotates the pair in place.
func (h *AuthHandler) Session(c *gin.Context) {
	accessToken, _ := c.Cookie(middleware.AccessTokenCookie)
	refreshToken, _ := c.Cookie(middleware.RefreshTokenCookie)

	// Both cookies or nothing: a lone survivor is cleared.
	if accessToken == "" || refreshToken == "" {
		if accessToken != "" || refreshToken != "" {
			h.clearSessionCookies(c)
		}
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}

	claims, err := h.jwtManager.ValidateAccessToken(accessToken)
	if err == nil {
		profile, err := h.userService.GetProfile(claims.UserID)
		if err != nil {
			h.clearSessionCookies(c)
			c.JSON(http.StatusOK, gin.H{"user": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"user": gin.H{
				"id":    profile.ID,
				"email": profile.Email,
				"name":  profile.Name,
			},
		})
		return
	}
	if !auth.IsExpired(err) {
		h.clearSessionCookies(c)
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}

	result, err := h.userService.RefreshSession(refreshToken)
	if err != nil {
		h.clearSessionCookies(c)
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}

	h.setSessionCookies(c, result.AccessToken, result.RefreshToken)

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    result.User.ID,
			"email": result.User.Email,
			"name":  result.User.Name,
		},
	})
}

func (h *AuthHandler) setSessionCookies(c *gin.Context, accessToken, refreshToken string) {
	maxAge := int(h.config.Session.CookieMaxAge.Seconds())
	secure := h.config.IsProduction()

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, accessToken, maxAge, "/", h.config.Session.CookieDomain, secure, true)
	c.SetCookie(middleware.RefreshTokenCookie, refreshToken, maxAge, "/", h.config.Session.CookieDomain, secure, true)
}

func (h *AuthHandler) clearSessionCookies(c *gin.Context) {
	secure := h.config.IsProduction()

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", h.config.Session.CookieDomain, secure, true)
	c.SetCookie(middleware.RefreshTokenCookie, "", -1, "/", h.config.Session.CookieDomain, secure, true)
}
