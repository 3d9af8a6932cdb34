package http

import (
	"errors"
	"net/http"

	"fieldnotes/internal/usecase"

	"github.com/gin-gonic/gin"
)

const sessionMaxAge = 30 * 24 * 3600

type AuthHandler struct {
	authUseCase usecase.AuthUseCase
	cookieName  string
}

func NewAuthHandler(authUseCase usecase.AuthUseCase, cookieName string) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		cookieName:  cookieName,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary      Log in to the admin console
// @Description  Authenticate with email and password. On success a session cookie is set.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Router       /api/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	_, token, err := h.authUseCase.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, token, sessionMaxAge, "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{"success": true, "redirectTo": "/admin"})
}

// Logout godoc
// @Summary      Log out
// @Description  Clears the session cookie.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, "", -1, "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{"success": true})
}
