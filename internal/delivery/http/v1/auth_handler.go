package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-interview-backend/internal/delivery/http/response"
	"go-interview-backend/internal/domain"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

func NewAuthHandler(protected *gin.RouterGroup, authUC domain.AuthUsecase) {
	handler := &AuthHandler{authUC: authUC}

	auth := protected.Group("/auth")
	{
		auth.POST("/sync", handler.Sync)
		auth.GET("/me", handler.Me)
	}
}

// Sync godoc
// @Summary      Sync session identity to local database
// @Description  Idempotently creates the local user row for the authenticated identity. Called once after sign-in.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.User}
// @Failure      401  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /auth/sync [post]
// @Security     BearerAuth
func (h *AuthHandler) Sync(c *gin.Context) {
	identity := &domain.User{
		ClerkID: c.GetString(string(domain.KeyUserID)),
		Email:   c.GetString(string(domain.KeyUserEmail)),
		Name:    c.GetString(string(domain.KeyUserName)),
	}

	user, err := h.authUC.SyncUser(c.Request.Context(), identity)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User synced", user)
}

// Me godoc
// @Summary      Get current user
// @Description  Returns the local user row for the authenticated identity.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.User}
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authUC.GetCurrentUser(c.Request.Context(), c.GetString(string(domain.KeyUserID)))
	if err != nil {
		c.Error(err)
		return
	}
	if user == nil {
		response.Error(c, http.StatusNotFound, "User not found", nil)
		return
	}

	response.Success(c, http.StatusOK, "Current user", user)
}
