package handlers

import (
	"github.com/alwadigroup/alwadi-backend/internal/config"
	"github.com/alwadigroup/alwadi-backend/internal/middleware"
	"github.com/alwadigroup/alwadi-backend/internal/services"
	"github.com/alwadigroup/alwadi-backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthHandler struct {
	authService *services.AuthService
	adminConfig *config.AdminConfig
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: services.NewAuthService(db, &cfg.JWT),
		adminConfig: &cfg.Admin,
	}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid login data")
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		response.Unauthorized(c, "Invalid username or password")
		return
	}

	response.JSON(c, resp)
}

// GetCurrentUser handles GET /api/auth/me.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	user, err := h.authService.GetUserByID(middleware.GetUserID(c))
	if err != nil {
		response.NotFound(c, "User not found")
		return
	}

	response.JSON(c, user)
}

// CreateAdminIfNotExists seeds the default back-office account.
func (h *AuthHandler) CreateAdminIfNotExists() error {
	return h.authService.CreateAdminIfNotExists(h.adminConfig)
}
