package services

import (
	"errors"
	"time"

	"github.com/alwadigroup/alwadi-backend/internal/config"
	"github.com/alwadigroup/alwadi-backend/internal/models"
	"github.com/alwadigroup/alwadi-backend/internal/utils"
	"github.com/alwadigroup/alwadi-backend/pkg/logger"
	"gorm.io/gorm"
)

// AuthService authenticates back-office users for the inquiry desk.
type AuthService struct {
	db        *gorm.DB
	jwtConfig *config.JWTConfig
}

func NewAuthService(db *gorm.DB, jwtCfg *config.JWTConfig) *AuthService {
	return &AuthService{db: db, jwtConfig: jwtCfg}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token    string       `json:"token"`
	User     *models.User `json:"user"`
	ExpireAt time.Time    `json:"expire_at"`
}

var ErrInvalidCredentials = errors.New("invalid username or password")

// Login authenticates a user and returns a JWT token.
func (s *AuthService) Login(req *LoginRequest) (*LoginResponse, error) {
	var user models.User
	if err := s.db.Where("username = ? AND is_active = ?", req.Username, true).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID, user.Username, user.Role, s.jwtConfig.ExpireHour)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user.LastLogin = &now
	s.db.Model(&user).Update("last_login", &now)

	return &LoginResponse{
		Token:    token,
		User:     &user,
		ExpireAt: now.Add(time.Duration(s.jwtConfig.ExpireHour) * time.Hour),
	}, nil
}

// GetUserByID loads a user by primary key.
func (s *AuthService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateAdminIfNotExists seeds the configured admin account on first
// boot; later boots leave the stored account (and any changed
// password) alone.
func (s *AuthService) CreateAdminIfNotExists(adminCfg *config.AdminConfig) error {
	var count int64
	if err := s.db.Model(&models.User{}).
		Where("username = ?", adminCfg.Username).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := utils.HashPassword(adminCfg.Password)
	if err != nil {
		return err
	}

	admin := models.User{
		Username: adminCfg.Username,
		Password: hash,
		Role:     "admin",
		IsActive: true,
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return err
	}

	logger.Info().Str("username", admin.Username).Msg("seeded default admin user")
	return nil
}
