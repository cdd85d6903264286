package services

import (
	"errors"
	"testing"

	"github.com/alwadigroup/alwadi-backend/internal/config"
	"github.com/alwadigroup/alwadi-backend/internal/models"
	"github.com/alwadigroup/alwadi-backend/internal/utils"
)

func newAuthTestService(t *testing.T) *AuthService {
	t.Helper()
	utils.SetJWTSecret("test-secret-key")
	return NewAuthService(setupTestDB(t), &config.JWTConfig{ExpireHour: 24})
}

func TestCreateAdminIfNotExists(t *testing.T) {
	svc := newAuthTestService(t)
	adminCfg := &config.AdminConfig{Username: "admin", Password: "changeme"}

	if err := svc.CreateAdminIfNotExists(adminCfg); err != nil {
		t.Fatalf("CreateAdminIfNotExists() error = %v", err)
	}

	var user models.User
	if err := svc.db.Where("username = ?", "admin").First(&user).Error; err != nil {
		t.Fatalf("admin user not created: %v", err)
	}
	if user.Role != "admin" || !user.IsActive {
		t.Errorf("seeded admin = role %s active %v, expected active admin", user.Role, user.IsActive)
	}
	if user.Password == "changeme" {
		t.Error("password stored in plaintext")
	}

	// Second boot with a different password must not overwrite
	if err := svc.CreateAdminIfNotExists(&config.AdminConfig{Username: "admin", Password: "rotated"}); err != nil {
		t.Fatalf("CreateAdminIfNotExists() second call error = %v", err)
	}
	var again models.User
	svc.db.Where("username = ?", "admin").First(&again)
	if again.Password != user.Password {
		t.Error("existing admin password was overwritten")
	}
}

func TestLogin(t *testing.T) {
	svc := newAuthTestService(t)
	if err := svc.CreateAdminIfNotExists(&config.AdminConfig{Username: "admin", Password: "changeme"}); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	resp, err := svc.Login(&LoginRequest{Username: "admin", Password: "changeme"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if resp.Token == "" {
		t.Error("empty token on successful login")
	}
	if resp.User == nil || resp.User.Username != "admin" {
		t.Errorf("unexpected user in response: %+v", resp.User)
	}

	claims, err := utils.ParseToken(resp.Token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.Username != "admin" || claims.Role != "admin" {
		t.Errorf("claims = %s/%s, expected admin/admin", claims.Username, claims.Role)
	}

	var stored models.User
	svc.db.Where("username = ?", "admin").First(&stored)
	if stored.LastLogin == nil {
		t.Error("last_login not stamped on successful login")
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := newAuthTestService(t)
	if err := svc.CreateAdminIfNotExists(&config.AdminConfig{Username: "admin", Password: "changeme"}); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "admin", "nope"},
		{"unknown user", "ghost", "changeme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(&LoginRequest{Username: tt.username, Password: tt.password})
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("error = %v, expected ErrInvalidCredentials", err)
			}
		})
	}
}

func TestLogin_InactiveUser(t *testing.T) {
	svc := newAuthTestService(t)

	hash, err := utils.HashPassword("changeme")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{Username: "retired", Password: hash, Role: "admin"}
	if err := svc.db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	// The default:true tag makes Create drop a false IsActive; deactivate
	// with an explicit update.
	if err := svc.db.Model(&user).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate user: %v", err)
	}

	_, err = svc.Login(&LoginRequest{Username: "retired", Password: "changeme"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("error = %v, expected ErrInvalidCredentials for inactive user", err)
	}
}
