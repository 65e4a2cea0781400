package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sanctuary/auth"
	"sanctuary/config"
	"sanctuary/models"
	"sanctuary/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	if err := db.AutoMigrate(&models.Link{}, &models.Category{}); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	prev := service.GlobalServices
	service.InitServices(db)
	t.Cleanup(func() { service.GlobalServices = prev })

	prevUser, prevPass := config.Settings.AdminUsername, config.Settings.AdminPassword
	config.Settings.AdminUsername = "admin"
	config.Settings.AdminPassword = "secret"
	t.Cleanup(func() {
		config.Settings.AdminUsername = prevUser
		config.Settings.AdminPassword = prevPass
	})

	r := gin.New()
	r.POST("/api/auth/login", Login)
	admin := r.Group("/api/admin", RequireAdmin())
	admin.POST("/links", CreateLink)
	return r, db
}

func TestRequireAdmin_RejectsWithoutMutation(t *testing.T) {
	r, db := setupTestRouter(t)

	body := `{"title":"Sneaky","url":"https://evil.example"}`
	req := httptest.NewRequest("POST", "/api/admin/links", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&models.Link{}).Count(&count)
	if count != 0 {
		t.Fatalf("unauthorized write must not touch the database, found %d rows", count)
	}
}

func TestRequireAdmin_AllowsWithCookie(t *testing.T) {
	r, db := setupTestRouter(t)

	// Log in to obtain the cookie
	login := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"username":"admin","password":"secret"}`))
	login.Header.Set("Content-Type", "application/json")
	lw := httptest.NewRecorder()
	r.ServeHTTP(lw, login)
	if lw.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", lw.Code, lw.Body.String())
	}

	var authCookie *http.Cookie
	for _, c := range lw.Result().Cookies() {
		if c.Name == auth.CookieName {
			authCookie = c
		}
	}
	if authCookie == nil {
		t.Fatalf("login did not set the auth cookie")
	}

	req := httptest.NewRequest("POST", "/api/admin/links", strings.NewReader(`{"title":"Home","url":"https://example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(authCookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with cookie, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&models.Link{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 link created, got %d", count)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	r, _ := setupTestRouter(t)

	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"username":"admin","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if len(w.Result().Cookies()) != 0 {
		t.Fatalf("failed login must not set cookies")
	}
}
