package middleware

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bensiiint/e-commerceProjecty/internal/config"
	"github.com/bensiiint/e-commerceProjecty/internal/database"
	"github.com/bensiiint/e-commerceProjecty/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func setupAuditDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Init(config.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "audit_test.db"),
	})
	if err != nil {
		t.Fatalf("Init test database failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.AuditLog{}); err != nil {
		t.Fatalf("AutoMigrate failed: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// auditEngine wires a fake logged-in user in front of AuditMiddleware so the
// middleware sees the same context the auth layer would set.
func auditEngine(db *gorm.DB, user *models.User, path string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("currentUser", user) })
	r.Use(AuditMiddleware(db))
	r.POST(path, func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("request failed with status %d", w.Code)
	}
}

func lastAuditRow(t *testing.T, db *gorm.DB) models.AuditLog {
	t.Helper()
	var row models.AuditLog
	if err := db.Order("id DESC").First(&row).Error; err != nil {
		t.Fatalf("read audit row failed: %v", err)
	}
	return row
}

func TestAuditMiddleware_PasswordChangeBodyNotRecorded(t *testing.T) {
	db := setupAuditDB(t)
	user := &models.User{Username: "alice", PasswordHash: "x", Role: models.RoleUser}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	r := auditEngine(db, user, "/api/profile/password")
	postJSON(t, r, "/api/profile/password",
		`{"oldPassword":"Hunter2aa","newPassword":"Sup3rSecret"}`)

	row := lastAuditRow(t, db)
	if row.Action != "POST /api/profile/password" {
		t.Fatalf("expected bare action without body, got %q", row.Action)
	}
	for _, secret := range []string{"Hunter2aa", "Sup3rSecret"} {
		if strings.Contains(row.Action, secret) {
			t.Fatalf("audit row leaked %q: %q", secret, row.Action)
		}
	}
}

func TestAuditMiddleware_PasswordFieldsRedacted(t *testing.T) {
	db := setupAuditDB(t)
	user := &models.User{Username: "bob", PasswordHash: "x", Role: models.RoleUser}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	r := auditEngine(db, user, "/api/profile")
	postJSON(t, r, "/api/profile",
		`{"displayName":"Bob","password":"ShouldNotAppear1"}`)

	row := lastAuditRow(t, db)
	if strings.Contains(row.Action, "ShouldNotAppear1") {
		t.Fatalf("audit row leaked password field: %q", row.Action)
	}
	if !strings.Contains(row.Action, `"[redacted]"`) {
		t.Fatalf("expected redaction marker in action, got %q", row.Action)
	}
	if !strings.Contains(row.Action, "Bob") {
		t.Fatalf("non-secret field should survive redaction, got %q", row.Action)
	}
}

func TestAuditMiddleware_PlainBodyRecorded(t *testing.T) {
	db := setupAuditDB(t)
	user := &models.User{Username: "carol", PasswordHash: "x", Role: models.RoleUser}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	r := auditEngine(db, user, "/api/wallet/topup")
	postJSON(t, r, "/api/wallet/topup",
		`{"amount":25,"payment_method":"bank_transfer"}`)

	row := lastAuditRow(t, db)
	if !strings.Contains(row.Action, "bank_transfer") {
		t.Fatalf("expected body in action, got %q", row.Action)
	}
}
