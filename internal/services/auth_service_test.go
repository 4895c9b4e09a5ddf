package services

import (
	"errors"
	"testing"

	"adhub-backend/internal/models"
	"adhub-backend/internal/testutil"
)

func seedManager(t *testing.T, svc *AuthService, email, role, status string) {
	t.Helper()

	manager := models.Manager{
		NotionID: "notion-" + email,
		Name:     "Manager " + email,
		Email:    email,
		Role:     role,
		Status:   status,
	}
	if err := svc.db.Create(&manager).Error; err != nil {
		t.Fatalf("seed manager: %v", err)
	}
}

func TestCheckWhitelist(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewAuthService(db)
	seedManager(t, svc, "ana@example.com", "staff", "active")
	seedManager(t, svc, "former@example.com", "user", "inactive")

	resp, err := svc.CheckWhitelist("ana@example.com")
	if err != nil {
		t.Fatalf("CheckWhitelist: %v", err)
	}
	if !resp.Authorized || resp.HasAccount {
		t.Errorf("resp = %+v, want authorized without account", resp)
	}

	resp, err = svc.CheckWhitelist("former@example.com")
	if err != nil {
		t.Fatalf("CheckWhitelist: %v", err)
	}
	if resp.Authorized {
		t.Error("inactive manager should not be authorized")
	}

	resp, err = svc.CheckWhitelist("nobody@example.com")
	if err != nil {
		t.Fatalf("CheckWhitelist: %v", err)
	}
	if resp.Authorized {
		t.Error("unknown email should not be authorized")
	}
}

func TestRegisterRequiresWhitelist(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewAuthService(db)
	seedManager(t, svc, "ana@example.com", "staff", "active")

	_, err := svc.Register(&models.UserRegisterRequest{
		Name: "Intruder", Email: "intruder@example.com", Password: "secret1",
	})
	if !errors.Is(err, ErrNotWhitelisted) {
		t.Errorf("err = %v, want ErrNotWhitelisted", err)
	}

	user, err := svc.Register(&models.UserRegisterRequest{
		Name: "Ana", Email: "Ana@Example.com", Password: "secret1",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "ana@example.com" {
		t.Errorf("email should be lowercased, got %q", user.Email)
	}
	if user.Role != "staff" {
		t.Errorf("role should come from the whitelist, got %q", user.Role)
	}
	if user.PasswordHash == "secret1" {
		t.Error("password must be stored hashed")
	}

	// storage rollup row comes with registration
	if _, err := svc.GetUserStorage(user.ID); err != nil {
		t.Errorf("GetUserStorage: %v", err)
	}

	// duplicate registration
	if _, err := svc.Register(&models.UserRegisterRequest{
		Name: "Ana", Email: "ana@example.com", Password: "secret1",
	}); err == nil {
		t.Error("duplicate registration should fail")
	}
}

func TestLogin(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewAuthService(db)
	seedManager(t, svc, "ana@example.com", "user", "active")

	if _, err := svc.Register(&models.UserRegisterRequest{
		Name: "Ana", Email: "ana@example.com", Password: "secret1",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := svc.Login(&models.UserLoginRequest{Email: "ana@example.com", Password: "secret1"}); err != nil {
		t.Errorf("valid login: %v", err)
	}

	// the same generic error for bad password and unknown email
	_, badPassword := svc.Login(&models.UserLoginRequest{Email: "ana@example.com", Password: "wrong"})
	_, unknownEmail := svc.Login(&models.UserLoginRequest{Email: "ghost@example.com", Password: "secret1"})
	if badPassword == nil || unknownEmail == nil {
		t.Fatal("both logins should fail")
	}
	if badPassword.Error() != unknownEmail.Error() {
		t.Errorf("login errors should be indistinguishable: %q vs %q", badPassword, unknownEmail)
	}

	// deactivated users cannot log in
	if err := db.Model(&models.User{}).Where("email = ?", "ana@example.com").Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if _, err := svc.Login(&models.UserLoginRequest{Email: "ana@example.com", Password: "secret1"}); err == nil {
		t.Error("deactivated user should not log in")
	}
}
