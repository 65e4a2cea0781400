package auth

import (
	"testing"

	"sanctuary/config"

	"golang.org/x/crypto/bcrypt"
)

func withCredentials(t *testing.T, username, password string) {
	t.Helper()
	oldUser, oldPass := config.Settings.AdminUsername, config.Settings.AdminPassword
	config.Settings.AdminUsername = username
	config.Settings.AdminPassword = password
	t.Cleanup(func() {
		config.Settings.AdminUsername = oldUser
		config.Settings.AdminPassword = oldPass
	})
}

func TestLogin_PlaintextCredential(t *testing.T) {
	withCredentials(t, "admin", "secret")

	if !Login("admin", "secret") {
		t.Fatal("expected valid credentials to pass")
	}
	if Login("admin", "wrong") {
		t.Fatal("expected wrong password to fail")
	}
	if Login("root", "secret") {
		t.Fatal("expected wrong username to fail")
	}
}

func TestLogin_BcryptCredential(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	withCredentials(t, "admin", string(hash))

	if !Login("admin", "secret") {
		t.Fatal("expected bcrypt-hashed credential to verify")
	}
	if Login("admin", string(hash)) {
		t.Fatal("hash value itself must not work as a password")
	}
}

func TestLogin_EmptyConfiguredPasswordRejectsEverything(t *testing.T) {
	withCredentials(t, "admin", "")

	if Login("admin", "") {
		t.Fatal("expected empty configured credential to reject all logins")
	}
}
