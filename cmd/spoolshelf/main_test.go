package main

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/spoolshelf/internal/store"
)

func TestLevelRouterSplitsByLevel(t *testing.T) {
	var out, errOut bytes.Buffer
	h := &levelRouter{
		level:  slog.LevelInfo,
		stdout: slog.NewTextHandler(&out, nil),
		stderr: slog.NewTextHandler(&errOut, nil),
	}
	logger := slog.New(h).With("component", "test")

	logger.Debug("hidden")
	logger.Info("stock added")
	logger.Error("save failed")

	if strings.Contains(out.String(), "hidden") {
		t.Error("debug message should be filtered at info level")
	}
	if !strings.Contains(out.String(), "stock added") || strings.Contains(out.String(), "save failed") {
		t.Errorf("unexpected stdout: %q", out.String())
	}
	if !strings.Contains(errOut.String(), "save failed") || !strings.Contains(errOut.String(), "component=test") {
		t.Errorf("unexpected stderr: %q", errOut.String())
	}
}

func TestGeneratePassword(t *testing.T) {
	a, err := generatePassword(16)
	if err != nil {
		t.Fatalf("generatePassword: %v", err)
	}
	b, _ := generatePassword(16)
	if len(a) != 16 || a == b {
		t.Errorf("expected two distinct 16-char passwords, got %q and %q", a, b)
	}
}

func TestInitDatabaseCreatesAdmin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shelf.sqlite3")

	database, password, err := initDatabase(path, "Admin")
	if err != nil {
		t.Fatalf("initDatabase: %v", err)
	}
	defer database.Close()

	user, err := store.GetUserByUsername(context.Background(), database, "Admin")
	if err != nil || user == nil {
		t.Fatalf("expected admin user, got %+v, %v", user, err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		t.Error("generated password does not match stored hash")
	}
}
