package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/joho/godotenv"

	"github.com/gracepoint-dev/church-admin-be/internal/auth"
	"github.com/gracepoint-dev/church-admin-be/internal/middleware"
	"github.com/gracepoint-dev/church-admin-be/internal/models"
	"github.com/gracepoint-dev/church-admin-be/internal/models/dto"
	"github.com/gracepoint-dev/church-admin-be/internal/storage/postgres"
)

// TestAPIIntegration exercises login and attendance submission against a live
// Postgres database.
func TestAPIIntegration(t *testing.T) {
	if os.Getenv("RUN_DB_INTEGRATION") != "true" {
		t.Skip("set RUN_DB_INTEGRATION=true to run this integration test")
	}

	loadDotEnv()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatal("DATABASE_URL is required")
	}
	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		t.Fatal("JWT_SECRET is required")
	}

	ctx := context.Background()
	store, err := postgres.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	defer store.Close()

	tokens := auth.NewTokenManager(secret, "integration", 24*time.Hour)

	mux := http.NewServeMux()
	var guard Guard = func(role string, next http.HandlerFunc) http.Handler {
		return middleware.Authenticate(tokens, store, middleware.RequireRole(role, next))
	}
	NewAuthHandler(store, tokens).Register(mux)
	NewAttendanceHandler(store).Register(mux, guard)

	ts := httptest.NewServer(mux)
	defer ts.Close()

	username := fmt.Sprintf("sec_it_%d", time.Now().UnixNano())
	password := fmt.Sprintf("Pass!%d", time.Now().UnixNano())
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if _, err := store.CreateUser(ctx, models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         models.RoleSecretary,
	}); err != nil {
		t.Fatalf("create test user: %v", err)
	}

	token := requestLogin(t, ts.URL, username, password)

	serviceDate := time.Now().Format("2006-01-02T15:04:05.000000000")
	submitAttendance(t, ts.URL, token, serviceDate)

	// A second submission for the same date must be rejected without
	// disturbing the first record.
	resp := postAttendance(t, ts.URL, token, serviceDate)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate submit status = %d, want 409", resp.StatusCode)
	}

	records, err := store.ListAttendance(ctx)
	if err != nil {
		t.Fatalf("list attendance: %v", err)
	}
	found := false
	for _, rec := range records {
		if rec.ServiceDate == serviceDate {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("submitted record for %s not readable after duplicate rejection", serviceDate)
	}

	t.Logf("created user %s, logged in, and round-tripped an attendance record", username)
}

func requestLogin(t *testing.T, baseURL, username, password string) string {
	t.Helper()
	body, err := json.Marshal(dto.LoginRequest{Username: username, Password: password})
	if err != nil {
		t.Fatalf("marshal login payload: %v", err)
	}
	resp, err := http.Post(fmt.Sprintf("%s/login", baseURL), "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d", resp.StatusCode)
	}
	var out dto.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if strings.TrimSpace(out.Token) == "" {
		t.Fatal("login response missing token")
	}
	return out.Token
}

func submitAttendance(t *testing.T, baseURL, token, serviceDate string) {
	t.Helper()
	resp := postAttendance(t, baseURL, token, serviceDate)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("submit attendance status = %d", resp.StatusCode)
	}
}

func postAttendance(t *testing.T, baseURL, token, serviceDate string) *http.Response {
	t.Helper()
	payload := submitReq(serviceDate)
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal attendance payload: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("%s/attendance/submit", baseURL), bytes.NewReader(body))
	if err != nil {
		t.Fatalf("build submit request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("submit request failed: %v", err)
	}
	return resp
}

func loadDotEnv() {
	paths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
		"../../../../.env",
	}
	for _, path := range paths {
		_ = godotenv.Overload(path)
	}
}
