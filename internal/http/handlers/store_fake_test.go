package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gracepoint-dev/church-admin-be/internal/auth"
	"github.com/gracepoint-dev/church-admin-be/internal/middleware"
	"github.com/gracepoint-dev/church-admin-be/internal/models"
	"github.com/gracepoint-dev/church-admin-be/internal/storage"
)

// fakeStore is an in-memory storage.Store that mirrors the Postgres store's
// contract: uniqueness conflicts and date-descending listings.
type fakeStore struct {
	mu         sync.Mutex
	nextID     int64
	users      []models.User
	attendance []models.AttendanceRecord
	payments   []models.PaymentRecord
	projects   []models.Project
}

var _ storage.Store = (*fakeStore)(nil)

func (s *fakeStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *fakeStore) CreateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == user.Username {
			return models.User{}, storage.ErrAlreadyExists
		}
	}
	user.ID = s.id()
	s.users = append(s.users, user)
	return user, nil
}

func (s *fakeStore) FindByUsername(_ context.Context, username string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Username == username {
			return user, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

func (s *fakeStore) ListUsers(context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

func (s *fakeStore) CountUsers(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.users)), nil
}

func (s *fakeStore) CreateAttendance(_ context.Context, rec models.AttendanceRecord) (models.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.attendance {
		if existing.ServiceDate == rec.ServiceDate {
			return models.AttendanceRecord{}, storage.ErrAlreadyExists
		}
	}
	rec.ID = s.id()
	s.attendance = append(s.attendance, rec)
	return rec, nil
}

func (s *fakeStore) ListAttendance(context.Context) ([]models.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.AttendanceRecord, len(s.attendance))
	copy(out, s.attendance)
	sort.Slice(out, func(i, j int) bool { return out[i].ServiceDate > out[j].ServiceDate })
	return out, nil
}

func (s *fakeStore) CreatePayment(_ context.Context, rec models.PaymentRecord) (models.PaymentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = s.id()
	s.payments = append(s.payments, rec)
	return rec, nil
}

func (s *fakeStore) ListPayments(context.Context) ([]models.PaymentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.PaymentRecord, len(s.payments))
	copy(out, s.payments)
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (s *fakeStore) CreateProject(_ context.Context, p models.Project) (models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.id()
	p.CurrentAmount = 0
	p.Status = "active"
	s.projects = append(s.projects, p)
	return p, nil
}

func (s *fakeStore) ListProjects(context.Context) ([]models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Project, len(s.projects))
	copy(out, s.projects)
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate > out[j].StartDate })
	return out, nil
}

var testAccounts = []models.BankAccount{
	{ID: 1, AccountType: "tithe", AccountName: "Test Tithe", AccountNumber: "0000000001", BankName: "Test Bank", SortCode: "00-00-01"},
	{ID: 2, AccountType: "offering", AccountName: "Test Offering", AccountNumber: "0000000002", BankName: "Test Bank", SortCode: "00-00-02"},
	{ID: 3, AccountType: "building_fund", AccountName: "Test Building Fund", AccountNumber: "0000000003", BankName: "Test Bank", SortCode: "00-00-03"},
}

// newTestAPI wires the full handler set behind the real middleware chain,
// exactly as the server package composes it.
func newTestAPI(store storage.Store) (http.Handler, *auth.TokenManager) {
	mux := http.NewServeMux()
	tokens := auth.NewTokenManager("handlers-test-secret", "test", time.Hour)
	var guard Guard = func(role string, next http.HandlerFunc) http.Handler {
		return middleware.Authenticate(tokens, store, middleware.RequireRole(role, next))
	}
	NewAuthHandler(store, tokens).Register(mux)
	NewAttendanceHandler(store).Register(mux, guard)
	NewPaymentsHandler(store, testAccounts).Register(mux, guard)
	NewUsersHandler(store).Register(mux, guard)
	NewProjectsHandler(store).Register(mux, guard)
	return mux, tokens
}

// seedUser inserts a user with a real password hash so login can verify it.
func seedUser(t *testing.T, store *fakeStore, username, password, role string) {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if _, err := store.CreateUser(context.Background(), models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}); err != nil {
		t.Fatalf("seed user %q: %v", username, err)
	}
}

// tokenFor issues a token for a username already present in the store.
func tokenFor(t *testing.T, tokens *auth.TokenManager, username string) string {
	t.Helper()
	token, err := tokens.Issue(username)
	if err != nil {
		t.Fatalf("issue token for %q: %v", username, err)
	}
	return token
}

// doJSON performs a request with an optional bearer token and JSON body.
func doJSON(t *testing.T, handler http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(out); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

func intPtr(n int) *int       { return &n }
func int64Ptr(n int64) *int64 { return &n }
