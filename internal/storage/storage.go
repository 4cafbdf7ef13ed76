package storage

import (
	"context"
	"errors"

	"github.com/gracepoint-dev/church-admin-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore captures persistence operations over user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	CountUsers(ctx context.Context) (int64, error)
}

// AttendanceStore persists per-service-date attendance records. service_date
// is unique; CreateAttendance returns ErrAlreadyExists on a duplicate date.
type AttendanceStore interface {
	CreateAttendance(ctx context.Context, rec models.AttendanceRecord) (models.AttendanceRecord, error)
	ListAttendance(ctx context.Context) ([]models.AttendanceRecord, error)
}

// PaymentStore persists payment records. Listings are ordered by date descending.
type PaymentStore interface {
	CreatePayment(ctx context.Context, rec models.PaymentRecord) (models.PaymentRecord, error)
	ListPayments(ctx context.Context) ([]models.PaymentRecord, error)
}

// ProjectStore persists fundraising projects.
type ProjectStore interface {
	CreateProject(ctx context.Context, p models.Project) (models.Project, error)
	ListProjects(ctx context.Context) ([]models.Project, error)
}

// Store aggregates every persistence capability the server needs.
type Store interface {
	UserStore
	AttendanceStore
	PaymentStore
	ProjectStore
}
