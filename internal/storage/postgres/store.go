package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/gracepoint-dev/church-admin-be/internal/models"
	"github.com/gracepoint-dev/church-admin-be/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ensure Store satisfies the storage.Store interface at compile time.
var _ storage.Store = (*Store)(nil)

// Store provides Postgres-backed persistence for the four record tables.
type Store struct {
	pool *pgxpool.Pool
}

// New connects a pool and applies migrations. Migrations are idempotent and
// never drop a table; existing data survives restarts.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL,
			full_name TEXT,
			phone_number TEXT,
			email TEXT,
			gender TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS projects (
			id BIGSERIAL PRIMARY KEY,
			project_name TEXT NOT NULL,
			target_amount BIGINT NOT NULL,
			start_date TEXT NOT NULL,
			current_amount BIGINT NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'active'
		);`,
		`CREATE TABLE IF NOT EXISTS attendance (
			id BIGSERIAL PRIMARY KEY,
			service_date TEXT UNIQUE NOT NULL,
			men INTEGER NOT NULL,
			women INTEGER NOT NULL,
			youth_boys INTEGER NOT NULL,
			youth_girls INTEGER NOT NULL,
			children_boys INTEGER NOT NULL,
			children_girls INTEGER NOT NULL,
			new_converts INTEGER NOT NULL,
			youtube INTEGER NOT NULL,
			total_headcount INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS payments (
			id BIGSERIAL PRIMARY KEY,
			date TEXT NOT NULL,
			payment_type TEXT NOT NULL,
			amount BIGINT NOT NULL,
			description TEXT,
			account_details TEXT,
			receipt_data TEXT,
			receipt_filename TEXT
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

// CreateUser inserts a new user row.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	const query = `
		INSERT INTO users (username, password_hash, role, full_name, phone_number, email, gender)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id;`
	err := s.pool.QueryRow(ctx, query,
		user.Username, user.PasswordHash, user.Role,
		user.FullName, user.PhoneNumber, user.Email, user.Gender,
	).Scan(&user.ID)
	if err != nil {
		return models.User{}, translateErr(err)
	}
	return user, nil
}

// FindByUsername fetches a user by username.
func (s *Store) FindByUsername(ctx context.Context, username string) (models.User, error) {
	const query = `
		SELECT id, username, password_hash, role,
		       COALESCE(full_name, ''), COALESCE(phone_number, ''),
		       COALESCE(email, ''), COALESCE(gender, '')
		FROM users WHERE username = $1;`
	var user models.User
	err := s.pool.QueryRow(ctx, query, username).Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.Role,
		&user.FullName, &user.PhoneNumber, &user.Email, &user.Gender,
	)
	if err != nil {
		return models.User{}, translateErr(err)
	}
	return user, nil
}

// ListUsers returns every user. Password hashes are not selected.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	const query = `
		SELECT id, username, role,
		       COALESCE(full_name, ''), COALESCE(phone_number, ''),
		       COALESCE(email, ''), COALESCE(gender, '')
		FROM users ORDER BY id;`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID, &user.Username, &user.Role,
			&user.FullName, &user.PhoneNumber, &user.Email, &user.Gender,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// CountUsers returns how many user rows exist.
func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users;`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// CreateAttendance inserts one attendance record. A duplicate service_date
// returns storage.ErrAlreadyExists.
func (s *Store) CreateAttendance(ctx context.Context, rec models.AttendanceRecord) (models.AttendanceRecord, error) {
	const query = `
		INSERT INTO attendance (service_date, men, women, youth_boys, youth_girls,
		                        children_boys, children_girls, new_converts, youtube, total_headcount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id;`
	err := s.pool.QueryRow(ctx, query,
		rec.ServiceDate, rec.Men, rec.Women, rec.YouthBoys, rec.YouthGirls,
		rec.ChildrenBoys, rec.ChildrenGirls, rec.NewConverts, rec.Youtube, rec.TotalHeadcount,
	).Scan(&rec.ID)
	if err != nil {
		return models.AttendanceRecord{}, translateErr(err)
	}
	return rec, nil
}

// ListAttendance returns every attendance record, newest service date first.
func (s *Store) ListAttendance(ctx context.Context) ([]models.AttendanceRecord, error) {
	const query = `
		SELECT id, service_date, men, women, youth_boys, youth_girls,
		       children_boys, children_girls, new_converts, youtube, total_headcount
		FROM attendance ORDER BY service_date DESC;`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.AttendanceRecord{}
	for rows.Next() {
		var rec models.AttendanceRecord
		if err := rows.Scan(
			&rec.ID, &rec.ServiceDate, &rec.Men, &rec.Women, &rec.YouthBoys, &rec.YouthGirls,
			&rec.ChildrenBoys, &rec.ChildrenGirls, &rec.NewConverts, &rec.Youtube, &rec.TotalHeadcount,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CreatePayment inserts one payment record.
func (s *Store) CreatePayment(ctx context.Context, rec models.PaymentRecord) (models.PaymentRecord, error) {
	const query = `
		INSERT INTO payments (date, payment_type, amount, description, account_details, receipt_data, receipt_filename)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id;`
	err := s.pool.QueryRow(ctx, query,
		rec.Date, rec.PaymentType, rec.Amount,
		rec.Description, rec.AccountDetails, rec.ReceiptData, rec.ReceiptFilename,
	).Scan(&rec.ID)
	if err != nil {
		return models.PaymentRecord{}, translateErr(err)
	}
	return rec, nil
}

// ListPayments returns every payment, newest date first.
func (s *Store) ListPayments(ctx context.Context) ([]models.PaymentRecord, error) {
	const query = `
		SELECT id, date, payment_type, amount,
		       COALESCE(description, ''), COALESCE(account_details, ''),
		       COALESCE(receipt_data, ''), COALESCE(receipt_filename, '')
		FROM payments ORDER BY date DESC;`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.PaymentRecord{}
	for rows.Next() {
		var rec models.PaymentRecord
		if err := rows.Scan(
			&rec.ID, &rec.Date, &rec.PaymentType, &rec.Amount,
			&rec.Description, &rec.AccountDetails, &rec.ReceiptData, &rec.ReceiptFilename,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CreateProject inserts a project with default current_amount and status.
func (s *Store) CreateProject(ctx context.Context, p models.Project) (models.Project, error) {
	const query = `
		INSERT INTO projects (project_name, target_amount, start_date)
		VALUES ($1, $2, $3)
		RETURNING id, current_amount, status;`
	err := s.pool.QueryRow(ctx, query, p.ProjectName, p.TargetAmount, p.StartDate).
		Scan(&p.ID, &p.CurrentAmount, &p.Status)
	if err != nil {
		return models.Project{}, translateErr(err)
	}
	return p, nil
}

// ListProjects returns every project, newest start date first.
func (s *Store) ListProjects(ctx context.Context) ([]models.Project, error) {
	const query = `
		SELECT id, project_name, target_amount, start_date, current_amount, status
		FROM projects ORDER BY start_date DESC;`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.ProjectName, &p.TargetAmount, &p.StartDate, &p.CurrentAmount, &p.Status); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// translateErr maps driver errors to the storage sentinel errors.
func translateErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return storage.ErrAlreadyExists
	}
	return err
}
