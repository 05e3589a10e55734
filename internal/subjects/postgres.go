package subjects

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/models"
)

// PostgresConfig holds Postgres connection settings.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DSN renders the lib/pq connection string.
func (c PostgresConfig) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, sslMode)
}

// PostgresStore implements Store on a Postgres subjects table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection pool and verifies it with a ping.
func NewPostgresStore(cfg PostgresConfig) (*PostgresStore, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// NewPostgresStoreWithDB wraps an existing connection, used by tests with
// sqlmock.
func NewPostgresStoreWithDB(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Get fetches one subject by ID.
func (s *PostgresStore) Get(ctx context.Context, subjectID int) (*models.Subject, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT subject_id, name, date_of_birth, gender, address, created_at
		 FROM subjects WHERE subject_id = $1`, subjectID)
	subject, err := scanSubject(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subject %d: %w", subjectID, err)
	}
	return subject, nil
}

// List returns subjects ordered by ID with limit/offset paging.
func (s *PostgresStore) List(ctx context.Context, limit, offset int) ([]models.Subject, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT subject_id, name, date_of_birth, gender, address, created_at
		 FROM subjects ORDER BY subject_id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var subjects []models.Subject
	for rows.Next() {
		subject, err := scanSubject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subject: %w", err)
		}
		subjects = append(subjects, *subject)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	return subjects, nil
}

// Create inserts a subject and returns it with the assigned ID and
// creation time.
func (s *PostgresStore) Create(ctx context.Context, subject *models.Subject) (*models.Subject, error) {
	created := *subject
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO subjects (name, date_of_birth, gender, address)
		 VALUES ($1, $2, $3, $4)
		 RETURNING subject_id, created_at`,
		subject.Name, subject.DateOfBirth, subject.Gender, subject.Address,
	).Scan(&created.SubjectID, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create subject: %w", err)
	}
	return &created, nil
}

// Count returns the number of registered subjects.
func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM subjects`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count subjects: %w", err)
	}
	return count, nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSubject(row rowScanner) (*models.Subject, error) {
	var subject models.Subject
	var dob sql.NullTime
	var gender, address sql.NullString
	if err := row.Scan(&subject.SubjectID, &subject.Name, &dob, &gender, &address, &subject.CreatedAt); err != nil {
		return nil, err
	}
	if dob.Valid {
		t := dob.Time
		subject.DateOfBirth = &t
	}
	subject.Gender = gender.String
	subject.Address = address.String
	return &subject, nil
}
