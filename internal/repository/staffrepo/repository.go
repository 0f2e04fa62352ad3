package staffrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"sofadeal/internal/domain"
	apperror "sofadeal/internal/errors"
	"sofadeal/internal/pkg/logger"
)

// uniqueViolation is the PostgreSQL error code for a duplicate key.
const uniqueViolation = "23505"

// StaffRepository persists back-office accounts.
type StaffRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewStaffRepository creates a new StaffRepository.
func NewStaffRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *StaffRepository {
	return &StaffRepository{DB: db, DBTimeout: dbTimeout, logger: log}
}

// Save inserts a new staff account. A duplicate email yields a ConflictError.
func (r *StaffRepository) Save(ctx context.Context, user domain.StaffUser) (domain.StaffUser, error) {
	r.logger.Debug("Saving staff user.", map[string]interface{}{"email": user.Email})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt

	const insertSQL = `INSERT INTO staff_users (id, email, password_hash, role, created_at, updated_at)
                       VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.DB.ExecContext(ctxTimeout, insertSQL,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.StaffUser{}, apperror.NewConflictError(fmt.Sprintf("email '%s' is already in use", user.Email))
		}
		r.logger.Error("Failed to insert staff user.", err)
		return domain.StaffUser{}, apperror.NewDBError("failed to insert staff user", err)
	}

	r.logger.Info("Staff user saved.", map[string]interface{}{"user_id": user.ID})
	return user, nil
}

// FindByEmail looks an account up by email.
func (r *StaffRepository) FindByEmail(ctx context.Context, email string) (domain.StaffUser, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const query = `SELECT id, email, password_hash, role, created_at, updated_at FROM staff_users WHERE email = $1`
	row := r.DB.QueryRowContext(ctxTimeout, query, email)

	var user domain.StaffUser
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.logger.Debug("Staff user not found.", map[string]interface{}{"email": email})
			return domain.StaffUser{}, apperror.NewNotFoundError(fmt.Sprintf("staff user '%s' not found", email))
		}
		r.logger.Error("Failed to find staff user by email.", err)
		return domain.StaffUser{}, apperror.NewDBError("failed to find staff user by email", err)
	}

	return user, nil
}
