package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/web79/smiportal/internal/app/models"
	"github.com/web79/smiportal/internal/db"
	"github.com/web79/smiportal/internal/pkg/apperrors"
	"github.com/web79/smiportal/internal/pkg/dberrors"
	"github.com/web79/smiportal/internal/pkg/logger"
)

// IUserRepository defines the interface for staff account persistence
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	// GetByEmail returns the account including its password hash
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]*models.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// userColumns never includes password_hash
var userColumns = []string{"id", "email", "full_name", "role", "branch", "created_at", "updated_at"}

// UserRepository handles staff account database operations
type UserRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(conn db.DBTX) *UserRepository {
	return &UserRepository{
		db: conn,
		sb: psql,
	}
}

// Create inserts a new account
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	user.UpdatedAt = user.CreatedAt

	sql, args, err := r.sb.Insert("users").
		Columns("id", "email", "password_hash", "full_name", "role", "branch", "created_at", "updated_at").
		Values(user.ID, user.Email, user.PasswordHash, user.FullName, string(user.Role), user.Branch, user.CreatedAt, user.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create user query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return apperrors.ErrUserEmailExists
		}
		logger.Error().Err(err).Str("email", user.Email).Msg("Error executing create user query")
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// GetByEmail retrieves an account and its password hash by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	sql, args, err := r.sb.Select(append(userColumns, "password_hash")...).
		From("users").
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user := &models.User{}
	var role string
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&user.ID, &user.Email, &user.FullName, &role, &user.Branch, &user.CreatedAt, &user.UpdatedAt, &user.PasswordHash,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("email", email).Msg("Error scanning user row")
		return nil, fmt.Errorf("error getting user by email: %w", err)
	}
	user.Role = models.Role(role)

	return user, nil
}

// EmailExists checks if an account with the email exists
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("users").
		Where(squirrel.Eq{"email": email}).
		Prefix("SELECT EXISTS (").Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build email exists query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}

	return exists, nil
}

// List returns all accounts in creation order, without password hashes
func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).
		From("users").
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list users query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list users query")
		return nil, fmt.Errorf("error querying users: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		user := &models.User{}
		var role string
		if err := rows.Scan(&user.ID, &user.Email, &user.FullName, &role, &user.Branch, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		user.Role = models.Role(role)
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, nil
}

// UpdatePassword replaces the stored password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	sql, args, err := r.sb.Update("users").
		Set("password_hash", passwordHash).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update password query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}
