package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/web79/smiportal/internal/app/models"
	"github.com/web79/smiportal/internal/db"
	"github.com/web79/smiportal/internal/pkg/apperrors"
	"github.com/web79/smiportal/internal/pkg/dberrors"
	"github.com/web79/smiportal/internal/pkg/helpers"
	"github.com/web79/smiportal/internal/pkg/logger"
)

// IStudentRepository defines the interface for student persistence
type IStudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Student, error)
	List(ctx context.Context, search string) ([]*models.Student, error)
	// Update locks the row, applies mutate to the stored record and writes it back
	Update(ctx context.Context, id uuid.UUID, mutate func(*models.Student) error) (*models.Student, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

var studentColumns = []string{
	"id", "full_name", "email", "phone_number", "address", "nok_phone_number", "gender",
	"course", "payment_type", "amount_agreed", "first_payment", "balance", "fully_paid",
	"created_at", "updated_at",
}

// StudentRepository handles student database operations
type StudentRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(conn db.DBTX) *StudentRepository {
	return &StudentRepository{
		db: conn,
		sb: psql,
	}
}

func scanStudent(row rowScanner) (*models.Student, error) {
	s := &models.Student{}
	var paymentType string
	err := row.Scan(
		&s.ID, &s.FullName, &s.Email, &s.PhoneNumber, &s.Address, &s.NokPhoneNumber, &s.Gender,
		&s.Course, &paymentType, &s.AmountAgreed, &s.FirstPayment, &s.Balance, &s.FullyPaid,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.PaymentType = models.PaymentType(paymentType)
	return s, nil
}

// Create inserts a new student. Timestamps are set when zero.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	now := time.Now().UTC()
	if student.CreatedAt.IsZero() {
		student.CreatedAt = now
	}
	student.UpdatedAt = student.CreatedAt

	sql, args, err := r.sb.Insert("students").
		Columns(studentColumns...).
		Values(
			student.ID, student.FullName, student.Email, student.PhoneNumber, student.Address,
			student.NokPhoneNumber, student.Gender, student.Course, string(student.PaymentType),
			student.AmountAgreed, student.FirstPayment, student.Balance, student.FullyPaid,
			student.CreatedAt, student.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrStudentEmailExists
		}
		logger.Error().Err(err).Str("email", student.Email).Msg("Error executing create student query")
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	return r.getByID(ctx, r.db, id, false)
}

func (r *StudentRepository) getByID(ctx context.Context, q rowQuerier, id uuid.UUID, forUpdate bool) (*models.Student, error) {
	builder := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"id": id})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(q.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("studentID", id.String()).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student by ID: %w", err)
	}

	return student, nil
}

// List returns students newest first. A non-empty search matches full name or
// email case-insensitively, or the beginning of the id.
func (r *StudentRepository) List(ctx context.Context, search string) ([]*models.Student, error) {
	builder := r.sb.Select(studentColumns...).
		From("students").
		OrderBy("created_at DESC")

	if term := strings.TrimSpace(search); term != "" {
		contains := helpers.ContainsPattern(term)
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"full_name": contains},
			squirrel.ILike{"email": contains},
			squirrel.ILike{"id::text": helpers.PrefixPattern(term)},
		})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list students query")
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}

	return students, nil
}

// Update loads the student under a row lock, lets mutate change it and
// persists the result in the same transaction.
func (r *StudentRepository) Update(ctx context.Context, id uuid.UUID, mutate func(*models.Student) error) (*models.Student, error) {
	var updated *models.Student

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		student, err := r.getByID(ctx, tx, id, true)
		if err != nil {
			return err
		}

		if err := mutate(student); err != nil {
			return err
		}
		student.ID = id
		student.UpdatedAt = time.Now().UTC()

		sql, args, err := r.sb.Update("students").
			SetMap(map[string]interface{}{
				"full_name":        student.FullName,
				"email":            student.Email,
				"phone_number":     student.PhoneNumber,
				"address":          student.Address,
				"nok_phone_number": student.NokPhoneNumber,
				"gender":           student.Gender,
				"course":           student.Course,
				"payment_type":     string(student.PaymentType),
				"amount_agreed":    student.AmountAgreed,
				"first_payment":    student.FirstPayment,
				"balance":          student.Balance,
				"fully_paid":       student.FullyPaid,
				"updated_at":       student.UpdatedAt,
			}).
			Where(squirrel.Eq{"id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build update student query: %w", err)
		}

		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			if dberrors.IsUniqueViolation(err) {
				return apperrors.ErrStudentEmailExists
			}
			logger.Error().Err(err).Str("studentID", id.String()).Msg("Error executing update student query")
			return fmt.Errorf("error updating student: %w", err)
		}

		updated = student
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes a student by ID
func (r *StudentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.sb.Delete("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("studentID", id.String()).Msg("Error executing delete student query")
		return fmt.Errorf("error deleting student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}
