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
	"github.com/web79/smiportal/internal/pkg/helpers"
	"github.com/web79/smiportal/internal/pkg/logger"
)

// ICourseRepository defines the interface for course persistence
type ICourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	List(ctx context.Context, search string) ([]*models.Course, error)
	Update(ctx context.Context, id uuid.UUID, mutate func(*models.Course) error) (*models.Course, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

var courseColumns = []string{"id", "name", "instructor", "duration", "status", "created_at", "updated_at"}

// CourseRepository handles course database operations
type CourseRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(conn db.DBTX) *CourseRepository {
	return &CourseRepository{
		db: conn,
		sb: psql,
	}
}

func scanCourse(row rowScanner) (*models.Course, error) {
	c := &models.Course{}
	var status string
	if err := row.Scan(&c.ID, &c.Name, &c.Instructor, &c.Duration, &status, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Status = models.CourseStatus(status)
	return c, nil
}

// Create inserts a new course
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.CreatedAt.IsZero() {
		course.CreatedAt = time.Now().UTC()
	}
	course.UpdatedAt = course.CreatedAt

	sql, args, err := r.sb.Insert("courses").
		Columns(courseColumns...).
		Values(course.ID, course.Name, course.Instructor, course.Duration, string(course.Status), course.CreatedAt, course.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("name", course.Name).Msg("Error executing create course query")
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	return r.getByID(ctx, r.db, id, false)
}

func (r *CourseRepository) getByID(ctx context.Context, q rowQuerier, id uuid.UUID, forUpdate bool) (*models.Course, error) {
	builder := r.sb.Select(courseColumns...).
		From("courses").
		Where(squirrel.Eq{"id": id})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course, err := scanCourse(q.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Str("courseID", id.String()).Msg("Error scanning course row")
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}

	return course, nil
}

// List returns courses ordered by name. A non-empty search matches name or
// instructor case-insensitively.
func (r *CourseRepository) List(ctx context.Context, search string) ([]*models.Course, error) {
	builder := r.sb.Select(courseColumns...).
		From("courses").
		OrderBy("name ASC")

	if term := strings.TrimSpace(search); term != "" {
		contains := helpers.ContainsPattern(term)
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"name": contains},
			squirrel.ILike{"instructor": contains},
		})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}

	return courses, nil
}

// Update loads the course under a row lock, applies mutate and writes it back
func (r *CourseRepository) Update(ctx context.Context, id uuid.UUID, mutate func(*models.Course) error) (*models.Course, error) {
	var updated *models.Course

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		course, err := r.getByID(ctx, tx, id, true)
		if err != nil {
			return err
		}

		if err := mutate(course); err != nil {
			return err
		}
		course.ID = id
		course.UpdatedAt = time.Now().UTC()

		sql, args, err := r.sb.Update("courses").
			SetMap(map[string]interface{}{
				"name":       course.Name,
				"instructor": course.Instructor,
				"duration":   course.Duration,
				"status":     string(course.Status),
				"updated_at": course.UpdatedAt,
			}).
			Where(squirrel.Eq{"id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build update course query: %w", err)
		}

		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			logger.Error().Err(err).Str("courseID", id.String()).Msg("Error executing update course query")
			return fmt.Errorf("error updating course: %w", err)
		}

		updated = course
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes a course by ID
func (r *CourseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.sb.Delete("courses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete course query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("courseID", id.String()).Msg("Error executing delete course query")
		return fmt.Errorf("error deleting course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}
