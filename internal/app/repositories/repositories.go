package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/web79/smiportal/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository *StudentRepository
	CourseRepository  *CourseRepository
	UserRepository    *UserRepository
}

// NewRepositories initializes all repositories
func NewRepositories(conn db.DBTX) *Repositories {
	return &Repositories{
		StudentRepository: NewStudentRepository(conn),
		CourseRepository:  NewCourseRepository(conn),
		UserRepository:    NewUserRepository(conn),
	}
}

// psql builds PostgreSQL statements with $n placeholders
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// rowQuerier is satisfied by pools and transactions
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// rowScanner is satisfied by pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}
