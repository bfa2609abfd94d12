package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/web79/smiportal/internal/app/models"
	"github.com/web79/smiportal/internal/pkg/apperrors"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func studentRow(mock pgxmock.PgxPoolIface, s *models.Student) *pgxmock.Rows {
	return mock.NewRows(studentColumns).AddRow(
		s.ID, s.FullName, s.Email, s.PhoneNumber, s.Address, s.NokPhoneNumber, s.Gender,
		s.Course, string(s.PaymentType), s.AmountAgreed, s.FirstPayment, s.Balance, s.FullyPaid,
		s.CreatedAt, s.UpdatedAt,
	)
}

func sampleStudent() *models.Student {
	now := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	return &models.Student{
		ID:           uuid.New(),
		FullName:     "Ada Obi",
		Email:        "ada@example.com",
		Course:       "Web Development",
		PaymentType:  models.PaymentInstallment,
		AmountAgreed: 50000,
		FirstPayment: 20000,
		Balance:      30000,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestStudentRepository_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewStudentRepository(mock)
	student := sampleStudent()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO students (id,full_name,email")).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Create(context.Background(), student))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepository_Create_DuplicateEmail(t *testing.T) {
	mock := newMock(t)
	repo := NewStudentRepository(mock)

	mock.ExpectExec("INSERT INTO students").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "students_email_key"})

	err := repo.Create(context.Background(), sampleStudent())
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	assert.Equal(t, "A student with this email already exists", err.Error())
}

func TestStudentRepository_GetByID(t *testing.T) {
	mock := newMock(t)
	repo := NewStudentRepository(mock)
	student := sampleStudent()

	mock.ExpectQuery(regexp.QuoteMeta("FROM students WHERE id = $1")).
		WithArgs(student.ID).
		WillReturnRows(studentRow(mock, student))

	got, err := repo.GetByID(context.Background(), student.ID)
	require.NoError(t, err)
	assert.Equal(t, student, got)
}

func TestStudentRepository_GetByID_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewStudentRepository(mock)

	mock.ExpectQuery("FROM students").WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestStudentRepository_List(t *testing.T) {
	mock := newMock(t)
	repo := NewStudentRepository(mock)
	student := sampleStudent()

	mock.ExpectQuery(regexp.QuoteMeta("FROM students ORDER BY created_at DESC")).
		WillReturnRows(studentRow(mock, student))

	got, err := repo.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, student.Email, got[0].Email)
}

func TestStudentRepository_List_Search(t *testing.T) {
	mock := newMock(t)
	repo := NewStudentRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE (full_name ILIKE $1 OR email ILIKE $2 OR id::text ILIKE $3) ORDER BY created_at DESC")).
		WithArgs("%ada\\_o%", "%ada\\_o%", "ada\\_o%").
		WillReturnRows(mock.NewRows(studentColumns))

	got, err := repo.List(context.Background(), "  ada_o ")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepository_Update(t *testing.T) {
	mock := newMock(t)
	repo := NewStudentRepository(mock)
	student := sampleStudent()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM students WHERE id = $1 FOR UPDATE")).
		WithArgs(student.ID).
		WillReturnRows(studentRow(mock, student))
	mock.ExpectExec("UPDATE students SET").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	got, err := repo.Update(context.Background(), student.ID, func(s *models.Student) error {
		s.FirstPayment = 50000
		s.RecomputeBalance()
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, float64(0), got.Balance)
	assert.True(t, got.FullyPaid)
	assert.Equal(t, "Ada Obi", got.FullName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepository_Update_MutateErrorRollsBack(t *testing.T) {
	mock := newMock(t)
	repo := NewStudentRepository(mock)
	student := sampleStudent()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WillReturnRows(studentRow(mock, student))
	mock.ExpectRollback()

	_, err := repo.Update(context.Background(), student.ID, func(s *models.Student) error {
		return apperrors.NewValidationError("fullName", "fullName is required")
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepository_Update_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewStudentRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.Update(context.Background(), uuid.New(), func(s *models.Student) error { return nil })
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestStudentRepository_Delete(t *testing.T) {
	mock := newMock(t)
	repo := NewStudentRepository(mock)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM students WHERE id = $1")).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, repo.Delete(context.Background(), id))

	mock.ExpectExec("DELETE FROM students").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), id), apperrors.ErrResourceNotFound)
}
