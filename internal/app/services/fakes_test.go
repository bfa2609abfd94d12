package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/web79/smiportal/internal/app/models"
	"github.com/web79/smiportal/internal/pkg/apperrors"
	"github.com/web79/smiportal/internal/pkg/email"
)

type fakeStudentRepo struct {
	mu       sync.Mutex
	students map[uuid.UUID]models.Student
	clock    time.Time
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{
		students: map[uuid.UUID]models.Student{},
		clock:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *fakeStudentRepo) Create(_ context.Context, s *models.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.students {
		if existing.Email == s.Email {
			return apperrors.ErrStudentEmailExists
		}
	}
	r.clock = r.clock.Add(time.Minute)
	s.CreatedAt, s.UpdatedAt = r.clock, r.clock
	r.students[s.ID] = *s
	return nil
}

func (r *fakeStudentRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return &s, nil
}

func (r *fakeStudentRepo) List(_ context.Context, search string) ([]*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	term := strings.ToLower(strings.TrimSpace(search))
	out := []*models.Student{}
	for _, s := range r.students {
		s := s
		if term != "" && !strings.Contains(strings.ToLower(s.FullName), term) && !strings.Contains(s.Email, term) {
			continue
		}
		out = append(out, &s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeStudentRepo) Update(_ context.Context, id uuid.UUID, mutate func(*models.Student) error) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	if err := mutate(&s); err != nil {
		return nil, err
	}
	for otherID, other := range r.students {
		if otherID != id && other.Email == s.Email {
			return nil, apperrors.ErrStudentEmailExists
		}
	}
	r.students[id] = s
	return &s, nil
}

func (r *fakeStudentRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(r.students, id)
	return nil
}

type fakeCourseRepo struct {
	courses map[uuid.UUID]models.Course
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: map[uuid.UUID]models.Course{}}
}

func (r *fakeCourseRepo) Create(_ context.Context, c *models.Course) error {
	r.courses[c.ID] = *c
	return nil
}

func (r *fakeCourseRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Course, error) {
	c, ok := r.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return &c, nil
}

func (r *fakeCourseRepo) List(_ context.Context, search string) ([]*models.Course, error) {
	term := strings.ToLower(strings.TrimSpace(search))
	out := []*models.Course{}
	for _, c := range r.courses {
		c := c
		if term != "" && !strings.Contains(strings.ToLower(c.Name), term) && !strings.Contains(strings.ToLower(c.Instructor), term) {
			continue
		}
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeCourseRepo) Update(_ context.Context, id uuid.UUID, mutate func(*models.Course) error) (*models.Course, error) {
	c, ok := r.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	if err := mutate(&c); err != nil {
		return nil, err
	}
	r.courses[id] = c
	return &c, nil
}

func (r *fakeCourseRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	delete(r.courses, id)
	return nil
}

type fakeUserRepo struct {
	users []models.User
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return apperrors.ErrUserEmailExists
		}
	}
	r.users = append(r.users, *u)
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]*models.User, error) {
	out := []*models.User{}
	for _, u := range r.users {
		u := u
		u.PasswordHash = ""
		out = append(out, &u)
	}
	return out, nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	for i := range r.users {
		if r.users[i].ID == id {
			r.users[i].PasswordHash = hash
			return nil
		}
	}
	return apperrors.ErrUserNotFound
}

type recordingMailer struct {
	sent []*email.Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg *email.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}
