package main

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/web79/smiportal/internal/app/models"
	"github.com/web79/smiportal/internal/app/models/dto"
	"github.com/web79/smiportal/internal/pkg/apperrors"
)

type stubUserService struct {
	created   []*dto.CreateUserRequest
	resets    map[string]string
	known     map[string]bool
	createErr error
}

func newStubUserService(known ...string) *stubUserService {
	s := &stubUserService{resets: map[string]string{}, known: map[string]bool{}}
	for _, email := range known {
		s.known[email] = true
	}
	return s
}

func (s *stubUserService) CreateUser(_ context.Context, req *dto.CreateUserRequest) (*models.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created = append(s.created, req)
	return &models.User{ID: uuid.New(), Email: req.Email, Role: models.Role(req.Role)}, nil
}

func (s *stubUserService) ListUsers(context.Context) ([]*models.User, error) {
	return nil, nil
}

func (s *stubUserService) EnsureSuperAdmin(context.Context, *dto.CreateUserRequest) (bool, error) {
	return false, nil
}

func (s *stubUserService) ResetPassword(_ context.Context, email, pwd string) error {
	if !s.known[email] {
		return apperrors.ErrUserNotFound
	}
	s.resets[email] = pwd
	return nil
}

type cliTest struct {
	name    string
	args    []string // without program name
	pwd     string
	wantErr error
}

func runCLI(t *testing.T, cli *commandLine, tests []cliTest) {
	t.Helper()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			readPasswordFunc = func(int) ([]byte, error) {
				return []byte(tt.pwd), nil
			}
			err := cli.run(context.Background(), append([]string{"admin"}, tt.args...))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func Test_commandLine_createSuperAdmin(t *testing.T) {
	svc := newStubUserService()
	cli := &commandLine{usrSvc: svc, logger: zerolog.Nop()}

	runCLI(t, cli, []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"createsuperadmin"}, wantErr: errHelp},
		{name: "missing branch", args: []string{"createsuperadmin", "-email", "a@smi.example", "-name", "Ada"}, pwd: "secret1", wantErr: errHelp},
		{name: "empty password", args: []string{"createsuperadmin", "-email", "a@smi.example", "-name", "Ada", "-branch", "Lagos"}, wantErr: errHelp},
		{name: "created", args: []string{"createsuperadmin", "-email", "a@smi.example", "-name", "Ada", "-branch", "Lagos"}, pwd: "secret1"},
	})

	require.Len(t, svc.created, 1)
	got := svc.created[0]
	assert.Equal(t, "a@smi.example", got.Email)
	assert.Equal(t, "secret1", got.Password)
	assert.Equal(t, "Ada", got.FullName)
	assert.Equal(t, "Lagos", got.Branch)
	assert.Equal(t, string(models.RoleSuperAdmin), got.Role)
}

func Test_commandLine_createSuperAdmin_Duplicate(t *testing.T) {
	svc := newStubUserService()
	svc.createErr = apperrors.ErrUserEmailExists
	cli := &commandLine{usrSvc: svc, logger: zerolog.Nop()}

	runCLI(t, cli, []cliTest{
		{name: "duplicate", args: []string{"createsuperadmin", "-email", "a@smi.example", "-name", "Ada", "-branch", "Lagos"}, pwd: "secret1", wantErr: apperrors.ErrUserEmailExists},
	})
}

func Test_commandLine_resetPassword(t *testing.T) {
	svc := newStubUserService("staff@smi.example")
	cli := &commandLine{usrSvc: svc, logger: zerolog.Nop()}

	runCLI(t, cli, []cliTest{
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "email but no password", args: []string{"resetpassword", "-email", "staff@smi.example"}, wantErr: errHelp},
		{name: "user not found", args: []string{"resetpassword", "-email", "nobody@smi.example"}, pwd: "secret1", wantErr: apperrors.ErrUserNotFound},
		{name: "reset", args: []string{"resetpassword", "-email", "staff@smi.example"}, pwd: "newpass1"},
	})

	assert.Equal(t, "newpass1", svc.resets["staff@smi.example"])
}

func Test_commandLine_readPasswordError(t *testing.T) {
	cli := &commandLine{usrSvc: newStubUserService("staff@smi.example"), logger: zerolog.Nop()}
	boom := errors.New("not a terminal")
	readPasswordFunc = func(int) ([]byte, error) { return nil, boom }

	err := cli.run(context.Background(), []string{"admin", "resetpassword", "-email", "staff@smi.example"})
	assert.ErrorIs(t, err, boom)
}

func Test_commandLine_migrate(t *testing.T) {
	cli := &commandLine{usrSvc: newStubUserService(), logger: zerolog.Nop()}

	called := false
	runMigrationsFunc = func(context.Context, *sql.DB) error {
		called = true
		return nil
	}
	require.NoError(t, cli.run(context.Background(), []string{"admin", "migrate"}))
	assert.True(t, called)

	boom := errors.New("migration failed")
	runMigrationsFunc = func(context.Context, *sql.DB) error { return boom }
	assert.ErrorIs(t, cli.run(context.Background(), []string{"admin", "migrate"}), boom)
}
