// service/user/userService_test.go
package usersvc

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/odekodu/ecobnb-api/model"
	mailerrepo "github.com/odekodu/ecobnb-api/repository/mailer"
	userrepo "github.com/odekodu/ecobnb-api/repository/user"
	"github.com/odekodu/ecobnb-api/util/apperr"
	"github.com/odekodu/ecobnb-api/util/hash"
)

type mockRepo struct {
	createFn  func(ctx context.Context, u *model.User) error
	byEmailFn func(ctx context.Context, email string) (*model.User, error)
	byIDFn    func(ctx context.Context, id string) (*model.User, error)
	hasRoleFn func(ctx context.Context, role model.Role) (bool, error)
}

var _ userrepo.Repo = (*mockRepo)(nil)

func (m *mockRepo) Create(ctx context.Context, u *model.User) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, u)
}

func (m *mockRepo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.byEmailFn == nil {
		return nil, sql.ErrNoRows
	}
	return m.byEmailFn(ctx, email)
}

func (m *mockRepo) ByID(ctx context.Context, id string) (*model.User, error) {
	if m.byIDFn == nil {
		return nil, sql.ErrNoRows
	}
	return m.byIDFn(ctx, id)
}

func (m *mockRepo) HasRole(ctx context.Context, role model.Role) (bool, error) {
	if m.hasRoleFn == nil {
		return false, nil
	}
	return m.hasRoleFn(ctx, role)
}

type noopMailer struct{ sent int }

func (m *noopMailer) Send(context.Context, mailerrepo.Message) error {
	m.sent++
	return nil
}

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	h, err := hash.HashPassword(plain)
	require.NoError(t, err)
	return h
}

func TestRegister_DuplicateEmail(t *testing.T) {
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"}
		},
	}
	svc := New(m, &noopMailer{}, "test-secret", "https://example.test/verify")

	_, _, err := svc.Register(context.Background(), model.RegisterReq{
		FirstName: "Ada", LastName: "Lovelace",
		Email: "ada@example.com", Username: "ada", Password: "secret1",
	})
	require.Error(t, err)
	require.Equal(t, apperr.Conflict, apperr.KindOf(err))
	require.EqualError(t, err, "email already registered")
}

func TestRegister_DuplicateUsername(t *testing.T) {
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_username_key"}
		},
	}
	svc := New(m, &noopMailer{}, "test-secret", "https://example.test/verify")

	_, _, err := svc.Register(context.Background(), model.RegisterReq{
		FirstName: "Ada", LastName: "Lovelace",
		Email: "ada@example.com", Username: "ada", Password: "secret1",
	})
	require.EqualError(t, err, "username already taken")
}

func TestRegister_SendsVerificationMail(t *testing.T) {
	mail := &noopMailer{}
	svc := New(&mockRepo{}, mail, "test-secret", "https://example.test/verify")

	u, token, err := svc.Register(context.Background(), model.RegisterReq{
		FirstName: "Ada", LastName: "Lovelace",
		Email: "ada@example.com", Username: "ada", Password: "secret1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, model.RoleUser, u.Role)
	require.Equal(t, 1, mail.sent)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := New(&mockRepo{}, &noopMailer{}, "test-secret", "")

	_, _, err := svc.Login(context.Background(), model.LoginReq{
		Email: "missing@example.com", Password: "whatever",
	})
	require.Error(t, err)
	require.Equal(t, apperr.Unauthorized, apperr.KindOf(err))
}

func TestLogin_WrongPassword(t *testing.T) {
	hashed := mustHash(t, "correct-password")

	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{
				ID:           "u-1",
				Email:        "user@example.com",
				Username:     "ada",
				PasswordHash: hashed,
				Role:         model.RoleUser,
			}, nil
		},
	}
	svc := New(m, &noopMailer{}, "test-secret", "")

	_, _, err := svc.Login(context.Background(), model.LoginReq{
		Email: "user@example.com", Password: "wrong-password",
	})
	require.Error(t, err)
	require.Equal(t, apperr.Unauthorized, apperr.KindOf(err))
}

func TestLogin_Success(t *testing.T) {
	hashed := mustHash(t, "correct-password")

	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: "u-1", Email: email, PasswordHash: hashed, Role: model.RoleUser}, nil
		},
	}
	svc := New(m, &noopMailer{}, "test-secret", "")

	u, token, err := svc.Login(context.Background(), model.LoginReq{
		Email: "user@example.com", Password: "correct-password",
	})
	require.NoError(t, err)
	require.Equal(t, "u-1", u.ID)
	require.NotEmpty(t, token)
}

func TestBootstrap_Idempotent(t *testing.T) {
	created := 0
	m := &mockRepo{
		hasRoleFn: func(ctx context.Context, role model.Role) (bool, error) {
			return created > 0, nil
		},
		createFn: func(ctx context.Context, u *model.User) error {
			require.Equal(t, model.RoleSuperadmin, u.Role)
			created++
			return nil
		},
	}
	svc := New(m, &noopMailer{}, "test-secret", "")

	require.NoError(t, svc.Bootstrap(context.Background(), "admin@example.com"))
	require.NoError(t, svc.Bootstrap(context.Background(), "admin@example.com"))
	require.Equal(t, 1, created)
}

func TestMapDuplicateErr_PassThrough(t *testing.T) {
	require.Nil(t, mapDuplicateErr(errors.New("plain")))
}
