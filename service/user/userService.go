package usersvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/odekodu/ecobnb-api/model"
	mailerrepo "github.com/odekodu/ecobnb-api/repository/mailer"
	userrepo "github.com/odekodu/ecobnb-api/repository/user"
	"github.com/odekodu/ecobnb-api/util/apperr"
	"github.com/odekodu/ecobnb-api/util/hash"
	jwtutil "github.com/odekodu/ecobnb-api/util/jwt"
)

type Service interface {
	Register(ctx context.Context, req model.RegisterReq) (*model.User, string, error)
	Login(ctx context.Context, req model.LoginReq) (*model.User, string, error)
	Get(ctx context.Context, id string) (*model.User, error)

	// Bootstrap seeds the default superadmin once at process start.
	Bootstrap(ctx context.Context, defaultEmail string) error
}

type service struct {
	ur     userrepo.Repo
	mailer mailerrepo.Repo
	secret string
	verify string
}

func New(ur userrepo.Repo, mailer mailerrepo.Repo, secret, verifyURL string) Service {
	return &service{ur: ur, mailer: mailer, secret: secret, verify: verifyURL}
}

func (s *service) Register(ctx context.Context, req model.RegisterReq) (*model.User, string, error) {
	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	u := &model.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Username:     req.Username,
		Role:         model.RoleUser,
		PasswordHash: hashed,
	}

	if err := s.ur.Create(ctx, u); err != nil {
		if derr := mapDuplicateErr(err); derr != nil {
			return nil, "", derr
		}
		return nil, "", err
	}

	token, err := jwtutil.Issue(s.secret, u.ID, string(u.Role), 24)
	if err != nil {
		return nil, "", err
	}

	// Verification mail failure is not fatal to registration.
	_ = s.mailer.Send(ctx, mailerrepo.Message{
		To:       u.Email,
		Subject:  "Verify your account",
		Template: mailerrepo.TemplateVerifyUser,
		Context:  map[string]any{"name": u.FirstName, "url": s.verify},
	})

	return u, token, nil
}

func mapDuplicateErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		cn := strings.ToLower(pgErr.ConstraintName)
		msg := strings.ToLower(pgErr.Message)

		if strings.Contains(cn, "users_email") || strings.Contains(msg, "email") {
			return apperr.New(apperr.Conflict, "email already registered")
		}
		if strings.Contains(cn, "users_username") || strings.Contains(msg, "username") {
			return apperr.New(apperr.Conflict, "username already taken")
		}
		return apperr.New(apperr.BadRequest, "bad input")
	}
	return nil
}

func (s *service) Login(ctx context.Context, req model.LoginReq) (*model.User, string, error) {
	u, err := s.ur.ByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", apperr.New(apperr.Unauthorized, "invalid email or password")
	}
	if !hash.Check(u.PasswordHash, req.Password) {
		return nil, "", apperr.New(apperr.Unauthorized, "invalid email or password")
	}
	token, err := jwtutil.Issue(s.secret, u.ID, string(u.Role), 24)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *service) Get(ctx context.Context, id string) (*model.User, error) {
	u, err := s.ur.ByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.New(apperr.NotFound, "User not found")
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Bootstrap(ctx context.Context, defaultEmail string) error {
	exists, err := s.ur.HasRole(ctx, model.RoleSuperadmin)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.ur.Create(ctx, &model.User{
		FirstName: "default",
		LastName:  "admin",
		Email:     defaultEmail,
		Username:  "superadmin",
		Role:      model.RoleSuperadmin,
	})
}
