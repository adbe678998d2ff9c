package notification

import (
	"context"
	"database/sql"
	"errors"

	"github.com/odekodu/ecobnb-api/model"
	notifrepo "github.com/odekodu/ecobnb-api/repository/notification"
	"github.com/odekodu/ecobnb-api/util/apperr"
)

type Service interface {
	Get(ctx context.Context, id string) (*model.Notification, error)
	List(ctx context.Context, limit, offset int, asc bool) ([]model.Notification, error)
}

type service struct {
	r         notifrepo.Repo
	pageLimit int
}

func New(r notifrepo.Repo, pageLimit int) Service {
	return &service{r: r, pageLimit: pageLimit}
}

func (s *service) Get(ctx context.Context, id string) (*model.Notification, error) {
	n, err := s.r.FindByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.New(apperr.NotFound, "Notification not found")
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (s *service) List(ctx context.Context, limit, offset int, asc bool) ([]model.Notification, error) {
	if limit <= 0 {
		limit = s.pageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.r.List(ctx, limit, offset, asc)
}
