package property

import (
	"context"
	"database/sql"
	"errors"

	"github.com/odekodu/ecobnb-api/model"
	proprepo "github.com/odekodu/ecobnb-api/repository/property"
	"github.com/odekodu/ecobnb-api/util/apperr"
)

type ListQuery struct {
	Query  string
	Limit  int
	Offset int
	Asc    bool
}

type Service interface {
	Create(ctx context.Context, req model.CreatePropertyReq, owner string) (*model.Property, error)
	Get(ctx context.Context, id string) (*model.Property, error)
	List(ctx context.Context, q ListQuery) ([]model.Property, error)
	Update(ctx context.Context, id string, req model.UpdatePropertyReq, owner string) (*model.Property, error)
	Remove(ctx context.Context, id, owner string) error
}

type service struct {
	r         proprepo.Repo
	pageLimit int
}

func New(r proprepo.Repo, pageLimit int) Service {
	return &service{r: r, pageLimit: pageLimit}
}

func (s *service) Create(ctx context.Context, req model.CreatePropertyReq, owner string) (*model.Property, error) {
	p := &model.Property{
		Owner:       owner,
		Title:       req.Title,
		Country:     req.Country,
		State:       req.State,
		City:        req.City,
		Address:     req.Address,
		Price:       req.Price,
		Description: req.Description,
	}
	if err := s.r.Insert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Get(ctx context.Context, id string) (*model.Property, error) {
	p, err := s.r.FindByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.New(apperr.NotFound, "Property not found")
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) List(ctx context.Context, q ListQuery) ([]model.Property, error) {
	if q.Limit <= 0 {
		q.Limit = s.pageLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return s.r.List(ctx, proprepo.ListFilter{
		Query:  q.Query,
		Limit:  q.Limit,
		Offset: q.Offset,
		Asc:    q.Asc,
	})
}

func (s *service) Update(ctx context.Context, id string, req model.UpdatePropertyReq, owner string) (*model.Property, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Owner != owner {
		return nil, apperr.New(apperr.Unauthorized, "You are not authorized")
	}
	if _, err := s.r.Update(ctx, id, req); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *service) Remove(ctx context.Context, id, owner string) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if p.Owner != owner {
		return apperr.New(apperr.Unauthorized, "You are not authorized")
	}
	_, err = s.r.Hide(ctx, id)
	return err
}
