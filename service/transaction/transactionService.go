package transaction

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/odekodu/ecobnb-api/model"
	txnrepo "github.com/odekodu/ecobnb-api/repository/transaction"
	"github.com/odekodu/ecobnb-api/util/apperr"
)

type ListQuery struct {
	MinDate      *time.Time
	MaxDate      *time.Time
	MinAmount    *float64
	MaxAmount    *float64
	Transactable model.Transactable
	Item         string
	Limit        int
	Offset       int
	Asc          bool
}

type Service interface {
	Create(ctx context.Context, req model.CreateTransactionReq) (*model.Transaction, error)
	Get(ctx context.Context, id string) (*model.Transaction, error)
	List(ctx context.Context, q ListQuery) ([]model.Transaction, error)
}

type service struct {
	r         txnrepo.Repo
	pageLimit int
}

func New(r txnrepo.Repo, pageLimit int) Service {
	return &service{r: r, pageLimit: pageLimit}
}

func (s *service) Create(ctx context.Context, req model.CreateTransactionReq) (*model.Transaction, error) {
	t := &model.Transaction{
		Amount:       req.Amount,
		From:         req.From,
		To:           req.To,
		Transactable: req.Transactable,
		Item:         req.Item,
		Platform:     req.Platform,
		Reference:    req.Reference,
	}
	if err := s.r.Insert(ctx, nil, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) Get(ctx context.Context, id string) (*model.Transaction, error) {
	t, err := s.r.FindByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.New(apperr.NotFound, "Transaction not found")
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) List(ctx context.Context, q ListQuery) ([]model.Transaction, error) {
	if q.Limit <= 0 {
		q.Limit = s.pageLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return s.r.List(ctx, txnrepo.ListFilter{
		MinDate:      q.MinDate,
		MaxDate:      q.MaxDate,
		MinAmount:    q.MinAmount,
		MaxAmount:    q.MaxAmount,
		Transactable: q.Transactable,
		Item:         q.Item,
		Limit:        q.Limit,
		Offset:       q.Offset,
		Asc:          q.Asc,
	})
}
