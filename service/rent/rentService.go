package rent

import (
	"context"
	"database/sql"
	"errors"

	"github.com/odekodu/ecobnb-api/model"
	proprepo "github.com/odekodu/ecobnb-api/repository/property"
	rentrepo "github.com/odekodu/ecobnb-api/repository/rent"
	txnrepo "github.com/odekodu/ecobnb-api/repository/transaction"
	"github.com/odekodu/ecobnb-api/util/apperr"
	"github.com/odekodu/ecobnb-api/util/database"
)

type ListQuery struct {
	Limit    int
	Offset   int
	Asc      bool
	Occupant string
	Property string
}

type Service interface {
	// Request opens a rent in REQUEST state for an active, unrented property.
	Request(ctx context.Context, req model.CreateRentReq, occupant string) (*model.Rent, error)

	Get(ctx context.Context, id string) (*model.Rent, error)
	List(ctx context.Context, q ListQuery) ([]model.Rent, error)

	// Owner transitions.
	Approve(ctx context.Context, id, user string) (*model.Rent, error)
	Reject(ctx context.Context, id, user string) (*model.Rent, error)

	// Occupant transitions.
	Paying(ctx context.Context, id, user string) (*model.Rent, error)
	Pay(ctx context.Context, id, user string, req model.CreateTransactionReq) (*model.Rent, error)
	Cancel(ctx context.Context, id, user string) (*model.Rent, error)
	CancelPayment(ctx context.Context, id, user string) (*model.Rent, error)
}

type service struct {
	db         *sql.DB
	r          rentrepo.Repo
	p          proprepo.Repo
	t          txnrepo.Repo
	replicated bool
	pageLimit  int
}

func New(db *sql.DB, r rentrepo.Repo, p proprepo.Repo, t txnrepo.Repo, replicated bool, pageLimit int) Service {
	return &service{db: db, r: r, p: p, t: t, replicated: replicated, pageLimit: pageLimit}
}

func (s *service) getProperty(ctx context.Context, id string) (*model.Property, error) {
	p, err := s.p.FindByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.New(apperr.NotFound, "Property not found")
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) getRent(ctx context.Context, run database.Runner, id string, lock bool) (*model.Rent, error) {
	var (
		rent *model.Rent
		err  error
	)
	if lock {
		rent, err = s.r.LockByID(ctx, run, id)
	} else {
		rent, err = s.r.FindByID(ctx, run, id)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.New(apperr.NotFound, "Rent not found")
	}
	if err != nil {
		return nil, err
	}
	return rent, nil
}

// maybe swallows the no-rows case for advisory lookups.
func maybe(rent *model.Rent, err error) (*model.Rent, error) {
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return rent, err
}

func (s *service) Request(ctx context.Context, req model.CreateRentReq, occupant string) (*model.Rent, error) {
	property, err := s.getProperty(ctx, req.Property)
	if err != nil {
		return nil, err
	}
	if !property.Active {
		return nil, apperr.New(apperr.BadRequest, "This property is not active at the moment")
	}

	paid, err := maybe(s.r.FindOneByPropertyStatus(ctx, nil, req.Property, model.RentPaid))
	if err != nil {
		return nil, err
	}
	if paid != nil {
		return nil, apperr.New(apperr.Conflict, "This property has already been rented")
	}

	open, err := maybe(s.r.FindOpenRequest(ctx, nil, req.Property, occupant))
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, apperr.New(apperr.Conflict, "You have an open rent request on this property")
	}

	rent := &model.Rent{
		Property: req.Property,
		Occupant: occupant,
		Duration: req.Duration,
		Status:   model.RentRequest,
	}
	if err := s.r.Insert(ctx, nil, rent); err != nil {
		return nil, err
	}
	return rent, nil
}

func (s *service) Get(ctx context.Context, id string) (*model.Rent, error) {
	return s.getRent(ctx, nil, id, false)
}

func (s *service) List(ctx context.Context, q ListQuery) ([]model.Rent, error) {
	if q.Limit <= 0 {
		q.Limit = s.pageLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return s.r.List(ctx, rentrepo.ListFilter{
		Occupant: q.Occupant,
		Property: q.Property,
		Limit:    q.Limit,
		Offset:   q.Offset,
		Asc:      q.Asc,
	})
}

func (s *service) Approve(ctx context.Context, id, user string) (*model.Rent, error) {
	var out *model.Rent
	err := database.WithTx(ctx, s.db, s.replicated, func(run database.Runner) error {
		rent, err := s.getRent(ctx, run, id, true)
		if err != nil {
			return err
		}
		property, err := s.getProperty(ctx, rent.Property)
		if err != nil {
			return err
		}
		if property.Owner != user {
			return apperr.New(apperr.Unauthorized, "You are not authorized to approve your rent request")
		}

		paying, err := maybe(s.r.FindOneByPropertyStatus(ctx, run, rent.Property, model.RentPaying))
		if err != nil {
			return err
		}
		if paying != nil {
			return apperr.New(apperr.BadRequest, "An approved request has initiated payment, you can not approve another request at the moment")
		}

		if rent.Status != model.RentRequest && rent.Status != model.RentRejected {
			return apperr.New(apperr.BadRequest, "Only rents at (request or rejected) state can be approved")
		}

		if _, err := s.r.UpdateStatus(ctx, run, id, model.RentApproved); err != nil {
			return err
		}
		rent.Status = model.RentApproved
		out = rent
		return nil
	})
	return out, err
}

func (s *service) Reject(ctx context.Context, id, user string) (*model.Rent, error) {
	var out *model.Rent
	err := database.WithTx(ctx, s.db, s.replicated, func(run database.Runner) error {
		rent, err := s.getRent(ctx, run, id, true)
		if err != nil {
			return err
		}
		property, err := s.getProperty(ctx, rent.Property)
		if err != nil {
			return err
		}
		if property.Owner != user {
			return apperr.New(apperr.Unauthorized, "You are not authorized to reject your rent request")
		}

		if rent.Status == model.RentPaying {
			return apperr.New(apperr.BadRequest, "The rent is currently on a paying state, you can not reject it")
		}

		if rent.Status != model.RentRequest && rent.Status != model.RentApproved {
			return apperr.New(apperr.BadRequest, "Only rents at (request or approved) state can be rejected")
		}

		if _, err := s.r.UpdateStatus(ctx, run, id, model.RentRejected); err != nil {
			return err
		}
		rent.Status = model.RentRejected
		out = rent
		return nil
	})
	return out, err
}

func (s *service) Paying(ctx context.Context, id, user string) (*model.Rent, error) {
	var out *model.Rent
	err := database.WithTx(ctx, s.db, s.replicated, func(run database.Runner) error {
		rent, err := s.getRent(ctx, run, id, true)
		if err != nil {
			return err
		}
		if rent.Occupant != user {
			return apperr.New(apperr.Unauthorized, "You are not authorized to pay for this rent, it does not belong to you")
		}

		// Duplicate-initiation checks run before the state check.
		paying, err := maybe(s.r.FindOneByPropertyStatus(ctx, run, rent.Property, model.RentPaying))
		if err != nil {
			return err
		}
		if paying != nil && paying.Occupant == user {
			return apperr.New(apperr.BadRequest, "You have already initiated payment for this rent")
		}
		if paying != nil {
			return apperr.New(apperr.BadRequest, "A payment request has initiated on this rent, you can not pay for it at the moment")
		}

		if rent.Status != model.RentApproved {
			return apperr.New(apperr.BadRequest, "You can only pay for rents that are in approved state")
		}

		if _, err := s.r.UpdateStatus(ctx, run, id, model.RentPaying); err != nil {
			return err
		}
		rent.Status = model.RentPaying
		out = rent
		return nil
	})
	return out, err
}

func (s *service) Pay(ctx context.Context, id, user string, req model.CreateTransactionReq) (*model.Rent, error) {
	var out *model.Rent
	err := database.WithTx(ctx, s.db, s.replicated, func(run database.Runner) error {
		rent, err := s.getRent(ctx, run, id, true)
		if err != nil {
			return err
		}
		if req.Transactable != model.TransactableRent || req.Item != id {
			return apperr.New(apperr.BadRequest, "Transaction mismatch: Transaction not meant for this rent")
		}
		if rent.Occupant != user {
			return apperr.New(apperr.Unauthorized, "You are not authorized to pay for this rent, it does not belong to you")
		}
		if rent.Status != model.RentPaying {
			return apperr.New(apperr.BadRequest, "Only rents at (paying) state can be paid")
		}

		txn := &model.Transaction{
			Amount:       req.Amount,
			From:         req.From,
			To:           req.To,
			Transactable: req.Transactable,
			Item:         req.Item,
			Platform:     req.Platform,
			Reference:    req.Reference,
		}
		if err := s.t.Insert(ctx, run, txn); err != nil {
			return err
		}

		if _, err := s.r.UpdateStatus(ctx, run, id, model.RentPaid); err != nil {
			return err
		}
		rent.Status = model.RentPaid
		out = rent
		return nil
	})
	return out, err
}

func (s *service) Cancel(ctx context.Context, id, user string) (*model.Rent, error) {
	rent, err := s.getRent(ctx, nil, id, false)
	if err != nil {
		return nil, err
	}
	if rent.Occupant != user {
		return nil, apperr.New(apperr.Unauthorized, "You are not authorized to cancel for this rent, it does not belong to you")
	}
	if rent.Status != model.RentRequest && rent.Status != model.RentApproved {
		return nil, apperr.New(apperr.BadRequest, "Only rents at (request or approved) state can be canceled")
	}

	ok, err := s.r.UpdateStatus(ctx, nil, id, model.RentCanceled)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.New(apperr.NotFound, "Rent not found")
	}
	rent.Status = model.RentCanceled
	return rent, nil
}

func (s *service) CancelPayment(ctx context.Context, id, user string) (*model.Rent, error) {
	rent, err := s.getRent(ctx, nil, id, false)
	if err != nil {
		return nil, err
	}
	if rent.Occupant != user {
		return nil, apperr.New(apperr.Unauthorized, "You are not authorized to cancel payment for this rent, it does not belong to you")
	}
	if rent.Status != model.RentPaying {
		return nil, apperr.New(apperr.BadRequest, "Only rents at (paying) state can have the payment cancelled")
	}

	ok, err := s.r.UpdateStatus(ctx, nil, id, model.RentApproved)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.New(apperr.NotFound, "Rent not found")
	}
	rent.Status = model.RentApproved
	return rent, nil
}
