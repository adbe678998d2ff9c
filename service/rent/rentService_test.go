package rent_test

import (
	"context"
	"database/sql"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/odekodu/ecobnb-api/model"
	proprepo "github.com/odekodu/ecobnb-api/repository/property"
	rentrepo "github.com/odekodu/ecobnb-api/repository/rent"
	txnrepo "github.com/odekodu/ecobnb-api/repository/transaction"
	rentsvc "github.com/odekodu/ecobnb-api/service/rent"
	"github.com/odekodu/ecobnb-api/util/apperr"
	"github.com/odekodu/ecobnb-api/util/database"
)

// ----- in-memory fakes -----

type fakeRentRepo struct {
	rents map[string]*model.Rent
	seq   int
}

var _ rentrepo.Repo = (*fakeRentRepo)(nil)

func newFakeRentRepo() *fakeRentRepo {
	return &fakeRentRepo{rents: map[string]*model.Rent{}}
}

func (f *fakeRentRepo) Insert(_ context.Context, _ database.Runner, r *model.Rent) error {
	f.seq++
	if r.ID == "" {
		r.ID = "rent-" + string(rune('a'+f.seq-1))
	}
	if r.Status == "" {
		r.Status = model.RentRequest
	}
	now := time.Now()
	r.CreatedAt, r.UpdatedAt = now, now
	cp := *r
	f.rents[r.ID] = &cp
	return nil
}

func (f *fakeRentRepo) FindByID(_ context.Context, _ database.Runner, id string) (*model.Rent, error) {
	r, ok := f.rents[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRentRepo) LockByID(ctx context.Context, run database.Runner, id string) (*model.Rent, error) {
	return f.FindByID(ctx, run, id)
}

func (f *fakeRentRepo) FindOneByPropertyStatus(_ context.Context, _ database.Runner, property string, status model.RentStatus) (*model.Rent, error) {
	for _, r := range f.rents {
		if r.Property == property && r.Status == status {
			cp := *r
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeRentRepo) FindOpenRequest(_ context.Context, _ database.Runner, property, occupant string) (*model.Rent, error) {
	for _, r := range f.rents {
		if r.Property == property && r.Occupant == occupant && r.Status == model.RentRequest {
			cp := *r
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeRentRepo) UpdateStatus(_ context.Context, _ database.Runner, id string, status model.RentStatus) (bool, error) {
	r, ok := f.rents[id]
	if !ok {
		return false, nil
	}
	r.Status = status
	r.UpdatedAt = time.Now()
	return true, nil
}

func (f *fakeRentRepo) List(_ context.Context, q rentrepo.ListFilter) ([]model.Rent, error) {
	var out []model.Rent
	for _, r := range f.rents {
		if q.Occupant != "" && r.Occupant != q.Occupant {
			continue
		}
		if q.Property != "" && r.Property != q.Property {
			continue
		}
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		if q.Asc {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[j].CreatedAt.Before(out[i].CreatedAt)
	})
	return out, nil
}

func (f *fakeRentRepo) ListByStatus(_ context.Context, status model.RentStatus) ([]model.Rent, error) {
	var out []model.Rent
	for _, r := range f.rents {
		if r.Status == status {
			out = append(out, *r)
		}
	}
	return out, nil
}

type fakePropRepo struct {
	props map[string]*model.Property
}

var _ proprepo.Repo = (*fakePropRepo)(nil)

func (f *fakePropRepo) Insert(_ context.Context, p *model.Property) error {
	f.props[p.ID] = p
	return nil
}

func (f *fakePropRepo) FindByID(_ context.Context, id string) (*model.Property, error) {
	p, ok := f.props[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return p, nil
}

func (f *fakePropRepo) List(_ context.Context, _ proprepo.ListFilter) ([]model.Property, error) {
	return nil, nil
}

func (f *fakePropRepo) Update(_ context.Context, _ string, _ model.UpdatePropertyReq) (bool, error) {
	return true, nil
}

func (f *fakePropRepo) Hide(_ context.Context, _ string) (bool, error) { return true, nil }

type fakeTxnRepo struct {
	txns []model.Transaction
}

var _ txnrepo.Repo = (*fakeTxnRepo)(nil)

func (f *fakeTxnRepo) Insert(_ context.Context, _ database.Runner, t *model.Transaction) error {
	if t.ID == "" {
		t.ID = "txn-1"
	}
	t.CreatedAt = time.Now()
	f.txns = append(f.txns, *t)
	return nil
}

func (f *fakeTxnRepo) FindByID(_ context.Context, id string) (*model.Transaction, error) {
	for _, t := range f.txns {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeTxnRepo) List(_ context.Context, q txnrepo.ListFilter) ([]model.Transaction, error) {
	var out []model.Transaction
	for _, t := range f.txns {
		if q.Transactable != "" && t.Transactable != q.Transactable {
			continue
		}
		if q.Item != "" && t.Item != q.Item {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// ----- helpers -----

const (
	ownerID    = "owner-1"
	occupantID = "occupant-1"
	otherID    = "occupant-2"
	propID     = "prop-1"
)

func newService(t *testing.T) (rentsvc.Service, *fakeRentRepo, *fakePropRepo, *fakeTxnRepo) {
	t.Helper()
	rr := newFakeRentRepo()
	pr := &fakePropRepo{props: map[string]*model.Property{
		propID: {ID: propID, Owner: ownerID, Title: "Lakeside flat", Active: true},
	}}
	tr := &fakeTxnRepo{}
	return rentsvc.New(nil, rr, pr, tr, false, 10), rr, pr, tr
}

func request(t *testing.T, s rentsvc.Service, occupant string) *model.Rent {
	t.Helper()
	rent, err := s.Request(context.Background(), model.CreateRentReq{Property: propID, Duration: 7}, occupant)
	require.NoError(t, err)
	return rent
}

func payReq(item string) model.CreateTransactionReq {
	return model.CreateTransactionReq{
		Amount:       1200,
		From:         "0xoccupant",
		To:           "0xowner",
		Transactable: model.TransactableRent,
		Item:         item,
		Platform:     "wire",
		Reference:    "ref-1",
	}
}

// ----- request -----

func TestRequest_PropertyNotFound(t *testing.T) {
	s, _, _, _ := newService(t)
	_, err := s.Request(context.Background(), model.CreateRentReq{Property: "nope", Duration: 7}, occupantID)
	require.Equal(t, apperr.NotFound, apperr.KindOf(err))
	require.EqualError(t, err, "Property not found")
}

func TestRequest_InactiveProperty(t *testing.T) {
	s, _, pr, _ := newService(t)
	pr.props[propID].Active = false

	_, err := s.Request(context.Background(), model.CreateRentReq{Property: propID, Duration: 7}, occupantID)
	require.Equal(t, apperr.BadRequest, apperr.KindOf(err))
	require.EqualError(t, err, "This property is not active at the moment")
}

func TestRequest_AlreadyRented(t *testing.T) {
	s, rr, _, _ := newService(t)
	rr.rents["paid"] = &model.Rent{ID: "paid", Property: propID, Occupant: otherID, Status: model.RentPaid}

	_, err := s.Request(context.Background(), model.CreateRentReq{Property: propID, Duration: 7}, occupantID)
	require.Equal(t, apperr.Conflict, apperr.KindOf(err))
	require.EqualError(t, err, "This property has already been rented")
}

func TestRequest_DuplicateOpenRequest(t *testing.T) {
	s, _, _, _ := newService(t)
	request(t, s, occupantID)

	_, err := s.Request(context.Background(), model.CreateRentReq{Property: propID, Duration: 7}, occupantID)
	require.Equal(t, apperr.Conflict, apperr.KindOf(err))
	require.EqualError(t, err, "You have an open rent request on this property")
}

func TestRequest_DistinctOccupantsNoConflict(t *testing.T) {
	s, _, _, _ := newService(t)
	request(t, s, occupantID)
	request(t, s, otherID)

	// a repeat by the first occupant still conflicts
	_, err := s.Request(context.Background(), model.CreateRentReq{Property: propID, Duration: 7}, occupantID)
	require.Equal(t, apperr.Conflict, apperr.KindOf(err))
}

// ----- approve / reject -----

func TestApprove_NotOwner(t *testing.T) {
	s, _, _, _ := newService(t)
	rent := request(t, s, occupantID)

	for _, status := range []model.RentStatus{model.RentRequest, model.RentApproved, model.RentPaying, model.RentPaid} {
		s2, rr, _, _ := newService(t)
		rr.rents[rent.ID] = &model.Rent{ID: rent.ID, Property: propID, Occupant: occupantID, Status: status}
		_, err := s2.Approve(context.Background(), rent.ID, occupantID)
		require.Equal(t, apperr.Unauthorized, apperr.KindOf(err), "status %s", status)
		require.EqualError(t, err, "You are not authorized to approve your rent request")
	}
}

func TestApprove_CompetingPaying(t *testing.T) {
	s, rr, _, _ := newService(t)
	rent := request(t, s, occupantID)
	rr.rents["other"] = &model.Rent{ID: "other", Property: propID, Occupant: otherID, Status: model.RentPaying}

	_, err := s.Approve(context.Background(), rent.ID, ownerID)
	require.Equal(t, apperr.BadRequest, apperr.KindOf(err))
	require.EqualError(t, err, "An approved request has initiated payment, you can not approve another request at the moment")
}

func TestApprove_WrongState(t *testing.T) {
	s, rr, _, _ := newService(t)
	rent := request(t, s, occupantID)
	rr.rents[rent.ID].Status = model.RentCanceled

	_, err := s.Approve(context.Background(), rent.ID, ownerID)
	require.Equal(t, apperr.BadRequest, apperr.KindOf(err))
	require.EqualError(t, err, "Only rents at (request or rejected) state can be approved")
}

func TestApprove_FromRejected(t *testing.T) {
	s, rr, _, _ := newService(t)
	rent := request(t, s, occupantID)
	rr.rents[rent.ID].Status = model.RentRejected

	out, err := s.Approve(context.Background(), rent.ID, ownerID)
	require.NoError(t, err)
	require.Equal(t, model.RentApproved, out.Status)
}

func TestReject_WhilePaying(t *testing.T) {
	s, rr, _, _ := newService(t)
	rent := request(t, s, occupantID)
	rr.rents[rent.ID].Status = model.RentPaying

	_, err := s.Reject(context.Background(), rent.ID, ownerID)
	require.Equal(t, apperr.BadRequest, apperr.KindOf(err))
	require.EqualError(t, err, "The rent is currently on a paying state, you can not reject it")
}

func TestReject_WrongState(t *testing.T) {
	s, rr, _, _ := newService(t)
	rent := request(t, s, occupantID)
	rr.rents[rent.ID].Status = model.RentPaid

	_, err := s.Reject(context.Background(), rent.ID, ownerID)
	require.EqualError(t, err, "Only rents at (request or approved) state can be rejected")
}

// ----- paying -----

func TestPaying_NotOccupant(t *testing.T) {
	s, _, _, _ := newService(t)
	rent := request(t, s, occupantID)

	_, err := s.Paying(context.Background(), rent.ID, otherID)
	require.Equal(t, apperr.Unauthorized, apperr.KindOf(err))
	require.EqualError(t, err, "You are not authorized to pay for this rent, it does not belong to you")
}

func TestPaying_SelfDuplicate(t *testing.T) {
	s, rr, _, _ := newService(t)
	rent := request(t, s, occupantID)
	rr.rents[rent.ID].Status = model.RentPaying

	_, err := s.Paying(context.Background(), rent.ID, occupantID)
	require.Equal(t, apperr.BadRequest, apperr.KindOf(err))
	require.EqualError(t, err, "You have already initiated payment for this rent")
}

func TestPaying_BlockedByOtherOccupant(t *testing.T) {
	s, rr, _, _ := newService(t)
	rent := request(t, s, occupantID)
	rr.rents[rent.ID].Status = model.RentApproved
	rr.rents["other"] = &model.Rent{ID: "other", Property: propID, Occupant: otherID, Status: model.RentPaying}

	_, err := s.Paying(context.Background(), rent.ID, occupantID)
	require.Equal(t, apperr.BadRequest, apperr.KindOf(err))
	require.EqualError(t, err, "A payment request has initiated on this rent, you can not pay for it at the moment")
}

func TestPaying_NotApproved(t *testing.T) {
	s, _, _, _ := newService(t)
	rent := request(t, s, occupantID)

	_, err := s.Paying(context.Background(), rent.ID, occupantID)
	require.Equal(t, apperr.BadRequest, apperr.KindOf(err))
	require.EqualError(t, err, "You can only pay for rents that are in approved state")
}

// ----- pay -----

func TestPay_TransactionMismatch(t *testing.T) {
	s, rr, _, _ := newService(t)
	rent := request(t, s, occupantID)
	rr.rents[rent.ID].Status = model.RentPaying

	req := payReq("some-other-rent")
	_, err := s.Pay(context.Background(), rent.ID, occupantID, req)
	require.Equal(t, apperr.BadRequest, apperr.KindOf(err))
	require.EqualError(t, err, "Transaction mismatch: Transaction not meant for this rent")

	req = payReq(rent.ID)
	req.Transactable = model.TransactableSubscription
	_, err = s.Pay(context.Background(), rent.ID, occupantID, req)
	require.EqualError(t, err, "Transaction mismatch: Transaction not meant for this rent")
}

func TestPay_WrongState(t *testing.T) {
	s, rr, _, _ := newService(t)
	rent := request(t, s, occupantID)
	rr.rents[rent.ID].Status = model.RentApproved

	_, err := s.Pay(context.Background(), rent.ID, occupantID, payReq(rent.ID))
	require.EqualError(t, err, "Only rents at (paying) state can be paid")
}

func TestRoundTrip_RequestToPaid(t *testing.T) {
	s, rr, _, tr := newService(t)

	rent := request(t, s, occupantID)
	require.Equal(t, model.RentRequest, rent.Status)

	out, err := s.Approve(context.Background(), rent.ID, ownerID)
	require.NoError(t, err)
	require.Equal(t, model.RentApproved, out.Status)

	out, err = s.Paying(context.Background(), rent.ID, occupantID)
	require.NoError(t, err)
	require.Equal(t, model.RentPaying, out.Status)

	out, err = s.Pay(context.Background(), rent.ID, occupantID, payReq(rent.ID))
	require.NoError(t, err)
	require.Equal(t, model.RentPaid, out.Status)
	require.Equal(t, model.RentPaid, rr.rents[rent.ID].Status)

	require.Len(t, tr.txns, 1)
	require.Equal(t, rent.ID, tr.txns[0].Item)
	require.Equal(t, model.TransactableRent, tr.txns[0].Transactable)
}

// ----- cancel -----

func TestCancel_States(t *testing.T) {
	for _, tc := range []struct {
		status model.RentStatus
		ok     bool
	}{
		{model.RentRequest, true},
		{model.RentApproved, true},
		{model.RentPaying, false},
		{model.RentPaid, false},
		{model.RentRejected, false},
	} {
		s, rr, _, _ := newService(t)
		rent := request(t, s, occupantID)
		rr.rents[rent.ID].Status = tc.status

		out, err := s.Cancel(context.Background(), rent.ID, occupantID)
		if tc.ok {
			require.NoError(t, err, "status %s", tc.status)
			require.Equal(t, model.RentCanceled, out.Status)
		} else {
			require.EqualError(t, err, "Only rents at (request or approved) state can be canceled", "status %s", tc.status)
		}
	}
}

func TestCancelPayment_OnlyFromPaying(t *testing.T) {
	for _, tc := range []struct {
		status model.RentStatus
		ok     bool
	}{
		{model.RentPaying, true},
		{model.RentRequest, false},
		{model.RentApproved, false},
		{model.RentPaid, false},
	} {
		s, rr, _, _ := newService(t)
		rent := request(t, s, occupantID)
		rr.rents[rent.ID].Status = tc.status

		out, err := s.CancelPayment(context.Background(), rent.ID, occupantID)
		if tc.ok {
			require.NoError(t, err)
			require.Equal(t, model.RentApproved, out.Status)
		} else {
			require.EqualError(t, err, "Only rents at (paying) state can have the payment cancelled", "status %s", tc.status)
		}
	}
}

func TestCancel_NotOccupant(t *testing.T) {
	s, _, _, _ := newService(t)
	rent := request(t, s, occupantID)

	_, err := s.Cancel(context.Background(), rent.ID, otherID)
	require.EqualError(t, err, "You are not authorized to cancel for this rent, it does not belong to you")

	_, err = s.CancelPayment(context.Background(), rent.ID, otherID)
	require.EqualError(t, err, "You are not authorized to cancel payment for this rent, it does not belong to you")
}

// ----- get / list -----

func TestGet_NotFound(t *testing.T) {
	s, _, _, _ := newService(t)
	_, err := s.Get(context.Background(), "missing")
	require.Equal(t, apperr.NotFound, apperr.KindOf(err))
	require.EqualError(t, err, "Rent not found")
}

func TestList_Filters(t *testing.T) {
	s, _, _, _ := newService(t)
	request(t, s, occupantID)
	request(t, s, otherID)

	all, err := s.List(context.Background(), rentsvc.ListQuery{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	mine, err := s.List(context.Background(), rentsvc.ListQuery{Occupant: occupantID})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, occupantID, mine[0].Occupant)
}
