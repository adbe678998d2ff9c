package transaction

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/odekodu/ecobnb-api/model"
	"github.com/odekodu/ecobnb-api/util/database"
)

type ListFilter struct {
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

type Repo interface {
	Insert(ctx context.Context, run database.Runner, t *model.Transaction) error
	FindByID(ctx context.Context, id string) (*model.Transaction, error)
	List(ctx context.Context, f ListFilter) ([]model.Transaction, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

const txnCols = `id, amount, sender, recipient, transactable, item, platform, reference, created_at, updated_at`

func scanTxn(row interface{ Scan(...any) error }) (*model.Transaction, error) {
	var t model.Transaction
	err := row.Scan(&t.ID, &t.Amount, &t.From, &t.To, &t.Transactable, &t.Item,
		&t.Platform, &t.Reference, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repo) Insert(ctx context.Context, run database.Runner, t *model.Transaction) error {
	if run == nil {
		run = r.db
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	const q = `
		INSERT INTO transactions (id, amount, sender, recipient, transactable, item, platform, reference)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`
	return run.QueryRowContext(ctx, q,
		t.ID, t.Amount, t.From, t.To, t.Transactable, t.Item, t.Platform, t.Reference,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
}

func (r *repo) FindByID(ctx context.Context, id string) (*model.Transaction, error) {
	const q = `SELECT ` + txnCols + ` FROM transactions WHERE id = $1`
	return scanTxn(r.db.QueryRowContext(ctx, q, id))
}

func (r *repo) List(ctx context.Context, f ListFilter) ([]model.Transaction, error) {
	order := "DESC"
	if f.Asc {
		order = "ASC"
	}
	q := `
		SELECT ` + txnCols + `
		FROM transactions
		WHERE ($1::timestamptz IS NULL OR created_at >= $1)
		AND ($2::timestamptz IS NULL OR created_at <= $2)
		AND ($3::numeric IS NULL OR amount >= $3)
		AND ($4::numeric IS NULL OR amount <= $4)
		AND ($5 = '' OR transactable = $5)
		AND ($6 = '' OR item = $6)
		ORDER BY created_at ` + order + `
		LIMIT $7 OFFSET $8`
	rows, err := r.db.QueryContext(ctx, q,
		f.MinDate, f.MaxDate, f.MinAmount, f.MaxAmount, string(f.Transactable), f.Item,
		f.Limit, f.Offset*f.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Transaction
	for rows.Next() {
		t, err := scanTxn(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}
