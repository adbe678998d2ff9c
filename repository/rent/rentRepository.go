// repository/rent/rentRepository.go
package rent

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/odekodu/ecobnb-api/model"
	"github.com/odekodu/ecobnb-api/util/database"
)

type ListFilter struct {
	Occupant string
	Property string
	Limit    int
	Offset   int // page number, skip = Offset*Limit
	Asc      bool
}

type Repo interface {
	Insert(ctx context.Context, run database.Runner, r *model.Rent) error

	// FindByID reads a rent; LockByID additionally takes a row lock when run is a
	// transaction, which serializes competing transitions on the same rent.
	FindByID(ctx context.Context, run database.Runner, id string) (*model.Rent, error)
	LockByID(ctx context.Context, run database.Runner, id string) (*model.Rent, error)

	FindOneByPropertyStatus(ctx context.Context, run database.Runner, property string, status model.RentStatus) (*model.Rent, error)
	FindOpenRequest(ctx context.Context, run database.Runner, property, occupant string) (*model.Rent, error)

	UpdateStatus(ctx context.Context, run database.Runner, id string, status model.RentStatus) (bool, error)

	List(ctx context.Context, f ListFilter) ([]model.Rent, error)
	ListByStatus(ctx context.Context, status model.RentStatus) ([]model.Rent, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

const rentCols = `id, property, occupant, duration, status, created_at, updated_at`

func scanRent(row interface{ Scan(...any) error }) (*model.Rent, error) {
	var r model.Rent
	err := row.Scan(&r.ID, &r.Property, &r.Occupant, &r.Duration, &r.Status, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *repo) Insert(ctx context.Context, run database.Runner, rent *model.Rent) error {
	if run == nil {
		run = r.db
	}
	if rent.ID == "" {
		rent.ID = uuid.NewString()
	}
	if rent.Status == "" {
		rent.Status = model.RentRequest
	}
	const q = `
		INSERT INTO rents (id, property, occupant, duration, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`
	return run.QueryRowContext(ctx, q, rent.ID, rent.Property, rent.Occupant, rent.Duration, rent.Status).
		Scan(&rent.CreatedAt, &rent.UpdatedAt)
}

func (r *repo) FindByID(ctx context.Context, run database.Runner, id string) (*model.Rent, error) {
	if run == nil {
		run = r.db
	}
	const q = `SELECT ` + rentCols + ` FROM rents WHERE id = $1`
	return scanRent(run.QueryRowContext(ctx, q, id))
}

func (r *repo) LockByID(ctx context.Context, run database.Runner, id string) (*model.Rent, error) {
	if run == nil {
		run = r.db
	}
	const q = `SELECT ` + rentCols + ` FROM rents WHERE id = $1 FOR UPDATE`
	return scanRent(run.QueryRowContext(ctx, q, id))
}

func (r *repo) FindOneByPropertyStatus(ctx context.Context, run database.Runner, property string, status model.RentStatus) (*model.Rent, error) {
	if run == nil {
		run = r.db
	}
	const q = `
		SELECT ` + rentCols + `
		FROM rents
		WHERE property = $1 AND status = $2
		ORDER BY updated_at DESC
		LIMIT 1`
	return scanRent(run.QueryRowContext(ctx, q, property, status))
}

func (r *repo) FindOpenRequest(ctx context.Context, run database.Runner, property, occupant string) (*model.Rent, error) {
	if run == nil {
		run = r.db
	}
	const q = `
		SELECT ` + rentCols + `
		FROM rents
		WHERE property = $1 AND occupant = $2 AND status = $3
		LIMIT 1`
	return scanRent(run.QueryRowContext(ctx, q, property, occupant, model.RentRequest))
}

// UpdateStatus is a conditional single-row update; false means the rent vanished.
func (r *repo) UpdateStatus(ctx context.Context, run database.Runner, id string, status model.RentStatus) (bool, error) {
	if run == nil {
		run = r.db
	}
	const q = `
		UPDATE rents
		SET status = $2,
			updated_at = NOW()
		WHERE id = $1`
	res, err := run.ExecContext(ctx, q, id, status)
	if err != nil {
		return false, err
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return aff > 0, nil
}

func (r *repo) List(ctx context.Context, f ListFilter) ([]model.Rent, error) {
	order := "DESC"
	if f.Asc {
		order = "ASC"
	}
	q := `
		SELECT ` + rentCols + `
		FROM rents
		WHERE ($1 = '' OR occupant = $1)
		AND ($2 = '' OR property = $2)
		ORDER BY created_at ` + order + `
		LIMIT $3 OFFSET $4`
	rows, err := r.db.QueryContext(ctx, q, f.Occupant, f.Property, f.Limit, f.Offset*f.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Rent
	for rows.Next() {
		rent, err := scanRent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rent)
	}
	return out, rows.Err()
}

func (r *repo) ListByStatus(ctx context.Context, status model.RentStatus) ([]model.Rent, error) {
	const q = `SELECT ` + rentCols + ` FROM rents WHERE status = $1`
	rows, err := r.db.QueryContext(ctx, q, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Rent
	for rows.Next() {
		rent, err := scanRent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rent)
	}
	return out, rows.Err()
}
