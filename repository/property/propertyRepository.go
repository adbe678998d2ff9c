package property

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/odekodu/ecobnb-api/model"
)

type ListFilter struct {
	Query  string // free-text match over title/description/address/country/state/city
	Limit  int
	Offset int
	Asc    bool
}

type Repo interface {
	Insert(ctx context.Context, p *model.Property) error
	FindByID(ctx context.Context, id string) (*model.Property, error)
	List(ctx context.Context, f ListFilter) ([]model.Property, error)
	Update(ctx context.Context, id string, req model.UpdatePropertyReq) (bool, error)
	Hide(ctx context.Context, id string) (bool, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

const propertyCols = `id, owner, title, country, state, city, address, price, active, description, hidden, created_at, updated_at`

func scanProperty(row interface{ Scan(...any) error }) (*model.Property, error) {
	var p model.Property
	err := row.Scan(&p.ID, &p.Owner, &p.Title, &p.Country, &p.State, &p.City, &p.Address,
		&p.Price, &p.Active, &p.Description, &p.Hidden, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repo) Insert(ctx context.Context, p *model.Property) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	const q = `
		INSERT INTO properties (id, owner, title, country, state, city, address, price, active, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`
	return r.db.QueryRowContext(ctx, q,
		p.ID, p.Owner, p.Title, p.Country, p.State, p.City, p.Address, p.Price, p.Active, p.Description,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *repo) FindByID(ctx context.Context, id string) (*model.Property, error) {
	const q = `SELECT ` + propertyCols + ` FROM properties WHERE id = $1`
	return scanProperty(r.db.QueryRowContext(ctx, q, id))
}

func (r *repo) List(ctx context.Context, f ListFilter) ([]model.Property, error) {
	order := "DESC"
	if f.Asc {
		order = "ASC"
	}
	q := `
		SELECT ` + propertyCols + `
		FROM properties
		WHERE hidden = FALSE
		AND ($1 = '' OR title ILIKE '%' || $1 || '%'
			OR description ILIKE '%' || $1 || '%'
			OR address ILIKE '%' || $1 || '%'
			OR country ILIKE '%' || $1 || '%'
			OR state ILIKE '%' || $1 || '%'
			OR city ILIKE '%' || $1 || '%')
		ORDER BY created_at ` + order + `
		LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, q, f.Query, f.Limit, f.Offset*f.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *repo) Update(ctx context.Context, id string, req model.UpdatePropertyReq) (bool, error) {
	const q = `
		UPDATE properties
		SET title       = COALESCE($2, title),
			country     = COALESCE($3, country),
			state       = COALESCE($4, state),
			city        = COALESCE($5, city),
			address     = COALESCE($6, address),
			price       = COALESCE($7, price),
			active      = COALESCE($8, active),
			description = COALESCE($9, description),
			updated_at  = NOW()
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id,
		req.Title, req.Country, req.State, req.City, req.Address, req.Price, req.Active, req.Description)
	if err != nil {
		return false, err
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return aff > 0, nil
}

func (r *repo) Hide(ctx context.Context, id string) (bool, error) {
	const q = `UPDATE properties SET hidden = TRUE, updated_at = NOW() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return false, err
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return aff > 0, nil
}
