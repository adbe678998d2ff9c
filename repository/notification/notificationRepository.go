package notification

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/odekodu/ecobnb-api/model"
)

type Repo interface {
	Insert(ctx context.Context, n *model.Notification) error
	FindByID(ctx context.Context, id string) (*model.Notification, error)
	List(ctx context.Context, limit, offset int, asc bool) ([]model.Notification, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Insert(ctx context.Context, n *model.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	data, err := json.Marshal(n.Data)
	if err != nil {
		return err
	}
	const q = `
		INSERT INTO notifications (id, user_id, template, data)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`
	return r.db.QueryRowContext(ctx, q, n.ID, n.UserID, n.Template, data).Scan(&n.CreatedAt)
}

func (r *repo) FindByID(ctx context.Context, id string) (*model.Notification, error) {
	const q = `SELECT id, user_id, template, data, created_at FROM notifications WHERE id = $1`
	return scanNotification(r.db.QueryRowContext(ctx, q, id))
}

func (r *repo) List(ctx context.Context, limit, offset int, asc bool) ([]model.Notification, error) {
	order := "DESC"
	if asc {
		order = "ASC"
	}
	q := `
		SELECT id, user_id, template, data, created_at
		FROM notifications
		ORDER BY created_at ` + order + `
		LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, q, limit, offset*limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *n)
	}
	return out, rows.Err()
}

func scanNotification(row interface{ Scan(...any) error }) (*model.Notification, error) {
	var n model.Notification
	var data []byte
	if err := row.Scan(&n.ID, &n.UserID, &n.Template, &data, &n.CreatedAt); err != nil {
		return nil, err
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &n.Data); err != nil {
			return nil, err
		}
	}
	return &n, nil
}
