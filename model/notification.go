package model

import "time"

type Notification struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Template  string         `json:"template"`
	Data      map[string]any `json:"data"`
	CreatedAt time.Time      `json:"created_at"`
}
