package mailerrepo

import "context"

const (
	TemplateRentReminder = "rent-reminder"
	TemplateVerifyUser   = "verify-user"
)

type Message struct {
	To       string
	Subject  string
	Template string
	Context  map[string]any
}

type Repo interface {
	Send(ctx context.Context, msg Message) error
}
