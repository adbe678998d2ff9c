package rent

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/odekodu/ecobnb-api/model"
	mailerrepo "github.com/odekodu/ecobnb-api/repository/mailer"
	notifrepo "github.com/odekodu/ecobnb-api/repository/notification"
	proprepo "github.com/odekodu/ecobnb-api/repository/property"
	rentrepo "github.com/odekodu/ecobnb-api/repository/rent"
	txnrepo "github.com/odekodu/ecobnb-api/repository/transaction"
	userrepo "github.com/odekodu/ecobnb-api/repository/user"
)

// Reminder sweeps all PAID rents, mailing occupants whose paid period is about to
// run out and expiring the ones whose period is over.
type Reminder interface {
	Sweep(ctx context.Context)
}

type reminder struct {
	r         rentrepo.Repo
	t         txnrepo.Repo
	u         userrepo.Repo
	p         proprepo.Repo
	n         notifrepo.Repo
	m         mailerrepo.Repo
	verifyURL string
	log       *slog.Logger
	now       func() time.Time
}

func NewReminder(r rentrepo.Repo, t txnrepo.Repo, u userrepo.Repo, p proprepo.Repo, n notifrepo.Repo, m mailerrepo.Repo, verifyURL string, log *slog.Logger) Reminder {
	return &reminder{r: r, t: t, u: u, p: p, n: n, m: m, verifyURL: verifyURL, log: log, now: time.Now}
}

func (c *reminder) Sweep(ctx context.Context) {
	rents, err := c.r.ListByStatus(ctx, model.RentPaid)
	if err != nil {
		c.log.Error("reminder sweep: list paid rents", "err", err)
		return
	}

	// Each rent is processed independently; one failure never blocks the rest.
	var wg sync.WaitGroup
	for _, rent := range rents {
		wg.Add(1)
		go func(rent model.Rent) {
			defer wg.Done()
			if err := c.remind(ctx, rent); err != nil {
				c.log.Error("reminder sweep: rent", "rent", rent.ID, "err", err)
			}
		}(rent)
	}
	wg.Wait()
}

// remaining computes whole days and whole hours until the paid period runs out,
// truncated toward zero.
func remaining(funded time.Time, durationDays int, now time.Time) (daysLeft, hoursLeft int) {
	expiresAt := funded.AddDate(0, 0, durationDays)
	diff := expiresAt.Sub(now)
	return int(diff.Hours() / 24), int(diff.Hours())
}

func (c *reminder) remind(ctx context.Context, rent model.Rent) error {
	txns, err := c.t.List(ctx, txnrepo.ListFilter{
		Transactable: model.TransactableRent,
		Item:         rent.ID,
		Limit:        1,
	})
	if err != nil {
		return err
	}
	if len(txns) == 0 {
		return errors.New("no funding transaction on record")
	}

	daysLeft, hoursLeft := remaining(txns[0].CreatedAt, rent.Duration, c.now())

	user, err := c.u.ByID(ctx, rent.Occupant)
	if err != nil {
		return err
	}
	property, err := c.p.FindByID(ctx, rent.Property)
	if err != nil {
		return err
	}

	switch {
	case daysLeft == 0 && hoursLeft == 0:
		if _, err := c.r.UpdateStatus(ctx, nil, rent.ID, model.RentExpired); err != nil {
			return err
		}
		return c.sendReminder(ctx, user, property, daysLeft)
	case daysLeft == 0 && hoursLeft <= 1:
		// One whole hour left: no action.
		// TODO: send a final-hour warning here instead of staying silent.
		return nil
	case daysLeft == 1:
		return c.sendReminder(ctx, user, property, daysLeft)
	}
	return nil
}

func (c *reminder) sendReminder(ctx context.Context, user *model.User, property *model.Property, daysLeft int) error {
	data := map[string]any{
		"url":      c.verifyURL,
		"name":     user.FirstName,
		"daysLeft": daysLeft,
		"property": property.Title,
	}
	if err := c.m.Send(ctx, mailerrepo.Message{
		To:       user.Email,
		Subject:  "Rent Reminder",
		Template: mailerrepo.TemplateRentReminder,
		Context:  data,
	}); err != nil {
		return err
	}
	return c.n.Insert(ctx, &model.Notification{
		UserID:   user.ID,
		Template: mailerrepo.TemplateRentReminder,
		Data:     data,
	})
}
