// Package recommend picks the card to pay this cycle.
package recommend

import (
	"time"

	"github.com/yourname/cardpay-bot/internal/domain"
)

const Reason = "This card is recommended because its statement has already closed, and it has the latest payment due date."

var ErrNoCandidate = domain.ErrNoCandidate

type Recommendation struct {
	Card   domain.CreditCard
	Due    time.Time
	Reason string
}

// Recommend keeps the cards whose statement closed before today and returns
// the one with the latest due day. On a tie the card added first wins.
func Recommend(cards []domain.CreditCard, today time.Time) (Recommendation, error) {
	day := today.Day()

	var (
		best  domain.CreditCard
		found bool
	)
	for _, c := range cards {
		if day <= c.ClosingDate {
			continue
		}
		if !found || c.DueDate > best.DueDate {
			best, found = c, true
		}
	}
	if !found {
		return Recommendation{}, ErrNoCandidate
	}

	return Recommendation{
		Card:   best,
		Due:    DueDate(today, best.DueDate),
		Reason: Reason,
	}, nil
}

// DueDate projects a due day onto the calendar: the current month unless the
// day has already passed, otherwise next month. Days past the end of a month
// are not clamped; time.Date normalises them into the following month.
func DueDate(today time.Time, dueDay int) time.Time {
	y, m, d := today.Date()
	if dueDay < d {
		m++
		if m > time.December {
			m = time.January
			y++
		}
	}
	return time.Date(y, m, dueDay, 0, 0, 0, 0, today.Location())
}
