package repo

import (
	"fmt"
	"strings"
	"sync"

	"github.com/yourname/cardpay-bot/internal/domain"
)

const shardCount = 32

func shardIndex(user domain.UserID) int {
	return int(uint64(user) % shardCount)
}

type cardShard struct {
	mu    sync.RWMutex
	cards map[domain.UserID][]domain.CreditCard
}

// Cards keeps every user's cards in memory, in insertion order.
// Nothing is persisted: a restart loses all cards.
type Cards struct {
	shards [shardCount]*cardShard
}

func NewCards() *Cards {
	c := &Cards{}
	for i := range c.shards {
		c.shards[i] = &cardShard{cards: make(map[domain.UserID][]domain.CreditCard)}
	}
	return c
}

func (r *Cards) shard(user domain.UserID) *cardShard {
	return r.shards[shardIndex(user)]
}

// List returns a copy of the user's cards. Unknown users get an empty slice.
func (r *Cards) List(user domain.UserID) []domain.CreditCard {
	s := r.shard(user)
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.CreditCard, len(s.cards[user]))
	copy(out, s.cards[user])
	return out
}

// Add appends a card with the default billing cycle. Names are unique per
// user ignoring case.
func (r *Cards) Add(user domain.UserID, name string) (domain.CreditCard, error) {
	s := r.shard(user)
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.cards[user] {
		if strings.EqualFold(c.Name, name) {
			return c, fmt.Errorf("add %q: %w", name, domain.ErrDuplicateCard)
		}
	}

	card := domain.NewCreditCard(name)
	s.cards[user] = append(s.cards[user], card)
	return card, nil
}

// Find matches the stored name exactly.
func (r *Cards) Find(user domain.UserID, name string) (domain.CreditCard, error) {
	s := r.shard(user)
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.cards[user] {
		if c.Name == name {
			return c, nil
		}
	}
	return domain.CreditCard{}, fmt.Errorf("find %q: %w", name, domain.ErrCardNotFound)
}

// SetDueDate updates the due day and re-derives the closing day from it.
func (r *Cards) SetDueDate(user domain.UserID, name string, dueDate int) (domain.CreditCard, error) {
	s := r.shard(user)
	s.mu.Lock()
	defer s.mu.Unlock()

	cards := s.cards[user]
	for i := range cards {
		if cards[i].Name != name {
			continue
		}
		cards[i].DueDate = dueDate
		cards[i].ClosingDate = domain.ClosingDateFor(dueDate)
		return cards[i], nil
	}
	return domain.CreditCard{}, fmt.Errorf("set due date on %q: %w", name, domain.ErrCardNotFound)
}
