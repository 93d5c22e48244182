package domain

import "errors"

// UserID is the Telegram user id. Every piece of per-user state is keyed by it.
type UserID int64

const (
	DefaultDueDate     = 15
	DefaultClosingDate = 13
)

type CreditCard struct {
	Name        string
	DueDate     int // day of month, 1-31
	ClosingDate int // day of month, always >= 1
}

// NewCreditCard returns a card with the default billing cycle.
func NewCreditCard(name string) CreditCard {
	return CreditCard{Name: name, DueDate: DefaultDueDate, ClosingDate: DefaultClosingDate}
}

// ClosingDateFor derives the statement closing day from a due day.
func ClosingDateFor(dueDate int) int {
	return max(dueDate-2, 1)
}

// InputKind says what the next free-text reply of a user means.
type InputKind string

const InputDueDate InputKind = "dueDate"

type PendingInput struct {
	Kind   InputKind
	Target string // card name
}

type StateKind int

const (
	StateIdle StateKind = iota
	StateAwaitingInput
)

func (k StateKind) String() string {
	switch k {
	case StateIdle:
		return "idle"
	case StateAwaitingInput:
		return "awaiting_input"
	default:
		return "unknown"
	}
}

// ConversationState is Idle or AwaitingInput; Input is only set for the latter.
type ConversationState struct {
	Kind  StateKind
	Input PendingInput
}

func Idle() ConversationState { return ConversationState{Kind: StateIdle} }

func AwaitingInput(in PendingInput) ConversationState {
	return ConversationState{Kind: StateAwaitingInput, Input: in}
}

var (
	ErrDuplicateCard       = errors.New("card already exists")
	ErrCardNotFound        = errors.New("card not found")
	ErrInvalidNumericInput = errors.New("invalid numeric input")
	ErrNoCandidate         = errors.New("no recommendation candidate")
	ErrDelivery            = errors.New("transport delivery failed")
)
