package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/yourname/cardpay-bot/internal/domain"
)

type ActionKind int

const (
	ActionMainMenu ActionKind = iota + 1
	ActionAddCardMenu
	ActionViewCards
	ActionSuggest
	ActionAddCard
	ActionAdjustCard
)

const (
	dataMainMenu    = "backToMain"
	dataAddCardMenu = "addCard"
	dataViewCards   = "viewCards"
	dataSuggest     = "getSuggestion"

	prefixAddCard    = "addCard_"
	prefixAdjustCard = "adjustCard_"
)

// Action is what a button press asks for. Card is set only for
// ActionAddCard and ActionAdjustCard.
type Action struct {
	Kind ActionKind
	Card string
}

var ErrUnknownAction = errors.New("unknown action")

func EncodeAction(a Action) string {
	switch a.Kind {
	case ActionMainMenu:
		return dataMainMenu
	case ActionAddCardMenu:
		return dataAddCardMenu
	case ActionViewCards:
		return dataViewCards
	case ActionSuggest:
		return dataSuggest
	case ActionAddCard:
		return prefixAddCard + a.Card
	case ActionAdjustCard:
		return prefixAdjustCard + a.Card
	default:
		return ""
	}
}

// DecodeAction strips a known prefix and keeps the rest verbatim, so card
// names may contain underscores.
func DecodeAction(data string) (Action, error) {
	switch data {
	case dataMainMenu:
		return Action{Kind: ActionMainMenu}, nil
	case dataAddCardMenu:
		return Action{Kind: ActionAddCardMenu}, nil
	case dataViewCards:
		return Action{Kind: ActionViewCards}, nil
	case dataSuggest:
		return Action{Kind: ActionSuggest}, nil
	}

	if name, ok := strings.CutPrefix(data, prefixAddCard); ok && name != "" {
		return Action{Kind: ActionAddCard, Card: name}, nil
	}
	if name, ok := strings.CutPrefix(data, prefixAdjustCard); ok && name != "" {
		return Action{Kind: ActionAdjustCard, Card: name}, nil
	}
	return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, data)
}

// ParseDueDay reads a day of month typed by the user.
func ParseDueDay(text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidNumericInput, text)
	}
	if n < 1 || n > 31 {
		return 0, fmt.Errorf("%w: day %d out of range", domain.ErrInvalidNumericInput, n)
	}
	return n, nil
}
