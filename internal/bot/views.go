package bot

import (
	"fmt"
	"strings"

	"github.com/yourname/cardpay-bot/internal/domain"
	"github.com/yourname/cardpay-bot/internal/recommend"
)

// Button is one selectable option: what the user sees and the action it sends back.
type Button struct {
	Label  string
	Action string
}

const (
	textMainMenu       = "Main Menu:\n\nChoose an option below:"
	textUnknown        = "Unknown command. Use /menu to return to the main menu."
	textPickCard       = "Select a card to add:"
	textNoCards        = "No cards added yet. Use 'Add a Card' to start."
	textNoCardsSuggest = "You have no cards configured. Use 'Add a Card' to add cards."
	textNoCandidate    = "No suitable card found. Ensure your due dates are configured."
	textInvalidInput   = "Invalid input. Please type a valid number."
)

func row(label string, a Action) []Button {
	return []Button{{Label: label, Action: EncodeAction(a)}}
}

func backRow() []Button {
	return row("Back to Main Menu", Action{Kind: ActionMainMenu})
}

func mainMenuRows() [][]Button {
	return [][]Button{
		row("Add a Card", Action{Kind: ActionAddCardMenu}),
		row("View and Adjust Cards", Action{Kind: ActionViewCards}),
		row("Get a Suggestion", Action{Kind: ActionSuggest}),
	}
}

func catalogRows(names []string) [][]Button {
	rows := make([][]Button, 0, len(names)+1)
	for _, n := range names {
		rows = append(rows, row("Add: "+n, Action{Kind: ActionAddCard, Card: n}))
	}
	return append(rows, backRow())
}

func cardRows(cards []domain.CreditCard) [][]Button {
	rows := make([][]Button, 0, len(cards)+1)
	for _, c := range cards {
		rows = append(rows, row("Adjust: "+c.Name, Action{Kind: ActionAdjustCard, Card: c.Name}))
	}
	return append(rows, backRow())
}

func cardSummary(cards []domain.CreditCard) string {
	var b strings.Builder
	b.WriteString("Your Cards:\n\n")
	for _, c := range cards {
		fmt.Fprintf(&b, "%s - Due Date: %d\n", c.Name, c.DueDate)
	}
	return b.String()
}

func recommendationText(r recommend.Recommendation) string {
	return fmt.Sprintf(
		"Recommended Card: %s\nPayment Due: %s %d\nReason: %s",
		r.Card.Name,
		strings.ToUpper(r.Due.Month().String()),
		r.Due.Day(),
		r.Reason,
	)
}

func addedText(name string) string {
	return name + " has been successfully added to your cards."
}

func duplicateText(name string) string {
	return name + " is already in your list."
}

func duePromptText(name string) string {
	return fmt.Sprintf("Please type the new due date for %s (e.g., 15).", name)
}

func updatedText(name string, due int) string {
	return fmt.Sprintf("Updated %s to Due Date: %d", name, due)
}

func notFoundText(name string) string {
	return "Card not found: " + name
}
