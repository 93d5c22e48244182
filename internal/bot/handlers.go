package bot

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/yourname/cardpay-bot/internal/catalog"
	"github.com/yourname/cardpay-bot/internal/config"
	"github.com/yourname/cardpay-bot/internal/domain"
	"github.com/yourname/cardpay-bot/internal/recommend"
	"github.com/yourname/cardpay-bot/internal/repo"
)

// Sender delivers what the handler produces. Errors are reported back but
// the handler never undoes a state change because of them.
type Sender interface {
	SendText(ctx context.Context, user domain.UserID, text string) error
	SendWithOptions(ctx context.Context, user domain.UserID, text string, rows [][]Button) error
	Acknowledge(ctx context.Context, eventID string) error
}

type Handler struct {
	sender Sender
	log    *zap.Logger

	cards   *repo.Cards
	pending *repo.Pending
	locks   *repo.UserLocks
	catalog *catalog.Catalog

	botName string
	now     func() time.Time
}

func NewHandler(s Sender, cfg config.Config, cards *repo.Cards, pending *repo.Pending, cat *catalog.Catalog, logger *zap.Logger) *Handler {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		sender:  s,
		log:     logger,
		cards:   cards,
		pending: pending,
		locks:   repo.NewUserLocks(),
		catalog: cat,
		botName: cfg.BotUsername,
		now:     func() time.Time { return time.Now().In(loc) },
	}
}

// HandleText handles a typed message. A pending input request takes it
// whatever it says; otherwise only /start and /menu are understood.
func (h *Handler) HandleText(ctx context.Context, user domain.UserID, text string) {
	unlock := h.locks.Lock(user)
	defer unlock()

	text = strings.TrimSpace(text)

	if in, ok := h.pending.Consume(user); ok {
		h.logger(ctx).Debug("pending input consumed",
			zap.Int64("user", int64(user)),
			zap.String("kind", string(in.Kind)),
			zap.String("card", in.Target),
		)
		h.handleManualInput(ctx, user, in, text)
		return
	}

	switch h.command(text) {
	case "/start", "/menu":
		h.showMainMenu(ctx, user)
	default:
		h.reply(ctx, user, textUnknown)
	}
}

// HandleSelection handles a button press. It is acknowledged first and never
// looks at pending input.
func (h *Handler) HandleSelection(ctx context.Context, user domain.UserID, eventID, data string) {
	if err := h.sender.Acknowledge(ctx, eventID); err != nil {
		h.logger(ctx).Warn("acknowledge selection", zap.String("callback_id", eventID), zap.Error(err))
	}

	unlock := h.locks.Lock(user)
	defer unlock()

	act, err := DecodeAction(data)
	if err != nil {
		h.logger(ctx).Warn("ignoring selection", zap.Int64("user", int64(user)), zap.Error(err))
		return
	}

	switch act.Kind {
	case ActionMainMenu:
		h.showMainMenu(ctx, user)
	case ActionAddCardMenu:
		h.showCatalog(ctx, user)
	case ActionViewCards:
		h.showCards(ctx, user)
	case ActionSuggest:
		h.suggest(ctx, user)
	case ActionAddCard:
		h.addCard(ctx, user, act.Card)
	case ActionAdjustCard:
		h.pending.Request(user, domain.InputDueDate, act.Card)
		h.logger(ctx).Debug("awaiting input",
			zap.Int64("user", int64(user)),
			zap.String("kind", string(domain.InputDueDate)),
			zap.String("card", act.Card),
		)
		h.reply(ctx, user, duePromptText(act.Card))
	}
}

// State reports where the user is in the conversation.
func (h *Handler) State(user domain.UserID) domain.ConversationState {
	return h.pending.State(user)
}

func (h *Handler) handleManualInput(ctx context.Context, user domain.UserID, in domain.PendingInput, text string) {
	switch in.Kind {
	case domain.InputDueDate:
		due, err := ParseDueDay(text)
		if err != nil {
			h.logger(ctx).Debug("bad due date", zap.Int64("user", int64(user)), zap.Error(err))
			h.reply(ctx, user, textInvalidInput)
			return
		}
		card, err := h.cards.SetDueDate(user, in.Target, due)
		if errors.Is(err, domain.ErrCardNotFound) {
			h.reply(ctx, user, notFoundText(in.Target))
			return
		}
		h.logger(ctx).Info("due date updated",
			zap.Int64("user", int64(user)),
			zap.String("card", card.Name),
			zap.Int("due", card.DueDate),
			zap.Int("closing", card.ClosingDate),
		)
		h.reply(ctx, user, updatedText(card.Name, card.DueDate))
	default:
		h.logger(ctx).Warn("unhandled input kind", zap.String("kind", string(in.Kind)))
	}
}

func (h *Handler) addCard(ctx context.Context, user domain.UserID, name string) {
	_, err := h.cards.Add(user, name)
	switch {
	case errors.Is(err, domain.ErrDuplicateCard):
		h.reply(ctx, user, duplicateText(name))
	case err != nil:
		h.logger(ctx).Error("add card", zap.Int64("user", int64(user)), zap.Error(err))
	default:
		h.logger(ctx).Info("card added", zap.Int64("user", int64(user)), zap.String("card", name))
		h.reply(ctx, user, addedText(name))
	}
	h.showMainMenu(ctx, user)
}

func (h *Handler) showMainMenu(ctx context.Context, user domain.UserID) {
	h.replyWithOptions(ctx, user, textMainMenu, mainMenuRows())
}

func (h *Handler) showCatalog(ctx context.Context, user domain.UserID) {
	missing := h.catalog.Missing(h.cards.List(user))
	h.replyWithOptions(ctx, user, textPickCard, catalogRows(missing))
}

func (h *Handler) showCards(ctx context.Context, user domain.UserID) {
	cards := h.cards.List(user)
	if len(cards) == 0 {
		h.reply(ctx, user, textNoCards)
		return
	}
	h.replyWithOptions(ctx, user, cardSummary(cards), cardRows(cards))
}

func (h *Handler) suggest(ctx context.Context, user domain.UserID) {
	cards := h.cards.List(user)
	if len(cards) == 0 {
		h.reply(ctx, user, textNoCardsSuggest)
		return
	}

	rec, err := recommend.Recommend(cards, h.now())
	if errors.Is(err, recommend.ErrNoCandidate) {
		h.reply(ctx, user, textNoCandidate)
		return
	}
	if rec.Due.Day() != rec.Card.DueDate {
		h.logger(ctx).Warn("due day does not exist in target month",
			zap.Int64("user", int64(user)),
			zap.String("card", rec.Card.Name),
			zap.Int("due_day", rec.Card.DueDate),
			zap.Time("projected", rec.Due),
		)
	}
	h.reply(ctx, user, recommendationText(rec))
}

// command returns the first word of text with a "@thisbot" suffix removed.
func (h *Handler) command(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	cmd, mention, ok := strings.Cut(fields[0], "@")
	if ok && (h.botName == "" || !strings.EqualFold(mention, h.botName)) {
		return fields[0]
	}
	return cmd
}

func (h *Handler) reply(ctx context.Context, user domain.UserID, text string) {
	if err := h.sender.SendText(ctx, user, text); err != nil {
		h.logger(ctx).Warn("send text", zap.Int64("user", int64(user)), zap.Error(err))
	}
}

func (h *Handler) replyWithOptions(ctx context.Context, user domain.UserID, text string, rows [][]Button) {
	if err := h.sender.SendWithOptions(ctx, user, text, rows); err != nil {
		h.logger(ctx).Warn("send options", zap.Int64("user", int64(user)), zap.Error(err))
	}
}

type eventIDKey struct{}

func withEventID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, eventIDKey{}, id)
}

func (h *Handler) logger(ctx context.Context) *zap.Logger {
	if id, ok := ctx.Value(eventIDKey{}).(string); ok {
		return h.log.With(zap.String("event_id", id))
	}
	return h.log
}
