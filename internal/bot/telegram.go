package bot

import (
	"context"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yourname/cardpay-bot/internal/domain"
)

// botClient is the part of *tgbotapi.BotAPI the sender uses.
type botClient interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// TelegramSender queues outgoing messages and delivers them in the
// background. Messages for one user always go through the same worker, so
// they arrive in the order they were queued.
type TelegramSender struct {
	api botClient
	log *zap.Logger

	mu     sync.RWMutex
	closed bool
	queues []chan tgbotapi.Chattable
	wg     sync.WaitGroup
}

func NewTelegramSender(api botClient, workers, queueSize int, logger *zap.Logger) *TelegramSender {
	s := &TelegramSender{
		api:    api,
		log:    logger,
		queues: make([]chan tgbotapi.Chattable, workers),
	}
	for i := range s.queues {
		q := make(chan tgbotapi.Chattable, queueSize)
		s.queues[i] = q
		s.wg.Add(1)
		go s.deliver(q)
	}
	return s
}

func (s *TelegramSender) deliver(q <-chan tgbotapi.Chattable) {
	defer s.wg.Done()
	for c := range q {
		if _, err := s.api.Send(c); err != nil {
			s.log.Warn("telegram send failed", zap.Error(err))
		}
	}
}

func (s *TelegramSender) SendText(ctx context.Context, user domain.UserID, text string) error {
	return s.enqueue(ctx, user, tgbotapi.NewMessage(int64(user), text))
}

func (s *TelegramSender) SendWithOptions(ctx context.Context, user domain.UserID, text string, rows [][]Button) error {
	msg := tgbotapi.NewMessage(int64(user), text)
	msg.ReplyMarkup = inlineKeyboard(rows)
	return s.enqueue(ctx, user, msg)
}

// Acknowledge answers a callback query right away, outside the queue.
func (s *TelegramSender) Acknowledge(_ context.Context, eventID string) error {
	if _, err := s.api.Request(tgbotapi.NewCallback(eventID, "")); err != nil {
		return fmt.Errorf("%w: answer callback: %v", domain.ErrDelivery, err)
	}
	return nil
}

// Close stops accepting messages and waits for the queued ones to go out.
func (s *TelegramSender) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for _, q := range s.queues {
		close(q)
	}
	s.wg.Wait()
}

func (s *TelegramSender) enqueue(ctx context.Context, user domain.UserID, c tgbotapi.Chattable) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return fmt.Errorf("%w: sender closed", domain.ErrDelivery)
	}

	q := s.queues[uint64(user)%uint64(len(s.queues))]
	select {
	case q <- c:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", domain.ErrDelivery, ctx.Err())
	}
}

func inlineKeyboard(rows [][]Button) tgbotapi.InlineKeyboardMarkup {
	kb := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, r := range rows {
		btns := make([]tgbotapi.InlineKeyboardButton, 0, len(r))
		for _, b := range r {
			btns = append(btns, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Action))
		}
		kb = append(kb, btns)
	}
	return tgbotapi.NewInlineKeyboardMarkup(kb...)
}

// HandleUpdate routes a Telegram update to the text or selection handler.
// Only private chats are served.
func (h *Handler) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	ctx = withEventID(ctx, uuid.NewString())

	if q := upd.CallbackQuery; q != nil {
		if q.From == nil {
			return
		}
		h.HandleSelection(ctx, domain.UserID(q.From.ID), q.ID, q.Data)
		return
	}

	msg := upd.Message
	if msg == nil || msg.From == nil || msg.Chat == nil || !msg.Chat.IsPrivate() {
		return
	}
	if msg.Text == "" {
		return
	}
	h.HandleText(ctx, domain.UserID(msg.From.ID), msg.Text)
}

func updateUser(upd tgbotapi.Update) (domain.UserID, bool) {
	switch {
	case upd.CallbackQuery != nil && upd.CallbackQuery.From != nil:
		return domain.UserID(upd.CallbackQuery.From.ID), true
	case upd.Message != nil && upd.Message.From != nil:
		return domain.UserID(upd.Message.From.ID), true
	default:
		return 0, false
	}
}
