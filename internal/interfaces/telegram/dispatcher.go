package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"kyc-bot.backend/internal/domain/entities"
	"kyc-bot.backend/pkg/logger"
)

const (
	commandStart  = "start"
	commandVerify = "verify"
)

// Workflow is the user-facing side of the bot
type Workflow interface {
	Start(ctx context.Context, sender entities.Sender) error
	QueryStatus(ctx context.Context, sender entities.Sender) error
	HandleAction(ctx context.Context, sender entities.Sender, press entities.ActionPress) error
	HandleText(ctx context.Context, sender entities.Sender, text string) error
	HandlePhoto(ctx context.Context, sender entities.Sender, variants []entities.ImageVariant) error
}

// Reviewer is the privileged side of the bot
type Reviewer interface {
	IsReviewer(userID int64) bool
	HandleCommand(ctx context.Context, sender entities.Sender, text string) (bool, error)
	Decide(ctx context.Context, press entities.ActionPress) error
}

// Dispatcher routes inbound updates to the workflow and reviewer handlers
type Dispatcher struct {
	workflow Workflow
	reviewer Reviewer
}

// NewDispatcher creates a new dispatcher
func NewDispatcher(workflow Workflow, reviewer Reviewer) *Dispatcher {
	return &Dispatcher{workflow: workflow, reviewer: reviewer}
}

// Run processes updates one at a time until ctx is cancelled or updates is closed.
func (d *Dispatcher) Run(ctx context.Context, updates <-chan tgbotapi.Update) {
	logger.Info(ctx, "Update loop started")
	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Update loop stopped (context cancelled)")
			return
		case update, ok := <-updates:
			if !ok {
				logger.Info(ctx, "Update loop stopped (channel closed)")
				return
			}
			d.safeDispatch(ctx, update)
		}
	}
}

func (d *Dispatcher) safeDispatch(ctx context.Context, update tgbotapi.Update) {
	ctx = logger.WithUpdate(ctx, update.UpdateID)
	defer func() {
		if r := recover(); r != nil {
			logger.Error(ctx, "Panic while handling update", zap.Any("panic", r))
		}
	}()

	if err := d.Dispatch(ctx, update); err != nil {
		logger.Error(ctx, "Failed to handle update", zap.Error(err))
	}
}

// Dispatch routes a single update
func (d *Dispatcher) Dispatch(ctx context.Context, update tgbotapi.Update) error {
	switch {
	case update.CallbackQuery != nil:
		return d.dispatchCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		return d.dispatchMessage(ctx, update.Message)
	}
	return nil
}

func (d *Dispatcher) dispatchCallback(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	if query.From == nil {
		return nil
	}
	sender := senderOf(query.From, query.Message)
	ctx = logger.WithUser(ctx, sender.UserID)

	press := entities.ActionPress{ID: query.ID, ChatID: sender.ChatID, Action: entities.ParseAction(query.Data)}
	if query.Message != nil {
		press.MessageID = query.Message.MessageID
	}

	if press.Action.IsDecision() {
		if d.reviewer.IsReviewer(sender.UserID) {
			return d.reviewer.Decide(ctx, press)
		}
		logger.Warn(ctx, "Decision pressed by non-reviewer", zap.String("payload", query.Data))
		press.Action = entities.Action{}
	}
	return d.workflow.HandleAction(ctx, sender, press)
}

func (d *Dispatcher) dispatchMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.From == nil {
		return nil
	}
	sender := senderOf(msg.From, msg)
	ctx = logger.WithUser(ctx, sender.UserID)

	if len(msg.Photo) > 0 {
		return d.workflow.HandlePhoto(ctx, sender, imageVariants(msg.Photo))
	}

	if msg.IsCommand() {
		switch msg.Command() {
		case commandStart:
			return d.workflow.Start(ctx, sender)
		case commandVerify:
			return d.workflow.QueryStatus(ctx, sender)
		}
	}

	if d.reviewer.IsReviewer(sender.UserID) && strings.HasPrefix(msg.Text, "/") {
		handled, err := d.reviewer.HandleCommand(ctx, sender, msg.Text)
		if err != nil {
			return fmt.Errorf("reviewer command: %w", err)
		}
		if !handled {
			logger.Debug(ctx, "Dropping unhandled reviewer command")
		}
		return nil
	}

	if msg.IsCommand() || msg.Text == "" {
		return nil
	}
	return d.workflow.HandleText(ctx, sender, msg.Text)
}

func senderOf(user *tgbotapi.User, msg *tgbotapi.Message) entities.Sender {
	sender := entities.Sender{UserID: user.ID, ChatID: user.ID, DisplayName: user.FirstName}
	if msg != nil && msg.Chat != nil {
		sender.ChatID = msg.Chat.ID
	}
	return sender
}

func imageVariants(sizes []tgbotapi.PhotoSize) []entities.ImageVariant {
	variants := make([]entities.ImageVariant, 0, len(sizes))
	for _, size := range sizes {
		variants = append(variants, entities.ImageVariant{Ref: size.FileID, Width: size.Width, Height: size.Height})
	}
	return variants
}
