package usecases

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"kyc-bot.backend/internal/domain/entities"
	domainerrors "kyc-bot.backend/internal/domain/errors"
	"kyc-bot.backend/internal/domain/repositories"
	"kyc-bot.backend/internal/metrics"
	"kyc-bot.backend/pkg/logger"
)

// notifier performs best-effort side effects: failures are logged and counted, never returned.
type notifier struct {
	messenger Messenger
	records   repositories.KYCRecordRepository
	metrics   *metrics.Metrics
}

func (n notifier) text(ctx context.Context, op string, chatID int64, msg entities.OutboundMessage) {
	if err := n.messenger.SendText(ctx, chatID, msg); err != nil {
		n.outboundFailed(ctx, op, chatID, err)
	}
}

func (n notifier) photo(ctx context.Context, op string, chatID int64, photo entities.OutboundPhoto) {
	if err := n.messenger.SendPhoto(ctx, chatID, photo); err != nil {
		n.outboundFailed(ctx, op, chatID, err)
	}
}

func (n notifier) answer(ctx context.Context, press entities.ActionPress, text string, alert bool) {
	if press.ID == "" {
		return
	}
	if err := n.messenger.AnswerAction(ctx, press.ID, text, alert); err != nil {
		n.outboundFailed(ctx, "answer_action", press.ChatID, err)
	}
}

func (n notifier) clearActions(ctx context.Context, press entities.ActionPress) {
	if err := n.messenger.ClearActions(ctx, press.ChatID, press.MessageID); err != nil {
		n.outboundFailed(ctx, "clear_actions", press.ChatID, err)
	}
}

func (n notifier) outboundFailed(ctx context.Context, op string, chatID int64, err error) {
	n.metrics.IncrementOutboundFailure(op)
	logger.Warn(ctx, "Outbound call failed",
		zap.String("operation", op),
		zap.Int64("chat_id", chatID),
		zap.Error(err),
	)
}

// writeThrough projects a session change onto the durable record. Store failures only degrade durability.
func (n notifier) writeThrough(ctx context.Context, op string, userID int64, update entities.KYCRecordUpdate, createIfMissing bool) {
	if _, err := n.records.Upsert(ctx, userID, update, createIfMissing); err != nil {
		n.metrics.IncrementStoreFailure(op)
		level := logger.Error
		if errors.Is(err, domainerrors.ErrNotFound) {
			level = logger.Warn
		}
		level(ctx, "KYC record write-through failed",
			zap.String("operation", op),
			zap.Int64("target_user_id", userID),
			zap.String("status", string(update.Status)),
			zap.Error(err),
		)
	}
}

// durableRecord loads the record for userID, returning nil when none exists.
func (n notifier) durableRecord(ctx context.Context, userID int64) (*entities.KYCRecord, error) {
	record, err := n.records.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}
