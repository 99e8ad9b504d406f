package usecases

import (
	"context"

	"kyc-bot.backend/internal/domain/entities"
)

// Messenger is the outbound side of the chat transport
type Messenger interface {
	SendText(ctx context.Context, chatID int64, msg entities.OutboundMessage) error
	SendPhoto(ctx context.Context, chatID int64, photo entities.OutboundPhoto) error
	ClearActions(ctx context.Context, chatID int64, messageID int) error
	AnswerAction(ctx context.Context, actionID, text string, alert bool) error
}
