package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"kyc-bot.backend/internal/domain/entities"
	domainerrors "kyc-bot.backend/internal/domain/errors"
)

// botAPI is the subset of *tgbotapi.BotAPI the client needs.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Client delivers outbound messages through the Telegram Bot API
type Client struct {
	bot botAPI
}

// NewClient wraps a bot API handle
func NewClient(bot botAPI) *Client {
	return &Client{bot: bot}
}

// RegisterMenu publishes the persistent command menu shown next to the chat input
func (c *Client) RegisterMenu(_ context.Context) error {
	menu := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: commandStart, Description: "Start or resume verification"},
		tgbotapi.BotCommand{Command: commandVerify, Description: "Show your KYC status"},
	)
	if _, err := c.bot.Request(menu); err != nil {
		return domainerrors.NewDeliveryError("set_commands", err)
	}
	return nil
}

// SendText sends a text message, with inline buttons when present
func (c *Client) SendText(_ context.Context, chatID int64, msg entities.OutboundMessage) error {
	out := tgbotapi.NewMessage(chatID, msg.Text)
	if msg.Markdown {
		out.ParseMode = tgbotapi.ModeMarkdown
	}
	if len(msg.Buttons) > 0 {
		out.ReplyMarkup = inlineKeyboard(msg.Buttons)
	}
	if _, err := c.bot.Send(out); err != nil {
		return domainerrors.NewDeliveryError("send_text", err)
	}
	return nil
}

// SendPhoto re-sends an already uploaded image by its file reference
func (c *Client) SendPhoto(_ context.Context, chatID int64, photo entities.OutboundPhoto) error {
	out := tgbotapi.NewPhoto(chatID, tgbotapi.FileID(photo.ImageRef))
	out.Caption = photo.Caption
	if len(photo.Buttons) > 0 {
		out.ReplyMarkup = inlineKeyboard(photo.Buttons)
	}
	if _, err := c.bot.Send(out); err != nil {
		return domainerrors.NewDeliveryError("send_photo", err)
	}
	return nil
}

// ClearActions removes the inline keyboard from a sent message
func (c *Client) ClearActions(_ context.Context, chatID int64, messageID int) error {
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
	})
	if _, err := c.bot.Request(edit); err != nil {
		return domainerrors.NewDeliveryError("clear_actions", err)
	}
	return nil
}

// AnswerAction acknowledges a button press, optionally as an alert
func (c *Client) AnswerAction(_ context.Context, actionID, text string, alert bool) error {
	answer := tgbotapi.NewCallback(actionID, text)
	if alert {
		answer = tgbotapi.NewCallbackWithAlert(actionID, text)
	}
	if _, err := c.bot.Request(answer); err != nil {
		return domainerrors.NewDeliveryError("answer_action", err)
	}
	return nil
}

func inlineKeyboard(rows [][]entities.Button) tgbotapi.InlineKeyboardMarkup {
	keyboard := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Text, b.Action.Payload()))
		}
		keyboard = append(keyboard, tgbotapi.NewInlineKeyboardRow(buttons...))
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}
