package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// zapBotLogger routes the bot library's internal logging into zap.
type zapBotLogger struct {
	log *zap.Logger
}

// NewBotLogger adapts l to the bot library's logger interface
func NewBotLogger(l *zap.Logger) tgbotapi.BotLogger {
	return zapBotLogger{log: l.With(zap.String("component", "telegram"))}
}

func (z zapBotLogger) Println(v ...interface{}) {
	z.log.Info(fmt.Sprint(v...))
}

func (z zapBotLogger) Printf(format string, v ...interface{}) {
	z.log.Info(fmt.Sprintf(format, v...))
}
