package usecases

import (
	"strings"

	"kyc-bot.backend/internal/domain/entities"
)

// NormalizeEmail is the key used by the email index.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func looksLikeEmail(text string) bool {
	return strings.Contains(text, "@")
}

func displayName(name, fallback string) string {
	if strings.TrimSpace(name) == "" {
		return fallback
	}
	return name
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func mainMenu() [][]entities.Button {
	return [][]entities.Button{
		{{Text: buttonContactSupport, Action: entities.Action{Kind: entities.ActionContactSupport}}},
		{{Text: buttonCheckStatus, Action: entities.Action{Kind: entities.ActionCheckStatus}}},
		{{Text: buttonHelp, Action: entities.Action{Kind: entities.ActionHelp}}},
	}
}

func decisionButtons(userID int64) [][]entities.Button {
	return [][]entities.Button{{
		{Text: buttonApprove, Action: entities.Action{Kind: entities.ActionApprove, TargetID: userID}},
		{Text: buttonReject, Action: entities.Action{Kind: entities.ActionReject, TargetID: userID}},
	}}
}

func markdown(text string) entities.OutboundMessage {
	return entities.OutboundMessage{Text: text, Markdown: true}
}

func plain(text string) entities.OutboundMessage {
	return entities.OutboundMessage{Text: text}
}
