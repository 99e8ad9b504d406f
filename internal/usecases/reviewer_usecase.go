package usecases

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"kyc-bot.backend/internal/domain/entities"
	"kyc-bot.backend/internal/domain/repositories"
	"kyc-bot.backend/internal/metrics"
	"kyc-bot.backend/pkg/logger"
)

const cmdSupportList = "/supportlist"

var directMessagePattern = regexp.MustCompile(`^/msg\s+(\d+)\s+(.+)`)

// ReviewerUsecase handles the privileged reviewer's commands and decisions
type ReviewerUsecase struct {
	notifier
	sessions *SessionTable
	claims   repositories.EmailClaimRepository
	adminID  int64
}

// NewReviewerUsecase creates a new reviewer usecase
func NewReviewerUsecase(
	sessions *SessionTable,
	records repositories.KYCRecordRepository,
	claims repositories.EmailClaimRepository,
	messenger Messenger,
	m *metrics.Metrics,
	adminID int64,
) *ReviewerUsecase {
	return &ReviewerUsecase{
		notifier: notifier{messenger: messenger, records: records, metrics: m},
		sessions: sessions,
		claims:   claims,
		adminID:  adminID,
	}
}

// IsReviewer reports whether userID is the privileged reviewer
func (u *ReviewerUsecase) IsReviewer(userID int64) bool {
	return userID == u.adminID
}

// HandleCommand runs a reviewer command and reports whether text was one.
func (u *ReviewerUsecase) HandleCommand(ctx context.Context, sender entities.Sender, text string) (bool, error) {
	text = strings.TrimSpace(text)

	if text == cmdSupportList {
		return true, u.ListPending(ctx, sender.ChatID)
	}

	if match := directMessagePattern.FindStringSubmatch(text); match != nil {
		targetID, err := strconv.ParseInt(match[1], 10, 64)
		if err != nil {
			u.text(ctx, "msg_user_not_found", sender.ChatID, plain(msgReviewerUserMissing))
			return true, nil
		}
		return true, u.DirectMessage(ctx, sender.ChatID, targetID, match[2])
	}

	logger.Debug(ctx, "Unrecognised reviewer command", zap.String("text", text))
	return false, nil
}

// ListPending sends the reviewer every session waiting for a decision
func (u *ReviewerUsecase) ListPending(ctx context.Context, chatID int64) error {
	waiting := u.sessions.ListByState(entities.StateWaiting)
	if len(waiting) == 0 {
		u.text(ctx, "support_list", chatID, plain(msgReviewerNoneWaiting))
		return nil
	}

	lines := make([]string, 0, len(waiting))
	for _, s := range waiting {
		lines = append(lines, fmt.Sprintf("%d – %s", s.UserID, orNA(s.Email)))
	}
	u.text(ctx, "support_list", chatID, plain(msgReviewerWaitingHead+strings.Join(lines, "\n")))
	return nil
}

// DirectMessage relays text to a user and reports the outcome to the reviewer
func (u *ReviewerUsecase) DirectMessage(ctx context.Context, chatID, targetID int64, text string) error {
	target, ok := u.sessions.Get(targetID)
	if !ok {
		u.text(ctx, "msg_user_not_found", chatID, plain(msgReviewerUserMissing))
		return nil
	}

	if err := u.messenger.SendText(ctx, target.ChatID, markdown(msgSupportPrefix+text)); err != nil {
		u.metrics.IncrementOutboundFailure("direct_message")
		logger.Warn(ctx, "Direct message failed", zap.Int64("target_user_id", targetID), zap.Error(err))
		u.text(ctx, "msg_failed", chatID, plain(fmt.Sprintf(msgReviewerFailed, err.Error())))
		return nil
	}
	u.text(ctx, "msg_sent", chatID, plain(msgReviewerSent))
	return nil
}

// Decide applies an approve or reject press to the target user's submission
func (u *ReviewerUsecase) Decide(ctx context.Context, press entities.ActionPress) error {
	if !press.Action.IsDecision() {
		u.answer(ctx, press, "", false)
		return nil
	}

	targetID := press.Action.TargetID
	target, ok := u.sessions.Get(targetID)
	if !ok {
		u.answer(ctx, press, answerUserNotFound, true)
		return nil
	}
	if target.State.IsTerminal() {
		u.clearActions(ctx, press)
		u.answer(ctx, press, answerAlreadyReviewed, true)
		return nil
	}

	var (
		state  entities.WorkflowState
		status entities.KYCStatus
		notice string
		answer string
	)
	if press.Action.Kind == entities.ActionApprove {
		state, status, notice, answer = entities.StateApproved, entities.KYCStatusApproved, msgApproved, answerApproved
	} else {
		state, status, notice, answer = entities.StateRejected, entities.KYCStatusRejected, msgRejected, answerRejected
	}

	u.sessions.Update(targetID, func(s *entities.Session) {
		s.State = state
		s.Status = status
	})
	u.metrics.IncrementTransition(state.Label())
	u.metrics.IncrementDecision(string(status))

	if state == entities.StateRejected && target.Email != "" {
		if err := u.claims.Release(ctx, NormalizeEmail(target.Email), targetID); err != nil {
			logger.Error(ctx, "Failed to release email claim", zap.Int64("target_user_id", targetID), zap.Error(err))
		}
	}

	u.text(ctx, "notify_decision", target.ChatID, markdown(notice))
	u.writeThrough(ctx, "decision_"+string(status), targetID, entities.KYCRecordUpdate{Status: status}, false)

	logger.Info(ctx, "Reviewer decision recorded",
		zap.Int64("target_user_id", targetID),
		zap.String("status", string(status)),
	)

	u.clearActions(ctx, press)
	u.answer(ctx, press, answer, false)
	return nil
}
