package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"kyc-bot.backend/internal/domain/entities"
	domainerrors "kyc-bot.backend/internal/domain/errors"
	"kyc-bot.backend/internal/domain/repositories"
	"kyc-bot.backend/internal/metrics"
	"kyc-bot.backend/pkg/logger"
)

// KYCWorkflowUsecase drives a user through email, front photo, back photo and review
type KYCWorkflowUsecase struct {
	notifier
	sessions *SessionTable
	claims   repositories.EmailClaimRepository
	adminID  int64
	brand    string
}

// NewKYCWorkflowUsecase creates a new workflow engine
func NewKYCWorkflowUsecase(
	sessions *SessionTable,
	records repositories.KYCRecordRepository,
	claims repositories.EmailClaimRepository,
	messenger Messenger,
	m *metrics.Metrics,
	adminID int64,
	brand string,
) *KYCWorkflowUsecase {
	return &KYCWorkflowUsecase{
		notifier: notifier{messenger: messenger, records: records, metrics: m},
		sessions: sessions,
		claims:   claims,
		adminID:  adminID,
		brand:    brand,
	}
}

// Start handles the /start command
func (u *KYCWorkflowUsecase) Start(ctx context.Context, sender entities.Sender) error {
	session, _ := u.sessions.Ensure(sender.UserID, sender.ChatID)

	record, err := u.durableRecord(ctx, sender.UserID)
	if err != nil {
		return fmt.Errorf("load kyc record: %w", err)
	}

	if session.Started {
		// Rejected users may begin again; everyone else is a no-op.
		if session.State == entities.StateRejected && !record.IsApproved() {
			u.sessions.Update(sender.UserID, func(s *entities.Session) { s.Reset() })
			u.transition(ctx, sender.UserID, entities.StateNone)
			u.sendWelcome(ctx, sender)
		}
		return nil
	}

	u.sessions.Update(sender.UserID, func(s *entities.Session) { s.Started = true })
	u.text(ctx, "notify_start", u.adminID, plain(fmt.Sprintf(msgReviewerStarted, sender.UserID, displayName(sender.DisplayName, unknownDisplayName))))

	switch {
	case record.IsApproved():
		u.restoreSession(ctx, sender.UserID, record, entities.StateApproved)
		return nil
	case record != nil && record.Status == entities.KYCStatusWaiting:
		u.restoreSession(ctx, sender.UserID, record, entities.StateWaiting)
		u.text(ctx, "notify_under_review", sender.ChatID, plain(msgUnderReview))
		return nil
	}

	u.sendWelcome(ctx, sender)
	return nil
}

// QueryStatus handles the /verify user command
func (u *KYCWorkflowUsecase) QueryStatus(ctx context.Context, sender entities.Sender) error {
	record, err := u.durableRecord(ctx, sender.UserID)
	if err != nil {
		return fmt.Errorf("load kyc record: %w", err)
	}
	if record.IsApproved() {
		return nil
	}
	u.text(ctx, "status_command", sender.ChatID, markdown(fmt.Sprintf(msgStatusCommand, entities.StatusLabel(record))))
	return nil
}

// HandleAction handles the user menu buttons
func (u *KYCWorkflowUsecase) HandleAction(ctx context.Context, sender entities.Sender, press entities.ActionPress) error {
	defer u.answer(ctx, press, "", false)

	session, _ := u.sessions.Ensure(sender.UserID, sender.ChatID)

	switch press.Action.Kind {
	case entities.ActionContactSupport:
		switch {
		case session.State == entities.StateNone || session.State == entities.StateAskEmail:
			u.sessions.Update(sender.UserID, func(s *entities.Session) { s.State = entities.StateAskEmail })
			u.transition(ctx, sender.UserID, entities.StateAskEmail)
			u.text(ctx, "ask_email", sender.ChatID, markdown(msgAskEmail))
		case session.State.AwaitingPhoto():
			u.text(ctx, "photo_reminder", sender.ChatID, plain(msgPhotoReminder))
		default:
			u.text(ctx, "session_complete", sender.ChatID, plain(msgSessionComplete))
		}
	case entities.ActionCheckStatus:
		record, err := u.durableRecord(ctx, sender.UserID)
		if err != nil {
			return fmt.Errorf("load kyc record: %w", err)
		}
		u.text(ctx, "status_button", sender.ChatID, markdown(fmt.Sprintf(msgStatusButton, entities.StatusLabel(record))))
	case entities.ActionHelp:
		u.text(ctx, "help", sender.ChatID, markdown(msgHelp))
	default:
		logger.Debug(ctx, "Ignoring unknown action", zap.Int("kind", int(press.Action.Kind)))
	}
	return nil
}

// HandleText handles free-text messages
func (u *KYCWorkflowUsecase) HandleText(ctx context.Context, sender entities.Sender, text string) error {
	record, err := u.durableRecord(ctx, sender.UserID)
	if err != nil {
		return fmt.Errorf("load kyc record: %w", err)
	}
	if record.IsApproved() {
		return nil
	}

	session, ok := u.sessions.Get(sender.UserID)
	if !ok {
		return nil
	}

	switch session.State {
	case entities.StateAskEmail:
		return u.submitEmail(ctx, sender, text)
	case entities.StateAskFront, entities.StateAskBack, entities.StateWaiting:
		u.text(ctx, "photo_reminder", sender.ChatID, plain(msgPhotoReminder))
	case entities.StateApproved, entities.StateRejected:
		u.text(ctx, "session_complete", sender.ChatID, plain(msgSessionComplete))
	}
	return nil
}

func (u *KYCWorkflowUsecase) submitEmail(ctx context.Context, sender entities.Sender, text string) error {
	email := strings.TrimSpace(text)
	if !looksLikeEmail(email) {
		u.text(ctx, "invalid_email", sender.ChatID, markdown(msgInvalidEmail))
		return nil
	}

	if err := u.claims.Claim(ctx, NormalizeEmail(email), sender.UserID); err != nil {
		if errors.Is(err, domainerrors.ErrEmailTaken) {
			u.text(ctx, "email_taken", sender.ChatID, markdown(msgEmailTaken))
			return nil
		}
		return fmt.Errorf("claim email: %w", err)
	}

	u.sessions.Update(sender.UserID, func(s *entities.Session) {
		s.Email = email
		s.State = entities.StateAskFront
		s.Status = entities.KYCStatusPending
	})
	u.transition(ctx, sender.UserID, entities.StateAskFront)
	u.text(ctx, "email_saved", sender.ChatID, markdown(msgEmailSaved))
	return nil
}

// HandlePhoto handles ID photo uploads; variants are ordered by ascending resolution
func (u *KYCWorkflowUsecase) HandlePhoto(ctx context.Context, sender entities.Sender, variants []entities.ImageVariant) error {
	record, err := u.durableRecord(ctx, sender.UserID)
	if err != nil {
		return fmt.Errorf("load kyc record: %w", err)
	}
	if record.IsApproved() {
		return nil
	}

	session, ok := u.sessions.Get(sender.UserID)
	if !ok {
		return nil
	}
	image, ok := entities.LargestImage(variants)
	if !ok {
		return nil
	}

	switch session.State {
	case entities.StateAskFront:
		u.acceptFront(ctx, sender, image.Ref)
	case entities.StateAskBack:
		u.acceptBack(ctx, sender, image.Ref)
	default:
		logger.Debug(ctx, "Ignoring photo outside upload states", zap.String("state", session.State.Label()))
	}
	return nil
}

func (u *KYCWorkflowUsecase) acceptFront(ctx context.Context, sender entities.Sender, ref string) {
	session, _ := u.sessions.Update(sender.UserID, func(s *entities.Session) {
		s.FrontRef = ref
		s.State = entities.StateAskBack
	})
	u.transition(ctx, sender.UserID, entities.StateAskBack)

	u.text(ctx, "front_received", sender.ChatID, markdown(msgFrontReceived))
	u.text(ctx, "notify_front", u.adminID, plain(fmt.Sprintf(msgReviewerFront, sender.UserID, orNA(session.Email))))
	u.photo(ctx, "forward_front", u.adminID, entities.OutboundPhoto{ImageRef: ref, Caption: captionFront})

	u.writeThrough(ctx, "upsert_front", sender.UserID, entities.KYCRecordUpdate{
		Email:             optionalField(session.Email),
		FrontImageRef:     null.StringFrom(ref),
		ClearBackImageRef: true,
		Status:            entities.KYCStatusPending,
	}, true)
}

func (u *KYCWorkflowUsecase) acceptBack(ctx context.Context, sender entities.Sender, ref string) {
	session, _ := u.sessions.Update(sender.UserID, func(s *entities.Session) {
		s.BackRef = ref
		s.State = entities.StateWaiting
		s.Status = entities.KYCStatusWaiting
	})
	u.transition(ctx, sender.UserID, entities.StateWaiting)

	u.text(ctx, "documents_submitted", sender.ChatID, markdown(msgSubmitted))
	u.text(ctx, "notify_back", u.adminID, plain(fmt.Sprintf(msgReviewerBack, sender.UserID, orNA(session.Email))))
	u.photo(ctx, "forward_back", u.adminID, entities.OutboundPhoto{
		ImageRef: ref,
		Caption:  captionBack,
		Buttons:  decisionButtons(sender.UserID),
	})

	// Carries the front fields too, so a lost front write-through heals here.
	u.writeThrough(ctx, "upsert_back", sender.UserID, entities.KYCRecordUpdate{
		Email:         optionalField(session.Email),
		FrontImageRef: optionalField(session.FrontRef),
		BackImageRef:  null.StringFrom(ref),
		Status:        entities.KYCStatusWaiting,
	}, true)
}

func (u *KYCWorkflowUsecase) sendWelcome(ctx context.Context, sender entities.Sender) {
	u.text(ctx, "welcome", sender.ChatID, entities.OutboundMessage{
		Text:    fmt.Sprintf(msgWelcome, displayName(sender.DisplayName, defaultDisplayName), u.brand),
		Buttons: mainMenu(),
	})
}

// restoreSession rebuilds a session lost on restart from its durable record.
func (u *KYCWorkflowUsecase) restoreSession(ctx context.Context, userID int64, record *entities.KYCRecord, state entities.WorkflowState) {
	email := record.Email.String
	u.sessions.Update(userID, func(s *entities.Session) {
		s.State = state
		s.Status = record.Status
		s.Email = email
		s.FrontRef = record.FrontImageRef.String
		s.BackRef = record.BackImageRef.String
	})
	if email == "" {
		return
	}
	if err := u.claims.Claim(ctx, NormalizeEmail(email), userID); err != nil {
		logger.Warn(ctx, "Could not re-claim email for recovered session", zap.Error(err))
	}
}

func (u *KYCWorkflowUsecase) transition(ctx context.Context, userID int64, state entities.WorkflowState) {
	u.metrics.IncrementTransition(state.Label())
	logger.Debug(ctx, "Workflow transition", zap.Int64("target_user_id", userID), zap.String("state", state.Label()))
}

func optionalField(s string) null.String {
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}
