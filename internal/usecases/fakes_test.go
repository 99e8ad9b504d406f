package usecases_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"kyc-bot.backend/internal/domain/entities"
	domainerrors "kyc-bot.backend/internal/domain/errors"
)

const (
	adminID int64 = 900
	aliceID int64 = 101
	bobID   int64 = 202
	carolID int64 = 303
)

func sender(id int64, name string) entities.Sender {
	return entities.Sender{UserID: id, ChatID: id, DisplayName: name}
}

type sentItem struct {
	kind     string
	chatID   int64
	text     string
	markdown bool
	photo    string
	buttons  [][]entities.Button
	alert    bool
}

// fakeMessenger records every outbound call.
type fakeMessenger struct {
	mu          sync.Mutex
	items       []sentItem
	sendTextErr func(chatID int64) error
}

func (m *fakeMessenger) SendText(_ context.Context, chatID int64, msg entities.OutboundMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendTextErr != nil {
		if err := m.sendTextErr(chatID); err != nil {
			return err
		}
	}
	m.items = append(m.items, sentItem{kind: "text", chatID: chatID, text: msg.Text, markdown: msg.Markdown, buttons: msg.Buttons})
	return nil
}

func (m *fakeMessenger) SendPhoto(_ context.Context, chatID int64, photo entities.OutboundPhoto) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, sentItem{kind: "photo", chatID: chatID, text: photo.Caption, photo: photo.ImageRef, buttons: photo.Buttons})
	return nil
}

func (m *fakeMessenger) ClearActions(_ context.Context, chatID int64, _ int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, sentItem{kind: "clear", chatID: chatID})
	return nil
}

func (m *fakeMessenger) AnswerAction(_ context.Context, _ string, text string, alert bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, sentItem{kind: "answer", text: text, alert: alert})
	return nil
}

func (m *fakeMessenger) to(chatID int64) []sentItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []sentItem
	for _, it := range m.items {
		if (it.kind == "text" || it.kind == "photo") && it.chatID == chatID {
			out = append(out, it)
		}
	}
	return out
}

func (m *fakeMessenger) last(chatID int64) sentItem {
	items := m.to(chatID)
	if len(items) == 0 {
		return sentItem{}
	}
	return items[len(items)-1]
}

func (m *fakeMessenger) ofKind(kind string) []sentItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []sentItem
	for _, it := range m.items {
		if it.kind == kind {
			out = append(out, it)
		}
	}
	return out
}

func (m *fakeMessenger) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = nil
}

// fakeRecordRepo is an in-memory record store with injectable failures.
type fakeRecordRepo struct {
	mu        sync.Mutex
	records   map[int64]*entities.KYCRecord
	findErr   error
	upsertErr error
	upserts   int
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{records: map[int64]*entities.KYCRecord{}}
}

func (r *fakeRecordRepo) FindByUserID(_ context.Context, userID int64) (*entities.KYCRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	rec, ok := r.records[userID]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (r *fakeRecordRepo) Upsert(_ context.Context, userID int64, update entities.KYCRecordUpdate, createIfMissing bool) (*entities.KYCRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upserts++
	if r.upsertErr != nil {
		return nil, r.upsertErr
	}
	rec, ok := r.records[userID]
	if !ok {
		if !createIfMissing {
			return nil, domainerrors.ErrNotFound
		}
		rec = &entities.KYCRecord{ID: uuid.New(), UserID: userID, Status: entities.KYCStatusPending, CreatedAt: time.Now()}
		r.records[userID] = rec
	}
	if update.Email.Valid {
		rec.Email = update.Email
	}
	if update.FrontImageRef.Valid {
		rec.FrontImageRef = update.FrontImageRef
	}
	if update.BackImageRef.Valid {
		rec.BackImageRef = update.BackImageRef
	} else if update.ClearBackImageRef {
		rec.BackImageRef = null.String{}
	}
	if update.Status != "" {
		rec.Status = update.Status
	}
	rec.UpdatedAt = time.Now()
	cp := *rec
	return &cp, nil
}

func (r *fakeRecordRepo) Ping(context.Context) error { return nil }

func (r *fakeRecordRepo) status(userID int64) entities.KYCStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec, ok := r.records[userID]; ok {
		return rec.Status
	}
	return ""
}

func (r *fakeRecordRepo) put(rec *entities.KYCRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[rec.UserID] = rec
}
