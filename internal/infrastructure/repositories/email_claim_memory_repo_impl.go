package repositories

import (
	"context"
	"sync"

	domainerrors "kyc-bot.backend/internal/domain/errors"
)

// MemoryEmailClaimRepository keeps email claims for the lifetime of the process
type MemoryEmailClaimRepository struct {
	mu     sync.Mutex
	owners map[string]int64
}

// NewMemoryEmailClaimRepository creates an empty in-process email index
func NewMemoryEmailClaimRepository() *MemoryEmailClaimRepository {
	return &MemoryEmailClaimRepository{owners: make(map[string]int64)}
}

// Claim records userID as the owner of email
func (r *MemoryEmailClaimRepository) Claim(_ context.Context, email string, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if owner, ok := r.owners[email]; ok && owner != userID {
		return domainerrors.ErrEmailTaken
	}
	r.owners[email] = userID
	return nil
}

// Release frees email if userID owns it
func (r *MemoryEmailClaimRepository) Release(_ context.Context, email string, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if owner, ok := r.owners[email]; ok && owner == userID {
		delete(r.owners, email)
	}
	return nil
}
