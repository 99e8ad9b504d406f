package repositories

import (
	"context"

	"kyc-bot.backend/internal/domain/entities"
)

// KYCRecordRepository defines durable KYC record operations
type KYCRecordRepository interface {
	FindByUserID(ctx context.Context, userID int64) (*entities.KYCRecord, error)
	Upsert(ctx context.Context, userID int64, update entities.KYCRecordUpdate, createIfMissing bool) (*entities.KYCRecord, error)
	Ping(ctx context.Context) error
}

// EmailClaimRepository enforces one owner per normalized email
type EmailClaimRepository interface {
	// Claim returns ErrEmailTaken when another user owns the email.
	Claim(ctx context.Context, email string, userID int64) error
	// Release drops the claim only if userID owns it.
	Release(ctx context.Context, email string, userID int64) error
}
