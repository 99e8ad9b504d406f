package repositories

import (
	"context"
	"errors"
	"strconv"

	goredis "github.com/redis/go-redis/v9"
	domainerrors "kyc-bot.backend/internal/domain/errors"
	"kyc-bot.backend/pkg/redis"
)

var (
	claimSetNX      = redis.SetNX
	claimGet        = redis.Get
	claimDelIfEqual = redis.DelIfEquals
)

// RedisEmailClaimRepository keeps email claims in Redis so they survive restarts
type RedisEmailClaimRepository struct {
	prefix string
}

// NewRedisEmailClaimRepository creates an email index under the given key prefix
func NewRedisEmailClaimRepository(prefix string) *RedisEmailClaimRepository {
	return &RedisEmailClaimRepository{prefix: prefix}
}

// Claim records userID as the owner of email
func (r *RedisEmailClaimRepository) Claim(ctx context.Context, email string, userID int64) error {
	key := r.prefix + email
	owner := strconv.FormatInt(userID, 10)

	ok, err := claimSetNX(ctx, key, owner, 0)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	current, err := claimGet(ctx, key)
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			// released between SETNX and GET
			return r.Claim(ctx, email, userID)
		}
		return err
	}
	if current != owner {
		return domainerrors.ErrEmailTaken
	}
	return nil
}

// Release frees email if userID owns it
func (r *RedisEmailClaimRepository) Release(ctx context.Context, email string, userID int64) error {
	_, err := claimDelIfEqual(ctx, r.prefix+email, strconv.FormatInt(userID, 10))
	return err
}
