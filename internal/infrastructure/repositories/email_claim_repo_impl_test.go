package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	domainerrors "kyc-bot.backend/internal/domain/errors"
	"kyc-bot.backend/internal/domain/repositories"
	"kyc-bot.backend/pkg/redis"
)

func exerciseEmailClaims(t *testing.T, repo repositories.EmailClaimRepository) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, repo.Claim(ctx, "a@b.com", 1))
	require.NoError(t, repo.Claim(ctx, "a@b.com", 1), "re-claim by owner")
	require.ErrorIs(t, repo.Claim(ctx, "a@b.com", 2), domainerrors.ErrEmailTaken)

	require.NoError(t, repo.Release(ctx, "a@b.com", 2), "non-owner release is a no-op")
	require.ErrorIs(t, repo.Claim(ctx, "a@b.com", 3), domainerrors.ErrEmailTaken)

	require.NoError(t, repo.Release(ctx, "a@b.com", 1))
	require.NoError(t, repo.Claim(ctx, "a@b.com", 3))
	require.NoError(t, repo.Release(ctx, "missing@b.com", 3))
}

func TestMemoryEmailClaimRepository(t *testing.T) {
	exerciseEmailClaims(t, NewMemoryEmailClaimRepository())
}

func TestRedisEmailClaimRepository(t *testing.T) {
	srv, err := miniredis.Run()
	if err != nil {
		t.Skipf("skip: miniredis unavailable in this environment: %v", err)
	}
	defer srv.Close()

	cli := goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	redis.SetClient(cli)
	defer cli.Close()

	repo := NewRedisEmailClaimRepository("kyc:email:")
	exerciseEmailClaims(t, repo)

	owner, err := srv.Get("kyc:email:a@b.com")
	require.NoError(t, err)
	require.Equal(t, "3", owner)
}

func TestRedisEmailClaimRepository_Errors(t *testing.T) {
	origSetNX, origGet, origDel := claimSetNX, claimGet, claimDelIfEqual
	t.Cleanup(func() {
		claimSetNX, claimGet, claimDelIfEqual = origSetNX, origGet, origDel
	})
	repo := NewRedisEmailClaimRepository("p:")
	ctx := context.Background()

	claimSetNX = func(context.Context, string, interface{}, time.Duration) (bool, error) {
		return false, errors.New("redis down")
	}
	require.EqualError(t, repo.Claim(ctx, "a@b.com", 1), "redis down")

	claimSetNX = func(context.Context, string, interface{}, time.Duration) (bool, error) { return false, nil }
	claimGet = func(context.Context, string) (string, error) { return "", errors.New("get failed") }
	require.EqualError(t, repo.Claim(ctx, "a@b.com", 1), "get failed")

	attempts := 0
	claimSetNX = func(context.Context, string, interface{}, time.Duration) (bool, error) {
		attempts++
		return attempts > 1, nil
	}
	claimGet = func(context.Context, string) (string, error) { return "", goredis.Nil }
	require.NoError(t, repo.Claim(ctx, "a@b.com", 1))
	require.Equal(t, 2, attempts)

	claimDelIfEqual = func(context.Context, string, string) (bool, error) { return false, errors.New("eval failed") }
	require.EqualError(t, repo.Release(ctx, "a@b.com", 1), "eval failed")
}
