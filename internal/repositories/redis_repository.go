package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/api/middleware"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/config"
)

type RateLimitRepository interface {
	// CheckLoginRateLimit returns isAllowed, attempts left and seconds to wait.
	CheckLoginRateLimit(ctx context.Context, email string) (bool, int, int, error)
}

type redisRepository struct {
	client *redis.Client
	cfg    config.RateConfig
	now    func() time.Time
}

func NewRedisClient(cfg *config.RedisConnect) (*redis.Client, error) {
	slog.Info("Connecting to Redis", slog.String("url", fmt.Sprintf("redis://%s:<password>@%s:%s", cfg.Username, cfg.Host, cfg.Port)))

	opt, err := redis.ParseURL(cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("Successfully connected to Redis")

	return client, nil
}

// NewRateLimitRepo builds the sliding-window login limiter. now may be nil.
func NewRateLimitRepo(client *redis.Client, cfg config.RateConfig, now func() time.Time) RateLimitRepository {
	if now == nil {
		now = time.Now
	}

	return &redisRepository{client: client, cfg: cfg, now: now}
}

func LoginAttemptsKey(email string) string {
	return "login_attempts:" + strings.ToLower(strings.TrimSpace(email))
}

// AttemptMember names one login attempt in the sorted set. Members must be
// unique so that attempts in the same second are all counted.
func AttemptMember(at time.Time) string {
	return fmt.Sprintf("%d-%s", at.UnixNano(), uuid.NewString())
}

// Each attempt is a sorted-set member scored by its unix timestamp; members older
// than the window are trimmed before counting.
func (r *redisRepository) CheckLoginRateLimit(ctx context.Context, email string) (bool, int, int, error) {
	logger := middleware.LoggerFromContext(ctx)

	key := LoginAttemptsKey(email)
	at := r.now()
	now := at.Unix()
	window := int64(r.cfg.WindowSize.Seconds())
	windowStart := now - window

	pipe := r.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: AttemptMember(at)})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, r.cfg.WindowSize)

	if _, err := pipe.Exec(ctx); err != nil {
		logger.Error("Redis pipeline execution failed for rate limit", slog.String("key", key), slog.Any("error", err))
		return false, 0, 0, fmt.Errorf("redis pipeline error for rate limit check: %w", err)
	}

	attempts := count.Val()
	remaining := r.cfg.MaxAttempts - attempts

	if attempts > r.cfg.MaxAttempts {
		scores, err := r.client.ZRangeArgsWithScores(ctx, redis.ZRangeArgs{Key: key, Start: 0, Stop: 0}).Result()
		if err != nil || len(scores) == 0 {
			logger.Error("Failed to get oldest attempt time for rate limit", slog.String("key", key), slog.Any("error", err))
			return false, 0, int(window), fmt.Errorf("failed to get oldest attempt time: %w", err)
		}

		retryAfter := max(int64(scores[0].Score)+window-now, 0)

		logger.Warn("Rate limit exceeded for login", slog.String("key", key), slog.Int64("attempts", attempts))
		return false, 0, int(retryAfter), nil
	}

	logger.Debug("Rate limit check passed", slog.String("key", key), slog.Int64("attempts", attempts), slog.Int64("remaining", remaining))

	return true, int(remaining), 0, nil
}
