package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/ikkim/certificate-validator/config"
	"github.com/ikkim/certificate-validator/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Init initializes Redis connection
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully")
	return nil
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection")
		return client.Close()
	}
	return nil
}

const (
	DefaultUploadLockKey = "certificate-validator:upload:busy"
	// a crashed instance must not hold the flag forever
	DefaultUploadLockTTL = 2 * time.Minute
)

// UploadLock is the upload busy flag shared by every instance.
type UploadLock struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func NewUploadLock(c *redis.Client, key string, ttl time.Duration) *UploadLock {
	if key == "" {
		key = DefaultUploadLockKey
	}
	if ttl <= 0 {
		ttl = DefaultUploadLockTTL
	}
	return &UploadLock{client: c, key: key, ttl: ttl}
}

// Acquire sets the flag if it is not already set.
func (l *UploadLock) Acquire(ctx context.Context) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.key, time.Now().UTC().Format(time.RFC3339), l.ttl).Result()
	if err != nil {
		logger.Error("Failed to acquire upload lock", err, map[string]interface{}{
			"key": l.key,
		})
		return false, err
	}
	return ok, nil
}

// Release clears the flag regardless of who set it.
func (l *UploadLock) Release(ctx context.Context) error {
	if err := l.client.Del(ctx, l.key).Err(); err != nil {
		logger.Error("Failed to release upload lock", err, map[string]interface{}{
			"key": l.key,
		})
		return err
	}
	return nil
}

// Held reports whether the flag is set.
func (l *UploadLock) Held(ctx context.Context) (bool, error) {
	n, err := l.client.Exists(ctx, l.key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
