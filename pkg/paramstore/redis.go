package paramstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "paygrid:params:"

// Redis stores workflow input values in Redis, one JSON hash per job id.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to Redis and verifies the connection.
func NewRedis(ctx context.Context, addr, password string, db int, ttl time.Duration) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := client.Ping(pingCtx).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Redis{client: client, ttl: ttl}, nil
}

func (r *Redis) Load(ctx context.Context, jobID string) (map[string]any, error) {
	payload, err := r.client.Get(ctx, keyPrefix+jobID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to load values for job %s: %w", jobID, err)
	}

	var values map[string]any

	err = json.Unmarshal(payload, &values)
	if err != nil {
		return nil, fmt.Errorf("failed to decode stored values for job %s: %w", jobID, err)
	}

	return values, nil
}

func (r *Redis) Save(ctx context.Context, jobID string, values map[string]any) error {
	payload, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to encode values for job %s: %w", jobID, err)
	}

	err = r.client.Set(ctx, keyPrefix+jobID, payload, r.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to save values for job %s: %w", jobID, err)
	}

	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
