package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"vendorHub/domain"

	"github.com/redis/go-redis/v9"
)

// SessionRepository keeps issued tokens in Redis so they can be revoked before they expire.
type SessionRepository struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{
		client: client,
	}
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:token:%s", token)
}

func (r *SessionRepository) StoreSession(ctx context.Context, token string, data domain.Session, ttl time.Duration) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	if err := r.client.Set(ctx, sessionKey(token), jsonData, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session in Redis: %w", err)
	}

	return nil
}

// ValidateSession returns the user id bound to token.
func (r *SessionRepository) ValidateSession(ctx context.Context, token string) (string, error) {
	val, err := r.client.Get(ctx, sessionKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", fmt.Errorf("session not found or expired: %w", domain.ErrUnauthorized)
		}
		return "", fmt.Errorf("failed to validate session: %w", err)
	}

	var data domain.Session
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		return "", fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	return data.UserID, nil
}

func (r *SessionRepository) RevokeSession(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	return nil
}
