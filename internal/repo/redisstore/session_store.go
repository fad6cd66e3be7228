package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/EnriqueRodriguezDev/tu-abogado-api/internal/domain"
)

const sessionKeyPrefix = "booking:session:"

// SessionStore keeps in-progress booking sessions in redis with a TTL,
// so abandoned flows expire on their own.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Save(ctx context.Context, sess *domain.BookingSession) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return s.client.Set(ctx, sessionKeyPrefix+sess.ID, payload, s.ttl).Err()
}

// Get returns nil, nil when the session does not exist or has expired.
func (s *SessionStore) Get(ctx context.Context, id string) (*domain.BookingSession, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	raw, err := s.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var sess domain.BookingSession
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return s.client.Del(ctx, sessionKeyPrefix+id).Err()
}
