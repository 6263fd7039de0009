package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/redis/go-redis/v9"

	"github.com/postiq-ai/postiq-bot/pkg/errors"
)

type RedisConfig struct {
	Addr     string        `toml:"addr"`
	Password string        `toml:"password"`
	DB       int           `toml:"db"`
	TTL      time.Duration `toml:"ttl"`
}

const defaultTTL = 72 * time.Hour

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(cfg RedisConfig) *RedisStore {
	if cfg.TTL == 0 {
		cfg.TTL = defaultTTL
	}
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		ttl: cfg.TTL,
	}
}

func sessionKey(chatID int64) string {
	return fmt.Sprintf("dialog:session:%d", chatID)
}

func (s *RedisStore) Load(ctx context.Context, chatID int64) (*Session, error) {
	raw, err := s.client.Get(ctx, sessionKey(chatID)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.New("session.RedisStore.Load", "session load failed", err)
	}
	return Decode(raw)
}

func (s *RedisStore) Save(ctx context.Context, sess *Session) error {
	raw, err := sess.Encode()
	if err != nil {
		return err
	}
	if err = s.client.Set(ctx, sessionKey(sess.ChatID), raw, s.ttl).Err(); err != nil {
		return errors.New("session.RedisStore.Save", "session save failed", err)
	}
	return nil
}

func (s *RedisStore) Drop(ctx context.Context, chatID int64) error {
	if err := s.client.Del(ctx, sessionKey(chatID)).Err(); err != nil {
		return errors.New("session.RedisStore.Drop", "session drop failed", err)
	}
	return nil
}

// Locker serializes same-chat work. Telegram delivers one chat's updates
// sequentially, but inter-service callbacks can race a live handler.
type Locker struct {
	locks cmap.ConcurrentMap[string, *sync.Mutex]
}

func NewLocker() *Locker {
	return &Locker{locks: cmap.New[*sync.Mutex]()}
}

func (l *Locker) WithLock(chatID int64, fn func() error) error {
	key := fmt.Sprintf("%d", chatID)
	mu, _ := l.locks.Get(key)
	if mu == nil {
		l.locks.SetIfAbsent(key, &sync.Mutex{})
		mu, _ = l.locks.Get(key)
	}
	mu.Lock()
	defer mu.Unlock()
	return fn()
}
