package reminder

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Store persists pending reminders so they survive a restart.
type Store interface {
	Put(ctx context.Context, r Reminder) error
	Remove(ctx context.Context, commitmentID string) error
	// List returns every stored reminder ordered by fire time.
	List(ctx context.Context) ([]Reminder, error)
}

// MemoryStore keeps reminders in process memory.
type MemoryStore struct {
	mu        sync.Mutex
	reminders map[string]Reminder
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{reminders: map[string]Reminder{}}
}

func (s *MemoryStore) Put(_ context.Context, r Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reminders[r.CommitmentID] = r
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, commitmentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.reminders, commitmentID)
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Reminder, 0, len(s.reminders))
	for _, r := range s.reminders {
		out = append(out, r)
	}
	sortByFireTime(out)
	return out, nil
}

// RedisStore keeps reminders in a sorted set scored by fire time, with the
// reminder bodies in a hash keyed by commitment id.
type RedisStore struct {
	client *redis.Client
	dueKey string
	bodies string
}

// NewRedisStore stores reminders under keys beginning with prefix.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "insig8:reminders"
	}
	return &RedisStore{client: client, dueKey: prefix + ":due", bodies: prefix + ":data"}
}

// DialRedis connects to a redis:// URL and checks the server answers.
func DialRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

func (s *RedisStore) Put(ctx context.Context, r Reminder) error {
	body, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode reminder: %w", err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, s.dueKey, redis.Z{Score: float64(r.FireAt.UnixMilli()), Member: r.CommitmentID})
		pipe.HSet(ctx, s.bodies, r.CommitmentID, body)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store reminder: %w", err)
	}
	return nil
}

func (s *RedisStore) Remove(ctx context.Context, commitmentID string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRem(ctx, s.dueKey, commitmentID)
		pipe.HDel(ctx, s.bodies, commitmentID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to remove reminder: %w", err)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context) ([]Reminder, error) {
	ids, err := s.client.ZRange(ctx, s.dueKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	if len(ids) == 0 {
		return []Reminder{}, nil
	}

	bodies, err := s.client.HMGet(ctx, s.bodies, ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load reminders: %w", err)
	}

	out := make([]Reminder, 0, len(ids))
	for i, raw := range bodies {
		str, ok := raw.(string)
		if !ok {
			continue
		}
		var r Reminder
		if err := json.Unmarshal([]byte(str), &r); err != nil {
			return nil, fmt.Errorf("failed to decode reminder %s: %w", ids[i], err)
		}
		out = append(out, r)
	}
	return out, nil
}

func sortByFireTime(rs []Reminder) {
	sort.Slice(rs, func(i, j int) bool {
		if rs[i].FireAt.Equal(rs[j].FireAt) {
			return rs[i].CommitmentID < rs[j].CommitmentID
		}
		return rs[i].FireAt.Before(rs[j].FireAt)
	})
}
