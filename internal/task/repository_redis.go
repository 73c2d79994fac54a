package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"
)

const DefaultRedisKey = "taskboard:tasks"

// RedisRepo keeps the whole document under a single key, the server-side
// counterpart of serializing the collection into browser local storage.
type RedisRepo struct {
	mu     sync.Mutex
	rdb    *redis.Client
	key    string
	logger *slog.Logger
}

func NewRedisRepository(rdb *redis.Client, key string, logger *slog.Logger) *RedisRepo {
	if key == "" {
		key = DefaultRedisKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisRepo{rdb: rdb, key: key, logger: logger}
}

func (r *RedisRepo) load(ctx context.Context) (*document, error) {
	b, err := r.rdb.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return emptyDocument(), nil
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	doc, err := decodeDocument(b)
	if err != nil {
		r.logger.Warn("tasks key unreadable, using empty collection", "key", r.key, "error", err)
		return emptyDocument(), nil
	}
	return doc, nil
}

func (r *RedisRepo) save(ctx context.Context, doc *document) error {
	b, err := encodeDocument(doc)
	if err != nil {
		return err
	}
	// no TTL: เก็บถาวรจนกว่าจะ Clear
	if err := r.rdb.Set(ctx, r.key, b, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *RedisRepo) Create(ctx context.Context, title, description string) (*Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	t := doc.create(title, description)
	if err := r.save(ctx, doc); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *RedisRepo) List(ctx context.Context) ([]Task, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.list(), nil
}

func (r *RedisRepo) GetByID(ctx context.Context, id string) (*Task, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.get(id)
}

func (r *RedisRepo) Update(ctx context.Context, id string, p Patch) (*Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	t, err := doc.update(id, p)
	if err != nil {
		return nil, err
	}
	if err := r.save(ctx, doc); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *RedisRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load(ctx)
	if err != nil {
		return err
	}
	if err := doc.remove(id); err != nil {
		return err
	}
	return r.save(ctx, doc)
}

func (r *RedisRepo) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.rdb.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
