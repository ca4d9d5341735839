package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/sandeepkv93/stickynotes/internal/model"
)

// RedisRepository keeps a gallery's notes as JSON in a hash keyed by id,
// with a list of ids carrying insertion order.
type RedisRepository struct {
	rdb      *redis.Client
	gallery  model.GalleryKind
	orderKey string
	notesKey string
}

func NewRedisRepository(rdb *redis.Client, prefix string, gallery model.GalleryKind) (*RedisRepository, error) {
	if rdb == nil {
		return nil, errors.New("storage: nil redis client")
	}
	if !gallery.IsValid() {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidGallery, gallery)
	}
	if prefix == "" {
		prefix = "stickynotes"
	}
	return &RedisRepository{
		rdb:      rdb,
		gallery:  gallery,
		orderKey: fmt.Sprintf("%s:%s:order", prefix, gallery),
		notesKey: fmt.Sprintf("%s:%s:notes", prefix, gallery),
	}, nil
}

func (r *RedisRepository) Add(ctx context.Context, in model.Note) error {
	if err := checkInsertable(in, r.gallery); err != nil {
		return err
	}
	payload, err := json.Marshal(toRecord(in))
	if err != nil {
		return fmt.Errorf("encode note: %w", err)
	}
	return r.atomically(ctx, func(tx *redis.Tx) error {
		exists, err := tx.HExists(ctx, r.notesKey, in.ID).Result()
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateID
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, r.notesKey, in.ID, payload)
			pipe.RPush(ctx, r.orderKey, in.ID)
			return nil
		})
		return err
	})
}

func (r *RedisRepository) Get(ctx context.Context, id string) (model.Note, error) {
	raw, err := r.rdb.HGet(ctx, r.notesKey, id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.Note{}, ErrNotFound
		}
		return model.Note{}, err
	}
	return decodeRecord(raw)
}

func (r *RedisRepository) Update(ctx context.Context, in model.Note) error {
	if err := checkInsertable(in, r.gallery); err != nil {
		return err
	}
	payload, err := json.Marshal(toRecord(in))
	if err != nil {
		return fmt.Errorf("encode note: %w", err)
	}
	return r.atomically(ctx, func(tx *redis.Tx) error {
		exists, err := tx.HExists(ctx, r.notesKey, in.ID).Result()
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, r.notesKey, in.ID, payload)
			return nil
		})
		return err
	})
}

func (r *RedisRepository) Delete(ctx context.Context, id string) error {
	return r.atomically(ctx, func(tx *redis.Tx) error {
		exists, err := tx.HExists(ctx, r.notesKey, id).Result()
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HDel(ctx, r.notesKey, id)
			pipe.LRem(ctx, r.orderKey, 0, id)
			return nil
		})
		return err
	})
}

const maxTxRetries = 10

// atomically runs fn as a WATCH/MULTI/EXEC transaction over the gallery's
// keys, retrying when another client changed them first.
func (r *RedisRepository) atomically(ctx context.Context, fn func(tx *redis.Tx) error) error {
	for i := 0; i < maxTxRetries; i++ {
		err := r.rdb.Watch(ctx, fn, r.notesKey, r.orderKey)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("storage: redis transaction on %s kept conflicting", r.gallery)
}

func (r *RedisRepository) List(ctx context.Context) ([]model.Note, error) {
	ids, err := r.rdb.LRange(ctx, r.orderKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]model.Note, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	values, err := r.rdb.HMGet(ctx, r.notesKey, ids...).Result()
	if err != nil {
		return nil, err
	}
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		n, decodeErr := decodeRecord([]byte(s))
		if decodeErr != nil {
			return nil, decodeErr
		}
		out = append(out, n)
	}
	return out, nil
}

func (r *RedisRepository) Clear(ctx context.Context) error {
	return r.rdb.Del(ctx, r.orderKey, r.notesKey).Err()
}

func decodeRecord(raw []byte) (model.Note, error) {
	var rec noteRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return model.Note{}, fmt.Errorf("decode note: %w", err)
	}
	return rec.toNote(), nil
}
