package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sandeepkv93/stickynotes/internal/model"
)

type Backend string

const (
	BackendMemory Backend = "memory"
	BackendSQLite Backend = "sqlite"
	BackendRedis  Backend = "redis"
)

type Options struct {
	Backend     Backend
	DSN         string
	RedisPrefix string
	PingTimeout time.Duration
}

// Provider hands out one repository per gallery over a shared backend
// connection. Galleries never share rows, only the connection.
type Provider struct {
	opts Options
	db   *sql.DB
	rdb  *redis.Client
}

func NewProvider(ctx context.Context, opts Options) (*Provider, error) {
	opts.Backend = Backend(strings.ToLower(strings.TrimSpace(string(opts.Backend))))
	if opts.Backend == "" {
		opts.Backend = BackendMemory
	}
	if opts.PingTimeout <= 0 {
		opts.PingTimeout = 2 * time.Second
	}
	p := &Provider{opts: opts}
	switch opts.Backend {
	case BackendMemory:
	case BackendSQLite:
		dsn := opts.DSN
		if dsn == "" {
			dsn = ":memory:"
		}
		db, err := OpenSQLite(dsn)
		if err != nil {
			return nil, err
		}
		p.db = db
	case BackendRedis:
		if opts.DSN == "" {
			return nil, fmt.Errorf("storage: redis backend requires an address")
		}
		rdb := redis.NewClient(&redis.Options{Addr: opts.DSN})
		pingCtx, cancel := context.WithTimeout(ctx, opts.PingTimeout)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("could not connect to redis: %w", err)
		}
		p.rdb = rdb
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", opts.Backend)
	}
	return p, nil
}

func (p *Provider) Backend() Backend {
	return p.opts.Backend
}

// Persistent reports whether notes outlive the process.
func (p *Provider) Persistent() bool {
	switch p.opts.Backend {
	case BackendSQLite:
		return p.opts.DSN != "" && p.opts.DSN != ":memory:"
	case BackendRedis:
		return true
	default:
		return false
	}
}

func (p *Provider) Repository(gallery model.GalleryKind) (Repository, error) {
	switch p.opts.Backend {
	case BackendSQLite:
		return NewSQLiteRepository(p.db, gallery)
	case BackendRedis:
		return NewRedisRepository(p.rdb, p.opts.RedisPrefix, gallery)
	default:
		if !gallery.IsValid() {
			return nil, fmt.Errorf("%w: %q", model.ErrInvalidGallery, gallery)
		}
		return NewMemoryRepository(gallery), nil
	}
}

func (p *Provider) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	if p.rdb != nil {
		return p.rdb.Close()
	}
	return nil
}
