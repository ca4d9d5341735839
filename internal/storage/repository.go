package storage

import (
	"context"
	"errors"

	"github.com/sandeepkv93/stickynotes/internal/model"
)

var (
	ErrNotFound    = errors.New("storage: not found")
	ErrDuplicateID = errors.New("storage: duplicate id")
)

// Repository is the ordered note collection backing a single gallery.
// List returns notes in insertion order; Update keeps a note's position.
type Repository interface {
	Add(ctx context.Context, in model.Note) error
	Get(ctx context.Context, id string) (model.Note, error)
	Update(ctx context.Context, in model.Note) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]model.Note, error)
	Clear(ctx context.Context) error
}
