package storage

import (
	"context"
	"sync"

	"github.com/sandeepkv93/stickynotes/internal/model"
)

type MemoryRepository struct {
	mu      sync.RWMutex
	gallery model.GalleryKind
	notes   []model.Note
	index   map[string]int
}

func NewMemoryRepository(gallery model.GalleryKind) *MemoryRepository {
	return &MemoryRepository{
		gallery: gallery,
		notes:   make([]model.Note, 0),
		index:   make(map[string]int),
	}
}

func (r *MemoryRepository) Add(_ context.Context, in model.Note) error {
	if err := checkInsertable(in, r.gallery); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.index[in.ID]; ok {
		return ErrDuplicateID
	}
	r.notes = append(r.notes, cloneNote(in))
	r.index[in.ID] = len(r.notes) - 1
	return nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (model.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.index[id]
	if !ok {
		return model.Note{}, ErrNotFound
	}
	return cloneNote(r.notes[i]), nil
}

func (r *MemoryRepository) Update(_ context.Context, in model.Note) error {
	if err := checkInsertable(in, r.gallery); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.index[in.ID]
	if !ok {
		return ErrNotFound
	}
	r.notes[i] = cloneNote(in)
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.index[id]
	if !ok {
		return ErrNotFound
	}
	r.notes = append(r.notes[:i], r.notes[i+1:]...)
	delete(r.index, id)
	for j := i; j < len(r.notes); j++ {
		r.index[r.notes[j].ID] = j
	}
	return nil
}

func (r *MemoryRepository) List(_ context.Context) ([]model.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Note, 0, len(r.notes))
	for _, n := range r.notes {
		out = append(out, cloneNote(n))
	}
	return out, nil
}

func (r *MemoryRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = make([]model.Note, 0)
	r.index = make(map[string]int)
	return nil
}
