package gallery

import (
	"context"
	"fmt"
	"time"

	"github.com/sandeepkv93/stickynotes/internal/model"
	"github.com/sandeepkv93/stickynotes/internal/storage"
)

// RepositorySource hands out one repository per gallery.
// *storage.Provider satisfies it.
type RepositorySource interface {
	Repository(gallery model.GalleryKind) (storage.Repository, error)
}

// Set is the five gallery controllers, in navigation order.
type Set struct {
	order       []model.GalleryKind
	controllers map[model.GalleryKind]*Controller
}

func NewSet(repos RepositorySource, schedulers func(model.GalleryKind) Scheduler, opts ...Option) (*Set, error) {
	s := &Set{controllers: make(map[model.GalleryKind]*Controller)}
	for _, def := range model.Galleries() {
		repo, err := repos.Repository(def.Kind)
		if err != nil {
			return nil, fmt.Errorf("gallery %s: %w", def.Kind, err)
		}
		var sched Scheduler = NoopScheduler{}
		if schedulers != nil {
			sched = schedulers(def.Kind)
		}
		s.order = append(s.order, def.Kind)
		s.controllers[def.Kind] = NewController(def, repo, sched, opts...)
	}
	return s, nil
}

func (s *Set) Kinds() []model.GalleryKind {
	out := make([]model.GalleryKind, len(s.order))
	copy(out, s.order)
	return out
}

func (s *Set) Get(kind model.GalleryKind) (*Controller, error) {
	c, ok := s.controllers[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidGallery, kind)
	}
	return c, nil
}

// Lookup parses a raw gallery name and returns its controller.
func (s *Set) Lookup(raw string) (*Controller, error) {
	kind, err := model.ParseGalleryKind(raw)
	if err != nil {
		return nil, err
	}
	return s.Get(kind)
}

func (s *Set) Seed(ctx context.Context) (int, error) {
	total := 0
	for _, kind := range s.order {
		n, err := s.controllers[kind].Seed(ctx)
		total += n
		if err != nil {
			return total, fmt.Errorf("seed %s: %w", kind, err)
		}
	}
	return total, nil
}

func (s *Set) Resume(ctx context.Context) (int, error) {
	total := 0
	for _, kind := range s.order {
		n, err := s.controllers[kind].Resume(ctx)
		total += n
		if err != nil {
			return total, fmt.Errorf("resume %s: %w", kind, err)
		}
	}
	return total, nil
}

func (s *Set) SetRemindersEnabled(ctx context.Context, enabled bool) error {
	for _, kind := range s.order {
		if err := s.controllers[kind].SetRemindersEnabled(ctx, enabled); err != nil {
			return fmt.Errorf("%s: %w", kind, err)
		}
	}
	return nil
}

func (s *Set) SetDefaults(color model.Color, emoji string) error {
	for _, kind := range s.order {
		if err := s.controllers[kind].SetDefaults(color, emoji); err != nil {
			return err
		}
	}
	return nil
}

// Fired routes a delivered reminder back to the gallery that scheduled it.
func (s *Set) Fired(gallery, id string, firedAt time.Time) {
	c, err := s.Lookup(gallery)
	if err != nil {
		return
	}
	c.Fired(id, firedAt)
}
