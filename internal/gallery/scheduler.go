package gallery

import (
	"time"

	"github.com/sandeepkv93/stickynotes/internal/model"
	"github.com/sandeepkv93/stickynotes/internal/scheduler"
	"go.uber.org/zap"
)

// Scheduler is the reminder boundary a controller talks to. Both calls are
// fire-and-forget: failures never reach the note lifecycle.
type Scheduler interface {
	Schedule(id, title, body string, fireAt time.Time)
	Cancel(id string)
}

type NoopScheduler struct{}

func (NoopScheduler) Schedule(string, string, string, time.Time) {}
func (NoopScheduler) Cancel(string)                              {}

// EngineScheduler feeds a gallery's reminders into the shared timer engine.
type EngineScheduler struct {
	engine  *scheduler.Engine
	gallery model.GalleryKind
	log     *zap.SugaredLogger
}

func NewEngineScheduler(engine *scheduler.Engine, gallery model.GalleryKind, log *zap.SugaredLogger) *EngineScheduler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &EngineScheduler{engine: engine, gallery: gallery, log: log}
}

func (s *EngineScheduler) Schedule(id, title, body string, fireAt time.Time) {
	err := s.engine.Schedule(scheduler.ReminderEvent{
		ID:        id,
		Gallery:   string(s.gallery),
		Title:     title,
		Body:      body,
		TriggerAt: fireAt.UTC(),
	})
	if err != nil {
		s.log.Warnw("reminder not scheduled", "gallery", s.gallery, "id", id, "fire_at", fireAt, "ERROR", err)
		return
	}
	s.log.Debugw("reminder scheduled", "gallery", s.gallery, "id", id, "fire_at", fireAt)
}

func (s *EngineScheduler) Cancel(id string) {
	if s.engine.Cancel(id) {
		s.log.Debugw("reminder cancelled", "gallery", s.gallery, "id", id)
	}
}

// EngineSchedulers returns a per-gallery Scheduler factory over one engine.
func EngineSchedulers(engine *scheduler.Engine, log *zap.SugaredLogger) func(model.GalleryKind) Scheduler {
	return func(kind model.GalleryKind) Scheduler {
		if engine == nil {
			return NoopScheduler{}
		}
		return NewEngineScheduler(engine, kind, log)
	}
}
