package weather

import (
	"slices"
	"time"
)

// FrameID identifies a pending frame callback.
type FrameID uint64

// TimerID identifies a pending timer.
type TimerID uint64

// FrameFunc is a per-frame callback. now is the document clock.
type FrameFunc func(now time.Duration)

type timer struct {
	id TimerID
	at time.Duration
	fn func()
}

// scheduler is the document's cooperative event loop: one-shot frame
// callbacks and cancellable timers, both advanced by Document.Tick. It is
// not safe for concurrent use.
type scheduler struct {
	now    time.Duration
	nextID uint64

	frames     map[FrameID]FrameFunc
	frameOrder []FrameID
	timers     []timer
}

func (s *scheduler) id() uint64 {
	s.nextID++
	return s.nextID
}

// requestFrame queues fn for the next tick. Callbacks requested while a tick
// is running never fire within that same tick.
func (s *scheduler) requestFrame(fn FrameFunc) FrameID {
	if s.frames == nil {
		s.frames = make(map[FrameID]FrameFunc)
	}
	id := FrameID(s.id())
	s.frames[id] = fn
	s.frameOrder = append(s.frameOrder, id)
	return id
}

func (s *scheduler) cancelFrame(id FrameID) {
	delete(s.frames, id)
}

func (s *scheduler) setTimeout(d time.Duration, fn func()) TimerID {
	id := TimerID(s.id())
	s.timers = append(s.timers, timer{id: id, at: s.now + max(d, 0), fn: fn})
	return id
}

func (s *scheduler) clearTimeout(id TimerID) {
	s.timers = slices.DeleteFunc(s.timers, func(t timer) bool { return t.id == id })
}

// pendingTimers returns the number of timers not yet fired.
func (s *scheduler) pendingTimers() int {
	return len(s.timers)
}

// pendingFrames returns the number of frame callbacks not yet run.
func (s *scheduler) pendingFrames() int {
	return len(s.frames)
}

// advance moves the clock forward by dt, fires due timers in deadline order,
// then runs the frame callbacks that were queued before this call.
func (s *scheduler) advance(dt time.Duration) {
	batch := s.frameOrder
	s.frameOrder = nil

	s.now += dt
	for {
		i := s.nextDue()
		if i < 0 {
			break
		}
		t := s.timers[i]
		s.timers = slices.Delete(s.timers, i, i+1)
		t.fn()
	}

	for _, id := range batch {
		fn, ok := s.frames[id]
		if !ok {
			continue
		}
		delete(s.frames, id)
		fn(s.now)
	}
}

// nextDue returns the index of the earliest due timer, or -1.
func (s *scheduler) nextDue() int {
	best := -1
	for i, t := range s.timers {
		if t.at > s.now {
			continue
		}
		if best < 0 || t.at < s.timers[best].at {
			best = i
		}
	}
	return best
}
