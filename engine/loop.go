package engine

import (
	"context"
	"time"
)

// GainStep is how far one arrow key press moves the gain.
const GainStep = 0.05

// Scheduler hands out display frames. RequestFrame arranges for fn to run
// once at the next frame and returns a handle that CancelFrame accepts.
type Scheduler interface {
	RequestFrame(fn func(timestamp float64)) int
	CancelFrame(id int)
}

// Snapshot is the throttled read-out published to UI subscribers.
type Snapshot struct {
	Frame         uint64  `json:"frame"`
	Order         float64 `json:"order"`
	Metastability float64 `json:"metastability"`
	Gain          float64 `json:"gain"`
	LatentLevel   float64 `json:"latentLevel"`
	LatentOn      bool    `json:"latentOn"`
	FPS           float64 `json:"fps"`
}

// Loop ticks the engine once per frame handed out by its scheduler. The next
// frame is always requested before the current tick runs, so physics keeps
// full frame rate no matter how often the UI reacts.
type Loop struct {
	Engine    *Engine
	Scheduler Scheduler

	// NotifyEvery is the number of frames between subscriber notifications.
	NotifyEvery int

	FrameID int
	Running bool

	frameFn     func(float64)
	subscribers []func(Snapshot)
}

// NewLoop binds an engine to a scheduler. The loop starts stopped.
func NewLoop(e *Engine, s Scheduler) *Loop {
	l := &Loop{
		Engine:      e,
		Scheduler:   s,
		NotifyEvery: 10,
	}
	l.frameFn = l.frame
	return l
}

// Start begins or resumes ticking.
func (l *Loop) Start() {
	if l.Running {
		return
	}
	Debug("Start!")
	l.Running = true
	l.FrameID = l.Scheduler.RequestFrame(l.frameFn)
}

// Stop cancels the pending frame. A tick already running completes; no
// further tick is scheduled.
func (l *Loop) Stop() {
	if !l.Running {
		return
	}
	Debug("Stop at frame", l.Engine.Sim.Ticks())
	l.Running = false
	l.Scheduler.CancelFrame(l.FrameID)
	l.FrameID = 0
}

// Subscribe registers fn to receive a Snapshot every NotifyEvery frames.
func (l *Loop) Subscribe(fn func(Snapshot)) {
	l.subscribers = append(l.subscribers, fn)
}

// Snapshot captures the current read-outs.
func (l *Loop) Snapshot() Snapshot {
	sim := l.Engine.Sim
	return Snapshot{
		Frame:         sim.Ticks(),
		Order:         sim.CurrentOrder(),
		Metastability: sim.CurrentMetastability(),
		Gain:          sim.Control.Gain(),
		LatentLevel:   sim.LatentLevel(),
		LatentOn:      sim.Control.LatentOn(),
		FPS:           l.Engine.Stats.CurrentFPS,
	}
}

// frame is the per-frame callback handed to the scheduler.
func (l *Loop) frame(timestamp float64) {
	if !l.Running {
		return
	}

	// Schedule next frame
	l.FrameID = l.Scheduler.RequestFrame(l.frameFn)

	l.Engine.Stats.UpdateFPS(timestamp)
	l.Engine.Tick()

	if len(l.subscribers) > 0 && l.NotifyEvery > 0 &&
		l.Engine.Sim.Ticks()%uint64(l.NotifyEvery) == 0 {
		snap := l.Snapshot()
		for _, fn := range l.subscribers {
			fn(snap)
		}
	}
}

// HandleKey applies a translated key code to the engine. It reports whether
// the key was consumed.
func (l *Loop) HandleKey(rawKeyCode int) bool {
	keyCode := TranslateKeyCode(rawKeyCode)
	e := l.Engine

	switch keyCode {
	case KeyStats:
		e.Stats.Toggle()
	case KeyPause:
		if l.Running {
			l.Stop()
		} else {
			l.Start()
		}
	case KeyLatent:
		on := e.ToggleLatent()
		Debug("Latent target:", on)
	case KeyReset:
		e.Reset()
	case KeyLeft:
		e.Sim.Control.NudgeGain(-GainStep)
	case KeyRight:
		e.Sim.Control.NudgeGain(GainStep)
	default:
		return false
	}
	return true
}

// ManualFrames is a Scheduler whose frames fire only when the host calls
// Fire. Desktop and headless hosts drive it from their own clock.
type ManualFrames struct {
	pending func(float64)
	id      int
}

// RequestFrame implements Scheduler.
func (m *ManualFrames) RequestFrame(fn func(float64)) int {
	m.id++
	m.pending = fn
	return m.id
}

// CancelFrame implements Scheduler.
func (m *ManualFrames) CancelFrame(id int) {
	if id == m.id {
		m.pending = nil
	}
}

// Pending reports whether a frame is waiting to fire.
func (m *ManualFrames) Pending() bool {
	return m.pending != nil
}

// Fire runs the pending frame, if any, with the given millisecond timestamp.
func (m *ManualFrames) Fire(timestamp float64) bool {
	fn := m.pending
	if fn == nil {
		return false
	}
	m.pending = nil
	fn(timestamp)
	return true
}

// RunTicker fires frames at a fixed interval until ctx is done or the loop
// stops requesting frames. All ticks run on the calling goroutine.
func RunTicker(ctx context.Context, frames *ManualFrames, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			ms := float64(now.Sub(start)) / float64(time.Millisecond)
			if !frames.Fire(ms) {
				return nil
			}
		}
	}
}
