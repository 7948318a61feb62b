package workers

import (
	"context"
	"log"
	"time"
)

const DefaultRolloverInterval = time.Minute

type Roller interface {
	Rollover(ctx context.Context) (bool, error)
}

// RolloverWorker moves a long-running process to the new day while nobody
// is interacting with it.
type RolloverWorker struct {
	roller   Roller
	interval time.Duration
	kicks    chan struct{}
}

func NewRolloverWorker(roller Roller, interval time.Duration) *RolloverWorker {
	if interval <= 0 {
		interval = DefaultRolloverInterval
	}
	return &RolloverWorker{
		roller:   roller,
		interval: interval,
		kicks:    make(chan struct{}, 1),
	}
}

func (w *RolloverWorker) Start(ctx context.Context) {
	go func() {
		log.Printf("[WORKER] Rollover worker started (every %s)", w.interval)
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				w.check(ctx)
			case <-w.kicks:
				w.check(ctx)
			case <-ctx.Done():
				log.Println("[WORKER] Rollover worker shutting down...")
				return
			}
		}
	}()
}

// Kick requests an immediate check. Extra kicks while one is pending are dropped.
func (w *RolloverWorker) Kick() {
	select {
	case w.kicks <- struct{}{}:
	default:
	}
}

func (w *RolloverWorker) check(ctx context.Context) {
	changed, err := w.roller.Rollover(ctx)
	if err != nil {
		log.Printf("[WORKER] Rollover failed: %v", err)
		return
	}
	if changed {
		log.Println("[WORKER] New day detected, daily habits reset")
	}
}
