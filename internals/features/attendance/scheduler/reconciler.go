package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"diarias_backend/internals/features/attendance/service"
)

// Reconciler drives the background sweep: every tick closes shifts about to
// start, and every second tick also runs no-show detection. Ticks run
// at least once right after Start so a restart never waits a full interval.
type Reconciler struct {
	svc      *service.ReconcileService
	interval time.Duration

	stop    chan struct{}
	done    chan struct{}
	running bool
	mu      sync.Mutex
}

func NewReconciler(svc *service.ReconcileService, interval time.Duration) *Reconciler {
	return &Reconciler{svc: svc, interval: interval}
}

func (r *Reconciler) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return
	}
	r.running = true
	r.stop = make(chan struct{})
	r.done = make(chan struct{})

	go r.loop()
	log.Printf("[RECONCILER] 🔌 started, interval %s", r.interval)
}

func (r *Reconciler) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	close(r.stop)
	done := r.done
	r.mu.Unlock()

	<-done
	log.Println("[RECONCILER] 🔌 stopped")
}

func (r *Reconciler) loop() {
	defer close(r.done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	cycle := 0
	r.runCycle(cycle)
	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			cycle++
			r.runCycle(cycle)
		}
	}
}

// runCycle never lets a panic or error kill the loop.
func (r *Reconciler) runCycle(cycle int) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("[RECONCILER] ❌ cycle %d panicked: %v", cycle, rec)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), r.interval)
	defer cancel()

	closed, err := r.svc.CloseDueShifts(ctx)
	if err != nil {
		log.Printf("[RECONCILER] ❌ close sweep failed: %v", err)
	} else if closed > 0 {
		log.Printf("[RECONCILER] ✅ closed %d shift(s)", closed)
	}

	if cycle%2 != 0 {
		return
	}
	flagged, err := r.svc.DetectNoShows(ctx)
	if err != nil {
		log.Printf("[RECONCILER] ❌ no-show sweep failed: %v", err)
	} else if flagged > 0 {
		log.Printf("[RECONCILER] ✅ flagged %d no-show(s)", flagged)
	}
}
