package store

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Sweeper periodically evicts expired entries from a Memory store so that
// abandoned sessions do not accumulate. Lazy expiry on Get already keeps
// reads correct; the sweep only bounds memory under session churn.
type Sweeper struct {
	cron *cron.Cron
	mem  *Memory
	spec string // cron spec, e.g. "@every 60m"
}

// NewSweeper creates a Sweeper that fires every intervalMinutes minutes.
func NewSweeper(mem *Memory, intervalMinutes int) *Sweeper {
	return &Sweeper{
		cron: cron.New(),
		mem:  mem,
		spec: fmt.Sprintf("@every %dm", intervalMinutes),
	}
}

// Start registers the sweep job and starts the scheduler.
func (s *Sweeper) Start() error {
	_, err := s.cron.AddFunc(s.spec, s.sweep)
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	s.cron.Start()
	log.Printf("[store] Sweep started — spec: %s", s.spec)
	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Sweeper) Stop() {
	s.cron.Stop()
	log.Println("[store] Sweep stopped")
}

func (s *Sweeper) sweep() {
	if n := s.mem.Evict(time.Now()); n > 0 {
		log.Printf("[store] Swept %d expired session(s) — %d remaining", n, s.mem.Count())
	}
}
