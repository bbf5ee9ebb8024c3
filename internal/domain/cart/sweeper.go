// internal/domain/cart/sweeper.go
package cart

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/your-org/storefront-api/internal/config"
)

// Sweeper periodically deletes expired guest carts. The sweep is the
// only destructor for guest carts; carts bound to a registered user are
// never deleted by it.
type Sweeper struct {
	repo Repository
	log  *logrus.Logger
	cron *cron.Cron

	schedule string
	timeout  time.Duration
}

// NewSweeper creates a sweeper running on the configured cron schedule
func NewSweeper(repo Repository, cfg *config.Config, log *logrus.Logger) *Sweeper {
	return &Sweeper{
		repo:     repo,
		log:      log,
		cron:     cron.New(),
		schedule: cfg.Cart.SweepSchedule,
		timeout:  30 * time.Second,
	}
}

// Start schedules the sweep and begins running it
func (s *Sweeper) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.sweep); err != nil {
		return err
	}

	s.cron.Start()
	s.log.WithField("schedule", s.schedule).Info("Started expired-cart sweep")
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	deleted, err := s.repo.DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		s.log.WithError(err).Error("Expired-cart sweep failed")
		return
	}

	s.log.WithField("deleted", deleted).Info("Deleted expired carts")
}
