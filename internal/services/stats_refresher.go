package services

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/offer-board/internal/domain/events"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"time"
)

const warmUpTimeout = 30 * time.Second

type dashboardBuilder interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
}

type flusher interface {
	Flush()
}

// StatsRefresher keeps cached dashboard figures fresh: it rebuilds them on a
// schedule and drops them whenever a new offer is accepted.
type StatsRefresher struct {
	dashboard dashboardBuilder
	cache     flusher
	bus       EventBus.Bus
	cron      *cron.Cron
}

func NewStatsRefresher(dashboard dashboardBuilder, cache flusher, bus EventBus.Bus, schedule string) (*StatsRefresher, error) {

	if dashboard == nil || cache == nil || bus == nil {
		return nil, errors.New("stats refresher dependencies must not be nil")
	}

	r := &StatsRefresher{
		dashboard: dashboard,
		cache:     cache,
		bus:       bus,
		cron:      cron.New(),
	}

	if schedule != "" {
		if _, err := r.cron.AddFunc(schedule, r.warmUp); err != nil {
			return nil, err
		}
	}

	if err := bus.SubscribeAsync(events.OfferSubmittedTopic, r.onOfferSubmitted, false); err != nil {
		return nil, err
	}

	r.cron.Start()
	log.Infof("stats refresher started, schedule: %q", schedule)
	return r, nil
}

func (r *StatsRefresher) Stop() {
	<-r.cron.Stop().Done()
	if err := r.bus.Unsubscribe(events.OfferSubmittedTopic, r.onOfferSubmitted); err != nil {
		log.Warnf("couldn't unsubscribe stats refresher: %v", err)
	}
	r.bus.WaitAsync()
}

func (r *StatsRefresher) warmUp() {
	ctx, cancel := context.WithTimeout(context.Background(), warmUpTimeout)
	defer cancel()

	if _, err := r.dashboard.Dashboard(ctx); err != nil {
		log.Errorf("Failed to warm up dashboard stats: %v", err)
		return
	}
	log.Debugf("dashboard stats warmed up at %v", time.Now())
}

func (r *StatsRefresher) onOfferSubmitted(event events.OfferSubmitted) {
	r.cache.Flush()
	log.Debugf("dashboard stats flushed after offer %d", event.OfferID)
}
