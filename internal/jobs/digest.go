// Package jobs holds the background jobs that run alongside the HTTP server.
package jobs

import (
	"alcyxob/workout-scheduler/internal/domain"
	"alcyxob/workout-scheduler/internal/repository"
	"context"
	"log"
	"time"

	"github.com/robfig/cron"
)

// DailyDigest logs a morning summary of the day's scheduled workouts. It is
// purely informational; it never mutates the schedule.
type DailyDigest struct {
	instanceRepo repository.InstanceRepository
	c            *cron.Cron
}

// NewDailyDigest creates the digest job around the workout store.
func NewDailyDigest(instanceRepo repository.InstanceRepository) *DailyDigest {
	return &DailyDigest{instanceRepo: instanceRepo}
}

// Start registers the job on the given cron spec (with seconds field, e.g.
// "0 0 6 * * *" for 06:00 daily) and begins running it.
func (d *DailyDigest) Start(spec string) error {
	d.c = cron.New()
	if err := d.c.AddFunc(spec, d.run); err != nil {
		return err
	}
	d.c.Start()
	return nil
}

// Stop halts the cron scheduler. A run already in progress finishes.
func (d *DailyDigest) Stop() {
	if d.c != nil {
		d.c.Stop()
	}
}

func (d *DailyDigest) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	today := domain.DateOnly(time.Now().UTC())
	instances, err := d.instanceRepo.GetByDate(ctx, today)
	if err != nil {
		log.Printf("ERROR: daily digest: failed to fetch workouts for %s: %v",
			today.Format("2006-01-02"), err)
		return
	}

	if len(instances) == 0 {
		log.Printf("Daily digest: no workouts scheduled for %s", today.Format("2006-01-02"))
		return
	}

	log.Printf("Daily digest: %d workout(s) scheduled for %s", len(instances), today.Format("2006-01-02"))
	for _, in := range instances {
		log.Printf("  - user %s: %s (%s, %d exercises)",
			in.UserID.Hex(), in.Name, in.WorkoutType, len(in.Exercises))
	}
}
