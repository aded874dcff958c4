package service

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the periodic materialized-table refresh in the background.
// A scheduled full refresh keeps materialized periods current even when
// writes bypass the API, such as direct database imports.
type Scheduler struct {
	cron                *cron.Cron
	materializedService *MaterializedService
}

// NewScheduler creates a scheduler for the provided MaterializedService.
func NewScheduler(materializedService *MaterializedService) *Scheduler {
	return &Scheduler{
		cron:                cron.New(),
		materializedService: materializedService,
	}
}

// Start registers the refresh job with the given cron expression and starts
// the scheduler. Returns an error for an invalid expression.
func (s *Scheduler) Start(schedule string) error {
	_, err := s.cron.AddFunc(schedule, func() {
		log.Println("Starting scheduled materialized refresh")
		if err := s.materializedService.RefreshAllProjects(context.Background()); err != nil {
			log.Printf("Scheduled materialized refresh failed: %v", err)
			return
		}
		log.Println("Scheduled materialized refresh complete")
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
