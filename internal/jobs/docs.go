// Package jobs provides scheduled background tasks for the matching core.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations the event-driven pipeline cannot cover on
// its own.
//
// # Available Jobs
//
// 1. RematchSweepJob - Periodically re-enters stale announcements into matching
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(sweepJob)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The rematch sweep runs once a minute. An announcement that is still
// Published past a configurable age with no subscription attempts gets its
// published event re-emitted, so the matching consumer picks it up again.
// Couriers come and go; an announcement that found nobody an hour ago may
// find someone now.
//
// # Error Handling
//
// A failed sweep is logged and retried on the next tick. The sweep only
// reads state and re-emits events, so a partial run leaves nothing to
// clean up.
package jobs
