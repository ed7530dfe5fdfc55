package background

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"tableside/internal/analytics"
	"tableside/internal/jobs"
	"tableside/internal/repositories"
)

// JobScheduler manages the periodic maintenance jobs
type JobScheduler struct {
	scheduler       gocron.Scheduler
	analyticsSvc    *analytics.AnalyticsService
	alerts          *jobs.InventoryAlerts
	reservationRepo repositories.ReservationRepository
	registered      map[string]gocron.Job
	mu              sync.RWMutex
}

// NewJobScheduler creates a new job scheduler
func NewJobScheduler(analyticsSvc *analytics.AnalyticsService, alerts *jobs.InventoryAlerts,
	reservationRepo repositories.ReservationRepository) *JobScheduler {

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler:       scheduler,
		analyticsSvc:    analyticsSvc,
		alerts:          alerts,
		reservationRepo: reservationRepo,
		registered:      make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js
}

// Start starts the job scheduler
func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	// Dashboard refresh - every 5 minutes, keeps today's stats cache warm
	dashboardJob, err := js.scheduler.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(js.refreshDashboard),
		gocron.WithName("dashboard-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create dashboard refresh job: %v", err)
	} else {
		js.track("dashboard-refresh", dashboardJob)
	}

	// Low stock alerts - every hour
	stockJob, err := js.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(js.checkLowStock),
		gocron.WithName("low-stock-alerts"),
	)
	if err != nil {
		log.Printf("Failed to create low stock job: %v", err)
	} else {
		js.track("low-stock-alerts", stockJob)
	}

	// Reservation sweeper - every 15 minutes, closes out past bookings
	sweeperJob, err := js.scheduler.NewJob(
		gocron.DurationJob(15*time.Minute),
		gocron.NewTask(js.sweepReservations),
		gocron.WithName("reservation-sweeper"),
	)
	if err != nil {
		log.Printf("Failed to create reservation sweeper job: %v", err)
	} else {
		js.track("reservation-sweeper", sweeperJob)
	}

	js.mu.RLock()
	count := len(js.registered)
	js.mu.RUnlock()
	log.Printf("Registered %d background jobs", count)
}

func (js *JobScheduler) track(name string, job gocron.Job) {
	js.mu.Lock()
	js.registered[name] = job
	js.mu.Unlock()
}

func (js *JobScheduler) refreshDashboard() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := js.analyticsSvc.DailyStats(ctx, time.Now()); err != nil {
		log.Printf("Dashboard refresh failed: %v", err)
	}
}

func (js *JobScheduler) checkLowStock() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := js.alerts.Run(ctx); err != nil {
		log.Printf("Low stock check failed: %v", err)
	}
}

func (js *JobScheduler) sweepReservations() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	completed, err := js.reservationRepo.CompletePast(ctx, time.Now())
	if err != nil {
		log.Printf("Reservation sweep failed: %v", err)
		return
	}
	if completed > 0 {
		log.Printf("Reservation sweep completed %d past bookings", completed)
	}
}
