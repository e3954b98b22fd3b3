package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"StockDataset/internal/model"
	"StockDataset/internal/notifier"
)

// ErrBusy is returned by RunNow while another build is in progress.
var ErrBusy = errors.New("a build is already running")

// Runner runs one build.
type Runner interface {
	Run(ctx context.Context) (*model.RunSummary, error)
}

// Scheduler runs builds on a cron schedule. Builds never overlap: a tick that
// fires while one is running is skipped.
type Scheduler struct {
	Cron   *cron.Cron
	Runner Runner
	Ctx    context.Context

	mu      sync.Mutex
	running bool
	last    *model.RunSummary
	lastErr error
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, r Runner) *Scheduler {
	return &Scheduler{
		Cron:   cron.New(cron.WithSeconds()),
		Runner: r,
		Ctx:    ctx,
	}
}

// Register adds the build task on spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.buildTask); err != nil {
		return fmt.Errorf("register build task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running build to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes a build immediately and waits for it.
func (s *Scheduler) RunNow() (*model.RunSummary, error) {
	if !s.acquire() {
		return nil, ErrBusy
	}
	defer s.release()
	return s.run()
}

func (s *Scheduler) buildTask() {
	if !s.acquire() {
		log.Println("[WARN] previous build still running, skipping this tick")
		return
	}
	defer s.release()
	if _, err := s.run(); err != nil {
		log.Printf("[ERROR] scheduled build: %v", err)
	}
}

func (s *Scheduler) run() (*model.RunSummary, error) {
	log.Println("[INFO] running build task")
	summary, err := s.Runner.Run(s.Ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
	if err == nil {
		s.last = summary
	}
	return summary, err
}

func (s *Scheduler) acquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return false
	}
	s.running = true
	return true
}

func (s *Scheduler) release() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// Last returns the most recent successful build, if any.
func (s *Scheduler) Last() *model.RunSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// HandleCommand processes a chat command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/build":
		go func() {
			if _, err := s.RunNow(); err != nil {
				log.Printf("[ERROR] manual build: %v", err)
			}
		}()
		return "Build started."
	case "/status":
		s.mu.Lock()
		lastErr, running := s.lastErr, s.running
		s.mu.Unlock()
		last := s.Last()
		if running {
			return "A build is running."
		}
		if lastErr != nil {
			return fmt.Sprintf("Last build failed: %v", lastErr)
		}
		if last == nil {
			return "No build has finished yet."
		}
		return notifier.FormatRunSummary(last)
	default:
		return "Commands:\n• /build - rebuild the dataset now\n• /status - show the last build"
	}
}
