package cron

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/0xPuncker/polkacommerce-wallet/pkg/types"
	"github.com/0xPuncker/polkacommerce-wallet/pkg/utils"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

type entry struct {
	id  cron.EntryID
	job types.Job
}

// Scheduler runs registered tasks on the cron schedules of predefined jobs.
type Scheduler struct {
	cron          *cron.Cron
	logger        *logrus.Logger
	mu            sync.RWMutex
	jobs          map[string]entry
	tasks         map[string]func() error
	started       bool
	maxConcurrent int

	activeMu sync.Mutex
	active   int
}

func NewScheduler(logger *logrus.Logger, config types.JobConfig) *Scheduler {
	maxConcurrent := config.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &Scheduler{
		cron:          cron.New(cron.WithSeconds()),
		logger:        logger,
		jobs:          make(map[string]entry),
		tasks:         make(map[string]func() error),
		maxConcurrent: maxConcurrent,
	}
}

func (s *Scheduler) RegisterTask(name string, task func() error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[name] = task
}

// LoadPredefinedJobs replaces every scheduled job with the enabled jobs
// given. Each job must name a registered task.
func (s *Scheduler) LoadPredefinedJobs(jobs []types.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for name, e := range s.jobs {
		s.cron.Remove(e.id)
		delete(s.jobs, name)
	}

	for _, job := range jobs {
		if !job.Enabled {
			s.logger.Infof("Skipping disabled job: %s", job.Name)
			continue
		}

		task, exists := s.tasks[job.TaskName]
		if !exists {
			return fmt.Errorf("task %s not registered", job.TaskName)
		}

		id, err := s.cron.AddFunc(job.Schedule, s.wrap(job, task))
		if err != nil {
			return fmt.Errorf("failed to schedule job %s: %w", job.Name, err)
		}

		s.jobs[job.Name] = entry{id: id, job: job}

		s.logger.WithFields(logrus.Fields{
			"job_name":    job.Name,
			"schedule":    job.Schedule,
			"task":        job.TaskName,
			"description": job.Description,
		}).Info("Job scheduled successfully")
	}

	return nil
}

func (s *Scheduler) wrap(job types.Job, task func() error) func() {
	return func() {
		s.activeMu.Lock()
		if s.active >= s.maxConcurrent {
			s.activeMu.Unlock()
			s.logger.Warnf("Max concurrent jobs reached, skipping job: %s", job.Name)
			return
		}
		s.active++
		active := s.active
		s.activeMu.Unlock()

		defer func() {
			s.activeMu.Lock()
			s.active--
			s.activeMu.Unlock()
		}()

		s.logger.WithFields(logrus.Fields{
			"job_name":    job.Name,
			"task":        job.TaskName,
			"active_jobs": active,
		}).Info("Starting job execution")

		start := time.Now()
		if err := task(); err != nil {
			s.logger.WithFields(logrus.Fields{
				"job_name": job.Name,
				"error":    err.Error(),
				"duration": utils.FormatElapsed(time.Since(start)),
			}).Error("Job execution failed")
			return
		}

		s.logger.WithFields(logrus.Fields{
			"job_name": job.Name,
			"duration": utils.FormatElapsed(time.Since(start)),
		}).Info("Job execution completed successfully")
	}
}

// RunTask runs a registered task immediately, outside any schedule.
func (s *Scheduler) RunTask(name string) error {
	s.mu.RLock()
	task, exists := s.tasks[name]
	s.mu.RUnlock()

	if !exists {
		return fmt.Errorf("task %s not registered", name)
	}
	return task()
}

func (s *Scheduler) GetJobStatus(name string) (bool, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.jobs[name]
	if !exists {
		return false, "", fmt.Errorf("job %s not found", name)
	}

	return e.job.Enabled, e.job.Description, nil
}

// ListJobs returns the scheduled jobs sorted by name.
func (s *Scheduler) ListJobs() []types.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := make([]types.Job, 0, len(s.jobs))
	for _, e := range s.jobs {
		jobs = append(jobs, e.job)
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].Name < jobs[j].Name })

	return jobs
}

func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return fmt.Errorf("scheduler already started")
	}

	s.cron.Start()
	s.started = true
	s.logger.Info("Scheduler started...")

	return nil
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.started = false
	s.logger.Info("Scheduler stopped")
}

func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}
