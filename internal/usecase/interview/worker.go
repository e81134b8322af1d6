package interview

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/prevue-ai/interview-server/internal/domain/entities"
	"github.com/prevue-ai/interview-server/pkg/jobcontext"
	"github.com/prevue-ai/interview-server/pkg/metrics"
)

// stuckJobAge is how long a running job may sit before the janitor assumes
// its worker died and requeues it.
const stuckJobAge = 5 * time.Minute

// StartWorkerPool starts background workers that drain the evaluation queue
func (s *Service) StartWorkerPool(ctx context.Context) error {
	s.workerMutex.Lock()
	defer s.workerMutex.Unlock()

	if s.workerStopChan != nil {
		return fmt.Errorf("worker pool already running")
	}
	s.workerStopChan = make(chan struct{})

	s.logger.Info("🚀 Starting evaluation worker pool",
		zap.Int("worker_count", s.cfg.EvalWorkers),
	)

	for i := 0; i < s.cfg.EvalWorkers; i++ {
		s.workerWg.Add(1)
		go s.evaluationWorker(ctx, i)
	}

	// Janitor requeues jobs whose worker died mid-flight
	s.workerWg.Add(1)
	go s.stuckJobJanitor(ctx)

	return nil
}

// StopWorkerPool gracefully stops all worker goroutines
func (s *Service) StopWorkerPool() error {
	s.workerMutex.Lock()
	defer s.workerMutex.Unlock()

	if s.workerStopChan == nil {
		return fmt.Errorf("worker pool not running")
	}

	s.logger.Info("🛑 Stopping evaluation worker pool...")
	close(s.workerStopChan)
	s.workerWg.Wait()
	s.workerStopChan = nil
	s.logger.Info("✅ Evaluation worker pool stopped")

	return nil
}

// evaluationWorker polls for pending jobs and runs them
func (s *Service) evaluationWorker(parentCtx context.Context, workerID int) {
	defer s.workerWg.Done()

	ticker := time.NewTicker(s.cfg.EvalPollEvery)
	defer ticker.Stop()

	s.logger.Info("👷 Evaluation worker started", zap.Int("worker_id", workerID))

	for {
		select {
		case <-s.workerStopChan:
			s.logger.Info("👷 Evaluation worker stopping", zap.Int("worker_id", workerID))
			return

		case <-ticker.C:
			jobs, err := s.jobs.ClaimPending(parentCtx, 1)
			if err != nil {
				s.logger.Error("❌ Failed to claim evaluation jobs",
					zap.Int("worker_id", workerID),
					zap.Error(err),
				)
				continue
			}

			for _, job := range jobs {
				s.runJob(parentCtx, workerID, job)
			}
		}
	}
}

// runJob executes one claimed job under jobcontext and records its terminal
// state. Errors never escape the queue.
func (s *Service) runJob(parentCtx context.Context, workerID int, job *entities.EvaluationJob) {
	start := time.Now()

	jobCtx, cancel := jobcontext.JobBegin(parentCtx, job.ID, workerID)
	defer cancel()

	err := jobcontext.JobEnd(jobCtx, func(ctx context.Context) error {
		return s.ProcessJob(ctx, job)
	})

	if err == nil {
		if markErr := s.jobs.MarkDone(parentCtx, job.ID); markErr != nil {
			s.logger.Error("❌ Failed to mark job done", zap.String("job_id", job.ID.String()), zap.Error(markErr))
		}
		metrics.EvaluationJobs.WithLabelValues("done").Inc()
		metrics.EvaluationDuration.Observe(time.Since(start).Seconds())
		s.logger.Info("✅ Evaluation job completed",
			zap.Int("worker_id", workerID),
			zap.String("job_id", job.ID.String()),
		)
		return
	}

	if job.IsRetryable() && jobcontext.IsRetryableError(err) {
		if reqErr := s.jobs.Requeue(parentCtx, job.ID, err.Error()); reqErr != nil {
			s.logger.Error("❌ Failed to requeue job", zap.String("job_id", job.ID.String()), zap.Error(reqErr))
		}
		metrics.EvaluationJobs.WithLabelValues("requeued").Inc()
		s.logger.Warn("🔁 Evaluation job requeued",
			zap.String("job_id", job.ID.String()),
			zap.Int("retry_count", job.RetryCount+1),
			zap.Error(err),
		)
		return
	}

	if failErr := s.jobs.MarkFailed(parentCtx, job.ID, err.Error()); failErr != nil {
		s.logger.Error("❌ Failed to mark job failed", zap.String("job_id", job.ID.String()), zap.Error(failErr))
	}
	metrics.EvaluationJobs.WithLabelValues("failed").Inc()
	s.logger.Error("❌ Evaluation job failed",
		zap.String("job_id", job.ID.String()),
		zap.String("session_id", job.SessionID.String()),
		zap.Error(err),
	)
}

// stuckJobJanitor requeues running jobs whose worker never finished
func (s *Service) stuckJobJanitor(parentCtx context.Context) {
	defer s.workerWg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.workerStopChan:
			return
		case <-ticker.C:
			n, err := s.jobs.ResetStuck(parentCtx, stuckJobAge)
			if err != nil {
				s.logger.Error("❌ Failed to reset stuck jobs", zap.Error(err))
				continue
			}
			if n > 0 {
				s.logger.Warn("🧟 Requeued stuck evaluation jobs", zap.Int64("count", n))
			}
		}
	}
}
