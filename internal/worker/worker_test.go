package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/corpagent/reviewAPI/internal/config"
	"github.com/corpagent/reviewAPI/internal/domain/jobModel"
	"github.com/corpagent/reviewAPI/internal/job"
	"github.com/corpagent/reviewAPI/pkg/logger_i"
)

// MockReviewService to track if jobs are executed
type MockReviewService struct {
	AnnotateCount int32
	RAGCount      int32
}

func (m *MockReviewService) AnnotateBatch(ctx context.Context, j jobModel.Job) jobModel.Job {
	atomic.AddInt32(&m.AnnotateCount, 1)
	return j
}

func (m *MockReviewService) RAGReview(ctx context.Context, j jobModel.Job) jobModel.Job {
	atomic.AddInt32(&m.RAGCount, 1)
	return j
}

type MockJobStore struct {
	OnSaveJob func(ctx context.Context, job jobModel.Job) error
	mu        sync.Mutex
	statuses  []jobModel.JobStatus
}

func (m *MockJobStore) GetJob(ctx context.Context, jobId string) (jobModel.Job, bool) {
	return jobModel.Job{}, false
}

func (m *MockJobStore) DeleteJob(ctx context.Context, jobID string) {}

func (m *MockJobStore) SaveJob(ctx context.Context, j jobModel.Job) error {
	m.mu.Lock()
	m.statuses = append(m.statuses, j.Status)
	m.mu.Unlock()
	if m.OnSaveJob != nil {
		return m.OnSaveJob(ctx, j)
	}
	return nil
}

func (m *MockJobStore) savedStatuses() []jobModel.JobStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]jobModel.JobStatus, len(m.statuses))
	copy(out, m.statuses)
	return out
}

func TestWorkerPool_Flow(t *testing.T) {
	// 1. Setup
	jobStore := &MockJobStore{}
	jobSvc := &job.Service{
		JobChannel:        make(chan jobModel.Job, 10),
		DispatcherChannel: make(chan bool, 10),
		JobStore:          jobStore,
	}
	mockReview := &MockReviewService{}
	stopChan := make(chan bool)
	wg := &sync.WaitGroup{}

	InitServices(jobSvc, mockReview)
	InitWorkerPool(stopChan, wg)

	// Reset global state for test
	atomic.StoreInt64(&currentWorkerCount, 0)

	t.Run("Dispatcher creates worker on signal", func(t *testing.T) {
		// Signal dispatcher to create a worker
		jobSvc.DispatcherChannel <- true

		// Give it a millisecond to spawn
		time.Sleep(50 * time.Millisecond)

		count := atomic.LoadInt64(&currentWorkerCount)
		if count < 1 {
			t.Errorf("Expected at least 1 worker, got %d", count)
		}
	})

	t.Run("Worker processes an annotate job", func(t *testing.T) {
		testJob := jobModel.Job{Id: "test-1", JobType: jobModel.JobTypeAnnotate}
		jobSvc.JobChannel <- testJob

		// Wait for worker to pick up and process
		time.Sleep(50 * time.Millisecond)

		processed := atomic.LoadInt32(&mockReview.AnnotateCount)
		if processed != 1 {
			t.Errorf("Expected 1 annotate job processed, got %d", processed)
		}
	})

	t.Run("Worker routes rag jobs to the rag flow", func(t *testing.T) {
		jobSvc.JobChannel <- jobModel.Job{Id: "test-2", JobType: jobModel.JobTypeRAG}
		time.Sleep(50 * time.Millisecond)

		if got := atomic.LoadInt32(&mockReview.RAGCount); got != 1 {
			t.Errorf("Expected 1 rag job processed, got %d", got)
		}
		if got := atomic.LoadInt32(&mockReview.AnnotateCount); got != 1 {
			t.Errorf("Annotate count should be unchanged, got %d", got)
		}
	})

	t.Run("Job state transitions are persisted", func(t *testing.T) {
		statuses := jobStore.savedStatuses()
		if len(statuses) < 2 {
			t.Fatalf("expected RUNNING then COMPLETE saves, got %v", statuses)
		}
		if statuses[0] != jobModel.JobStatusRunning {
			t.Errorf("first save got %q, want RUNNING", statuses[0])
		}
		if statuses[1] != jobModel.JobStatusComplete {
			t.Errorf("second save got %q, want COMPLETE", statuses[1])
		}
	})

	t.Run("Stop signal retires workers", func(t *testing.T) {
		// Send stop signal
		close(stopChan)

		// Wait for workers to exit
		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			// Success
		case <-time.After(2 * time.Second):
			t.Error("Workers did not stop within timeout")
		}
	})
}

func TestWorker_IdleTimeout(t *testing.T) {
	if testing.Short() {
		t.Skip("waits out the full idle timeout")
	}

	atomic.StoreInt64(&currentWorkerCount, 0)
	logger = logger_i.NewLogger("TestWorkerPool")
	jobSvc := &job.Service{
		JobChannel: make(chan jobModel.Job),
		JobStore:   &MockJobStore{},
	}
	InitServices(jobSvc, &MockReviewService{})

	wg := &sync.WaitGroup{}
	stopChan := make(chan bool)
	workerWaitGroup = wg
	stopWorkerChannel = stopChan

	// Two workers; the pool floor is one, so exactly one should retire.
	// Staggered starts keep the idle timers from firing together.
	createWorker()
	time.Sleep(500 * time.Millisecond)
	createWorker()
	time.Sleep(config.IdleWorkerTimeout)

	time.Sleep(time.Second)
	count := atomic.LoadInt64(&currentWorkerCount)
	if count != 1 {
		t.Errorf("Assertion Failed: pool should shrink to its floor of 1, but count is %d", count)
	}

	close(stopChan)
}
