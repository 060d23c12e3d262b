package worker

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/storage"
)

func testRepo(t *testing.T) *storage.JobRepository {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return storage.NewJobRepository(db)
}

func waitForStatus(t *testing.T, repo *storage.JobRepository, id, status string) *storage.Job {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		job, err := repo.GetByID(context.Background(), id)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if job != nil && job.Status == status {
			return job
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("job %s never reached status %q", id, status)
	return nil
}

func TestWorkerProcessesJob(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	processed := make(chan string, 1)
	w := NewWorker(repo)
	w.SetInterval(10 * time.Millisecond)
	w.RegisterHandler(storage.JobTypeExtract, func(ctx context.Context, job *storage.Job) error {
		processed <- job.URL
		return repo.Complete(ctx, job.ID, "extraction-id")
	})

	job := &storage.Job{URL: "https://example.com/v"}
	if err := repo.Create(ctx, job); err != nil {
		t.Fatal(err)
	}

	w.Start(ctx)
	defer w.Stop()

	select {
	case url := <-processed:
		if url != job.URL {
			t.Errorf("handler got url %q", url)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("job was never handled")
	}

	done := waitForStatus(t, repo, job.ID, storage.JobStatusCompleted)
	if done.ExtractionID == nil || *done.ExtractionID != "extraction-id" {
		t.Errorf("completed job = %+v", done)
	}
}

func TestWorkerRetriesThenFails(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	attempts := 0
	w := NewWorker(repo)
	w.SetInterval(10 * time.Millisecond)
	w.RegisterHandler(storage.JobTypeExtract, func(ctx context.Context, job *storage.Job) error {
		attempts++
		return errors.New("extraction blew up")
	})

	job := &storage.Job{URL: "https://example.com/v"}
	if err := repo.Create(ctx, job); err != nil {
		t.Fatal(err)
	}

	w.Start(ctx)
	defer w.Stop()

	failed := waitForStatus(t, repo, job.ID, storage.JobStatusFailed)
	if failed.RetryCount != 3 {
		t.Errorf("retry count = %d, want 3", failed.RetryCount)
	}
	if attempts != 4 {
		t.Errorf("attempts = %d, want initial try plus 3 retries", attempts)
	}
	if failed.Error == nil || *failed.Error != "extraction blew up" {
		t.Errorf("failure reason not recorded: %+v", failed)
	}
}

func TestWorkerUnknownJobType(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	w := NewWorker(repo)
	w.SetInterval(10 * time.Millisecond)

	job := &storage.Job{URL: "https://example.com/v", Type: "mystery"}
	if err := repo.Create(ctx, job); err != nil {
		t.Fatal(err)
	}

	w.Start(ctx)
	defer w.Stop()

	failed := waitForStatus(t, repo, job.ID, storage.JobStatusFailed)
	if failed.Error == nil {
		t.Error("missing-handler failure has no error message")
	}
}

func TestWorkerStopIsIdempotentAcrossJobs(t *testing.T) {
	repo := testRepo(t)

	w := NewWorker(repo)
	w.SetInterval(10 * time.Millisecond)
	w.Start(context.Background())
	w.Stop()
	// no goroutine leaks, nothing to assert beyond a clean return
}
