package job

import (
	"errors"
	"sync"
	"testing"
)

func TestMemoryStoreSetGet(t *testing.T) {
	s := NewMemoryStore()

	s.Set(Job{ID: "job-1", Status: StatusParsing, Progress: "Parsing PDF..."})

	got, err := s.Get("job-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Status != StatusParsing {
		t.Errorf("Status = %s, want %s", got.Status, StatusParsing)
	}
	if got.Progress != "Parsing PDF..." {
		t.Errorf("Progress = %q", got.Progress)
	}
}

func TestMemoryStoreGetUnknown(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreUpdate(t *testing.T) {
	s := NewMemoryStore()
	s.Set(Job{ID: "job-1", Status: StatusParsing})

	err := s.Update("job-1", func(j *Job) {
		j.Status = StatusError
		j.Error = "boom"
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, _ := s.Get("job-1")
	if got.Status != StatusError || got.Error != "boom" {
		t.Errorf("job after update = %+v", got)
	}
}

func TestMemoryStoreUpdateUnknown(t *testing.T) {
	s := NewMemoryStore()
	err := s.Update("missing", func(j *Job) {})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreGetReturnsSnapshot(t *testing.T) {
	s := NewMemoryStore()
	s.Set(Job{ID: "job-1", Progress: "before"})

	got, _ := s.Get("job-1")
	got.Progress = "mutated copy"

	again, _ := s.Get("job-1")
	if again.Progress != "before" {
		t.Errorf("Progress = %q, reading must not mutate the stored record", again.Progress)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	s.Set(Job{ID: "job-1"})
	s.Delete("job-1")

	if _, err := s.Get("job-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after Delete error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	s := NewMemoryStore()
	s.Set(Job{ID: "job-1"})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.Update("job-1", func(j *Job) { j.Progress = "tick" })
		}()
		go func() {
			defer wg.Done()
			_, _ = s.Get("job-1")
		}()
	}
	wg.Wait()
}
