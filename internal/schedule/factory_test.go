package schedule

import (
	"errors"
	"reflect"
	"testing"

	apperrors "github.com/agbru/workdist/internal/errors"
	"github.com/agbru/workdist/internal/workload"
)

func TestDefaultFactory(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()

	if got, want := f.List(), []string{ConcurrentName, ParallelName}; !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}

	opts := Options{Threads: 3, Kernel: workload.NewKernel(1)}
	for _, name := range f.List() {
		s, err := f.New(name, opts)
		if err != nil {
			t.Fatalf("New(%q) error: %v", name, err)
		}
		if s.Name() != name {
			t.Errorf("New(%q).Name() = %q", name, s.Name())
		}
		if s.Threads() != 3 {
			t.Errorf("New(%q).Threads() = %d, want 3", name, s.Threads())
		}
	}
}

func TestFactoryErrors(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()

	if _, err := f.New("work-stealing", DefaultOptions()); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("expected ErrUnknownStrategy, got %v", err)
	}
	_, err := f.New(ParallelName, Options{Threads: 0, Kernel: workload.NewKernel(1)})
	var validationErr apperrors.ValidationError
	if !errors.As(err, &validationErr) || validationErr.Field != "threads" {
		t.Errorf("expected a ValidationError for threads, got %v", err)
	}
}
