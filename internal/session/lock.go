package session

import (
	"fmt"

	"github.com/gofrs/flock"
)

// Lock marks a workspace as owned by one editor process.
type Lock struct {
	flock *flock.Flock
}

// AcquireLock takes an exclusive lock next to the autosave sidecar. A second
// editor using the same sidecar gets ErrLocked.
func AcquireLock(autosavePath string) (*Lock, error) {
	fl := flock.New(autosavePath + ".lock")
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}
	return &Lock{flock: fl}, nil
}

func (l *Lock) Path() string {
	return l.flock.Path()
}

func (l *Lock) Release() error {
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}
