package usecase

import (
	"context"
	"sync"
)

// buildTracker implements last-build-wins per key. Starting a build cancels
// the previous build for the same key and bumps the key's generation; a
// build may only apply results while its generation is current.
type buildTracker struct {
	mu     sync.Mutex
	builds map[string]*trackedBuild
	next   uint64
}

type trackedBuild struct {
	generation uint64
	cancel     context.CancelFunc
}

func newBuildTracker() *buildTracker {
	return &buildTracker{builds: make(map[string]*trackedBuild)}
}

// start registers a new build for key and returns its context and generation.
// The returned context is cancelled when a newer build for key starts.
func (t *buildTracker) start(ctx context.Context, key string) (context.Context, uint64) {
	buildCtx, cancel := context.WithCancel(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()

	if prev, ok := t.builds[key]; ok {
		prev.cancel()
	}
	t.next++
	t.builds[key] = &trackedBuild{generation: t.next, cancel: cancel}
	return buildCtx, t.next
}

// isCurrent reports whether generation is still the latest build for key.
func (t *buildTracker) isCurrent(key string, generation uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	b, ok := t.builds[key]
	return ok && b.generation == generation
}

// finish releases the build. A superseded build leaves the newer entry alone.
func (t *buildTracker) finish(key string, generation uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	b, ok := t.builds[key]
	if !ok || b.generation != generation {
		return
	}
	b.cancel()
	delete(t.builds, key)
}

// active returns the number of builds in progress.
func (t *buildTracker) active() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.builds)
}
