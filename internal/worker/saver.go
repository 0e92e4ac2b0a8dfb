// Package worker provides background persistence of library snapshots.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/moodmatch-labs/moodmatch/backend/internal/core/ports"
)

const saveTimeout = 5 * time.Second

// Saver writes snapshots through the snapshot store off the mutation path,
// so a like or playlist edit never waits on disk.
type Saver struct {
	store ports.SnapshotStore
	jobs  chan ports.LibrarySnapshot
	wg    sync.WaitGroup
}

// NewSaver creates a saver with the given queue size.
func NewSaver(store ports.SnapshotStore, queueSize int) *Saver {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Saver{store: store, jobs: make(chan ports.LibrarySnapshot, queueSize)}
}

// Start launches the worker goroutines. A single worker keeps snapshot
// writes in submission order.
func (s *Saver) Start(workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			for snap := range s.jobs {
				s.save(snap)
			}
		}()
	}
}

// Stop closes the queue and waits for pending saves to finish.
func (s *Saver) Stop() {
	close(s.jobs)
	s.wg.Wait()
}

// Submit queues a snapshot without blocking. When the queue is full the
// snapshot is dropped; a later mutation will carry the full state again.
func (s *Saver) Submit(snap ports.LibrarySnapshot) {
	select {
	case s.jobs <- snap:
	default:
		log.Warn().Msg("snapshot queue full, dropping save")
	}
}

func (s *Saver) save(snap ports.LibrarySnapshot) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if err := s.store.Save(ctx, snap); err != nil {
		log.Error().Err(err).Msg("failed to persist library snapshot")
		return
	}
	log.Debug().Int("playlists", len(snap.Playlists)).Int("history", len(snap.History)).Msg("library snapshot persisted")
}
