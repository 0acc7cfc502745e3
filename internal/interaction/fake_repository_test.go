package interaction

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type pair struct {
	kind        Kind
	user, video uuid.UUID
}

// fakeRepository keeps relations in memory. Each video has a row lock that a
// transaction takes in LockVideo and holds until it ends, which is how the
// gorm repository serialises toggles on one video.
type fakeRepository struct {
	mu       sync.Mutex
	videos   map[uuid.UUID]bool
	rowLocks map[uuid.UUID]*sync.Mutex
	rows     map[pair]bool
	counters map[uuid.UUID]map[string]int64
	err      error

	// firstCalls records the first repository call of every transaction
	firstCalls []string
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		videos:   make(map[uuid.UUID]bool),
		rowLocks: make(map[uuid.UUID]*sync.Mutex),
		rows:     make(map[pair]bool),
		counters: make(map[uuid.UUID]map[string]int64),
	}
}

func (r *fakeRepository) addVideo() uuid.UUID {
	id := uuid.New()
	r.videos[id] = true
	r.rowLocks[id] = &sync.Mutex{}
	r.counters[id] = map[string]int64{}
	return id
}

func (r *fakeRepository) counter(videoID uuid.UUID, kind Kind) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counters[videoID][kind.CounterColumn()]
}

// fakeTx is the repository handed to a transaction callback
type fakeTx struct {
	*fakeRepository
	called bool

	locked   *sync.Mutex
	videoID  uuid.UUID
	rows     map[pair]bool
	counters map[string]int64
}

func (tx *fakeTx) note(call string) {
	if tx.called {
		return
	}
	tx.called = true
	tx.mu.Lock()
	tx.firstCalls = append(tx.firstCalls, call)
	tx.mu.Unlock()
}

func (tx *fakeTx) LockVideo(ctx context.Context, videoID uuid.UUID) (bool, error) {
	tx.note("LockVideo")
	tx.mu.Lock()
	lock, ok := tx.rowLocks[videoID]
	tx.mu.Unlock()
	if !ok {
		return false, tx.err
	}

	lock.Lock()
	tx.locked, tx.videoID = lock, videoID

	tx.mu.Lock()
	defer tx.mu.Unlock()
	tx.rows = map[pair]bool{}
	for p, v := range tx.fakeRepository.rows {
		if p.video == videoID {
			tx.rows[p] = v
		}
	}
	tx.counters = map[string]int64{}
	for k, v := range tx.fakeRepository.counters[videoID] {
		tx.counters[k] = v
	}
	return tx.videos[videoID], tx.err
}

func (tx *fakeTx) Exists(ctx context.Context, kind Kind, userID, videoID uuid.UUID) (bool, error) {
	tx.note("Exists")
	return tx.fakeRepository.Exists(ctx, kind, userID, videoID)
}

// rollback restores the locked video's relations and counters
func (tx *fakeTx) rollback() {
	if tx.locked == nil {
		return
	}
	tx.mu.Lock()
	defer tx.mu.Unlock()
	for p := range tx.fakeRepository.rows {
		if p.video == tx.videoID {
			delete(tx.fakeRepository.rows, p)
		}
	}
	for p, v := range tx.rows {
		tx.fakeRepository.rows[p] = v
	}
	tx.fakeRepository.counters[tx.videoID] = tx.counters
}

func (r *fakeRepository) Transaction(ctx context.Context, fn func(repo Repository) error) error {
	tx := &fakeTx{fakeRepository: r}
	defer func() {
		if tx.locked != nil {
			tx.locked.Unlock()
		}
	}()

	if err := fn(tx); err != nil {
		tx.rollback()
		return err
	}
	return nil
}

func (r *fakeRepository) VideoExists(ctx context.Context, videoID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.videos[videoID], r.err
}

// LockVideo outside a transaction takes no lock
func (r *fakeRepository) LockVideo(ctx context.Context, videoID uuid.UUID) (bool, error) {
	return r.VideoExists(ctx, videoID)
}

func (r *fakeRepository) Exists(ctx context.Context, kind Kind, userID, videoID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows[pair{kind, userID, videoID}], r.err
}

func (r *fakeRepository) Add(ctx context.Context, kind Kind, userID, videoID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.rows[pair{kind, userID, videoID}] = true
	return nil
}

func (r *fakeRepository) Remove(ctx context.Context, kind Kind, userID, videoID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, pair{kind, userID, videoID})
	return r.err
}

func (r *fakeRepository) Count(ctx context.Context, kind Kind, videoID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for p := range r.rows {
		if p.kind == kind && p.video == videoID {
			n++
		}
	}
	return n, r.err
}

func (r *fakeRepository) SetCounter(ctx context.Context, kind Kind, videoID uuid.UUID, value int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.counters[videoID][kind.CounterColumn()] = value
	return nil
}

type recordedEvent struct {
	userID uuid.UUID
	action string
}

type fakeRecorder struct {
	mu     sync.Mutex
	events []recordedEvent
	stats  []map[string]interface{}
}

func (f *fakeRecorder) LogBehavior(ctx context.Context, userID uuid.UUID, action, targetType string, targetID uuid.UUID, metadata map[string]interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, recordedEvent{userID: userID, action: action})
}

func (f *fakeRecorder) UpdateVideoStats(ctx context.Context, videoID uuid.UUID, fields map[string]interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stats = append(f.stats, fields)
}
