package follow

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/consensuslabs/reelstream/backend/internal/pagination"
	"github.com/google/uuid"
)

type edge struct {
	from, to uuid.UUID
}

// fakeRepository is an in-memory graph used by the service tests
type fakeRepository struct {
	mu    sync.Mutex
	users map[uuid.UUID]string
	edges map[edge]time.Time
	clock time.Time
	err   error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		users: make(map[uuid.UUID]string),
		edges: make(map[edge]time.Time),
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *fakeRepository) addUser(name string) uuid.UUID {
	id := uuid.New()
	r.users[id] = name
	return id
}

func (r *fakeRepository) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.users[id]
	return ok, r.err
}

func (r *fakeRepository) Exists(ctx context.Context, followerID, followedID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.edges[edge{followerID, followedID}]
	return ok, r.err
}

func (r *fakeRepository) Create(ctx context.Context, f *Follow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.clock = r.clock.Add(time.Minute)
	r.edges[edge{f.FollowerID, f.FollowedID}] = r.clock
	return nil
}

func (r *fakeRepository) Delete(ctx context.Context, followerID, followedID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.edges, edge{followerID, followedID})
	return r.err
}

func (r *fakeRepository) CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for e := range r.edges {
		if e.to == userID {
			n++
		}
	}
	return n, r.err
}

func (r *fakeRepository) CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for e := range r.edges {
		if e.from == userID {
			n++
		}
	}
	return n, r.err
}

func (r *fakeRepository) list(userID uuid.UUID, outgoing bool, search string, ascending bool, p pagination.Params) ([]UserRow, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var rows []UserRow
	for e, at := range r.edges {
		own, other := e.to, e.from
		if outgoing {
			own, other = e.from, e.to
		}
		if own != userID {
			continue
		}
		name := r.users[other]
		if search != "" && !strings.Contains(strings.ToLower(name), strings.ToLower(search)) {
			continue
		}
		rows = append(rows, UserRow{ID: other, Username: name, FollowedAt: at})
	}
	sort.Slice(rows, func(i, j int) bool {
		if ascending {
			return rows[i].FollowedAt.Before(rows[j].FollowedAt)
		}
		return rows[i].FollowedAt.After(rows[j].FollowedAt)
	})
	total := int64(len(rows))
	start := p.Offset()
	if start > len(rows) {
		start = len(rows)
	}
	end := start + p.Size
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end], total, r.err
}

func (r *fakeRepository) ListFollowing(ctx context.Context, userID uuid.UUID, search string, ascending bool, p pagination.Params) ([]UserRow, int64, error) {
	return r.list(userID, true, search, ascending, p)
}

func (r *fakeRepository) ListFollowers(ctx context.Context, userID uuid.UUID, search string, p pagination.Params) ([]UserRow, int64, error) {
	return r.list(userID, false, search, false, p)
}

func (r *fakeRepository) FollowedAmong(ctx context.Context, followerID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	found := make(map[uuid.UUID]bool)
	for _, id := range ids {
		if _, ok := r.edges[edge{followerID, id}]; ok {
			found[id] = true
		}
	}
	return found, r.err
}

func (r *fakeRepository) FollowersAmong(ctx context.Context, followedID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	found := make(map[uuid.UUID]bool)
	for _, id := range ids {
		if _, ok := r.edges[edge{id, followedID}]; ok {
			found[id] = true
		}
	}
	return found, r.err
}

func (r *fakeRepository) FollowingIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []uuid.UUID
	for e := range r.edges {
		if e.from == userID {
			ids = append(ids, e.to)
		}
	}
	return ids, r.err
}

type recordedBehavior struct {
	userID, targetID uuid.UUID
	action           string
}

type fakeRecorder struct {
	events []recordedBehavior
}

func (f *fakeRecorder) LogBehavior(ctx context.Context, userID uuid.UUID, action, targetType string, targetID uuid.UUID, metadata map[string]interface{}) {
	f.events = append(f.events, recordedBehavior{userID: userID, targetID: targetID, action: action})
}

type prefixURLs string

func (p prefixURLs) URL(key string) string { return string(p) + key }
