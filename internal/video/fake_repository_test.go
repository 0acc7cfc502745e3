package video

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/consensuslabs/reelstream/backend/internal/interaction"
	"github.com/consensuslabs/reelstream/backend/internal/pagination"
	"github.com/google/uuid"
)

type mark struct {
	user, video uuid.UUID
	at          time.Time
}

// fakeRepository keeps videos, uploaders and like/collect marks in memory
type fakeRepository struct {
	mu        sync.Mutex
	videos    map[uuid.UUID]*Video
	names     map[uuid.UUID]string
	likes     []mark
	collects  []mark
	clock     time.Time
	createErr error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		videos: make(map[uuid.UUID]*Video),
		names:  make(map[uuid.UUID]string),
		clock:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *fakeRepository) addUser(name string) uuid.UUID {
	id := uuid.New()
	r.names[id] = name
	return id
}

func (r *fakeRepository) addVideo(uploader uuid.UUID, title string, mutate ...func(v *Video)) uuid.UUID {
	r.clock = r.clock.Add(time.Minute)
	v := &Video{
		ID:         uuid.New(),
		UploaderID: uploader,
		Title:      title,
		FilePath:   "videos/" + title + ".mp4",
		CoverPath:  "covers/" + title + ".jpg",
		IsPublic:   true,
		CreatedAt:  r.clock,
	}
	for _, m := range mutate {
		m(v)
	}
	r.videos[v.ID] = v
	return v.ID
}

func (r *fakeRepository) like(user, video uuid.UUID) {
	r.clock = r.clock.Add(time.Minute)
	r.likes = append(r.likes, mark{user, video, r.clock})
}

func (r *fakeRepository) collect(user, video uuid.UUID) {
	r.clock = r.clock.Add(time.Minute)
	r.collects = append(r.collects, mark{user, video, r.clock})
}

func (r *fakeRepository) row(v *Video) Row {
	return Row{Video: *v, UploaderName: r.names[v.UploaderID], UploaderHandle: "h_" + r.names[v.UploaderID]}
}

func (r *fakeRepository) Create(ctx context.Context, v *Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.clock = r.clock.Add(time.Minute)
	v.CreatedAt = r.clock
	copied := *v
	r.videos[v.ID] = &copied
	return nil
}

func (r *fakeRepository) GetRow(ctx context.Context, id uuid.UUID) (*Row, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.videos[id]
	if !ok || v.IsDeleted {
		return nil, ErrVideoNotFound
	}
	row := r.row(v)
	return &row, nil
}

func (r *fakeRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.videos[id]
	return ok && !v.IsDeleted, nil
}

func paginate(rows []Row, p pagination.Params) ([]Row, int64) {
	total := int64(len(rows))
	start := p.Offset()
	if start > len(rows) {
		start = len(rows)
	}
	end := start + p.Size
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end], total
}

func (r *fakeRepository) List(ctx context.Context, q ListQuery, p pagination.Params) ([]Row, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var allowed map[uuid.UUID]bool
	if q.UploaderIDs != nil {
		allowed = make(map[uuid.UUID]bool, len(q.UploaderIDs))
		for _, id := range q.UploaderIDs {
			allowed[id] = true
		}
	}

	var rows []Row
	for _, v := range r.videos {
		if v.IsDeleted || (!v.IsPublic && !q.IncludePrivate) {
			continue
		}
		if allowed != nil && !allowed[v.UploaderID] {
			continue
		}
		rows = append(rows, r.row(v))
	}

	score := func(v Video) float64 {
		switch q.Order {
		case OrderHot:
			return float64(2*v.LikeCount+v.CommentCount) + float64(v.ViewCount)/10
		case OrderRecommended:
			return float64(v.ViewCount)
		}
		return 0
	}
	sort.Slice(rows, func(i, j int) bool {
		si, sj := score(rows[i].Video), score(rows[j].Video)
		if si != sj {
			return si > sj
		}
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})

	page, total := paginate(rows, p)
	return page, total, nil
}

func (r *fakeRepository) listMarked(marks []mark, userID uuid.UUID, p pagination.Params) ([]Row, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var rows []Row
	for i := len(marks) - 1; i >= 0; i-- {
		m := marks[i]
		if m.user != userID {
			continue
		}
		if v, ok := r.videos[m.video]; ok && !v.IsDeleted {
			rows = append(rows, r.row(v))
		}
	}
	page, total := paginate(rows, p)
	return page, total, nil
}

func (r *fakeRepository) ListLiked(ctx context.Context, userID uuid.UUID, p pagination.Params) ([]Row, int64, error) {
	return r.listMarked(r.likes, userID, p)
}

func (r *fakeRepository) ListCollected(ctx context.Context, userID uuid.UUID, p pagination.Params) ([]Row, int64, error) {
	return r.listMarked(r.collects, userID, p)
}

func (r *fakeRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]Row, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var rows []Row
	// map iteration keeps the result unordered like an IN query
	for _, v := range r.videos {
		for _, id := range ids {
			if v.ID == id && !v.IsDeleted {
				rows = append(rows, r.row(v))
			}
		}
	}
	return rows, nil
}

func (r *fakeRepository) CountByUploader(ctx context.Context, uploaderID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, v := range r.videos {
		if v.UploaderID == uploaderID && !v.IsDeleted {
			n++
		}
	}
	return n, nil
}

func (r *fakeRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.videos[id]; ok {
		v.ViewCount++
	}
	return nil
}

func (r *fakeRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.videos[id]
	if !ok || v.IsDeleted {
		return ErrVideoNotFound
	}
	v.IsDeleted = true
	v.IsPublic = false
	return nil
}

// fakeSocial is a directed follow graph
type fakeSocial struct {
	edges map[[2]uuid.UUID]bool
	err   error
}

func newFakeSocial() *fakeSocial {
	return &fakeSocial{edges: make(map[[2]uuid.UUID]bool)}
}

func (f *fakeSocial) follow(a, b uuid.UUID) {
	f.edges[[2]uuid.UUID{a, b}] = true
}

func (f *fakeSocial) IsFollowing(ctx context.Context, a, b uuid.UUID) (bool, error) {
	return f.edges[[2]uuid.UUID{a, b}], f.err
}

func (f *fakeSocial) FollowerCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for e := range f.edges {
		if e[1] == userID {
			n++
		}
	}
	return n, f.err
}

func (f *fakeSocial) FollowingIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	for e := range f.edges {
		if e[0] == userID {
			ids = append(ids, e[1])
		}
	}
	return ids, f.err
}

// fakeEngagement answers from the repository's like/collect marks
type fakeEngagement struct {
	repo *fakeRepository
}

func (f fakeEngagement) GetStatus(ctx context.Context, viewer *uuid.UUID, videoID uuid.UUID) (*interaction.Status, error) {
	status := &interaction.Status{}
	for _, m := range f.repo.likes {
		if m.video == videoID {
			status.LikeCount++
			if viewer != nil && m.user == *viewer {
				status.IsLiked = true
			}
		}
	}
	for _, m := range f.repo.collects {
		if m.video == videoID {
			status.CollectCount++
			if viewer != nil && m.user == *viewer {
				status.IsCollected = true
			}
		}
	}
	return status, nil
}

type fakeHistory struct {
	ids []uuid.UUID
}

func (f *fakeHistory) RecentViews(ctx context.Context, userID uuid.UUID, limit int) ([]uuid.UUID, error) {
	if len(f.ids) > limit {
		return f.ids[:limit], nil
	}
	return f.ids, nil
}

type recordedEvent struct {
	userID uuid.UUID
	action string
}

type fakeRecorder struct {
	events []recordedEvent
	views  int
}

func (f *fakeRecorder) LogBehavior(ctx context.Context, userID uuid.UUID, action, targetType string, targetID uuid.UUID, metadata map[string]interface{}) {
	f.events = append(f.events, recordedEvent{userID: userID, action: action})
}

func (f *fakeRecorder) CountView(ctx context.Context, videoID uuid.UUID) {
	f.views++
}

type fakeProber struct {
	seconds float64
	err     error
}

func (f fakeProber) Duration(ctx context.Context, path string) (float64, error) {
	if _, err := os.Stat(path); err != nil {
		return 0, err
	}
	return f.seconds, f.err
}

// dirStager stages into a test directory and counts outstanding copies
type dirStager struct {
	dir     string
	pending int
}

func (s *dirStager) Stage(r io.Reader, ext string) (string, func(), error) {
	f, err := os.CreateTemp(s.dir, "upload-*"+ext)
	if err != nil {
		return "", nil, err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", nil, err
	}
	s.pending++
	path := filepath.Clean(f.Name())
	return path, func() {
		os.Remove(path)
		s.pending--
	}, nil
}
