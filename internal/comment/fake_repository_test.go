package comment

import (
	"context"
	"sort"
	"time"

	"github.com/consensuslabs/reelstream/backend/internal/pagination"
	"github.com/google/uuid"
)

type fakeState struct {
	videos       map[uuid.UUID]VideoRef
	commentCount map[uuid.UUID]int64
	comments     map[uuid.UUID]Comment
	interactions map[uuid.UUID]Interaction
}

func (s fakeState) clone() fakeState {
	c := fakeState{
		videos:       make(map[uuid.UUID]VideoRef, len(s.videos)),
		commentCount: make(map[uuid.UUID]int64, len(s.commentCount)),
		comments:     make(map[uuid.UUID]Comment, len(s.comments)),
		interactions: make(map[uuid.UUID]Interaction, len(s.interactions)),
	}
	for k, v := range s.videos {
		c.videos[k] = v
	}
	for k, v := range s.commentCount {
		c.commentCount[k] = v
	}
	for k, v := range s.comments {
		c.comments[k] = v
	}
	for k, v := range s.interactions {
		c.interactions[k] = v
	}
	return c
}

// fakeRepository keeps comments in memory. Transaction restores the previous
// state when fn fails, so rollback behaviour can be asserted.
type fakeRepository struct {
	state   fakeState
	authors map[uuid.UUID]Author
	clock   time.Time

	failDeleteCascade error
	failAuthors       error

	// calls records row locks and recounts in the order they happen
	calls []string
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		state: fakeState{
			videos:       map[uuid.UUID]VideoRef{},
			commentCount: map[uuid.UUID]int64{},
			comments:     map[uuid.UUID]Comment{},
			interactions: map[uuid.UUID]Interaction{},
		},
		authors: map[uuid.UUID]Author{},
		clock:   time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (r *fakeRepository) addVideo(uploader uuid.UUID) uuid.UUID {
	id := uuid.New()
	r.state.videos[id] = VideoRef{ID: id, UploaderID: uploader}
	return id
}

func (r *fakeRepository) addUser(name string) uuid.UUID {
	id := uuid.New()
	r.authors[id] = Author{ID: id, Username: name}
	return id
}

func (r *fakeRepository) Transaction(ctx context.Context, fn func(repo Repository) error) error {
	snapshot := r.state.clone()
	if err := fn(r); err != nil {
		r.state = snapshot
		return err
	}
	return nil
}

func (r *fakeRepository) GetVideo(ctx context.Context, id uuid.UUID) (*VideoRef, error) {
	v, ok := r.state.videos[id]
	if !ok {
		return nil, ErrVideoNotFound
	}
	return &v, nil
}

func (r *fakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*Comment, error) {
	c, ok := r.state.comments[id]
	if !ok {
		return nil, ErrCommentNotFound
	}
	return &c, nil
}

func (r *fakeRepository) LockVideo(ctx context.Context, id uuid.UUID) (*VideoRef, error) {
	r.calls = append(r.calls, "LockVideo")
	return r.GetVideo(ctx, id)
}

func (r *fakeRepository) LockComment(ctx context.Context, id uuid.UUID) (*Comment, error) {
	r.calls = append(r.calls, "LockComment")
	return r.GetByID(ctx, id)
}

func (r *fakeRepository) Create(ctx context.Context, c *Comment) error {
	c.ID = uuid.New()
	r.clock = r.clock.Add(time.Second)
	c.CreatedAt = r.clock
	r.state.comments[c.ID] = *c
	return nil
}

func (r *fakeRepository) sorted(videoID uuid.UUID, keep func(Comment) bool, less func(a, b Comment) bool) []Comment {
	var out []Comment
	for _, c := range r.state.comments {
		if c.VideoID == videoID && keep(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func (r *fakeRepository) List(ctx context.Context, videoID uuid.UUID, parentID *uuid.UUID, order string, p pagination.Params) ([]Comment, int64, error) {
	all := r.sorted(videoID, func(c Comment) bool {
		if parentID == nil {
			return c.ParentID == nil
		}
		return c.ParentID != nil && *c.ParentID == *parentID
	}, func(a, b Comment) bool {
		if order == OrderHottest && a.LikeCount != b.LikeCount {
			return a.LikeCount > b.LikeCount
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	start, end := p.Offset(), p.Offset()+p.Size
	if start > len(all) {
		start = len(all)
	}
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], int64(len(all)), nil
}

func (r *fakeRepository) ListByVideo(ctx context.Context, videoID uuid.UUID) ([]Comment, error) {
	return r.sorted(videoID, func(Comment) bool { return true }, func(a, b Comment) bool {
		return a.CreatedAt.Before(b.CreatedAt)
	}), nil
}

func (r *fakeRepository) Edges(ctx context.Context, videoID uuid.UUID) ([]Edge, error) {
	var edges []Edge
	for _, c := range r.state.comments {
		if c.VideoID == videoID {
			edges = append(edges, Edge{ID: c.ID, ParentID: c.ParentID})
		}
	}
	return edges, nil
}

func (r *fakeRepository) Authors(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Author, error) {
	if r.failAuthors != nil {
		return nil, r.failAuthors
	}
	out := map[uuid.UUID]Author{}
	for _, id := range ids {
		if a, ok := r.authors[id]; ok {
			out[id] = a
		}
	}
	return out, nil
}

func (r *fakeRepository) DeleteCascade(ctx context.Context, ids []uuid.UUID) error {
	set := map[uuid.UUID]bool{}
	for _, id := range ids {
		set[id] = true
	}
	for id, i := range r.state.interactions {
		if set[i.CommentID] {
			delete(r.state.interactions, id)
		}
	}
	if r.failDeleteCascade != nil {
		return r.failDeleteCascade
	}
	for id := range set {
		delete(r.state.comments, id)
	}
	return nil
}

func (r *fakeRepository) RecountVideoComments(ctx context.Context, videoID uuid.UUID) (int64, error) {
	r.calls = append(r.calls, "RecountVideoComments")
	var n int64
	for _, c := range r.state.comments {
		if c.VideoID == videoID {
			n++
		}
	}
	r.state.commentCount[videoID] = n
	return n, nil
}

func (r *fakeRepository) GetInteraction(ctx context.Context, userID, commentID uuid.UUID) (*Interaction, error) {
	for _, i := range r.state.interactions {
		if i.UserID == userID && i.CommentID == commentID {
			found := i
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeRepository) CreateInteraction(ctx context.Context, i *Interaction) error {
	for _, existing := range r.state.interactions {
		if existing.UserID == i.UserID && existing.CommentID == i.CommentID {
			return nil
		}
	}
	i.ID = uuid.New()
	r.state.interactions[i.ID] = *i
	return nil
}

func (r *fakeRepository) UpdateInteraction(ctx context.Context, id uuid.UUID, isLike bool) error {
	i := r.state.interactions[id]
	i.IsLike = isLike
	r.state.interactions[id] = i
	return nil
}

func (r *fakeRepository) DeleteInteraction(ctx context.Context, id uuid.UUID) error {
	delete(r.state.interactions, id)
	return nil
}

func (r *fakeRepository) RecountReactions(ctx context.Context, commentID uuid.UUID) (int64, int64, error) {
	r.calls = append(r.calls, "RecountReactions")
	var likes, dislikes int64
	for _, i := range r.state.interactions {
		if i.CommentID != commentID {
			continue
		}
		if i.IsLike {
			likes++
		} else {
			dislikes++
		}
	}
	c := r.state.comments[commentID]
	c.LikeCount, c.DislikeCount = likes, dislikes
	r.state.comments[commentID] = c
	return likes, dislikes, nil
}

type fakeActivity struct {
	behaviors []string
	stats     []map[string]interface{}
}

func (f *fakeActivity) LogBehavior(ctx context.Context, userID uuid.UUID, action, targetType string, targetID uuid.UUID, metadata map[string]interface{}) {
	f.behaviors = append(f.behaviors, action)
}

func (f *fakeActivity) UpdateVideoStats(ctx context.Context, videoID uuid.UUID, fields map[string]interface{}) {
	f.stats = append(f.stats, fields)
}

type prefixURLs string

func (p prefixURLs) URL(key string) string { return string(p) + key }
