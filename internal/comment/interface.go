package comment

import (
	"context"

	"github.com/consensuslabs/reelstream/backend/internal/pagination"
	"github.com/google/uuid"
)

// Repository defines the interface for comment data access
type Repository interface {
	// Transaction runs fn against a repository bound to one database transaction
	Transaction(ctx context.Context, fn func(repo Repository) error) error

	GetVideo(ctx context.Context, id uuid.UUID) (*VideoRef, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Comment, error)
	// LockVideo and LockComment read a row and lock it until the transaction ends
	LockVideo(ctx context.Context, id uuid.UUID) (*VideoRef, error)
	LockComment(ctx context.Context, id uuid.UUID) (*Comment, error)
	Create(ctx context.Context, c *Comment) error
	List(ctx context.Context, videoID uuid.UUID, parentID *uuid.UUID, order string, p pagination.Params) ([]Comment, int64, error)
	ListByVideo(ctx context.Context, videoID uuid.UUID) ([]Comment, error)
	Edges(ctx context.Context, videoID uuid.UUID) ([]Edge, error)
	Authors(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Author, error)
	DeleteCascade(ctx context.Context, ids []uuid.UUID) error
	RecountVideoComments(ctx context.Context, videoID uuid.UUID) (int64, error)

	GetInteraction(ctx context.Context, userID, commentID uuid.UUID) (*Interaction, error)
	CreateInteraction(ctx context.Context, i *Interaction) error
	UpdateInteraction(ctx context.Context, id uuid.UUID, isLike bool) error
	DeleteInteraction(ctx context.Context, id uuid.UUID) error
	RecountReactions(ctx context.Context, commentID uuid.UUID) (likes, dislikes int64, err error)
}

// Service defines the business logic interface for comment operations
type Service interface {
	CreateComment(ctx context.Context, videoID, userID uuid.UUID, req CreateRequest) (*View, error)
	ListComments(ctx context.Context, videoID uuid.UUID, req ListRequest, p pagination.Params) (*pagination.Page[View], error)
	GetCommentTree(ctx context.Context, videoID uuid.UUID) ([]*Node, error)
	DeleteComment(ctx context.Context, commentID, userID uuid.UUID) (*DeleteResult, error)
	ToggleReaction(ctx context.Context, commentID, userID uuid.UUID, like bool) (*ReactionResult, error)
	GetReaction(ctx context.Context, commentID, userID uuid.UUID) (Reaction, error)
}

// ActivityRecorder receives best-effort analytics after a committed change
type ActivityRecorder interface {
	LogBehavior(ctx context.Context, userID uuid.UUID, action, targetType string, targetID uuid.UUID, metadata map[string]interface{})
	UpdateVideoStats(ctx context.Context, videoID uuid.UUID, fields map[string]interface{})
}

// MediaURLs resolves stored media keys to public URLs
type MediaURLs interface {
	URL(key string) string
}
