package analytics

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepository implements Repository on MongoDB
type MongoRepository struct {
	behaviors *mongo.Collection
	views     *mongo.Collection
	analytics *mongo.Collection
	now       func() time.Time
}

// NewMongoRepository creates a new MongoRepository
func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		behaviors: db.Collection(CollectionBehaviors),
		views:     db.Collection(CollectionViews),
		analytics: db.Collection(CollectionAnalytics),
		now:       time.Now,
	}
}

// EnsureIndexes creates the indexes the queries below rely on
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []struct {
		collection *mongo.Collection
		models     []mongo.IndexModel
	}{
		{r.behaviors, []mongo.IndexModel{
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}}},
		}},
		{r.views, []mongo.IndexModel{
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}}},
			{Keys: bson.D{{Key: "timestamp", Value: -1}, {Key: "video_id", Value: 1}}},
		}},
		{r.analytics, []mongo.IndexModel{
			{Keys: bson.D{{Key: "video_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		}},
	}
	for _, idx := range indexes {
		if _, err := idx.collection.Indexes().CreateMany(ctx, idx.models); err != nil {
			return errors.WithMessagef(err, "create indexes on %s", idx.collection.Name())
		}
	}
	return nil
}

// InsertBehavior stores a behavior log entry
func (r *MongoRepository) InsertBehavior(ctx context.Context, b *Behavior) error {
	if b.Timestamp.IsZero() {
		b.Timestamp = r.now()
	}
	_, err := r.behaviors.InsertOne(ctx, b)
	return errors.WithMessage(err, "insert behavior")
}

// InsertView stores a playback report
func (r *MongoRepository) InsertView(ctx context.Context, v *View) error {
	if v.Timestamp.IsZero() {
		v.Timestamp = r.now()
	}
	_, err := r.views.InsertOne(ctx, v)
	return errors.WithMessage(err, "insert view")
}

// UpsertVideoStats overwrites the given counters on the video's analytics document
func (r *MongoRepository) UpsertVideoStats(ctx context.Context, videoID uuid.UUID, fields map[string]interface{}) error {
	set := bson.M{"updated_at": r.now()}
	for k, v := range fields {
		set[k] = v
	}
	_, err := r.analytics.UpdateOne(ctx,
		bson.M{"video_id": videoID.String()},
		bson.M{"$set": set},
		options.Update().SetUpsert(true),
	)
	return errors.WithMessage(err, "upsert video analytics")
}

// IncrementViews bumps the view counter on the video's analytics document
func (r *MongoRepository) IncrementViews(ctx context.Context, videoID uuid.UUID) error {
	_, err := r.analytics.UpdateOne(ctx,
		bson.M{"video_id": videoID.String()},
		bson.M{
			"$inc": bson.M{"view_count": 1},
			"$set": bson.M{"updated_at": r.now()},
		},
		options.Update().SetUpsert(true),
	)
	return errors.WithMessage(err, "increment video views")
}

// GetVideoAnalytics loads the analytics document of a video
func (r *MongoRepository) GetVideoAnalytics(ctx context.Context, videoID uuid.UUID) (*VideoAnalytics, error) {
	var doc VideoAnalytics
	err := r.analytics.FindOne(ctx, bson.M{"video_id": videoID.String()}).Decode(&doc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrAnalyticsNotFound
	}
	if err != nil {
		return nil, errors.WithMessage(err, "get video analytics")
	}
	return &doc, nil
}

type groupedVideo struct {
	VideoID string `bson:"_id"`
	Views   int64  `bson:"views"`
}

func (r *MongoRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]groupedVideo, error) {
	cursor, err := r.views.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []groupedVideo
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// recentPipeline groups a user's views by video, most recently watched first
func recentPipeline(userID uuid.UUID, limit int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID.String()}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$video_id",
			"last":  bson.M{"$max": "$timestamp"},
			"views": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "last", Value: -1}}}},
		{{Key: "$limit", Value: int64(limit)}},
	}
}

// popularPipeline ranks videos by view count since the given time
func popularPipeline(since time.Time, limit int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"timestamp": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$video_id",
			"views": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "views", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: int64(limit)}},
	}
}

// RecentVideoIDs returns the videos a user watched, most recent first
func (r *MongoRepository) RecentVideoIDs(ctx context.Context, userID uuid.UUID, limit int) ([]uuid.UUID, error) {
	rows, err := r.aggregate(ctx, recentPipeline(userID, limit))
	if err != nil {
		return nil, errors.WithMessage(err, "aggregate recent views")
	}
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		if id, err := uuid.Parse(row.VideoID); err == nil {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// Popular ranks videos by the number of views recorded since the given time
func (r *MongoRepository) Popular(ctx context.Context, since time.Time, limit int) ([]PopularVideo, error) {
	rows, err := r.aggregate(ctx, popularPipeline(since, limit))
	if err != nil {
		return nil, errors.WithMessage(err, "aggregate popular videos")
	}
	videos := make([]PopularVideo, 0, len(rows))
	for _, row := range rows {
		if id, err := uuid.Parse(row.VideoID); err == nil {
			videos = append(videos, PopularVideo{VideoID: id, ViewCount: row.Views})
		}
	}
	return videos, nil
}
