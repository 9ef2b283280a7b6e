package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mes-platform/production-service/internal/domain"
)

// RunRepository implements domain.ProductionRunRepository using MongoDB.
// The collection is append-only; there are no update or delete paths.
type RunRepository struct {
	collection *mongo.Collection
}

// NewRunRepository creates a new RunRepository
func NewRunRepository(db *mongo.Database) *RunRepository {
	repo := &RunRepository{collection: db.Collection("production_runs")}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *RunRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "runId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "jobId", Value: 1}, {Key: "stageId", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "timestamp", Value: -1}},
		},
	}

	r.collection.Indexes().CreateMany(ctx, indexes)
}

// Insert appends a run fact
func (r *RunRepository) Insert(ctx context.Context, run *domain.ProductionRun) error {
	_, err := r.collection.InsertOne(ctx, run)
	return err
}

// FindByJob retrieves runs for a job, newest first
func (r *RunRepository) FindByJob(ctx context.Context, jobID string) ([]*domain.ProductionRun, error) {
	return r.find(ctx, bson.M{"jobId": jobID})
}

// FindByJobAndStage retrieves runs for a job at a specific stage
func (r *RunRepository) FindByJobAndStage(ctx context.Context, jobID, stageID string) ([]*domain.ProductionRun, error) {
	return r.find(ctx, bson.M{"jobId": jobID, "stageId": stageID})
}

func (r *RunRepository) find(ctx context.Context, filter bson.M) ([]*domain.ProductionRun, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var runs []*domain.ProductionRun
	if err := cursor.All(ctx, &runs); err != nil {
		return nil, err
	}
	return runs, nil
}
