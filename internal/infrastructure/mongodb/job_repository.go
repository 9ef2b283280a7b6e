package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mes-platform/production-service/internal/domain"
)

// JobRepository implements domain.JobRepository using MongoDB
type JobRepository struct {
	collection *mongo.Collection
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(db *mongo.Database) *JobRepository {
	repo := &JobRepository{collection: db.Collection("jobs")}
	repo.ensureIndexes(context.Background())
	return repo
}

// ensureIndexes creates the necessary indexes
func (r *JobRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "jobId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "currentStageId", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "customer.customerId", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "workcenterId", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		},
	}

	r.collection.Indexes().CreateMany(ctx, indexes)
}

// Save persists a job, inserting or replacing by jobId
func (r *JobRepository) Save(ctx context.Context, job *domain.Job) error {
	filter := bson.M{"jobId": job.JobID}
	update := bson.M{"$set": job}
	opts := options.Update().SetUpsert(true)

	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// FindByID retrieves a job by its ID
func (r *JobRepository) FindByID(ctx context.Context, jobID string) (*domain.Job, error) {
	var job domain.Job
	err := r.collection.FindOne(ctx, bson.M{"jobId": jobID}).Decode(&job)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

// FindAll retrieves every job in the workspace snapshot
func (r *JobRepository) FindAll(ctx context.Context) ([]*domain.Job, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.find(ctx, bson.M{}, opts)
}

// FindByStatus retrieves jobs by status
func (r *JobRepository) FindByStatus(ctx context.Context, status domain.JobStatus) ([]*domain.Job, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.find(ctx, bson.M{"status": status}, opts)
}

// FindByDateRange retrieves jobs created within a date range
func (r *JobRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]*domain.Job, error) {
	filter := bson.M{"createdAt": bson.M{"$gte": start, "$lte": end}}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	return r.find(ctx, filter, opts)
}

// Delete removes a job
func (r *JobRepository) Delete(ctx context.Context, jobID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"jobId": jobID})
	return err
}

// Count returns the number of jobs matching a status
func (r *JobRepository) Count(ctx context.Context, status domain.JobStatus) (int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return r.collection.CountDocuments(ctx, filter)
}

func (r *JobRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.Job, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var jobs []*domain.Job
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}
