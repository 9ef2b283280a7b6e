package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mes-platform/production-service/internal/domain"
)

// WorkflowRepository implements domain.WorkflowRepository using MongoDB
type WorkflowRepository struct {
	collection *mongo.Collection
}

// NewWorkflowRepository creates a new WorkflowRepository
func NewWorkflowRepository(db *mongo.Database) *WorkflowRepository {
	repo := &WorkflowRepository{collection: db.Collection("workflows")}
	repo.collection.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "workflowId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return repo
}

// Save persists a workflow definition
func (r *WorkflowRepository) Save(ctx context.Context, workflow *domain.Workflow) error {
	filter := bson.M{"workflowId": workflow.WorkflowID}
	update := bson.M{"$set": workflow}
	opts := options.Update().SetUpsert(true)

	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// FindByID retrieves a workflow by its ID
func (r *WorkflowRepository) FindByID(ctx context.Context, workflowID string) (*domain.Workflow, error) {
	var workflow domain.Workflow
	err := r.collection.FindOne(ctx, bson.M{"workflowId": workflowID}).Decode(&workflow)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &workflow, nil
}

// FindAll retrieves the full workflow catalog
func (r *WorkflowRepository) FindAll(ctx context.Context) ([]*domain.Workflow, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "workflowId", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var workflows []*domain.Workflow
	if err := cursor.All(ctx, &workflows); err != nil {
		return nil, err
	}
	return workflows, nil
}

// WorkcenterRepository implements domain.WorkcenterRepository using MongoDB
type WorkcenterRepository struct {
	collection *mongo.Collection
}

// NewWorkcenterRepository creates a new WorkcenterRepository
func NewWorkcenterRepository(db *mongo.Database) *WorkcenterRepository {
	repo := &WorkcenterRepository{collection: db.Collection("workcenters")}
	repo.collection.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "workcenterId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return repo
}

// Save persists a workcenter
func (r *WorkcenterRepository) Save(ctx context.Context, workcenter *domain.Workcenter) error {
	filter := bson.M{"workcenterId": workcenter.WorkcenterID}
	update := bson.M{"$set": workcenter}
	opts := options.Update().SetUpsert(true)

	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// FindAll retrieves the workcenter catalog
func (r *WorkcenterRepository) FindAll(ctx context.Context) ([]*domain.Workcenter, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "workcenterId", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var workcenters []*domain.Workcenter
	if err := cursor.All(ctx, &workcenters); err != nil {
		return nil, err
	}
	return workcenters, nil
}

// ResourceRepository implements domain.ResourceRepository using MongoDB
type ResourceRepository struct {
	collection *mongo.Collection
}

// NewResourceRepository creates a new ResourceRepository
func NewResourceRepository(db *mongo.Database) *ResourceRepository {
	repo := &ResourceRepository{collection: db.Collection("resources")}
	repo.collection.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "resourceId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return repo
}

// Save persists a resource
func (r *ResourceRepository) Save(ctx context.Context, resource *domain.Resource) error {
	filter := bson.M{"resourceId": resource.ResourceID}
	update := bson.M{"$set": resource}
	opts := options.Update().SetUpsert(true)

	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// FindAll retrieves the resource catalog
func (r *ResourceRepository) FindAll(ctx context.Context) ([]*domain.Resource, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "resourceId", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var resources []*domain.Resource
	if err := cursor.All(ctx, &resources); err != nil {
		return nil, err
	}
	return resources, nil
}
