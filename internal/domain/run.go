package domain

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductionRun is an immutable output fact recorded against a job and
// stage. Runs are append-only; they are never mutated or deleted.
type ProductionRun struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	RunID        string             `bson:"runId"`
	JobID        string             `bson:"jobId"`
	StageID      string             `bson:"stageId"`
	WorkcenterID string             `bson:"workcenterId,omitempty"`
	QtyGood      float64            `bson:"qtyGood"`
	QtyScrap     float64            `bson:"qtyScrap"`
	Lot          string             `bson:"lot,omitempty"`
	OperatorID   string             `bson:"operatorId,omitempty"`
	Timestamp    time.Time          `bson:"timestamp"`
}

// RunInput holds the caller-supplied fields for a new production run
type RunInput struct {
	QtyGood      float64
	QtyScrap     float64
	WorkcenterID string
	Lot          string
	OperatorID   string
}

// NewProductionRun validates quantities and produces an immutable run fact
// with a generated id. It never mutates the job; folding cumulative output
// into the job record is the caller's bookkeeping.
func NewProductionRun(jobID, stageID string, input RunInput) (*ProductionRun, error) {
	if input.QtyGood < 0 {
		return nil, ErrInvalidQuantity
	}
	if input.QtyScrap < 0 {
		return nil, ErrInvalidQuantity
	}

	return &ProductionRun{
		RunID:        uuid.New().String(),
		JobID:        jobID,
		StageID:      stageID,
		WorkcenterID: input.WorkcenterID,
		QtyGood:      input.QtyGood,
		QtyScrap:     input.QtyScrap,
		Lot:          input.Lot,
		OperatorID:   input.OperatorID,
		Timestamp:    time.Now(),
	}, nil
}
