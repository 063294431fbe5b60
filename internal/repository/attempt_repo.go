package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fathsl/ranya-front-sub000/internal/model"
)

// AttemptArchive is the insert-only audit trail of completed attempts. The
// live session is never read back from it; the in-memory result stays
// authoritative.
type AttemptArchive interface {
	Create(ctx context.Context, record *model.AttemptRecord) error
	SetCertificateStatus(ctx context.Context, attemptID string, status model.CertificateStatus) error
	GetByAttemptID(ctx context.Context, attemptID string) (*model.AttemptRecord, error)
}

type attemptArchive struct {
	collection *mongo.Collection
}

// NewAttemptArchive creates a Mongo-backed attempt archive
func NewAttemptArchive(db *mongo.Database) AttemptArchive {
	return &attemptArchive{
		collection: db.Collection("attempts"),
	}
}

func (r *attemptArchive) Create(ctx context.Context, record *model.AttemptRecord) error {
	if record.CompletedAt.IsZero() {
		record.CompletedAt = time.Now()
	}

	result, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		record.ID = oid.Hex()
	}
	return nil
}

func (r *attemptArchive) SetCertificateStatus(ctx context.Context, attemptID string, status model.CertificateStatus) error {
	update := bson.M{"$set": bson.M{"certificateStatus": status}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"attemptId": attemptID}, update)
	return err
}

func (r *attemptArchive) GetByAttemptID(ctx context.Context, attemptID string) (*model.AttemptRecord, error) {
	var record model.AttemptRecord
	err := r.collection.FindOne(ctx, bson.M{"attemptId": attemptID}).Decode(&record)
	if err != nil {
		return nil, err
	}
	return &record, nil
}
