package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/soundcrate/soundcrate_backend/models"
)

// VerificationStore persists one-time verification codes, one live record
// per email address.
type VerificationStore interface {
	// Upsert replaces any existing record for the email
	Upsert(ctx context.Context, email, code string, expiresAt time.Time) error
	// Get returns nil, nil when no record exists for the email
	Get(ctx context.Context, email string) (*models.VerificationRecord, error)
	Delete(ctx context.Context, email string) error
}

type VerificationRepository struct {
	collection *mongo.Collection
}

func NewVerificationRepository(db *mongo.Client, dbName string) *VerificationRepository {
	return &VerificationRepository{
		collection: db.Database(dbName).Collection("email_verification_codes"),
	}
}

func (r *VerificationRepository) Upsert(ctx context.Context, email, code string, expiresAt time.Time) error {
	filter := bson.M{"_id": email}
	update := bson.M{
		"$set": bson.M{
			"code":      code,
			"expiresAt": expiresAt,
		},
		// createdAt is assigned by the server, matching the store's own clock
		"$currentDate": bson.M{"createdAt": true},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *VerificationRepository) Get(ctx context.Context, email string) (*models.VerificationRecord, error) {
	var record models.VerificationRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": email}).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *VerificationRepository) Delete(ctx context.Context, email string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": email})
	return err
}
