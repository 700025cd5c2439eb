package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/soundcrate/soundcrate_backend/models"
)

type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Client, dbName string) *UserRepository {
	return &UserRepository{
		collection: db.Database(dbName).Collection("users"),
	}
}

// Get returns nil, nil when no profile exists for the uid
func (r *UserRepository) Get(ctx context.Context, uid string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": uid}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Create inserts a fresh profile document for a first-time sign-in
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	_, err := r.collection.InsertOne(ctx, user)
	return err
}

// TouchLastLogin records a returning sign-in
func (r *UserRepository) TouchLastLogin(ctx context.Context, uid string) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": uid},
		bson.M{"$set": bson.M{"lastLogin": time.Now()}},
	)
	return err
}

// JoinWaitlist flags the profile as waitlisted
func (r *UserRepository) JoinWaitlist(ctx context.Context, uid string) error {
	now := time.Now()
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": uid},
		bson.M{"$set": bson.M{"onWaitlist": true, "waitlistJoinedAt": now}},
	)
	return err
}
