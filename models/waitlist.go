// models/waitlist.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WaitlistEntry records a signup on the launch waitlist
type WaitlistEntry struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Email     string             `json:"email" bson:"email"`
	UID       string             `json:"uid" bson:"uid"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}
