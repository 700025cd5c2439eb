// models/user.go
package models

import (
	"time"
)

// User is the profile document stored per authenticated account. The
// document id is the identity provider's durable uid, not a generated one.
type User struct {
	ID               string     `json:"id" bson:"_id"`
	Email            string     `json:"email" bson:"email"`
	CreatedAt        time.Time  `json:"createdAt" bson:"createdAt"`
	LastLogin        time.Time  `json:"lastLogin" bson:"lastLogin"`
	OnWaitlist       bool       `json:"onWaitlist" bson:"onWaitlist"`
	WaitlistJoinedAt *time.Time `json:"waitlistJoinedAt,omitempty" bson:"waitlistJoinedAt,omitempty"`
}

// Response model
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
