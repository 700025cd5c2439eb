// models/song.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Song is a catalog entry. Audio arrives already trimmed by the client; the
// trim window is kept for display purposes only.
type Song struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Artist    string             `json:"artist" bson:"artist"`
	Title     string             `json:"title" bson:"title"`
	CoverURL  string             `json:"coverUrl" bson:"coverUrl"`
	AudioURL  string             `json:"audioUrl" bson:"audioUrl"`
	TrimStart float64            `json:"trimStart" bson:"trimStart"`
	TrimEnd   float64            `json:"trimEnd" bson:"trimEnd"`
	Duration  float64            `json:"duration" bson:"duration"`
	Votes     int64              `json:"votes" bson:"votes"`
	UserID    string             `json:"userId" bson:"userId"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// CreateSongRequest is the metadata payload saved after the client has
// uploaded the cover and audio files.
type CreateSongRequest struct {
	Artist    string  `json:"artist" validate:"required"`
	Title     string  `json:"title" validate:"required"`
	CoverURL  string  `json:"coverUrl" validate:"required"`
	AudioURL  string  `json:"audioUrl" validate:"required"`
	TrimStart float64 `json:"trimStart"`
	TrimEnd   float64 `json:"trimEnd"`
	Duration  float64 `json:"duration"`
}
