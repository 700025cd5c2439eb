// models/verification.go
package models

import (
	"time"
)

// VerificationRecord is the one-time email verification code document, keyed
// by email address (document _id). At most one live record exists per email;
// issuing a new code replaces any previous one.
type VerificationRecord struct {
	Email     string    `json:"email" bson:"_id"`
	Code      string    `json:"code" bson:"code"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt" bson:"expiresAt"`
}

// SendCodeRequest is the payload for requesting a verification code
type SendCodeRequest struct {
	Email string `json:"email"`
}

// VerifyCodeRequest is the payload for redeeming a verification code
type VerifyCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// VerificationResult is the outcome of a verification operation. Token and
// UserID are only set on a successful redemption.
type VerificationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
	UserID  string `json:"userId,omitempty"`
}
