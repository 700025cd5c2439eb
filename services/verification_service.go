// services/verification_service.go
package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/soundcrate/soundcrate_backend/models"
	"github.com/soundcrate/soundcrate_backend/repositories"
	"github.com/soundcrate/soundcrate_backend/utils"
)

// CodeTTL is the validity window of an issued verification code
const CodeTTL = 15 * time.Minute

const verificationSubject = "Your SoundCrate Verification Code"
const waitlistSubject = "Welcome to the SoundCrate Waitlist!"

// ProfileStore looks up a caller's profile document by durable id
type ProfileStore interface {
	Get(ctx context.Context, uid string) (*models.User, error)
}

// VerificationService implements the email verification protocol: issue a
// one-time 6-digit code, redeem it exactly once within its validity window,
// and mint a sign-in credential through the identity provider on success.
// All collaborators are injected so tests can substitute fakes.
type VerificationService struct {
	store    repositories.VerificationStore
	auth     AuthProvider
	mailer   EmailSender
	profiles ProfileStore
	now      func() time.Time
	logger   *log.Logger
}

func NewVerificationService(store repositories.VerificationStore, auth AuthProvider, mailer EmailSender, profiles ProfileStore) *VerificationService {
	return &VerificationService{
		store:    store,
		auth:     auth,
		mailer:   mailer,
		profiles: profiles,
		now:      time.Now,
		logger:   log.New(os.Stdout, "[VERIFY] ", log.LstdFlags),
	}
}

// Issue generates a fresh code for the email, stores it with a 15-minute
// expiry (replacing any previous code for that address) and emails it. The
// stored record is not rolled back when the send fails; the caller simply
// gets a failed result and may request a new code.
func (s *VerificationService) Issue(ctx context.Context, email string) *models.VerificationResult {
	if email == "" {
		return &models.VerificationResult{Success: false, Message: "Email is required"}
	}

	code, err := utils.GenerateVerificationCode()
	if err != nil {
		s.logger.Printf("code generation failed: %v", err)
		return &models.VerificationResult{Success: false, Message: "Failed to send verification code: " + err.Error()}
	}

	expiresAt := s.now().Add(CodeTTL)
	if err := s.store.Upsert(ctx, email, code, expiresAt); err != nil {
		s.logger.Printf("storing verification code for %s failed: %v", utils.MaskEmail(email), err)
		return &models.VerificationResult{Success: false, Message: "Failed to send verification code: " + err.Error()}
	}

	if err := s.mailer.Send(email, verificationSubject, verificationEmailBody(code)); err != nil {
		s.logger.Printf("verification email to %s failed: %v", utils.MaskEmail(email), err)
		return &models.VerificationResult{Success: false, Message: "Failed to send verification code: " + sendErrorMessage(err)}
	}

	return &models.VerificationResult{Success: true, Message: "Verification code sent"}
}

// Redeem validates and consumes a code, then resolves the account with the
// identity provider and mints a custom sign-in token for it. The record is
// deleted on successful validation and on detected expiry; a mismatched code
// leaves the record in place, so the original code stays redeemable until
// its expiry.
//
// The lookup and the delete are separate store calls, so two redemptions
// racing with the same valid code can both pass validation before either
// deletes the record.
func (s *VerificationService) Redeem(ctx context.Context, email, code string) *models.VerificationResult {
	if email == "" || code == "" {
		return &models.VerificationResult{Success: false, Message: "Email and code are required"}
	}

	record, err := s.store.Get(ctx, email)
	if err != nil {
		return s.authFailure(err)
	}
	if record == nil {
		return &models.VerificationResult{Success: false, Message: "Invalid or expired code"}
	}
	if record.Code != code {
		return &models.VerificationResult{Success: false, Message: "Invalid verification code"}
	}
	if !s.now().Before(record.ExpiresAt) {
		if err := s.store.Delete(ctx, email); err != nil {
			return s.authFailure(err)
		}
		return &models.VerificationResult{Success: false, Message: "Verification code expired"}
	}

	// One-time use: consume the record before touching the identity provider
	if err := s.store.Delete(ctx, email); err != nil {
		return s.authFailure(err)
	}

	user, err := s.auth.FindUserByEmail(ctx, email)
	if err != nil {
		return s.authFailure(err)
	}
	if user == nil {
		user, err = s.auth.CreateUser(ctx, email)
		if err != nil {
			return s.authFailure(err)
		}
	}

	token, err := s.auth.CustomToken(ctx, user.UID)
	if err != nil {
		return s.authFailure(err)
	}

	return &models.VerificationResult{
		Success: true,
		Message: "Login successful",
		Token:   token,
		UserID:  user.UID,
	}
}

// SendWaitlistConfirmation emails the fixed waitlist welcome to the profile
// belonging to the authenticated caller's uid
func (s *VerificationService) SendWaitlistConfirmation(ctx context.Context, uid string) *models.VerificationResult {
	if uid == "" {
		return &models.VerificationResult{Success: false, Message: "You must be signed in"}
	}

	user, err := s.profiles.Get(ctx, uid)
	if err != nil {
		s.logger.Printf("profile lookup for %s failed: %v", uid, err)
		return &models.VerificationResult{Success: false, Message: "Failed to send waitlist email: " + err.Error()}
	}
	if user == nil {
		return &models.VerificationResult{Success: false, Message: "User not found"}
	}

	if err := s.mailer.Send(user.Email, waitlistSubject, waitlistEmailBody()); err != nil {
		s.logger.Printf("waitlist email to %s failed: %v", utils.MaskEmail(user.Email), err)
		return &models.VerificationResult{Success: false, Message: "Failed to send waitlist email: " + sendErrorMessage(err)}
	}

	return &models.VerificationResult{Success: true, Message: "Confirmation email sent"}
}

func (s *VerificationService) authFailure(err error) *models.VerificationResult {
	s.logger.Printf("authentication error: %v", err)
	return &models.VerificationResult{Success: false, Message: "Failed to authenticate: " + err.Error()}
}

func verificationEmailBody(code string) string {
	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
			<h2 style="color: #333;">Your SoundCrate Verification Code</h2>
			<p>Please use the following 6-digit code to verify your email:</p>
			<div style="background-color: #f4f4f4; padding: 15px; font-size: 24px; text-align: center; letter-spacing: 5px; font-weight: bold; margin: 20px 0;">
				%s
			</div>
			<p>This code will expire in 15 minutes.</p>
		</div>
	`, code)
}

func waitlistEmailBody() string {
	return `
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
			<h2 style="color: #333;">You're on the list!</h2>
			<p>Thanks for joining the SoundCrate waitlist.</p>
			<p>We'll keep you updated. Stay tuned!</p>
			<p>The SoundCrate Team</p>
		</div>
	`
}
