// services/firebase_auth.go
package services

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
)

// AuthUser is the slice of the identity provider's account we care about
type AuthUser struct {
	UID   string
	Email string
}

// AuthProvider wraps the external identity provider: account lookup and
// creation by email, and minting of sign-in credentials.
type AuthProvider interface {
	// FindUserByEmail returns nil, nil when no account exists for the email
	FindUserByEmail(ctx context.Context, email string) (*AuthUser, error)
	// CreateUser creates a passwordless account with the email already
	// marked verified
	CreateUser(ctx context.Context, email string) (*AuthUser, error)
	// CustomToken mints a sign-in credential bound to the uid
	CustomToken(ctx context.Context, uid string) (string, error)
}

// FirebaseAuthProvider implements AuthProvider with the Firebase Admin SDK
type FirebaseAuthProvider struct {
	client *auth.Client
}

func NewFirebaseAuthProvider(app *firebase.App) (*FirebaseAuthProvider, error) {
	client, err := app.Auth(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to get firebase auth client: %w", err)
	}
	return &FirebaseAuthProvider{client: client}, nil
}

func (p *FirebaseAuthProvider) FindUserByEmail(ctx context.Context, email string) (*AuthUser, error) {
	record, err := p.client.GetUserByEmail(ctx, email)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &AuthUser{UID: record.UID, Email: record.Email}, nil
}

func (p *FirebaseAuthProvider) CreateUser(ctx context.Context, email string) (*AuthUser, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		EmailVerified(true)

	record, err := p.client.CreateUser(ctx, params)
	if err != nil {
		return nil, err
	}
	return &AuthUser{UID: record.UID, Email: record.Email}, nil
}

func (p *FirebaseAuthProvider) CustomToken(ctx context.Context, uid string) (string, error) {
	return p.client.CustomToken(ctx, uid)
}

// VerifyIDToken checks a client's ID token and returns the caller's uid.
// Used by the auth middleware for routes that require a signed-in caller.
func (p *FirebaseAuthProvider) VerifyIDToken(ctx context.Context, idToken string) (string, error) {
	token, err := p.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", err
	}
	return token.UID, nil
}
