// Package session persists the bearer token issued by the backend.
//
// The token is stored under a single key as the JSON form of an oauth2.Token,
// so with the file store it lands in token.json.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/oauth2"

	"taskcli/internal/storage"
)

// Key is the storage key holding the session token.
const Key = "token"

// Session reads and writes the stored token.
type Session struct {
	store storage.Store
}

// New creates a Session backed by store.
func New(store storage.Store) *Session {
	return &Session{store: store}
}

// Token returns the stored token, or nil if there is none.
func (s *Session) Token(ctx context.Context) (*oauth2.Token, error) {
	data, err := s.store.Get(ctx, Key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("invalid stored token: %w", err)
	}
	if tok.AccessToken == "" {
		return nil, nil
	}
	return &tok, nil
}

// Save stores accessToken as a bearer token.
func (s *Session) Save(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return fmt.Errorf("empty token")
	}
	data, err := json.MarshalIndent(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}, "", "  ")
	if err != nil {
		return err
	}
	return s.store.Set(ctx, Key, data)
}

// Clear removes the stored token. Clearing an empty session is not an error.
func (s *Session) Clear(ctx context.Context) error {
	return s.store.Remove(ctx, Key)
}

// Present reports whether a usable token is stored.
// Storage errors count as not present.
func (s *Session) Present(ctx context.Context) bool {
	tok, err := s.Token(ctx)
	return err == nil && tok.Valid()
}
