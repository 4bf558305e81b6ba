package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"taskcli/internal/storage"
)

func TestSession_SaveTokenClear(t *testing.T) {
	ctx := context.Background()
	s := New(storage.NewFileStore(t.TempDir()))

	tok, err := s.Token(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok != nil {
		t.Fatalf("expected no token, got %+v", tok)
	}
	if s.Present(ctx) {
		t.Error("expected session not present")
	}

	if err := s.Save(ctx, "abc123"); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	tok, err = s.Token(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok == nil || tok.AccessToken != "abc123" {
		t.Fatalf("expected token abc123, got %+v", tok)
	}
	if tok.Type() != "Bearer" {
		t.Errorf("expected Bearer type, got %q", tok.Type())
	}
	if !s.Present(ctx) {
		t.Error("expected session present")
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if s.Present(ctx) {
		t.Error("expected session cleared")
	}
	if err := s.Clear(ctx); err != nil {
		t.Errorf("expected clearing empty session to succeed, got %v", err)
	}
}

func TestSession_SaveEmptyToken(t *testing.T) {
	s := New(storage.NewFileStore(t.TempDir()))
	if err := s.Save(context.Background(), ""); err == nil {
		t.Error("expected error saving empty token")
	}
}

func TestSession_CorruptToken(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "token.json"), []byte("not json"), 0600); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	s := New(storage.NewFileStore(dir))

	if _, err := s.Token(context.Background()); err == nil {
		t.Error("expected error for corrupt token")
	}
	if s.Present(context.Background()) {
		t.Error("corrupt token should not count as present")
	}
}

func TestSession_ReadsPlainOAuthTokenFile(t *testing.T) {
	dir := t.TempDir()
	data := `{"access_token":"legacy","token_type":"Bearer"}`
	if err := os.WriteFile(filepath.Join(dir, "token.json"), []byte(data), 0600); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	s := New(storage.NewFileStore(dir))

	tok, err := s.Token(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.AccessToken != "legacy" {
		t.Errorf("expected legacy token, got %q", tok.AccessToken)
	}
}
