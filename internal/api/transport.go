package api

import (
	"context"
	"log/slog"
	"net/http"

	"golang.org/x/oauth2"
)

// TokenSource supplies the stored session token. A nil token with a nil
// error means there is no session.
type TokenSource interface {
	Token(ctx context.Context) (*oauth2.Token, error)
}

// bearerTransport attaches the stored session token to every request.
// Failing to read the token never stops the request; it goes out without one.
type bearerTransport struct {
	base   http.RoundTripper
	tokens TokenSource
	log    *slog.Logger
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	tok, err := t.tokens.Token(req.Context())
	if err != nil {
		t.log.Warn("reading session token failed, sending request without it",
			"method", req.Method, "path", req.URL.Path, "err", err)
		return t.base.RoundTrip(req)
	}
	if tok == nil || tok.AccessToken == "" {
		return t.base.RoundTrip(req)
	}

	// A RoundTripper must not modify the caller's request.
	req2 := req.Clone(req.Context())
	tok.SetAuthHeader(req2)
	return t.base.RoundTrip(req2)
}
