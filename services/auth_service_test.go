package services

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"tracker/constants"
	"tracker/errors"
	"tracker/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	identity *types.Identity
	err      error
}

func (f *fakeVerifier) Verify(_ context.Context, rawToken string) (*types.Identity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.identity, nil
}

func newTestAuthService(verifier IdentityVerifier) (*AuthService, *MemoryUIState, *EventHub) {
	ui := NewMemoryUIState()
	hub := NewEventHub(nil)
	svc := NewAuthService(AuthServiceOptions{
		Verifier: verifier,
		Tokens:   NewTokenIssuer("test-secret", time.Hour),
		Revoked:  ui,
		UI:       ui,
		Events:   hub,
	})
	return svc, ui, hub
}

var alice = &types.Identity{UserID: "google-123", DisplayName: "Alice", AvatarURL: "https://example.com/a.png"}

func TestSignInIssuesResolvableSession(t *testing.T) {
	svc, _, hub := newTestAuthService(&fakeVerifier{identity: alice})
	events, unsubscribe := hub.Subscribe(alice.UserID, "other-tab")
	defer unsubscribe()

	token, session, err := svc.SignIn(context.Background(), "google-id-token")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, alice.UserID, session.UserID)
	assert.Equal(t, "Alice", session.DisplayName)

	ev := <-events
	assert.Equal(t, constants.EventPresent, ev.Type)
	require.NotNil(t, ev.User)
	assert.Equal(t, "https://example.com/a.png", ev.User.Picture)

	resolved, err := svc.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, session.ID, resolved.ID)
	assert.Equal(t, alice.UserID, resolved.UserID)
	assert.WithinDuration(t, session.ExpiresAt, resolved.ExpiresAt, time.Second)
}

func TestSignInFailureEmitsNothing(t *testing.T) {
	svc, _, hub := newTestAuthService(&fakeVerifier{err: stderrors.New("popup closed")})
	events, unsubscribe := hub.Subscribe(alice.UserID, "tab")
	defer unsubscribe()

	_, _, err := svc.SignIn(context.Background(), "bad")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeIdentityFailed))

	_, _, err = svc.SignIn(context.Background(), "  ")
	assert.True(t, errors.HasCode(err, errors.ErrCodeMissingToken))

	select {
	case ev := <-events:
		t.Fatalf("unexpected event %s", ev.Type)
	default:
	}
}

func TestSignOutRevokesAndEndsStream(t *testing.T) {
	svc, ui, hub := newTestAuthService(&fakeVerifier{identity: alice})
	token, session, err := svc.SignIn(context.Background(), "google-id-token")
	require.NoError(t, err)

	_, err = ui.Toggle(context.Background(), session.ID, "backend")
	require.NoError(t, err)

	events, _ := hub.Subscribe(alice.UserID, session.ID)
	otherTab, unsubscribeOther := hub.Subscribe(alice.UserID, "other-session")
	defer unsubscribeOther()

	require.NoError(t, svc.SignOut(context.Background(), session))

	ev, ok := <-events
	require.True(t, ok)
	assert.Equal(t, constants.EventAbsent, ev.Type)
	_, ok = <-events
	assert.False(t, ok, "stream should be closed after sign-out")

	select {
	case ev := <-otherTab:
		t.Fatalf("other session got %s", ev.Type)
	default:
	}

	_, err = svc.Resolve(context.Background(), token)
	assert.True(t, errors.HasCode(err, errors.ErrCodeRevokedToken))

	expanded, err := ui.Expanded(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Empty(t, expanded)
}

func TestResolveRejectsForeignToken(t *testing.T) {
	svc, _, _ := newTestAuthService(&fakeVerifier{identity: alice})
	other := NewTokenIssuer("another-secret", time.Hour)
	token, _, err := other.Issue(alice)
	require.NoError(t, err)

	_, err = svc.Resolve(context.Background(), token)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidToken))

	_, err = svc.Resolve(context.Background(), "")
	assert.True(t, errors.HasCode(err, errors.ErrCodeMissingToken))
}

func TestExpiredTokenIsRejected(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := issuer.Issue(alice)
	require.NoError(t, err)

	_, err = issuer.Parse(token)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidToken))
}
