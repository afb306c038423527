package session

import (
	"context"

	"tasks-cli/internal/errors"
	"tasks-cli/internal/logging"
	"tasks-cli/internal/repository/sqlite"
)

// CredentialKey is the fixed name the credential is stored under.
const CredentialKey = "apiKey"

// Session is the single choke point for authorized requests. It owns the
// stored credential and hands it to actions on demand; no network call in the
// system carries the credential without going through WithCredential.
type Session struct {
	store     sqlite.Repository
	resetters []func()
}

// New creates a session backed by the given settings store.
func New(store sqlite.Repository) *Session {
	return &Session{store: store}
}

// OnClear registers a reset hook invoked when the credential is cleared.
// Dependent components use this to drop cached session data on sign-out.
func (s *Session) OnClear(reset func()) {
	s.resetters = append(s.resetters, reset)
}

// WithCredential reads the stored credential and, if present and non-empty,
// invokes action with it. A missing or empty credential is a silent no-op:
// the caller is expected to have been gated to sign-in already, so nothing
// is surfaced.
func (s *Session) WithCredential(ctx context.Context, action func(credential string) error) error {
	credential, err := s.store.GetSetting(ctx, CredentialKey)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			logging.Debugln("session: no stored credential, dropping authorized action")
			return nil
		}
		return err
	}
	if credential == "" {
		logging.Debugln("session: empty stored credential, dropping authorized action")
		return nil
	}
	return action(credential)
}

// Authenticated reports whether a non-empty credential is stored.
func (s *Session) Authenticated(ctx context.Context) bool {
	credential, err := s.store.GetSetting(ctx, CredentialKey)
	return err == nil && credential != ""
}

// SetCredential persists the credential. Called on successful sign-in.
func (s *Session) SetCredential(ctx context.Context, credential string) error {
	return s.store.PutSetting(ctx, CredentialKey, credential)
}

// ClearCredential removes the credential and runs every registered reset
// hook. Called on sign-out.
func (s *Session) ClearCredential(ctx context.Context) error {
	if err := s.store.DeleteSetting(ctx, CredentialKey); err != nil {
		return err
	}
	for _, reset := range s.resetters {
		reset()
	}
	return nil
}
