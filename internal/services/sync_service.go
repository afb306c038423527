package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tasks-cli/internal/domain"
	"tasks-cli/internal/encode"
	"tasks-cli/internal/errors"
	"tasks-cli/internal/logging"
	"tasks-cli/internal/session"
	"tasks-cli/internal/validation"
)

// syncServiceImpl implements the SyncService interface
type syncServiceImpl struct {
	session *session.Session
	api     TaskAPI
	toasts  Toaster
	encoder *encode.Encoder

	mu      sync.RWMutex
	tasks   []domain.Task
	users   []domain.Identifiable
	groups  []domain.Identifiable
	profile *domain.UserProfile
}

// NewSyncService creates a new SyncService instance. The service registers
// itself with the session so its caches are dropped on sign-out.
func NewSyncService(sess *session.Session, api TaskAPI, toasts Toaster, offset *time.Location) SyncService {
	s := &syncServiceImpl{
		session: sess,
		api:     api,
		toasts:  toasts,
		encoder: encode.New(offset),
	}
	sess.OnClear(s.reset)
	return s
}

// SignIn exchanges credentials, persists the issued token, then performs the
// initial session fetches.
func (s *syncServiceImpl) SignIn(ctx context.Context, username, password string) error {
	credential, err := s.api.Login(ctx, username, password)
	if err != nil {
		s.toastError(err)
		return err
	}
	if err := s.session.SetCredential(ctx, credential); err != nil {
		s.toastError(err)
		return err
	}
	return s.RefreshAll(ctx)
}

// SignOut removes the credential; the session's clear hooks drop the caches.
func (s *syncServiceImpl) SignOut(ctx context.Context) error {
	return s.session.ClearCredential(ctx)
}

// RefreshTasks replaces the entire task cache with the server's collection.
func (s *syncServiceImpl) RefreshTasks(ctx context.Context) error {
	return s.session.WithCredential(ctx, func(credential string) error {
		return s.fetchTasks(ctx, credential)
	})
}

// fetchTasks performs the GET and the whole-cache swap for an already-read
// credential.
func (s *syncServiceImpl) fetchTasks(ctx context.Context, credential string) error {
	tasks, err := s.api.Tasks(ctx, credential)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()
	return nil
}

// RefreshProfile fetches the signed-in user's profile.
func (s *syncServiceImpl) RefreshProfile(ctx context.Context) error {
	return s.session.WithCredential(ctx, func(credential string) error {
		profile, err := s.api.Profile(ctx, credential)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.profile = profile
		s.mu.Unlock()
		return nil
	})
}

// RefreshUsers fetches the assignable users.
func (s *syncServiceImpl) RefreshUsers(ctx context.Context) error {
	return s.session.WithCredential(ctx, func(credential string) error {
		users, err := s.api.Users(ctx, credential)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.users = users
		s.mu.Unlock()
		return nil
	})
}

// RefreshGroups fetches the assignable groups.
func (s *syncServiceImpl) RefreshGroups(ctx context.Context) error {
	return s.session.WithCredential(ctx, func(credential string) error {
		groups, err := s.api.Groups(ctx, credential)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.groups = groups
		s.mu.Unlock()
		return nil
	})
}

// RefreshAll performs the fetches issued once after authentication succeeds.
func (s *syncServiceImpl) RefreshAll(ctx context.Context) error {
	if err := s.RefreshProfile(ctx); err != nil {
		s.toastError(err)
		return err
	}
	if err := s.RefreshUsers(ctx); err != nil {
		s.toastError(err)
		return err
	}
	if err := s.RefreshGroups(ctx); err != nil {
		s.toastError(err)
		return err
	}
	if err := s.RefreshTasks(ctx); err != nil {
		s.toastError(err)
		return err
	}
	return nil
}

// Tasks returns the cached task snapshot.
func (s *syncServiceImpl) Tasks() []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tasks
}

// TaskByID looks a task up in the cached snapshot.
func (s *syncServiceImpl) TaskByID(id int64) (domain.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, task := range s.tasks {
		if task.ID == id {
			return task, true
		}
	}
	return domain.Task{}, false
}

// Profile returns the cached profile, or nil before the first refresh.
func (s *syncServiceImpl) Profile() *domain.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// Users returns the cached user list.
func (s *syncServiceImpl) Users() []domain.Identifiable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users
}

// Groups returns the cached group list.
func (s *syncServiceImpl) Groups() []domain.Identifiable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.groups
}

// CreateTask encodes the form and issues the creation request. Validation
// failures surface as toasts and never reach the wire.
func (s *syncServiceImpl) CreateTask(ctx context.Context, form encode.TaskForm) error {
	payload, err := s.encoder.Encode(form, s.Profile())
	if err != nil {
		s.toastError(err)
		return err
	}
	return s.session.WithCredential(ctx, func(credential string) error {
		message, err := s.api.CreateTask(ctx, credential, *payload)
		if err != nil {
			s.toastError(err)
			return err
		}
		s.settle(ctx, credential, message)
		return nil
	})
}

// CompleteTask marks a task complete. The ownership check runs before any
// request is issued; the server independently enforces the same rule.
func (s *syncServiceImpl) CompleteTask(ctx context.Context, id int64) error {
	return s.modifyTask(ctx, id, "complete", s.api.CompleteTask)
}

// DeleteTask deletes a task, gated the same way as CompleteTask.
func (s *syncServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	return s.modifyTask(ctx, id, "delete", s.api.DeleteTask)
}

func (s *syncServiceImpl) modifyTask(ctx context.Context, id int64, action string,
	call func(ctx context.Context, credential string, id int64) (string, error)) error {

	task, found := s.TaskByID(id)
	if !found {
		err := errors.NewNotFoundError("task", fmt.Sprintf("%d", id))
		s.toastError(err)
		return err
	}
	if !s.CanModify(task) {
		err := errors.NewPermissionError(action, fmt.Sprintf("task %d", id))
		s.toastError(err)
		return err
	}

	return s.session.WithCredential(ctx, func(credential string) error {
		message, err := call(ctx, credential, id)
		if err != nil {
			s.toastError(err)
			return err
		}
		s.settle(ctx, credential, message)
		return nil
	})
}

// settle finishes a successful mutation: exactly one task refresh, then the
// info toast with the server's message, in that order, so the visible list
// is never stale next to its toast.
func (s *syncServiceImpl) settle(ctx context.Context, credential, message string) {
	if err := s.fetchTasks(ctx, credential); err != nil {
		logging.Debugf("sync: post-mutation refresh failed: %v\n", err)
	}
	s.toasts.Show(domain.ToastInfo, message)
}

// CanModify reports whether the signed-in user is the task's assigned user.
func (s *syncServiceImpl) CanModify(task domain.Task) bool {
	profile := s.Profile()
	return profile != nil && task.AssignedTo(profile.ID)
}

// reset drops every cached snapshot. Registered as a session clear hook.
func (s *syncServiceImpl) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = nil
	s.users = nil
	s.groups = nil
	s.profile = nil
}

// toastError routes a failed outcome to the toast channel. The incomplete
// date/time pair is a notice rather than a hard error; permission refusals
// are warnings; everything else is an error toast.
func (s *syncServiceImpl) toastError(err error) {
	if errors.ShouldLogError(err) {
		logging.Debugf("sync: %v\n", err)
	}
	if validationErr, ok := err.(*validation.ValidationError); ok {
		s.toasts.Show(domain.ToastError, validationErr.GetUserFriendlyMessage())
		return
	}
	toastType := domain.ToastError
	if appErr, ok := errors.AsAppError(err); ok {
		switch {
		case appErr.Code == errors.CodeIncompleteDeadline:
			toastType = domain.ToastInfo
		case appErr.IsType(errors.ErrorTypePermission):
			toastType = domain.ToastWarning
		}
	}
	s.toasts.Show(toastType, errors.GetUserMessage(err))
}
