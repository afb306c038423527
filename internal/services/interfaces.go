package services

import (
	"context"

	"tasks-cli/internal/client"
	"tasks-cli/internal/domain"
	"tasks-cli/internal/encode"
)

// TaskAPI is the wire layer the sync service drives. *client.Client is the
// production implementation.
type TaskAPI interface {
	Login(ctx context.Context, username, password string) (string, error)
	Profile(ctx context.Context, credential string) (*domain.UserProfile, error)
	Users(ctx context.Context, credential string) ([]domain.Identifiable, error)
	Groups(ctx context.Context, credential string) ([]domain.Identifiable, error)
	Tasks(ctx context.Context, credential string) ([]domain.Task, error)
	CreateTask(ctx context.Context, credential string, payload client.TaskPayload) (string, error)
	CompleteTask(ctx context.Context, credential string, id int64) (string, error)
	DeleteTask(ctx context.Context, credential string, id int64) (string, error)
}

// Toaster raises transient user-facing notifications. Every operation
// outcome terminates here; no failure is ever fatal.
type Toaster interface {
	Show(toastType domain.ToastType, message string)
}

// SyncService keeps the local caches consistent with server state and drives
// mutation commands. Caches are read-only snapshots replaced wholesale on
// every successful fetch.
type SyncService interface {
	// Session lifecycle
	SignIn(ctx context.Context, username, password string) error
	SignOut(ctx context.Context) error

	// One-shot fetches
	RefreshTasks(ctx context.Context) error
	RefreshProfile(ctx context.Context) error
	RefreshUsers(ctx context.Context) error
	RefreshGroups(ctx context.Context) error
	RefreshAll(ctx context.Context) error

	// Cache accessors
	Tasks() []domain.Task
	TaskByID(id int64) (domain.Task, bool)
	Profile() *domain.UserProfile
	Users() []domain.Identifiable
	Groups() []domain.Identifiable

	// Mutation commands
	CreateTask(ctx context.Context, form encode.TaskForm) error
	CompleteTask(ctx context.Context, id int64) error
	DeleteTask(ctx context.Context, id int64) error

	// CanModify reports whether complete/delete controls apply to a task.
	// Display-layer convenience only; the server enforces the same rule.
	CanModify(task domain.Task) bool
}
