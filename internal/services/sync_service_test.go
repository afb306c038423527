package services

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasks-cli/internal/client"
	"tasks-cli/internal/domain"
	"tasks-cli/internal/encode"
	"tasks-cli/internal/errors"
	"tasks-cli/internal/repository/sqlite"
	"tasks-cli/internal/session"
	"tasks-cli/internal/timeutil"
)

// fakeAPI is an in-memory TaskAPI. Mutations operate on the tasks slice so a
// follow-up fetch observes their effect, the way the real server behaves.
type fakeAPI struct {
	mu    sync.Mutex
	tasks []domain.Task

	profile *domain.UserProfile
	users   []domain.Identifiable
	groups  []domain.Identifiable

	loginErr    error
	tasksErr    error
	completeErr error

	calls       []string
	fetchCount  int32
	lastPayload client.TaskPayload
}

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeAPI) Login(ctx context.Context, username, password string) (string, error) {
	f.record("login")
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return "issued-key", nil
}

func (f *fakeAPI) Profile(ctx context.Context, credential string) (*domain.UserProfile, error) {
	f.record("profile")
	return f.profile, nil
}

func (f *fakeAPI) Users(ctx context.Context, credential string) ([]domain.Identifiable, error) {
	f.record("users")
	return f.users, nil
}

func (f *fakeAPI) Groups(ctx context.Context, credential string) ([]domain.Identifiable, error) {
	f.record("groups")
	return f.groups, nil
}

func (f *fakeAPI) Tasks(ctx context.Context, credential string) ([]domain.Task, error) {
	f.record("tasks")
	atomic.AddInt32(&f.fetchCount, 1)
	if f.tasksErr != nil {
		return nil, f.tasksErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	snapshot := make([]domain.Task, len(f.tasks))
	copy(snapshot, f.tasks)
	return snapshot, nil
}

func (f *fakeAPI) CreateTask(ctx context.Context, credential string, payload client.TaskPayload) (string, error) {
	f.record("create")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastPayload = payload
	f.tasks = append(f.tasks, domain.Task{
		ID:           int64(len(f.tasks) + 100),
		Description:  payload.Description,
		Deadline:     payload.Deadline,
		AssignedUser: payload.AssignedUser,
	})
	return "Task created", nil
}

func (f *fakeAPI) CompleteTask(ctx context.Context, credential string, id int64) (string, error) {
	f.record("complete")
	if f.completeErr != nil {
		return "", f.completeErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].Completed = true
		}
	}
	return "Task completed", nil
}

func (f *fakeAPI) DeleteTask(ctx context.Context, credential string, id int64) (string, error) {
	f.record("delete")
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.tasks[:0]
	for _, task := range f.tasks {
		if task.ID != id {
			kept = append(kept, task)
		}
	}
	f.tasks = kept
	return "Task deleted", nil
}

// recordingToaster captures every toast in order.
type recordingToaster struct {
	mu     sync.Mutex
	toasts []domain.Toast
}

func (r *recordingToaster) Show(toastType domain.ToastType, message string) {
	r.mu.Lock()
	r.toasts = append(r.toasts, domain.Toast{Type: toastType, Message: message})
	r.mu.Unlock()
}

func (r *recordingToaster) last(t *testing.T) domain.Toast {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.toasts)
	return r.toasts[len(r.toasts)-1]
}

func setupSyncService(t *testing.T, api *fakeAPI) (SyncService, *session.Session, *recordingToaster) {
	t.Helper()

	repo, err := sqlite.New(filepath.Join(t.TempDir(), "tasks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	sess := session.New(repo)
	toasts := &recordingToaster{}
	svc := NewSyncService(sess, api, toasts, timeutil.DefaultOffset)
	return svc, sess, toasts
}

func signedInService(t *testing.T, api *fakeAPI) (SyncService, *recordingToaster) {
	t.Helper()

	if api.profile == nil {
		api.profile = &domain.UserProfile{ID: 7, Username: "alice", Name: "Alice"}
	}
	svc, _, toasts := setupSyncService(t, api)
	require.NoError(t, svc.SignIn(context.Background(), "alice", "password"))
	return svc, toasts
}

func TestSyncService_SignIn(t *testing.T) {
	api := &fakeAPI{
		profile: &domain.UserProfile{ID: 7, Username: "alice", Name: "Alice"},
		users:   []domain.Identifiable{{ID: 7, Name: "Alice"}},
		groups:  []domain.Identifiable{{ID: 1, Name: "Home"}},
		tasks:   []domain.Task{{ID: 1, Description: "Water the plants", AssignedUser: 7}},
	}
	svc, sess, _ := setupSyncService(t, api)
	ctx := context.Background()

	require.NoError(t, svc.SignIn(ctx, "alice", "password"))

	assert.True(t, sess.Authenticated(ctx))
	require.NotNil(t, svc.Profile())
	assert.Equal(t, "alice", svc.Profile().Username)
	assert.Len(t, svc.Tasks(), 1)
	assert.Len(t, svc.Users(), 1)
	assert.Len(t, svc.Groups(), 1)
}

func TestSyncService_SignInRejected(t *testing.T) {
	api := &fakeAPI{loginErr: errors.NewServerRejectionError(401, "Wrong username or password")}
	svc, sess, toasts := setupSyncService(t, api)
	ctx := context.Background()

	err := svc.SignIn(ctx, "alice", "wrong")

	require.Error(t, err)
	assert.False(t, sess.Authenticated(ctx))
	// The server's verdict is surfaced verbatim
	last := toasts.last(t)
	assert.Equal(t, domain.ToastError, last.Type)
	assert.Equal(t, "Wrong username or password", last.Message)
}

func TestSyncService_NoRequestsWithoutCredential(t *testing.T) {
	api := &fakeAPI{}
	svc, _, _ := setupSyncService(t, api)
	ctx := context.Background()

	require.NoError(t, svc.RefreshAll(ctx))
	require.NoError(t, svc.RefreshTasks(ctx))

	// Signed out means no traffic at all
	assert.Empty(t, api.calls)
	assert.Nil(t, svc.Tasks())
}

func TestSyncService_SignOutDropsCaches(t *testing.T) {
	api := &fakeAPI{
		tasks: []domain.Task{{ID: 1, Description: "Water the plants", AssignedUser: 7}},
		users: []domain.Identifiable{{ID: 7, Name: "Alice"}},
	}
	svc, _ := signedInService(t, api)
	ctx := context.Background()

	require.NotEmpty(t, svc.Tasks())
	require.NoError(t, svc.SignOut(ctx))

	assert.Nil(t, svc.Tasks())
	assert.Nil(t, svc.Users())
	assert.Nil(t, svc.Groups())
	assert.Nil(t, svc.Profile())
}

func TestSyncService_CreateTask(t *testing.T) {
	api := &fakeAPI{}
	svc, toasts := signedInService(t, api)

	err := svc.CreateTask(context.Background(), encode.TaskForm{
		Description: "Water the plants",
		Date:        "2026-09-01",
		Time:        "18:30",
		Recurring:   "weekly",
	})

	require.NoError(t, err)
	assert.Equal(t, "Water the plants", api.lastPayload.Description)
	assert.Greater(t, api.lastPayload.Deadline, int64(0))
	require.NotNil(t, api.lastPayload.RecurringInterval)
	assert.Equal(t, 2, *api.lastPayload.RecurringInterval)
	// Unassigned tasks default to the signed-in user
	assert.Equal(t, int64(7), api.lastPayload.AssignedUser)

	last := toasts.last(t)
	assert.Equal(t, domain.ToastInfo, last.Type)
	assert.Equal(t, "Task created", last.Message)

	// The created task is visible without another explicit refresh
	assert.Len(t, svc.Tasks(), 1)
}

func TestSyncService_CreateTaskValidationNeverReachesWire(t *testing.T) {
	tests := []struct {
		name          string
		form          encode.TaskForm
		expectedToast domain.ToastType
	}{
		{
			name:          "should reject a missing description",
			form:          encode.TaskForm{Description: ""},
			expectedToast: domain.ToastError,
		},
		{
			name:          "should reject a malformed date",
			form:          encode.TaskForm{Description: "x", Date: "tomorrow", Time: "18:30"},
			expectedToast: domain.ToastError,
		},
		{
			name:          "should notice a date without a time",
			form:          encode.TaskForm{Description: "x", Date: "2026-09-01"},
			expectedToast: domain.ToastInfo,
		},
		{
			name:          "should notice a time without a date",
			form:          encode.TaskForm{Description: "x", Time: "18:30"},
			expectedToast: domain.ToastInfo,
		},
		{
			name:          "should reject an unknown cadence",
			form:          encode.TaskForm{Description: "x", Recurring: "fortnightly"},
			expectedToast: domain.ToastError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{}
			svc, toasts := signedInService(t, api)
			before := len(api.calls)

			err := svc.CreateTask(context.Background(), tt.form)

			require.Error(t, err)
			assert.Equal(t, tt.expectedToast, toasts.last(t).Type)
			// No create request was issued
			assert.Equal(t, before, len(api.calls))
		})
	}
}

func TestSyncService_CompleteTask(t *testing.T) {
	api := &fakeAPI{
		tasks: []domain.Task{{ID: 42, Description: "Water the plants", AssignedUser: 7}},
	}
	svc, toasts := signedInService(t, api)

	fetchesBefore := atomic.LoadInt32(&api.fetchCount)
	require.NoError(t, svc.CompleteTask(context.Background(), 42))

	// Exactly one refresh after the mutation, before the toast
	assert.Equal(t, fetchesBefore+1, atomic.LoadInt32(&api.fetchCount))
	task, found := svc.TaskByID(42)
	require.True(t, found)
	assert.True(t, task.Completed)

	last := toasts.last(t)
	assert.Equal(t, domain.ToastInfo, last.Type)
	assert.Equal(t, "Task completed", last.Message)
}

func TestSyncService_CompleteUnknownTask(t *testing.T) {
	api := &fakeAPI{}
	svc, toasts := signedInService(t, api)
	before := len(api.calls)

	err := svc.CompleteTask(context.Background(), 999)

	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	assert.Equal(t, domain.ToastError, toasts.last(t).Type)
	assert.Equal(t, before, len(api.calls))
}

func TestSyncService_CompleteSomeoneElsesTask(t *testing.T) {
	api := &fakeAPI{
		tasks: []domain.Task{{ID: 42, Description: "Not yours", AssignedUser: 99}},
	}
	svc, toasts := signedInService(t, api)
	before := len(api.calls)

	err := svc.CompleteTask(context.Background(), 42)

	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypePermission))
	// Refusal is advisory, not an error toast, and no request goes out
	assert.Equal(t, domain.ToastWarning, toasts.last(t).Type)
	assert.Equal(t, before, len(api.calls))
}

func TestSyncService_ServerRejectionSurfacesVerbatim(t *testing.T) {
	api := &fakeAPI{
		tasks:       []domain.Task{{ID: 42, Description: "Contested", AssignedUser: 7}},
		completeErr: errors.NewServerRejectionError(403, "Task was reassigned"),
	}
	svc, toasts := signedInService(t, api)

	err := svc.CompleteTask(context.Background(), 42)

	require.Error(t, err)
	last := toasts.last(t)
	assert.Equal(t, domain.ToastError, last.Type)
	assert.Equal(t, "Task was reassigned", last.Message)
}

func TestSyncService_DeleteTask(t *testing.T) {
	api := &fakeAPI{
		tasks: []domain.Task{
			{ID: 1, Description: "Keep", AssignedUser: 7},
			{ID: 2, Description: "Remove", AssignedUser: 7},
		},
	}
	svc, toasts := signedInService(t, api)

	require.NoError(t, svc.DeleteTask(context.Background(), 2))

	_, found := svc.TaskByID(2)
	assert.False(t, found)
	_, found = svc.TaskByID(1)
	assert.True(t, found)
	assert.Equal(t, "Task deleted", toasts.last(t).Message)
}

func TestSyncService_ConcurrentDeletesConverge(t *testing.T) {
	api := &fakeAPI{
		tasks: []domain.Task{
			{ID: 1, Description: "First", AssignedUser: 7},
			{ID: 2, Description: "Second", AssignedUser: 7},
			{ID: 3, Description: "Survivor", AssignedUser: 7},
		},
	}
	svc, _ := signedInService(t, api)
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, id := range []int64{1, 2} {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			assert.NoError(t, svc.DeleteTask(ctx, id))
		}(id)
	}
	wg.Wait()

	// Whichever refresh lands last, the cache holds neither deleted task
	_, found := svc.TaskByID(1)
	assert.False(t, found)
	_, found = svc.TaskByID(2)
	assert.False(t, found)
	_, found = svc.TaskByID(3)
	assert.True(t, found)
}

func TestSyncService_PostMutationRefreshFailureStillToasts(t *testing.T) {
	api := &fakeAPI{
		tasks: []domain.Task{{ID: 42, Description: "Flaky", AssignedUser: 7}},
	}
	svc, toasts := signedInService(t, api)

	// The refresh that follows the mutation fails; the success toast still shows
	api.tasksErr = errors.NewTransportError("GET /tasks", assert.AnError)
	require.NoError(t, svc.CompleteTask(context.Background(), 42))

	last := toasts.last(t)
	assert.Equal(t, domain.ToastInfo, last.Type)
	assert.Equal(t, "Task completed", last.Message)
}

func TestSyncService_CanModify(t *testing.T) {
	api := &fakeAPI{}
	svc, _ := signedInService(t, api)

	assert.True(t, svc.CanModify(domain.Task{AssignedUser: 7}))
	assert.False(t, svc.CanModify(domain.Task{AssignedUser: 99}))
}

func TestSyncService_CanModifyWithoutProfile(t *testing.T) {
	api := &fakeAPI{}
	svc, _, _ := setupSyncService(t, api)

	assert.False(t, svc.CanModify(domain.Task{AssignedUser: 7}))
}
