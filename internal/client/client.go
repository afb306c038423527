package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"tasks-cli/internal/domain"
	"tasks-cli/internal/errors"
	"tasks-cli/internal/logging"
)

// APIKeyHeader is the header field carrying the credential on every
// authorized request. The credential never travels as a query parameter or
// body field.
const APIKeyHeader = "X-API-Key"

// TaskPayload is the JSON body for task creation. A nil RecurringInterval
// means "not recurring"; a nil AssignedGroup means "no group selected".
type TaskPayload struct {
	Description       string `json:"description"`
	Notes             string `json:"notes"`
	Deadline          int64  `json:"deadline"`
	RecurringInterval *int   `json:"recurringInterval"`
	AssignedGroup     *int64 `json:"assignedGroup"`
	AssignedUser      int64  `json:"assignedUser"`
}

// messageBody is the JSON shape the server uses for mutation outcomes and
// rejections.
type messageBody struct {
	Message string `json:"message"`
}

// loginRequest is the JSON body for the credential exchange.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse carries the credential issued on successful sign-in.
type loginResponse struct {
	APIKey string `json:"apiKey"`
}

// Client talks to the task service. It does not hold the credential; callers
// pass it per request, which keeps the credential gate the only reader of
// stored state.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the task service at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// Login exchanges a username and password for a credential.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return "", errors.NewTransportError("login", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login", bytes.NewReader(body))
	if err != nil {
		return "", errors.NewTransportError("login", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var resp loginResponse
	if err := c.do(req, "login", &resp); err != nil {
		return "", err
	}
	return resp.APIKey, nil
}

// Profile fetches the signed-in user's profile.
func (c *Client) Profile(ctx context.Context, credential string) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	if err := c.get(ctx, credential, "profile", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Users fetches the assignable users.
func (c *Client) Users(ctx context.Context, credential string) ([]domain.Identifiable, error) {
	var users []domain.Identifiable
	if err := c.get(ctx, credential, "users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Groups fetches the assignable groups.
func (c *Client) Groups(ctx context.Context, credential string) ([]domain.Identifiable, error) {
	var groups []domain.Identifiable
	if err := c.get(ctx, credential, "groups", &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// Tasks fetches the full task collection.
func (c *Client) Tasks(ctx context.Context, credential string) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := c.get(ctx, credential, "tasks", &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask creates a task and returns the server's outcome message.
func (c *Client) CreateTask(ctx context.Context, credential string, payload TaskPayload) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", errors.NewTransportError("create task", err)
	}
	logging.Debugf("client: create task payload %s\n", body)
	return c.postAuthorized(ctx, credential, "tasks/create", bytes.NewReader(body))
}

// CompleteTask marks a task complete and returns the server's outcome message.
func (c *Client) CompleteTask(ctx context.Context, credential string, id int64) (string, error) {
	return c.modifyTask(ctx, credential, "complete", id)
}

// DeleteTask deletes a task and returns the server's outcome message.
func (c *Client) DeleteTask(ctx context.Context, credential string, id int64) (string, error) {
	return c.modifyTask(ctx, credential, "delete", id)
}

// modifyTask posts to the task-specific mutation endpoint for the given
// fixed action name.
func (c *Client) modifyTask(ctx context.Context, credential, action string, id int64) (string, error) {
	return c.postAuthorized(ctx, credential, fmt.Sprintf("tasks/%s/%d", action, id), nil)
}

// get issues an authorized GET and decodes the response into target.
func (c *Client) get(ctx context.Context, credential, endpoint string, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+endpoint, nil)
	if err != nil {
		return errors.NewTransportError(endpoint, err)
	}
	req.Header.Set(APIKeyHeader, credential)
	return c.do(req, endpoint, target)
}

// postAuthorized issues an authorized POST and returns the server message.
func (c *Client) postAuthorized(ctx context.Context, credential, endpoint string, body io.Reader) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+endpoint, body)
	if err != nil {
		return "", errors.NewTransportError(endpoint, err)
	}
	req.Header.Set(APIKeyHeader, credential)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	var msg messageBody
	if err := c.do(req, endpoint, &msg); err != nil {
		return "", err
	}
	return msg.Message, nil
}

// do executes a request and decodes the response. Non-2xx responses with a
// decodable {message} body become server rejections carrying that message
// verbatim; everything else (network failure, undecodable body) becomes a
// transport failure.
func (c *Client) do(req *http.Request, operation string, target interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NewTransportError(operation, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewTransportError(operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var msg messageBody
		if err := json.Unmarshal(data, &msg); err != nil || msg.Message == "" {
			return errors.NewTransportError(operation,
				fmt.Errorf("unexpected status %d with undecodable body", resp.StatusCode))
		}
		return errors.NewServerRejectionError(resp.StatusCode, msg.Message)
	}

	if target == nil {
		return nil
	}
	if err := json.Unmarshal(data, target); err != nil {
		return errors.NewTransportError(operation, err)
	}
	return nil
}
