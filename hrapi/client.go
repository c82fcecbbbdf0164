// Package hrapi is the console's client for the external HR record
// service. Every request except token issuance and refresh carries the
// stored bearer token; a 401 triggers exactly one transparent refresh
// and one retry of the original request. Any failure on that path
// clears the session store and forces re-authentication.
package hrapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/linskybing/hr-console-go/models"
	"github.com/linskybing/hr-console-go/session"
)

var ErrSessionExpired = errors.New("session expired, please log in again")

// APIError carries the backend's status code and message text so
// domain conflicts (e.g. a duplicate field name) surface verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("hr service returned %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
	store   session.Store
}

func New(baseURL string, store session.Store) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		store:   store,
	}
}

func (c *Client) request(ctx context.Context, method, path string, body interface{}, token string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return c.http.Do(req)
}

// do performs an authenticated call. On a 401 it refreshes the access
// token once and retries the original request once; a second 401 is
// returned to the caller as an APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	resp, err := c.request(ctx, method, path, body, c.store.Tokens().Access)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		if err := c.refresh(ctx); err != nil {
			return err
		}
		resp, err = c.request(ctx, method, path, body, c.store.Tokens().Access)
		if err != nil {
			return err
		}
	}
	return decode(resp, out)
}

// doAnon performs an unauthenticated call (token issuance, refresh,
// registration).
func (c *Client) doAnon(ctx context.Context, method, path string, body, out interface{}) error {
	resp, err := c.request(ctx, method, path, body, "")
	if err != nil {
		return err
	}
	return decode(resp, out)
}

func (c *Client) refresh(ctx context.Context) error {
	tokens := c.store.Tokens()
	if tokens.Refresh == "" {
		c.store.Clear()
		return ErrSessionExpired
	}

	var result struct {
		Access string `json:"access"`
	}
	err := c.doAnon(ctx, http.MethodPost, "/token/refresh/", map[string]string{"refresh": tokens.Refresh}, &result)
	if err != nil || result.Access == "" {
		c.store.Clear()
		return ErrSessionExpired
	}

	tokens.Access = result.Access
	return c.store.Save(tokens)
}

func decode(resp *http.Response, out interface{}) error {
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(data)}
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

// errorMessage digs a human-readable message out of the backend's
// error payload, which may be {"error": ...}, {"detail": ...} or a
// field-keyed validation object.
func errorMessage(data []byte) string {
	var payload map[string]interface{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return string(data)
	}
	for _, key := range []string{"error", "detail", "message"} {
		if v, ok := payload[key].(string); ok {
			return v
		}
	}
	for _, v := range payload {
		switch val := v.(type) {
		case string:
			return val
		case []interface{}:
			if len(val) > 0 {
				if s, ok := val[0].(string); ok {
					return s
				}
			}
		}
	}
	return string(data)
}

// ---------------------- Auth ----------------------

type RegisterInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Login obtains a token pair and saves it to the session store.
func (c *Client) Login(ctx context.Context, username, password string) (session.Tokens, error) {
	var result struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	err := c.doAnon(ctx, http.MethodPost, "/token/", map[string]string{
		"username": username,
		"password": password,
	}, &result)
	if err != nil {
		return session.Tokens{}, err
	}

	tokens := session.Tokens{Access: result.Access, Refresh: result.Refresh}
	if err := c.store.Save(tokens); err != nil {
		return session.Tokens{}, err
	}
	return tokens, nil
}

func (c *Client) Register(ctx context.Context, input RegisterInput) error {
	return c.doAnon(ctx, http.MethodPost, "/register/", input, nil)
}

func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword, newPassword2 string) error {
	return c.do(ctx, http.MethodPost, "/change-password/", map[string]string{
		"old_password":  oldPassword,
		"new_password":  newPassword,
		"new_password2": newPassword2,
	}, nil)
}

func (c *Client) Logout() error {
	return c.store.Clear()
}

// ---------------------- Employees ----------------------

func (c *Client) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	err := c.do(ctx, http.MethodGet, "/employees/", nil, &employees)
	return employees, err
}

func (c *Client) GetEmployee(ctx context.Context, id int64) (models.Employee, error) {
	var employee models.Employee
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/employees/%d/", id), nil, &employee)
	return employee, err
}

func (c *Client) CreateEmployee(ctx context.Context, record models.FormDataRecord) (models.Employee, error) {
	var employee models.Employee
	err := c.do(ctx, http.MethodPost, "/employees/", record, &employee)
	return employee, err
}

func (c *Client) UpdateEmployee(ctx context.Context, id int64, record models.FormDataRecord) (models.Employee, error) {
	var employee models.Employee
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/employees/%d/", id), record, &employee)
	return employee, err
}

func (c *Client) DeleteEmployee(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/employees/%d/", id), nil, nil)
}

// ---------------------- Field definitions ----------------------

func (c *Client) ListFieldDefinitions(ctx context.Context) ([]models.FieldDefinition, error) {
	var defs []models.FieldDefinition
	err := c.do(ctx, http.MethodGet, "/employee-field-definitions/", nil, &defs)
	return defs, err
}

func (c *Client) CreateFieldDefinition(ctx context.Context, def models.FieldDefinition) (models.FieldDefinition, error) {
	var created models.FieldDefinition
	err := c.do(ctx, http.MethodPost, "/employee-field-definitions/", def, &created)
	return created, err
}

func (c *Client) UpdateFieldDefinition(ctx context.Context, id int64, def models.FieldDefinition) (models.FieldDefinition, error) {
	var updated models.FieldDefinition
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/employee-field-definitions/%d/", id), def, &updated)
	return updated, err
}

func (c *Client) DeleteFieldDefinition(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/employee-field-definitions/%d/", id), nil, nil)
}

// ---------------------- Form configuration ----------------------

func (c *Client) GetForm(ctx context.Context) (models.FormConfiguration, error) {
	var cfg models.FormConfiguration
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/forms/%d/", models.FormID), nil, &cfg)
	return cfg, err
}

func (c *Client) SaveForm(ctx context.Context, cfg models.FormConfiguration) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/forms/%d/", models.FormID), cfg, nil)
}
