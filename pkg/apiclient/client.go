package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/carlosnavea/assethub-backend/pkg/errors"
	"github.com/carlosnavea/assethub-backend/pkg/logger"
)

var errBaseURLRequired = errors.New("apiclient base url is required")

const defaultTimeout = 30 * time.Second

// Client is a typed HTTP client for the AssetHub API. It decodes the
// backend's `{"error": ...}` bodies into coded errors, preserving the
// backend message text verbatim.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *logger.Logger

	mu    sync.RWMutex
	token string
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *logger.Logger
}

// NewClient validates the options and builds a Client.
func NewClient(opts Options) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		return nil, errBaseURLRequired
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{
		baseURL: baseURL,
		http:    httpClient,
		logger:  opts.Logger,
	}, nil
}

// SetToken replaces the bearer token attached to subsequent requests.
// An empty token leaves requests unauthenticated.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the bearer token currently in use.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Signup registers a self-service account and adopts the minted token.
func (c *Client) Signup(ctx context.Context, params SignupParams) (*Session, error) {
	var session Session
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/signup", params, &session); err != nil {
		return nil, err
	}
	c.SetToken(session.AccessToken)
	return &session, nil
}

// Signin exchanges credentials for tokens and adopts the minted token.
func (c *Client) Signin(ctx context.Context, params SigninParams) (*Session, error) {
	var session Session
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/signin", params, &session); err != nil {
		return nil, err
	}
	c.SetToken(session.AccessToken)
	return &session, nil
}

// Signout revokes the current session and drops the stored token.
func (c *Client) Signout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/signout", nil, nil); err != nil {
		return err
	}
	c.SetToken("")
	return nil
}

// Me returns the profile view of the authenticated user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/api/v1/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListAssets returns all assets, newest first.
func (c *Client) ListAssets(ctx context.Context) ([]Asset, error) {
	var rows []Asset
	if err := c.do(ctx, http.MethodGet, "/api/v1/assets", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateAsset inserts an asset and returns the stored row.
func (c *Client) CreateAsset(ctx context.Context, params CreateAssetParams) (*Asset, error) {
	var row Asset
	if err := c.do(ctx, http.MethodPost, "/api/v1/assets", params, &row); err != nil {
		return nil, err
	}
	return &row, nil
}

// DeleteAsset removes an asset by id.
func (c *Client) DeleteAsset(ctx context.Context, id uuid.UUID) error {
	var result deleteBody
	return c.do(ctx, http.MethodDelete, "/api/v1/assets/"+id.String(), nil, &result)
}

// CountAssets returns the number of assets matching the filter.
func (c *Client) CountAssets(ctx context.Context, filter AssetCountFilter) (int64, error) {
	query := url.Values{}
	if filter.CategoryID != nil {
		query.Set("category_id", filter.CategoryID.String())
	}
	if filter.DepartmentID != nil {
		query.Set("department_id", filter.DepartmentID.String())
	}
	path := "/api/v1/assets/count"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var result countBody
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return 0, err
	}
	return result.Count, nil
}

// ListCategories returns all categories, newest first.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var rows []Category
	if err := c.do(ctx, http.MethodGet, "/api/v1/categories", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateCategory inserts a category and returns the stored row.
func (c *Client) CreateCategory(ctx context.Context, params CreateCategoryParams) (*Category, error) {
	var row Category
	if err := c.do(ctx, http.MethodPost, "/api/v1/categories", params, &row); err != nil {
		return nil, err
	}
	return &row, nil
}

// DeleteCategory removes a category by id.
func (c *Client) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	var result deleteBody
	return c.do(ctx, http.MethodDelete, "/api/v1/categories/"+id.String(), nil, &result)
}

// ListDepartments returns all departments, newest first.
func (c *Client) ListDepartments(ctx context.Context) ([]Department, error) {
	var rows []Department
	if err := c.do(ctx, http.MethodGet, "/api/v1/departments", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateDepartment inserts a department and returns the stored row.
func (c *Client) CreateDepartment(ctx context.Context, params CreateDepartmentParams) (*Department, error) {
	var row Department
	if err := c.do(ctx, http.MethodPost, "/api/v1/departments", params, &row); err != nil {
		return nil, err
	}
	return &row, nil
}

// DeleteDepartment removes a department by id.
func (c *Client) DeleteDepartment(ctx context.Context, id uuid.UUID) error {
	var result deleteBody
	return c.do(ctx, http.MethodDelete, "/api/v1/departments/"+id.String(), nil, &result)
}

// ListUsers returns all user profiles. Admin only.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var rows []User
	if err := c.do(ctx, http.MethodGet, "/api/admin/v1/users", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateUser provisions a user across the identity and profile stores.
// Admin only.
func (c *Client) CreateUser(ctx context.Context, params CreateUserParams) (*User, error) {
	var result userBody
	if err := c.do(ctx, http.MethodPost, "/api/admin/v1/users", params, &result); err != nil {
		return nil, err
	}
	return result.User, nil
}

// DeleteUser removes a user's identity, then best-effort its profile.
// Admin only.
func (c *Client) DeleteUser(ctx context.Context, id uuid.UUID) error {
	var result deleteBody
	return c.do(ctx, http.MethodDelete, "/api/admin/v1/users/"+id.String(), nil, &result)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode request body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assethub request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.decodeError(ctx, method, path, resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode response body")
	}
	return nil
}

// decodeError turns an error response into a coded error carrying the
// backend's message text unchanged.
func (c *Client) decodeError(ctx context.Context, method, path string, resp *http.Response) error {
	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || strings.TrimSpace(body.Error) == "" {
		body.Error = http.StatusText(resp.StatusCode)
	}

	if c.logger != nil {
		ctx = c.logger.WithFields(ctx, map[string]any{
			"method": method,
			"path":   path,
			"status": resp.StatusCode,
		})
		c.logger.Warn(ctx, fmt.Sprintf("assethub api error: %s", body.Error))
	}

	return pkgerrors.New(codeForStatus(resp.StatusCode), body.Error)
}

func codeForStatus(status int) pkgerrors.Code {
	switch status {
	case http.StatusUnauthorized:
		return pkgerrors.CodeUnauthorized
	case http.StatusForbidden:
		return pkgerrors.CodeForbidden
	case http.StatusNotFound:
		return pkgerrors.CodeNotFound
	case http.StatusConflict:
		return pkgerrors.CodeConflict
	default:
		if status >= 400 && status < 500 {
			return pkgerrors.CodeValidation
		}
		return pkgerrors.CodeDependency
	}
}
