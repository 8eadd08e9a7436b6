package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/wbdash/wbdash/internal/client/models"
	"github.com/wbdash/wbdash/internal/common"
)

// Client is the API surface used by the client services.
type Client interface {
	Login(ctx context.Context, nickname, password string) (LoginResult, error)
	Register(ctx context.Context, in RegisterInput) (models.User, error)
	Profile(ctx context.Context) (models.User, error)

	ListAccounts(ctx context.Context) ([]models.LinkedAccount, error)
	CreateAccount(ctx context.Context, in models.AccountInput) (models.LinkedAccount, error)
	ShareAccount(ctx context.Context, lkID, userID int64) (string, error)
	AccountUsers(ctx context.Context, lkID int64) ([]models.Grantee, error)
	RevokeAccess(ctx context.Context, lkID, userID int64) (string, error)
}

// Credentials supplies the auth headers of the signed-in user. A zero
// UserID means anonymous.
type Credentials interface {
	UserID() int64
	AccessToken() string
}

type RegisterInput struct {
	Nickname string `json:"nickname"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
}

// LoginResult is the decoded /auth/login body. When the server returns a
// bare user object instead of {user, ...}, that object lands in User.
type LoginResult struct {
	User        models.User
	Message     string
	AccessToken string
}

type HTTPClient struct {
	baseURL string
	http    *http.Client
	creds   Credentials
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(baseURL string, timeout time.Duration, creds Credentials) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		creds:   creds,
	}
}

func (c *HTTPClient) BaseURL() string { return c.baseURL }

func (c *HTTPClient) Login(ctx context.Context, nickname, password string) (LoginResult, error) {
	var raw json.RawMessage
	err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"nickname": nickname,
		"password": password,
	}, &raw, false)
	if err != nil {
		if StatusCode(err) == http.StatusForbidden {
			return LoginResult{}, fmt.Errorf("%w: %w", ErrNotActivated, err)
		}
		return LoginResult{}, err
	}

	return decodeLogin(raw)
}

func decodeLogin(raw []byte) (LoginResult, error) {
	var body struct {
		User        json.RawMessage `json:"user"`
		Message     string          `json:"message"`
		AccessToken string          `json:"access_token"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return LoginResult{}, fmt.Errorf("decode login response: %w", err)
	}

	res := LoginResult{Message: body.Message, AccessToken: body.AccessToken}
	userJSON := body.User
	if len(userJSON) == 0 || string(userJSON) == "null" {
		userJSON = raw
	}
	if err := json.Unmarshal(userJSON, &res.User); err != nil {
		return LoginResult{}, fmt.Errorf("decode login user: %w", err)
	}
	return res, nil
}

func (c *HTTPClient) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	var u models.User
	err := c.do(ctx, http.MethodPost, "/auth/register", in, &u, false)
	return u, err
}

func (c *HTTPClient) Profile(ctx context.Context) (models.User, error) {
	var u models.User
	err := c.do(ctx, http.MethodGet, "/user/profile", nil, &u, true)
	return u, err
}

func (c *HTTPClient) ListAccounts(ctx context.Context) ([]models.LinkedAccount, error) {
	var out []models.LinkedAccount
	err := c.do(ctx, http.MethodGet, "/wb-lk", nil, &out, true)
	return out, err
}

func (c *HTTPClient) CreateAccount(ctx context.Context, in models.AccountInput) (models.LinkedAccount, error) {
	var out models.LinkedAccount
	err := c.do(ctx, http.MethodPost, "/wb-lk", in, &out, true)
	return out, err
}

type messageResponse struct {
	Message string `json:"message"`
}

func (c *HTTPClient) ShareAccount(ctx context.Context, lkID, userID int64) (string, error) {
	var out messageResponse
	path := "/wb-lk/" + strconv.FormatInt(lkID, 10) + "/share"
	err := c.do(ctx, http.MethodPost, path, map[string]int64{"user_id": userID}, &out, true)
	return out.Message, err
}

func (c *HTTPClient) AccountUsers(ctx context.Context, lkID int64) ([]models.Grantee, error) {
	var out struct {
		Users []models.Grantee `json:"users"`
	}
	path := "/wb-lk/" + strconv.FormatInt(lkID, 10) + "/users"
	err := c.do(ctx, http.MethodGet, path, nil, &out, true)
	return out.Users, err
}

func (c *HTTPClient) RevokeAccess(ctx context.Context, lkID, userID int64) (string, error) {
	var out messageResponse
	path := fmt.Sprintf("/wb-lk/%d/unshare/%d", lkID, userID)
	err := c.do(ctx, http.MethodDelete, path, nil, &out, true)
	return out.Message, err
}

// do sends one JSON request. Non-2xx bodies are parsed for detail/message.
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any, auth bool) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if auth {
		setAuthHeaders(req, c.creds)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Message: errorMessage(resp.Body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func setAuthHeaders(req *http.Request, creds Credentials) {
	if creds == nil {
		return
	}
	if id := creds.UserID(); id != 0 {
		req.Header.Set(common.UserIDHeaderName, strconv.FormatInt(id, 10))
	}
	if tok := creds.AccessToken(); tok != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+tok)
	}
}

func errorMessage(r io.Reader) string {
	var body struct {
		Detail  any    `json:"detail"`
		Message string `json:"message"`
	}
	b, _ := io.ReadAll(io.LimitReader(r, 64<<10))
	if err := json.Unmarshal(b, &body); err != nil {
		return ""
	}
	if s, ok := body.Detail.(string); ok && s != "" {
		return s
	}
	return body.Message
}
