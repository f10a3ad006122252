package client

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

	"github.com/dmitrijs2005/feedmedia/internal/client/models"
	"github.com/dmitrijs2005/feedmedia/internal/common"
)

// maxErrorBody caps how much of an error response is kept in StatusError.
const maxErrorBody = 4 << 10

// HTTPClient implements AppClient over the backend's JSON/HTTP API.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient validates serverURL (scheme and host are required) and
// binds it to httpClient.
func NewHTTPClient(serverURL string, httpClient *http.Client) (*HTTPClient, error) {
	base, err := parseBaseURL(serverURL)
	if err != nil {
		return nil, fmt.Errorf("server url: %w", err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPClient{baseURL: base, httpClient: httpClient}, nil
}

type loginRequest struct {
	Handle   string `json:"handle"`
	Password string `json:"password"`
}

type uploadURLRequest struct {
	FileName string `json:"fileName"`
}

// Login posts the credentials to /login and returns the session token.
func (c *HTTPClient) Login(ctx context.Context, handle, password string) (string, error) {
	if handle == "" || password == "" {
		return "", fmt.Errorf("%w: handle and password are required", ErrAuthentication)
	}

	resp, err := c.postJSON(ctx, "/login", "", loginRequest{Handle: handle, Password: password})
	if err != nil {
		return "", unavailable(ErrAuthentication, "login", err)
	}
	defer resp.Body.Close()

	return tokenFromResponse(resp, ErrAuthentication, "login")
}

// Elevate posts to /userend with the session token and returns the scoped
// token.
func (c *HTTPClient) Elevate(ctx context.Context, sessionToken string) (string, error) {
	if sessionToken == "" {
		return "", fmt.Errorf("%w: session token is required", ErrAuthorization)
	}

	resp, err := c.postJSON(ctx, "/userend", sessionToken, struct{}{})
	if err != nil {
		return "", unavailable(ErrAuthorization, "userend", err)
	}
	defer resp.Body.Close()

	return tokenFromResponse(resp, ErrAuthorization, "userend")
}

// RequestUploadURL posts fileName to /feedMediaUploadURL with the scoped
// token and decodes the issued paths.
func (c *HTTPClient) RequestUploadURL(ctx context.Context, scopedToken, fileName string) (models.UploadTarget, error) {
	var target models.UploadTarget

	if fileName == "" {
		return target, fmt.Errorf("%w: file name is required", ErrRequest)
	}
	if scopedToken == "" {
		return target, fmt.Errorf("%w: scoped token is required", ErrRequest)
	}

	resp, err := c.postJSON(ctx, "/feedMediaUploadURL", scopedToken, uploadURLRequest{FileName: fileName})
	if err != nil {
		return target, unavailable(ErrRequest, "feedMediaUploadURL", err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return target, newStatusError(resp, ErrRequest, "feedMediaUploadURL")
	}

	if err := json.NewDecoder(resp.Body).Decode(&target); err != nil {
		return target, fmt.Errorf("%w: decode response: %w", ErrRequest, err)
	}
	if target.FilePath == "" || target.ThumbnailPath == "" {
		return target, fmt.Errorf("%w: response is missing filePath or thumbnailPath", ErrRequest)
	}

	return target, nil
}

func (c *HTTPClient) postJSON(ctx context.Context, path, token string, body any) (*http.Response, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(common.AuthHeaderName, common.BearerPrefix+token)
	}

	return c.httpClient.Do(req)
}

func tokenFromResponse(resp *http.Response, kind error, op string) (string, error) {
	if !isSuccess(resp.StatusCode) {
		return "", newStatusError(resp, kind, op)
	}
	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))

	token := resp.Header.Get(common.TokenHeaderName)
	if token == "" {
		return "", fmt.Errorf("%w: %s: response has no %s header", kind, op, common.TokenHeaderName)
	}
	return token, nil
}

func newStatusError(resp *http.Response, kind error, op string) *StatusError {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{
		Kind:       kind,
		Op:         op,
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(b)),
	}
}

func isSuccess(code int) bool {
	return code >= 200 && code <= 299
}

func parseBaseURL(raw string) (string, error) {
	if raw == "" {
		return "", errors.New("empty url")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%q must include scheme and host", raw)
	}
	return strings.TrimRight(u.String(), "/"), nil
}
