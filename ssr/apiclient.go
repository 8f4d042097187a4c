package ssr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jrsteele09/movies-auth/auth"
	"github.com/jrsteele09/movies-auth/federated"
	apperrors "github.com/jrsteele09/movies-auth/internal/errors"
	"github.com/jrsteele09/movies-auth/users"
	"github.com/rs/zerolog/log"
)

// APIClient calls the API tier on behalf of the browser.
type APIClient struct {
	baseURL     string
	apiKeyToken string
	httpClient  *http.Client
}

func NewAPIClient(baseURL, apiKeyToken string, httpClient *http.Client) (*APIClient, error) {
	if baseURL == "" {
		return nil, errors.New("[NewAPIClient] api url is required")
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &APIClient{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKeyToken: apiKeyToken,
		httpClient:  httpClient,
	}, nil
}

// SignIn forwards the browser's basic auth credentials together with the
// configured API key token.
func (c *APIClient) SignIn(ctx context.Context, username, password string) (*auth.SignInResult, error) {
	req, err := c.newRequest(ctx, http.MethodPost, APIPathSignIn, map[string]string{"apiKeyToken": c.apiKeyToken})
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(username, password)
	return c.doSignIn(req)
}

// SignProvider asks the API tier to sign in a provider verified identity.
func (c *APIClient) SignProvider(ctx context.Context, profile federated.Profile) (*auth.SignInResult, error) {
	req, err := c.newRequest(ctx, http.MethodPost, APIPathSignProvider, auth.ProviderSignInRequest{
		APIKeyToken:     c.apiKeyToken,
		ProviderProfile: profile,
	})
	if err != nil {
		return nil, err
	}
	return c.doSignIn(req)
}

func (c *APIClient) SignUp(ctx context.Context, user users.CreateUserRequest) error {
	req, err := c.newRequest(ctx, http.MethodPost, APIPathSignUp, user)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("[SignUp] %s: %w", err.Error(), apperrors.ErrUpstream)
	}
	defer drain(resp)

	switch resp.StatusCode {
	case http.StatusCreated:
		return nil
	case http.StatusBadRequest:
		return fmt.Errorf("%w: sign up rejected", apperrors.ErrValidation)
	case http.StatusConflict:
		return fmt.Errorf("email %w", apperrors.ErrAlreadyExists)
	default:
		return upstreamError(resp)
	}
}

// Forward relays a user movies call with the browser's token as bearer. The
// upstream body is returned only when the status is the expected one; a 401
// is propagated and anything else is an upstream failure.
func (c *APIClient) Forward(ctx context.Context, method, path, bearer string, body any, expected int) (json.RawMessage, error) {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("[Forward] %s: %w", err.Error(), apperrors.ErrUpstream)
	}
	defer drain(resp)

	switch resp.StatusCode {
	case expected:
		var raw json.RawMessage
		if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
			return nil, fmt.Errorf("[Forward] invalid upstream body: %s: %w", err.Error(), apperrors.ErrUpstream)
		}
		return raw, nil
	case http.StatusUnauthorized:
		return nil, apperrors.ErrUnauthorized
	default:
		return nil, upstreamError(resp)
	}
}

func (c *APIClient) doSignIn(req *http.Request) (*auth.SignInResult, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("[SignIn] %s: %w", err.Error(), apperrors.ErrUpstream)
	}
	defer drain(resp)

	switch resp.StatusCode {
	case http.StatusOK:
		var result auth.SignInResult
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return nil, fmt.Errorf("[SignIn] invalid upstream body: %s: %w", err.Error(), apperrors.ErrUpstream)
		}
		if result.Token == "" {
			return nil, fmt.Errorf("[SignIn] upstream returned no token: %w", apperrors.ErrUpstream)
		}
		return &result, nil
	case http.StatusUnauthorized:
		return nil, apperrors.ErrUnauthorized
	default:
		return nil, upstreamError(resp)
	}
}

func (c *APIClient) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return nil, fmt.Errorf("[APIClient] failed to encode body: %w", err)
		}
		reader = buf
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("[APIClient] failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func upstreamError(resp *http.Response) error {
	log.Warn().Int("status", resp.StatusCode).Str("url", resp.Request.URL.String()).Msg("Unexpected upstream status")
	return fmt.Errorf("api responded %d: %w", resp.StatusCode, apperrors.ErrUpstream)
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
