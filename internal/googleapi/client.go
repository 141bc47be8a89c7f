package googleapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"slideforge/internal/logger"
)

const (
	defaultDriveBaseURL  = "https://www.googleapis.com/drive/v3"
	defaultSlidesBaseURL = "https://slides.googleapis.com/v1"
	defaultOAuthBaseURL  = "https://www.googleapis.com/oauth2/v1"

	requestTimeout = 10 * time.Second
)

// Failure reasons carried by APIError
const (
	ReasonUnauthorized = "unauthorized"
	ReasonForbidden    = "forbidden"
	ReasonNotFound     = "not-found"
	ReasonRemote       = "remote-error"
	ReasonUnreachable  = "remote-unreachable"
)

type APIError struct {
	Reason     string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("reason: %s, status: %d, message: %s", e.Reason, e.StatusCode, e.Message)
}

func NewAPIError(reason string, statusCode int, message string) *APIError {
	return &APIError{Reason: reason, StatusCode: statusCode, Message: message}
}

// TokenInfo is the introspection result for a raw bearer token.
// Scope is a space separated list of granted scope URLs.
type TokenInfo struct {
	Scope     string `json:"scope"`
	ExpiresIn int    `json:"expires_in"`
}

// Client talks to the Google Drive, Slides and OAuth REST endpoints directly
// with a caller supplied bearer token. Base URLs are variable so tests can
// point the client at a local stub.
type Client struct {
	DriveBaseURL  string
	SlidesBaseURL string
	OAuthBaseURL  string

	client *http.Client
	logger logger.Logger
}

func NewClient(l logger.Logger) *Client {
	if l == nil {
		l = logger.NewNoOpLogger()
	}

	return &Client{
		DriveBaseURL:  defaultDriveBaseURL,
		SlidesBaseURL: defaultSlidesBaseURL,
		OAuthBaseURL:  defaultOAuthBaseURL,
		client:        &http.Client{},
		logger:        l,
	}
}

// CopyPresentation copies the template document into a brand new document
// named newTitle and returns the new document id.
// Status mapping: 401 unauthorized, 403 forbidden (template not shared),
// 404 not found (bad template id), anything else a generic remote error.
func (c *Client) CopyPresentation(ctx context.Context, templateID string, newTitle string, token string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	body := map[string]any{
		"name":    newTitle,
		"parents": []string{}, // place the copy in the drive root
	}

	resp, err := c.post(ctx, c.DriveBaseURL+"/files/"+url.PathEscape(templateID)+"/copy", body, token)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close() // nolint:errcheck

	switch resp.StatusCode {
	case http.StatusOK:
		var copied struct {
			ID string `json:"id"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&copied); err != nil {
			return "", NewAPIError(ReasonRemote, resp.StatusCode, fmt.Sprintf("failed to decode copy response: %v", err))
		}
		return copied.ID, nil
	case http.StatusUnauthorized:
		return "", NewAPIError(ReasonUnauthorized, resp.StatusCode, "token expired or revoked")
	case http.StatusForbidden:
		return "", NewAPIError(ReasonForbidden, resp.StatusCode, "template is not shared with this account")
	case http.StatusNotFound:
		return "", NewAPIError(ReasonNotFound, resp.StatusCode, "template not found")
	default:
		c.logger.Warn("Template copy failed", "status_code", resp.StatusCode, "template_id", templateID)
		return "", NewAPIError(ReasonRemote, resp.StatusCode, readErrorMessage(resp))
	}
}

// BatchUpdate applies the requests to the presentation as one atomic batch
func (c *Client) BatchUpdate(ctx context.Context, presentationID string, requests []Request, token string) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	body := map[string]any{"requests": requests}

	resp, err := c.post(ctx, c.SlidesBaseURL+"/presentations/"+url.PathEscape(presentationID)+":batchUpdate", body, token)
	if err != nil {
		return err
	}
	defer resp.Body.Close() // nolint:errcheck

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusUnauthorized:
		return NewAPIError(ReasonUnauthorized, resp.StatusCode, "token expired or revoked")
	default:
		c.logger.Warn("Batch update failed", "status_code", resp.StatusCode, "presentation_id", presentationID)
		return NewAPIError(ReasonRemote, resp.StatusCode, readErrorMessage(resp))
	}
}

// TokenInfo introspects the raw token. Any non-success response means the
// token is unusable and is reported as unauthorized.
func (c *Client) TokenInfo(ctx context.Context, token string) (TokenInfo, error) {
	var info TokenInfo

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	endpoint := c.OAuthBaseURL + "/tokeninfo?access_token=" + url.QueryEscape(token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return info, NewAPIError(ReasonUnreachable, 0, fmt.Sprintf("failed to create request: %v", err))
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return info, NewAPIError(ReasonUnreachable, 0, fmt.Sprintf("failed to send request: %v", err))
	}
	defer resp.Body.Close() // nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return info, NewAPIError(ReasonUnauthorized, resp.StatusCode, readErrorMessage(resp))
	}

	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return info, NewAPIError(ReasonRemote, resp.StatusCode, fmt.Sprintf("failed to decode tokeninfo response: %v", err))
	}

	return info, nil
}

// post sends the body as JSON with the bearer token set.
// The caller owns the response body and the context deadline.
func (c *Client) post(ctx context.Context, endpoint string, body any, token string) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, NewAPIError(ReasonUnreachable, 0, fmt.Sprintf("failed to encode request: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, NewAPIError(ReasonUnreachable, 0, fmt.Sprintf("failed to create request: %v", err))
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, NewAPIError(ReasonUnreachable, 0, fmt.Sprintf("failed to send request: %v", err))
	}

	return resp, nil
}

// readErrorMessage extracts the provider's error envelope message if present
func readErrorMessage(resp *http.Response) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil || envelope.Error.Message == "" {
		return resp.Status
	}
	return envelope.Error.Message
}
