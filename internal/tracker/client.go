// Package tracker is a small client for the issue tracker's REST API,
// limited to the worklog and identity endpoints the timesheet needs.
package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/julianstephens/timesheet/internal/constants"
	"github.com/julianstephens/timesheet/internal/logger"
	"github.com/julianstephens/timesheet/internal/worklog"
)

// ErrUnauthorized is returned for 401 and 403 responses.
var ErrUnauthorized = errors.New("tracker rejected the token")

// APIError is a non-2xx response.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API request failed with status %d: %s", e.Status, e.Body)
}

// Is lets errors.Is(err, ErrUnauthorized) match auth failures.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && (e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden)
}

// Config holds connection settings.
type Config struct {
	BaseURL    string
	OrgID      string
	CloudOrgID string
	Timeout    time.Duration
	PerPage    int
}

// Client talks to the tracker. The token may be changed while requests are
// in flight.
type Client struct {
	config Config
	http   *http.Client

	mu    sync.RWMutex
	token string
}

// NewClient creates a client, filling unset config fields with defaults.
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = constants.DefaultAPIURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.Timeout <= 0 {
		config.Timeout = constants.DefaultHTTPTimeout
	}
	if config.PerPage <= 0 {
		config.PerPage = constants.DefaultPerPage
	}
	return &Client{
		config: config,
		http:   &http.Client{Timeout: config.Timeout},
	}
}

// SetToken sets the OAuth token sent with every request.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ResetToken clears the token.
func (c *Client) ResetToken() {
	c.SetToken("")
}

// Myself returns the owner of the current token.
func (c *Client) Myself(ctx context.Context) (User, error) {
	var dto userDTO
	if err := c.do(ctx, http.MethodGet, "/myself", nil, nil, &dto); err != nil {
		return User{}, fmt.Errorf("error fetching current user: %w", err)
	}
	return dto.toUser(), nil
}

// FetchWorklogs returns the worklogs created by q.UserID that start inside
// q.Period, in the order the tracker sends them.
func (c *Client) FetchWorklogs(ctx context.Context, q worklog.Query) ([]worklog.Worklog, error) {
	query := url.Values{}
	query.Set("perPage", strconv.Itoa(c.config.PerPage))

	body := searchRequest{
		CreatedBy: q.UserID,
		Start:     searchRange{From: q.Period.From, To: q.Period.To},
	}

	var dtos []worklogDTO
	if err := c.do(ctx, http.MethodPost, "/worklog/_search", query, body, &dtos); err != nil {
		return nil, fmt.Errorf("error fetching worklogs: %w", err)
	}

	worklogs := make([]worklog.Worklog, 0, len(dtos))
	for _, dto := range dtos {
		worklogs = append(worklogs, dto.toWorklog())
	}
	logger.Debug("Fetched worklogs", "user", q.UserID, "from", q.Period.From, "to", q.Period.To, "count", len(worklogs))
	return worklogs, nil
}

// DeleteWorklog removes a worklog from an issue.
func (c *Client) DeleteWorklog(ctx context.Context, issueID string, worklogID int64) error {
	if err := c.do(ctx, http.MethodDelete, worklogPath(issueID, worklogID), nil, nil, nil); err != nil {
		return fmt.Errorf("error deleting worklog %d: %w", worklogID, err)
	}
	return nil
}

// UpdateWorklog patches a worklog and returns the stored version.
func (c *Client) UpdateWorklog(ctx context.Context, p UpdateParams) (worklog.Worklog, error) {
	body := updateRequest{Duration: p.Duration, Comment: p.Comment}

	var dto worklogDTO
	if err := c.do(ctx, http.MethodPatch, worklogPath(p.IssueID, p.WorklogID), nil, body, &dto); err != nil {
		return worklog.Worklog{}, fmt.Errorf("error updating worklog %d: %w", p.WorklogID, err)
	}
	return dto.toWorklog(), nil
}

func worklogPath(issueID string, worklogID int64) string {
	return fmt.Sprintf("/issues/%s/worklog/%d", url.PathEscape(issueID), worklogID)
}

// do sends a JSON request and decodes a JSON response into out when out is
// non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload, out any) error {
	endpoint := c.config.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(resp.Body)
		return &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error parsing response: %w", err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "OAuth "+token)
	}

	if c.config.OrgID != "" {
		req.Header.Set("X-Org-ID", c.config.OrgID)
	}
	if c.config.CloudOrgID != "" {
		req.Header.Set("X-Cloud-Org-ID", c.config.CloudOrgID)
	}
}
