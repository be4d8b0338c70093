package panel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// API is the REST backend the controller talks to
type API interface {
	ListDepartments(ctx context.Context) ([]Department, error)
	ListFaculty(ctx context.Context, deptID string) ([]Record, error)
	AddFaculty(ctx context.Context, deptID string, fields FormFields) error
	// ToggleStatus returns the record's new isActive value
	ToggleStatus(ctx context.Context, deptID string, index int) (bool, error)
}

// errorBody holds the message of a failed response; other keys are ignored
type errorBody struct {
	Message string `json:"message"`
}

// toggleResponse only needs isActive; a status key, if any, is ignored
type toggleResponse struct {
	IsActive *bool  `json:"isActive"`
	Message  string `json:"message"`
}

type toggleRequest struct {
	Index int `json:"index"`
}

// HTTPClient implements API over the JSON endpoints
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a client for baseURL. A nil httpClient uses
// http.DefaultClient.
func NewHTTPClient(baseURL string, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  httpClient,
	}
}

func (c *HTTPClient) facultyURL(deptID string, suffix ...string) string {
	u := c.baseURL + "/api/faculty/" + url.PathEscape(deptID)
	for _, s := range suffix {
		u += "/" + s
	}
	return u
}

// ListDepartments fetches GET /api/departments
func (c *HTTPClient) ListDepartments(ctx context.Context) ([]Department, error) {
	var departments []Department
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/api/departments", nil, &departments); err != nil {
		return nil, err
	}
	return departments, nil
}

// ListFaculty fetches GET /api/faculty/{id}. An empty body yields no records.
func (c *HTTPClient) ListFaculty(ctx context.Context, deptID string) ([]Record, error) {
	var records []Record
	if err := c.do(ctx, http.MethodGet, c.facultyURL(deptID), nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// AddFaculty posts the form fields as given. Any 2xx response counts as
// success whatever its body.
func (c *HTTPClient) AddFaculty(ctx context.Context, deptID string, fields FormFields) error {
	return c.do(ctx, http.MethodPost, c.facultyURL(deptID, "add"), fields, nil)
}

// ToggleStatus posts {index} and returns the new status taken from the
// isActive key of a 2xx response
func (c *HTTPClient) ToggleStatus(ctx context.Context, deptID string, index int) (bool, error) {
	var resp toggleResponse
	if err := c.do(ctx, http.MethodPost, c.facultyURL(deptID, "toggle_status"), toggleRequest{Index: index}, &resp); err != nil {
		return false, err
	}
	if resp.IsActive == nil {
		return false, &RequestError{Status: http.StatusOK, StatusText: http.StatusText(http.StatusOK), Message: resp.Message}
	}
	return *resp.IsActive, nil
}

// do sends body as JSON and decodes a 2xx response into out. Non-2xx
// responses become a RequestError carrying the server message if any.
func (c *HTTPClient) do(ctx context.Context, method, target string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return &RequestError{Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &RequestError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RequestError{Status: resp.StatusCode, StatusText: http.StatusText(resp.StatusCode), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var body errorBody
		_ = json.Unmarshal(data, &body)
		return newStatusError(resp.StatusCode, body.Message)
	}

	if len(bytes.TrimSpace(data)) == 0 || out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &RequestError{Status: resp.StatusCode, StatusText: http.StatusText(resp.StatusCode), Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}
