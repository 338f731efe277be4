package taskstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/riordanpawley/laneboard/internal/api"
	"github.com/riordanpawley/laneboard/internal/domain"
)

// DefaultHTTPTimeout bounds each request when no timeout is configured.
const DefaultHTTPTimeout = 5 * time.Second

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

// HTTPClient talks to the laneboard task service
type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  logrus.FieldLogger
}

// NewHTTPClient creates a client for the service at baseURL. A non-positive
// timeout uses DefaultHTTPTimeout.
func NewHTTPClient(baseURL string, timeout time.Duration, logger logrus.FieldLogger) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger.WithField("store", "http"),
	}
}

// FetchTasks runs GET /api/tasks with the filter as query parameters
func (c *HTTPClient) FetchTasks(ctx context.Context, filter domain.Filter) ([]domain.Task, error) {
	q := url.Values{}
	if s := strings.TrimSpace(filter.Query); s != "" {
		q.Set(api.ParamQuery, s)
	}
	for _, lane := range filter.Lanes {
		q.Add(api.ParamLane, string(lane))
	}
	if filter.Assignee != "" {
		q.Set(api.ParamAssignee, filter.Assignee)
	}

	target := c.baseURL + api.PathTasks
	if len(q) > 0 {
		target += "?" + q.Encode()
	}

	body, err := c.do(ctx, "list", "", http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	var resp api.TasksResponse
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return nil, &domain.StoreError{Op: "list", Message: "failed to parse JSON", Err: err}
	}
	return resp.Tasks, nil
}

// GetTask runs GET /api/tasks/:id
func (c *HTTPClient) GetTask(ctx context.Context, taskID string) (domain.Task, error) {
	body, err := c.do(ctx, "get", taskID, http.MethodGet, c.baseURL+api.TaskPath(url.PathEscape(taskID)), nil)
	if err != nil {
		return domain.Task{}, err
	}

	var task domain.Task
	if err := sonic.Unmarshal(body, &task); err != nil {
		return domain.Task{}, &domain.StoreError{Op: "get", TaskID: taskID, Message: "failed to parse JSON", Err: err}
	}
	return task, nil
}

// UpdateStatus runs PATCH /api/tasks/:id/status
func (c *HTTPClient) UpdateStatus(ctx context.Context, taskID string, lane domain.Lane) error {
	payload, err := sonic.Marshal(api.StatusRequest{Status: lane})
	if err != nil {
		return &domain.StoreError{Op: "update", TaskID: taskID, Err: err}
	}
	_, err = c.do(ctx, "update", taskID, http.MethodPatch, c.baseURL+api.StatusPath(url.PathEscape(taskID)), payload)
	return err
}

// do sends one request and returns the body of a 2xx response. Everything
// else becomes a *domain.StoreError.
func (c *HTTPClient) do(ctx context.Context, op, taskID, method, target string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, &domain.StoreError{Op: op, TaskID: taskID, Err: err}
	}
	requestID := uuid.NewString()
	req.Header.Set(api.HeaderRequestID, requestID)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := c.logger.WithFields(logrus.Fields{"op": op, "request_id": requestID})
	if taskID != "" {
		log = log.WithField("task", taskID)
	}
	start := time.Now()

	res, err := c.http.Do(req)
	if err != nil {
		log.WithError(err).Warn("task service unreachable")
		return nil, &domain.StoreError{Op: op, TaskID: taskID, Err: fmt.Errorf("%w: %w", domain.ErrOffline, err)}
	}
	defer res.Body.Close()

	log = log.WithFields(logrus.Fields{"status": res.StatusCode, "elapsed": time.Since(start)})

	if res.StatusCode < 200 || res.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		storeErr := &domain.StoreError{Op: op, TaskID: taskID, Message: errorMessage(body), Err: statusError(res.StatusCode)}
		log.WithError(storeErr).Debug("task service rejected request")
		return nil, storeErr
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &domain.StoreError{Op: op, TaskID: taskID, Err: err}
	}
	log.Debug("task service request done")
	return body, nil
}

// errorMessage pulls the "error" field out of an error body.
func errorMessage(body []byte) string {
	var resp api.ErrorResponse
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return ""
	}
	return resp.Error
}

func statusError(code int) error {
	switch code {
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.ErrInvalidLane
	default:
		return fmt.Errorf("unexpected status %d %s", code, http.StatusText(code))
	}
}
