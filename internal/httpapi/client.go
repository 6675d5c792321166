package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/lwmacct/251219-go-pkg-pctexp/pkg/pctexp"
)

// APIError 服务端返回的非 2xx 响应。
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Name       string // 缺失的变量名
	Offset     *int
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("HTTP %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}

	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// Unwrap 将展开错误码还原为 pctexp 的哨兵错误，便于 errors.Is 判断。
func (e *APIError) Unwrap() error {
	switch e.Code {
	case CodeInvalidFormat:
		return pctexp.ErrInvalidFormat
	case CodeMissingVariable:
		return pctexp.ErrMissingVariable
	default:
		return nil
	}
}

// Client 展开服务客户端。
//
// 传输错误与 5xx 响应会重试，4xx 不重试。
type Client struct {
	baseURL string
	http    *http.Client
	retries int
	backoff time.Duration
}

// NewClient 创建客户端。retries 为失败后的额外尝试次数。
func NewClient(baseURL string, timeout time.Duration, retries int) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		retries: max(retries, 0),
		backoff: 200 * time.Millisecond,
	}
}

// Health 检查服务健康状态。
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// Split 请求服务端切分 text。
func (c *Client) Split(ctx context.Context, text string) (*SplitResponse, error) {
	var resp SplitResponse
	if err := c.do(ctx, http.MethodPost, "/v1/split", TextRequest{Text: text}, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// Check 请求服务端校验 text。
func (c *Client) Check(ctx context.Context, text string) (*CheckResponse, error) {
	var resp CheckResponse
	if err := c.do(ctx, http.MethodPost, "/v1/check", TextRequest{Text: text}, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// Expand 请求服务端展开。
func (c *Client) Expand(ctx context.Context, req ExpandRequest) (*ExpandResponse, error) {
	var resp ExpandResponse
	if err := c.do(ctx, http.MethodPost, "/v1/expand", req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			slog.Debug("Retrying request", "path", path, "attempt", attempt, "error", lastErr)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.backoff * time.Duration(attempt)):
			}
		}

		lastErr = c.once(ctx, method, path, payload, out)
		if lastErr == nil {
			return nil
		}

		var apiErr *APIError
		if errors.As(lastErr, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError {
			return lastErr
		}
		if ctx.Err() != nil {
			return lastErr
		}
	}

	return lastErr
}

func (c *Client) once(ctx context.Context, method, path string, payload []byte, out any) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		var er ErrorResponse
		if jsonErr := json.Unmarshal(data, &er); jsonErr != nil || er.Error == "" {
			er.Error = strings.TrimSpace(string(data))
		}

		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       er.Code,
			Message:    er.Error,
			Name:       er.Name,
			Offset:     er.Offset,
		}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
