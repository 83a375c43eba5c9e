// Package apiclient 是 Appeals API 的类型化 HTTP 客户端，管理后台控制台和 appealctl 共用。
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/NabievDev/NewPeople-sub000/pkg/log"
)

// Error 是服务端返回的非 2xx 响应。Message 取自响应信封的 message 字段。
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// IsStatus 判断 err 是否为指定 HTTP 状态码的 *Error。
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// envelope 对应服务端统一响应 {code, message, data}。
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
}

// New 创建客户端。baseURL 形如 http://localhost:8000/api；session 为 nil 时使用不落盘的会话。
func New(baseURL string, timeout time.Duration, session *Session) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if session == nil {
		session = &Session{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		session:    session,
	}
}

// Session 返回客户端当前使用的会话。
func (c *Client) Session() *Session {
	return c.session
}

// do 发送请求并把信封里的 data 解到 out（out 为 nil 时忽略 data）。
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("apiclient marshal: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("apiclient request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if tok := c.session.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("apiclient %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("apiclient read body: %w", err)
	}
	log.Debugw("api call", "method", method, "path", path, "status", resp.StatusCode, "latency", time.Since(start))

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.Message
		if decodeErr != nil || msg == "" {
			msg = strings.TrimSpace(string(raw))
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &Error{Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if decodeErr != nil {
		return fmt.Errorf("apiclient decode envelope: %w", decodeErr)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return fmt.Errorf("apiclient %s %s: empty data", method, path)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("apiclient decode data: %w", err)
	}
	return nil
}
