package resthttp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tokenservice/pkg/id"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

const (
	// HeaderKeyRequestID request id header key
	headerKeyRequestID = "X-Request-Id"

	defaultTimeout = 30 * time.Second
)

// Error error response of the server
type Error struct {
	Status int    `json:"-"`
	Code   int    `json:"code"`
	Msg    string `json:"msg"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d %d: %s", e.Status, e.Code, e.Msg)
}

// Client tool call client of a running server
type Client struct {
	client *resty.Client
}

// New new client for endpoint, e.g. http://localhost:9000
func New(endpoint string) *Client {
	client := resty.New().
		SetHostURL(strings.TrimSuffix(endpoint, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Charset", "utf-8").
		SetTimeout(defaultTimeout)

	return &Client{client: client}
}

// Request new resty request with a fresh request id
func (c *Client) Request(ctx context.Context) *resty.Request {
	return c.WithRequestID(ctx, id.GenRequestID())
}

// WithRequestID resty request with request id
func (c *Client) WithRequestID(ctx context.Context, requestID string) *resty.Request {
	return c.client.R().SetContext(ctx).SetHeader(headerKeyRequestID, requestID)
}

// ListTools GET /tools
func (c *Client) ListTools(ctx context.Context) (json.RawMessage, error) {
	var resp json.RawMessage
	_, err := Execute(c.Request(ctx), "GET", "/tools", nil, &resp)
	return resp, err
}

// CallTool POST /tools/{name} with args as the json body
func (c *Client) CallTool(ctx context.Context, name string, args map[string]interface{}) (json.RawMessage, error) {
	if args == nil {
		args = map[string]interface{}{}
	}

	var resp json.RawMessage
	_, err := Execute(c.Request(ctx), "POST", "/tools/"+name, args, &resp)
	return resp, err
}

// Execute do network request
func Execute(request *resty.Request, method, url string, body interface{}, resp interface{}) (int, error) {
	logrus.Debugf("%s %s", method, url)

	if body != nil {
		request = request.SetBody(body)
	}

	r, err := request.Execute(strings.ToUpper(method), url)
	if err != nil {
		return 0, err
	}

	logrus.Debugf("resp.status: %s", r.Status())
	return r.StatusCode(), ParseResponse(r, resp)
}

// ParseResponse parse response, non 2xx responses become *Error
func ParseResponse(r *resty.Response, obj interface{}) error {
	if !r.IsSuccess() {
		e := &Error{Status: r.StatusCode()}
		if err := json.Unmarshal(r.Body(), e); err != nil || e.Msg == "" {
			e.Msg = strings.TrimSpace(string(r.Body()))
		}

		return e
	}

	if obj != nil {
		if err := json.Unmarshal(r.Body(), obj); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
	}

	return nil
}
