package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tienda-tcg/internal/logger"

	"go.uber.org/zap"
)

const (
	DefaultTimeout = 8 * time.Second

	tokenHeader      = "X-Shopify-Storefront-Access-Token"
	maxResponseBytes = 4 << 20
)

// Config Storefront API 客户端配置
type Config struct {
	Endpoint   string
	Token      string
	Timeout    time.Duration
	Retry      RetryPolicy
	HTTPClient *http.Client
}

// Client Storefront GraphQL 客户端，调用之间无状态
type Client struct {
	endpoint   string
	token      string
	timeout    time.Duration
	retry      RetryPolicy
	httpClient *http.Client
	log        *zap.SugaredLogger
}

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors GraphQLErrors   `json:"errors"`
}

// New 创建客户端
func New(cfg Config) (*Client, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("%w: endpoint is required", ErrConfigInvalid)
	}
	parsed, err := url.ParseRequestURI(endpoint)
	if err != nil || parsed.Host == "" {
		return nil, fmt.Errorf("%w: endpoint is invalid", ErrConfigInvalid)
	}
	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, fmt.Errorf("%w: storefront token is required", ErrConfigInvalid)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	retry := cfg.Retry
	if retry.Delay < 0 {
		retry.Delay = 0
	}
	if retry.Retryable == nil {
		retry.Retryable = IsRetryable
	}
	return &Client{
		endpoint:   endpoint,
		token:      token,
		timeout:    timeout,
		retry:      retry,
		httpClient: httpClient,
		log:        logger.Named("shopify", "endpoint", parsed.Host),
	}, nil
}

// Do 执行 GraphQL 文档，将 data 解码到 out（out 为 nil 时丢弃）
func (c *Client) Do(ctx context.Context, document string, variables map[string]interface{}, out interface{}) error {
	if variables == nil {
		variables = map[string]interface{}{}
	}
	body, err := json.Marshal(graphQLRequest{Query: document, Variables: variables})
	if err != nil {
		return fmt.Errorf("%w: marshal request failed: %w", ErrRequestFailed, err)
	}

	var data json.RawMessage
	err = c.retry.Run(ctx, func(ctx context.Context, attempt int) error {
		raw, err := c.post(ctx, body)
		if err != nil {
			return err
		}
		data = raw
		return nil
	}, func(attempt int, err error) {
		c.log.Warnw("shopify_request_retry", "attempt", attempt, "max_attempts", c.retry.Attempts(), "error", err)
	})
	if err != nil {
		c.log.Errorw("shopify_request_failed", "error", err)
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decode data failed: %w", ErrResponseInvalid, err)
	}
	return nil
}

// post 单次请求，超时仅作用于本次尝试
func (c *Client) post(ctx context.Context, body []byte) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request failed: %w", ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(tokenHeader, c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body failed: %w", ErrRequestFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrRequestFailed, resp.StatusCode)
	}

	var decoded graphQLResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return nil, fmt.Errorf("%w: decode body failed: %w", ErrResponseInvalid, err)
	}
	if len(decoded.Errors) > 0 {
		c.log.Errorw("shopify_graphql_errors", "errors", decoded.Errors.Error())
		return nil, fmt.Errorf("%w: %w", ErrGraphQL, decoded.Errors)
	}
	trimmed := bytes.TrimSpace(decoded.Data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, fmt.Errorf("%w: missing data", ErrResponseInvalid)
	}
	return decoded.Data, nil
}
