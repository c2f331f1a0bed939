package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/config"
)

// textPayload is the provider's message envelope for plain-text sends.
type textPayload struct {
	MessagingProduct string      `json:"messaging_product"`
	To               string      `json:"to"`
	Type             string      `json:"type"`
	Text             textContent `json:"text"`
}

type textContent struct {
	Body string `json:"body"`
}

type sendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

// HTTPClient delivers messages over the provider's HTTP API. Every call goes
// through a circuit breaker; an open breaker fails the send like any other
// transport error.
type HTTPClient struct {
	cfg        *config.GatewayConfig
	httpClient *http.Client
	breaker    *CircuitBreaker
	logger     *zap.Logger
}

func NewHTTPClient(cfg *config.GatewayConfig, logger *zap.Logger) *HTTPClient {
	return &HTTPClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		breaker: NewCircuitBreaker(&cfg.CircuitBreaker, logger),
		logger:  logger,
	}
}

// Send posts one message to the provider and returns its message id.
func (c *HTTPClient) Send(ctx context.Context, to, body string) (*SendResult, error) {
	var result *SendResult

	err := c.breaker.Execute(ctx, func() error {
		payload := textPayload{
			MessagingProduct: "whatsapp",
			To:               to,
			Type:             "text",
			Text:             textContent{Body: body},
		}

		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewBuffer(jsonData))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.cfg.AuthKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("failed to send request: %w", err)
		}
		defer func() {
			if err := resp.Body.Close(); err != nil {
				c.logger.Warn("Failed to close response body", zap.Error(err))
			}
		}()

		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		var sendResp sendResponse
		if err := json.NewDecoder(resp.Body).Decode(&sendResp); err != nil {
			// Provider accepted the message but returned a non-JSON body.
			result = &SendResult{ProviderMessageID: fmt.Sprintf("local-%d", time.Now().UnixNano())}
			return nil
		}

		result = &SendResult{}
		if len(sendResp.Messages) > 0 {
			result.ProviderMessageID = sendResp.Messages[0].ID
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// BreakerState exposes the circuit breaker state for health reporting.
func (c *HTTPClient) BreakerState() BreakerState {
	return c.breaker.State()
}

// BreakerCounts exposes the circuit breaker counters for health reporting.
func (c *HTTPClient) BreakerCounts() (requests, failures uint32) {
	return c.breaker.Counts()
}
