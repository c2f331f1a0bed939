// Package gateway is the outbound channel to the WhatsApp messaging
// provider. The dispatch core is written against the Client interface only;
// the HTTP implementation is one adapter.
package gateway

import "context"

//go:generate mockgen -source=client.go -destination=mocks/client_mock.go -package=mocks

// SendResult is the provider's acknowledgment of one accepted message.
type SendResult struct {
	ProviderMessageID string
}

// Client sends a single rendered message to a destination number. A timeout
// is reported as an error like any other delivery failure.
type Client interface {
	Send(ctx context.Context, to, body string) (*SendResult, error)
}
