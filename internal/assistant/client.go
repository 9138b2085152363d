// Package assistant wraps the generative model behind the clinical writing,
// reminder, finance analysis and receipt extraction helpers.
package assistant

import "context"

// InlineData is an image attached to a generation request.
type InlineData struct {
	MIMEType string
	Data     []byte
}

// Request is a single-turn generation request.
type Request struct {
	System string
	Prompt string
	Image  *InlineData
}

// Response is the model's reply.
type Response struct {
	Text string
}

// Client abstracts the generative model so the service can be exercised
// without network access.
type Client interface {
	Generate(ctx context.Context, req Request) (Response, error)
}
