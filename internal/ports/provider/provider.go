package provider

import "context"

// Forwarded is an external provider's verbatim response.
type Forwarded struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// ContentProvider replaces the local pipeline for a listing endpoint when
// configuration names a provider fskey. The request is forwarded verbatim
// and the response returned unmodified; errors propagate as-is with no
// local fallback.
type ContentProvider interface {
	Forward(ctx context.Context, fskey, endpoint string, headers map[string]string, body []byte) (*Forwarded, error)
}
