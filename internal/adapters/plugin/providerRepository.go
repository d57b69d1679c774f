package plugin

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	providerPort "rasana/internal/ports/provider"
)

// ProviderHTTP forwards listing requests to an external content provider
// over plain HTTP. No retries, no fallback: a provider failure is the
// caller's failure.
type ProviderHTTP struct {
	BaseURL string
	Client  *http.Client
}

func NewProviderHTTP(baseURL string) *ProviderHTTP {
	return &ProviderHTTP{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *ProviderHTTP) Forward(ctx context.Context, fskey, endpoint string, headers map[string]string, body []byte) (*providerPort.Forwarded, error) {
	target := fmt.Sprintf("%s/%s/%s", p.BaseURL, url.PathEscape(fskey), strings.TrimLeft(endpoint, "/"))

	method := http.MethodGet
	var payload io.Reader
	if len(body) > 0 {
		method = http.MethodPost
		payload = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, payload)
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forwarding to provider %q: %w", fskey, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading provider %q response: %w", fskey, err)
	}

	return &providerPort.Forwarded{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        respBody,
	}, nil
}
