package capability

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"
)

// snippetCap bounds the body snippet returned by Get regardless of the
// server's response size.
const snippetCap = 4096

// HTTPNetwork implements Network using the standard resolver and HTTP
// client.
type HTTPNetwork struct {
	resolver *net.Resolver
}

// NewHTTPNetwork returns a Network backed by the default system resolver.
func NewHTTPNetwork() *HTTPNetwork {
	return &HTTPNetwork{resolver: net.DefaultResolver}
}

func (n *HTTPNetwork) Resolve(ctx context.Context, host string) ([]string, error) {
	addrs, err := n.resolver.LookupHost(ctx, host)
	if err != nil {
		return nil, NetworkErrorf("DNS resolution failed for %s: %v", host, err)
	}
	if len(addrs) == 0 {
		return nil, NetworkErrorf("DNS resolution returned no addresses for %s", host)
	}
	return addrs, nil
}

func (n *HTTPNetwork) Get(ctx context.Context, url string, timeout time.Duration) (int, string, error) {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, "", NetworkErrorf("invalid request for %s: %v", url, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return 0, "", TimeoutError()
		}
		return 0, "", NetworkErrorf("HTTPS GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, snippetCap))
	if err != nil {
		if isTimeout(err) {
			return 0, "", TimeoutError()
		}
		return 0, "", NetworkErrorf("reading body: %v", err)
	}

	return resp.StatusCode, string(body), nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}
