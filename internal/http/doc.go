// Package http provides the HTTP client used to fetch cover images.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Per-request timeouts (30 seconds by default)
//   - Turning non-2xx responses into *StatusError
//
// # Basic Usage
//
//	client := http.NewClient(http.DefaultTimeout)
//
//	resp, err := client.Get(ctx, imageURL)
//	var statusErr *http.StatusError
//	if errors.As(err, &statusErr) {
//	    fmt.Println("server said", statusErr.StatusCode)
//	}
package http
