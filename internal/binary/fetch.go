package binary

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/hashicorp/go-hclog"
)

const (
	// fetchTimeout bounds a whole download attempt.
	fetchTimeout = 5 * time.Minute
	// dialTimeout bounds TCP connection establishment per attempt.
	dialTimeout = 30 * time.Second
	// maxRedirects caps redirect chains (GitHub releases redirect to a
	// CDN, so at least one hop is always expected).
	maxRedirects = 10

	userAgent = "tailwind-go/1.0 (+https://github.com/RobinBoers/tailwind)"
)

// ipFamily selects the address family a fetch attempt dials with.
type ipFamily string

const (
	familyIPv4 ipFamily = "tcp4"
	familyIPv6 ipFamily = "tcp6"
)

// flip returns the opposite address family.
func (f ipFamily) flip() ipFamily {
	if f == familyIPv4 {
		return familyIPv6
	}
	return familyIPv4
}

// FetchErrorKind classifies fetch failures for callers that branch on
// the outcome.
type FetchErrorKind int

const (
	// FetchNotFound is an HTTP 404: the version/target combination has
	// no published asset. Never retried.
	FetchNotFound FetchErrorKind = iota
	// FetchTransport is a connection-level failure (dial, TLS, DNS).
	FetchTransport
	// FetchBadStatus is any non-200, non-404 HTTP response.
	FetchBadStatus
)

// FetchError is the typed result of a failed fetch. All fetch failures
// terminate in one of these; the fetch path never panics on network
// conditions.
type FetchError struct {
	Kind       FetchErrorKind
	URL        string
	StatusCode int
	Err        error
	Hints      []string
}

func (e *FetchError) Error() string {
	var b strings.Builder

	switch e.Kind {
	case FetchNotFound:
		fmt.Fprintf(&b, "no release asset at %s (HTTP 404)", e.URL)
	case FetchTransport:
		fmt.Fprintf(&b, "unable to reach %s: %v", e.URL, e.Err)
	default:
		fmt.Fprintf(&b, "unexpected response from %s: HTTP %d", e.URL, e.StatusCode)
	}

	for _, hint := range e.Hints {
		b.WriteString("\n  - ")
		b.WriteString(hint)
	}

	return b.String()
}

func (e *FetchError) Unwrap() error { return e.Err }

// notFoundHints explain a 404 in terms the user can act on.
var notFoundHints = []string{
	"the configured version may not exist, or may not publish this target; check the release page",
	"set an explicit version or target in tailwind.lua if the detection is wrong",
}

// transportHints list the usual remediations for connectivity failures.
var transportHints = []string{
	"check your network connection and proxy settings (HTTP_PROXY / HTTPS_PROXY)",
	"if your proxy intercepts TLS, make sure its CA certificate is installed in the system bundle",
	"you can also download the binary manually and point the `path` option at it, or install tailwindcss via npm",
}

// Fetcher performs release downloads with environment-derived proxy
// configuration, strict TLS, and a single flipped-address-family retry
// on connectivity failures.
type Fetcher struct {
	logger  hclog.Logger
	timeout time.Duration

	// attempt is swapped out by tests to exercise the retry flow
	// without a network.
	attempt func(ctx context.Context, rawURL string, family ipFamily) ([]byte, error)
}

// NewFetcher creates a fetcher. A nil logger falls back to the default
// hclog logger.
func NewFetcher(logger hclog.Logger) *Fetcher {
	if logger == nil {
		logger = hclog.Default()
	}
	f := &Fetcher{
		logger:  logger.Named("fetch"),
		timeout: fetchTimeout,
	}
	f.attempt = f.doAttempt
	return f
}

// Fetch downloads url and returns the response body unmodified.
//
// The first attempt prefers IPv4. If it fails with a failure class that
// suggests the address family is the problem (network or host
// unreachable, unsupported protocol family, name resolution failure),
// the fetch is retried exactly once with the family flipped; the retry's
// result is surfaced as-is. Every other failure is returned directly as
// a *FetchError.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	body, err := f.attempt(ctx, rawURL, familyIPv4)
	if err == nil {
		return body, nil
	}

	if !addressFamilyRelated(err) {
		return nil, err
	}

	f.logger.Debug("transport failure looks address-family related, retrying",
		"url", rawURL, "family", familyIPv4.flip())

	return f.attempt(ctx, rawURL, familyIPv4.flip())
}

// doAttempt performs one download attempt with a freshly constructed
// client. The address family is threaded through as a parameter; no
// transport state is shared between attempts, so a retry can never
// affect a concurrent fetch's first attempt.
func (f *Fetcher) doAttempt(ctx context.Context, rawURL string, family ipFamily) ([]byte, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid download URL %q: %w", rawURL, err)
	}

	proxy, err := proxyFromEnvironment(parsed.Scheme)
	if err != nil {
		return nil, err
	}

	transport := &http.Transport{
		// Peer verification on, system roots, hostname checking: all
		// crypto/tls defaults. Only the protocol floor is pinned.
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
		DialContext: func(ctx context.Context, _, addr string) (net.Conn, error) {
			d := &net.Dialer{Timeout: dialTimeout}
			return d.DialContext(ctx, string(family), addr)
		},
	}

	if proxy != nil {
		transport.Proxy = http.ProxyURL(proxy.url)
		if proxy.authHeader != "" {
			transport.ProxyConnectHeader = http.Header{
				"Proxy-Authorization": []string{proxy.authHeader},
			}
		}
	}

	client := &http.Client{
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("too many redirects")
			}
			return nil
		},
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	if proxy != nil && proxy.authHeader != "" && parsed.Scheme == "http" {
		// Plain-HTTP proxying carries the credentials on the request
		// itself rather than a CONNECT handshake.
		req.Header.Set("Proxy-Authorization", proxy.authHeader)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{
			Kind:  FetchTransport,
			URL:   rawURL,
			Err:   err,
			Hints: transportHints,
		}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, &FetchError{Kind: FetchTransport, URL: rawURL, Err: err, Hints: transportHints}
		}
		return body, nil

	case http.StatusNotFound:
		return nil, &FetchError{
			Kind:       FetchNotFound,
			URL:        rawURL,
			StatusCode: resp.StatusCode,
			Hints:      notFoundHints,
		}

	default:
		return nil, &FetchError{
			Kind:       FetchBadStatus,
			URL:        rawURL,
			StatusCode: resp.StatusCode,
			Hints:      transportHints,
		}
	}
}

// addressFamilyRelated reports whether a failed attempt is worth
// retrying with the opposite IP family: unreachable network/host,
// unsupported protocol family, or name resolution failure. HTTP-level
// failures (404, bad status) never qualify.
func addressFamilyRelated(err error) bool {
	var fe *FetchError
	if errors.As(err, &fe) && fe.Kind != FetchTransport {
		return false
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ENETUNREACH,
			syscall.EHOSTUNREACH,
			syscall.EAFNOSUPPORT,
			syscall.EPROTONOSUPPORT,
			syscall.EADDRNOTAVAIL:
			return true
		}
	}

	return false
}

// proxyConfig is a resolved proxy for one URL scheme.
type proxyConfig struct {
	url        *url.URL
	authHeader string
}

// proxyFromEnvironment resolves the proxy for a URL scheme from the
// conventional environment variables, uppercase taking precedence.
// Credentials embedded in the proxy URL's user-info segment become a
// basic Proxy-Authorization header when the segment carries both a user
// and a password.
func proxyFromEnvironment(scheme string) (*proxyConfig, error) {
	var raw string
	switch scheme {
	case "https":
		raw = firstEnv("HTTPS_PROXY", "https_proxy")
	case "http":
		raw = firstEnv("HTTP_PROXY", "http_proxy")
	default:
		return nil, fmt.Errorf("unsupported URL scheme %q", scheme)
	}

	if raw == "" {
		return nil, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy URL %q: %w", raw, err)
	}

	pc := &proxyConfig{url: u}
	if user := u.User; user != nil {
		pass, ok := user.Password()
		if ok && user.Username() != "" {
			creds := user.Username() + ":" + pass
			pc.authHeader = "Basic " + base64.StdEncoding.EncodeToString([]byte(creds))
		}
	}

	return pc, nil
}

func firstEnv(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}
