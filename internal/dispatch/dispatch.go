// Package dispatch executes single authenticated HTTP requests against a
// framework or master endpoint and classifies every failure.
package dispatch

import (
	"bytes"
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pandeptwidyaop/compose-remote/internal/config"
	"github.com/pandeptwidyaop/compose-remote/internal/version"
)

// RequestIDHeader correlates a client request with framework logs.
const RequestIDHeader = "X-Request-ID"

// Request describes one call to a framework or master endpoint.
type Request struct {
	Address string
	Path    string
	Method  string
	// BodyFile is read in full and sent as the request body when set.
	BodyFile string
}

// Doer is the narrow view callers depend on.
type Doer interface {
	Execute(ctx context.Context, req Request, cred config.FrameworkCredential) (string, error)
}

// Dispatcher sends Requests over HTTP.
type Dispatcher struct {
	log logrus.FieldLogger
}

// New creates a new Dispatcher that logs to log.
func New(log logrus.FieldLogger) *Dispatcher {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Dispatcher{log: log}
}

// Execute performs one request and returns the response body as text. Any
// failure is a *Error. Nothing is retried and no connection outlives the
// call.
func (d *Dispatcher) Execute(ctx context.Context, req Request, cred config.FrameworkCredential) (string, error) {
	logger := d.log.WithField("func", "dispatch.Execute")

	base, err := SanitizeAddress(req.Address)
	if err != nil {
		return "", &Error{Kind: KindAddress, Message: "unable to sanitize address", Err: err}
	}
	target := base + req.Path

	var body io.Reader
	if req.BodyFile != "" {
		content, err := readBody(req.BodyFile)
		if err != nil {
			return "", &Error{Kind: KindIO, URL: target, Message: "unable to read " + req.BodyFile, Err: err}
		}
		body = bytes.NewReader(content)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return "", &Error{Kind: KindNetwork, URL: target, Message: "unable to open url " + target, Err: err}
	}
	httpReq.Header.Set("User-Agent", version.UserAgent())
	httpReq.Header.Set(RequestIDHeader, uuid.NewString())
	if cred.HasBasicAuth() {
		httpReq.SetBasicAuth(*cred.Principal, *cred.Secret)
	}

	transport := newTransport(cred.SSLVerify)
	defer transport.CloseIdleConnections()

	timeout := cred.AgentTimeout
	if timeout <= 0 {
		timeout = config.DefaultAgentTimeout
	}
	client := &http.Client{Transport: transport, Timeout: timeout}

	logger.WithFields(logrus.Fields{
		"method":     method,
		"url":        target,
		"request_id": httpReq.Header.Get(RequestIDHeader),
		"auth":       cred.HasBasicAuth(),
		"ssl_verify": cred.SSLVerify,
	}).Debug("Send request")

	start := time.Now()
	resp, err := client.Do(httpReq)
	if err != nil {
		return "", &Error{Kind: KindNetwork, URL: target, Message: "unable to open url " + target, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{Kind: KindNetwork, URL: target, Message: "unable to read response from " + target, Err: err}
	}

	logger.WithFields(logrus.Fields{
		"url":     target,
		"status":  resp.StatusCode,
		"latency": time.Since(start),
	}).Debug("Received response")

	text := strings.ToValidUTF8(string(data), "\uFFFD")
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &Error{
			Kind:    KindNetwork,
			URL:     target,
			Message: "unexpected status " + resp.Status + " from " + target,
			Status:  resp.StatusCode,
			Body:    text,
		}
	}
	return text, nil
}

func readBody(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}

// newTransport returns a transport private to one request so that the TLS
// policy never leaks into other requests.
func newTransport(sslVerify bool) *http.Transport {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		InsecureSkipVerify: !sslVerify, //nolint:gosec // operator opts in via ssl_verify
		MinVersion:         tls.VersionTLS12,
	}
	return transport
}
