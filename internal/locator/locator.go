// Package locator resolves a framework name or ID to the endpoint the
// framework serves its API on.
package locator

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// FrameworkRecord is one framework as reported by the leader registry.
type FrameworkRecord struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Active   bool   `json:"active"`
	WebUIURL string `json:"webui_url"`
}

// Registry is the leader registry, i.e. the Mesos master.
type Registry interface {
	ListFrameworks(ctx context.Context) ([]FrameworkRecord, error)
	FrameworkAddress(ctx context.Context, frameworkID string) (string, error)
}

// LocatorError reports a framework reference that could not be resolved.
type LocatorError struct {
	Reference string
	Err       error
}

func (e *LocatorError) Error() string {
	return fmt.Sprintf("unable to resolve framework %q: %v", e.Reference, e.Err)
}

func (e *LocatorError) Unwrap() error {
	return e.Err
}

// IsFrameworkID reports whether ref already has the shape of a framework
// ID, which Mesos issues as a UUID followed by a sequence number.
func IsFrameworkID(ref string) bool {
	return strings.Count(ref, "-") == 5
}

// Locator maps framework names and IDs to API endpoints.
type Locator struct {
	registry Registry
	log      logrus.FieldLogger
}

// New creates a new Locator backed by registry.
func New(registry Registry, log logrus.FieldLogger) *Locator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Locator{registry: registry, log: log}
}

// ResolveID returns the framework ID for ref. IDs pass through without a
// registry lookup. Names are matched case-insensitively against active
// frameworks only; an unmatched name comes back unchanged so the request
// can still be attempted.
func (l *Locator) ResolveID(ctx context.Context, ref string) (string, error) {
	logger := l.log.WithField("func", "locator.ResolveID")

	if IsFrameworkID(ref) {
		logger.WithField("framework", ref).Debug("Reference is a framework ID")
		return ref, nil
	}

	frameworks, err := l.registry.ListFrameworks(ctx)
	if err != nil {
		return "", &LocatorError{Reference: ref, Err: err}
	}

	for _, framework := range frameworks {
		if !framework.Active || !strings.EqualFold(framework.Name, ref) {
			continue
		}
		logger.WithFields(logrus.Fields{"framework": ref, "id": framework.ID}).Debug("Resolved framework name")
		return framework.ID, nil
	}

	logger.WithField("framework", ref).Debug("No active framework with that name")
	return ref, nil
}

// ResolveAddress asks the registry where frameworkID serves its API.
func (l *Locator) ResolveAddress(ctx context.Context, frameworkID string) (string, error) {
	address, err := l.registry.FrameworkAddress(ctx, frameworkID)
	if err != nil {
		return "", &LocatorError{Reference: frameworkID, Err: err}
	}
	return address, nil
}
