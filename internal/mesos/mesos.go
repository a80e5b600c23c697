// Package mesos is the leader registry client: it asks the Mesos master
// which frameworks exist and where they serve their API.
package mesos

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pandeptwidyaop/compose-remote/internal/config"
	"github.com/pandeptwidyaop/compose-remote/internal/dispatch"
	"github.com/pandeptwidyaop/compose-remote/internal/locator"
)

// FrameworksPath is the master endpoint listing registered frameworks.
const FrameworksPath = "/master/frameworks"

// Client implements locator.Registry against a Mesos master.
type Client struct {
	master string
	cred   config.FrameworkCredential
	doer   dispatch.Doer
}

// NewClient talks to the master at address using cred for auth and TLS.
func NewClient(address string, cred config.FrameworkCredential, doer dispatch.Doer) *Client {
	return &Client{master: address, cred: cred, doer: doer}
}

type frameworksResponse struct {
	Frameworks []locator.FrameworkRecord `json:"frameworks"`
}

// ListFrameworks returns every framework the master knows about.
func (c *Client) ListFrameworks(ctx context.Context) ([]locator.FrameworkRecord, error) {
	body, err := c.doer.Execute(ctx, dispatch.Request{Address: c.master, Path: FrameworksPath}, c.cred)
	if err != nil {
		return nil, fmt.Errorf("failed to list frameworks: %w", err)
	}

	var resp frameworksResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse framework list: %w", err)
	}
	return resp.Frameworks, nil
}

// FrameworkAddress returns the web UI URL the framework registered with,
// which is where the Compose API is served.
func (c *Client) FrameworkAddress(ctx context.Context, frameworkID string) (string, error) {
	frameworks, err := c.ListFrameworks(ctx)
	if err != nil {
		return "", err
	}

	for _, framework := range frameworks {
		if framework.ID != frameworkID {
			continue
		}
		if framework.WebUIURL == "" {
			return "", fmt.Errorf("framework %s has no webui_url", frameworkID)
		}
		return framework.WebUIURL, nil
	}
	return "", fmt.Errorf("no framework with id %s", frameworkID)
}
