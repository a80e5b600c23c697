// Package handlers implements one entry point per operator verb. Each verb
// resolves the framework, issues a single request and renders the reply.
package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/pandeptwidyaop/compose-remote/internal/config"
	"github.com/pandeptwidyaop/compose-remote/internal/dispatch"
	"github.com/pandeptwidyaop/compose-remote/internal/locator"
	"github.com/pandeptwidyaop/compose-remote/internal/mesos"
	"github.com/pandeptwidyaop/compose-remote/internal/render"
)

// Deps bundles the collaborators a command needs. Zero-valued fields get
// production defaults in New.
type Deps struct {
	ConfigPath string
	// MasterAddress overrides the address from the configuration.
	MasterAddress string

	LoadConfig func(path string) (*config.Config, error)
	Registry   func(masterAddress string, cred config.FrameworkCredential) locator.Registry
	Dispatcher dispatch.Doer
	Printer    *render.Printer
	Log        logrus.FieldLogger
}

// Handlers runs the operator commands.
type Handlers struct {
	deps Deps
}

// New creates a new Handlers instance, filling in defaults for unset Deps.
func New(deps Deps) *Handlers {
	if deps.Log == nil {
		deps.Log = logrus.StandardLogger()
	}
	if deps.Printer == nil {
		deps.Printer = render.NewPrinter(os.Stdout)
	}
	if deps.LoadConfig == nil {
		deps.LoadConfig = config.Load
	}
	if deps.Dispatcher == nil {
		deps.Dispatcher = dispatch.New(deps.Log)
	}
	if deps.Registry == nil {
		doer := deps.Dispatcher
		deps.Registry = func(address string, cred config.FrameworkCredential) locator.Registry {
			return mesos.NewClient(address, cred, doer)
		}
	}
	return &Handlers{deps: deps}
}

// RequestContext is built once per command and handed to every step.
type RequestContext struct {
	FrameworkName    string
	Credential       config.FrameworkCredential
	MasterAddress    string
	MasterCredential config.FrameworkCredential
}

// target is a RequestContext with the framework located.
type target struct {
	RequestContext
	FrameworkID string
	Address     string
}

func (h *Handlers) newRequestContext(frameworkName string) (RequestContext, error) {
	if frameworkName == "" {
		return RequestContext{}, fmt.Errorf("framework name is required")
	}

	cfg, err := h.deps.LoadConfig(h.deps.ConfigPath)
	if err != nil {
		return RequestContext{}, fmt.Errorf("unable to load configuration: %w", err)
	}
	cred, err := cfg.Credential(frameworkName)
	if err != nil {
		return RequestContext{}, fmt.Errorf("unable to load configuration for %s: %w", frameworkName, err)
	}

	master := cfg.Master.Address
	if h.deps.MasterAddress != "" {
		master = h.deps.MasterAddress
	}
	if master == "" {
		return RequestContext{}, fmt.Errorf("unable to get leading master address: no master configured")
	}

	return RequestContext{
		FrameworkName:    frameworkName,
		Credential:       cred,
		MasterAddress:    master,
		MasterCredential: cfg.Master.Credential(),
	}, nil
}

func (h *Handlers) resolve(ctx context.Context, frameworkName string) (target, error) {
	rc, err := h.newRequestContext(frameworkName)
	if err != nil {
		return target{}, err
	}

	loc := locator.New(h.deps.Registry(rc.MasterAddress, rc.MasterCredential), h.deps.Log)

	id, err := loc.ResolveID(ctx, rc.FrameworkName)
	if err != nil {
		return target{}, err
	}
	address, err := loc.ResolveAddress(ctx, id)
	if err != nil {
		return target{}, err
	}

	h.deps.Log.WithFields(logrus.Fields{
		"func":      "handlers.resolve",
		"framework": rc.FrameworkName,
		"id":        id,
		"address":   address,
	}).Debug("Located framework")

	return target{RequestContext: rc, FrameworkID: id, Address: address}, nil
}

func (h *Handlers) send(ctx context.Context, t target, method, path, bodyFile string) (string, error) {
	return h.deps.Dispatcher.Execute(ctx, dispatch.Request{
		Address:  t.Address,
		Path:     path,
		Method:   method,
		BodyFile: bodyFile,
	}, t.Credential)
}
