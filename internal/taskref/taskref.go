// Package taskref decides whether an operator token names one task or a
// whole service of a project.
package taskref

import (
	"net/url"
	"strings"
)

// APIPrefix is the root of every versioned Compose endpoint.
const APIPrefix = "/api/compose/v0"

// Reference is either ByID or ByService.
type Reference interface {
	KillPath() string
	RestartPath() string
	String() string
}

// ByID targets a single task.
type ByID struct {
	ID string
}

func (r ByID) KillPath() string {
	return APIPrefix + "/tasks/" + url.PathEscape(r.ID)
}

func (r ByID) RestartPath() string {
	return r.KillPath() + "/restart"
}

func (r ByID) String() string {
	return "task " + r.ID
}

// ByService targets every task of a service. Task names reported by the
// framework have the form <prefix>:<project>:<service>.
type ByService struct {
	Project string
	Service string
}

func (r ByService) KillPath() string {
	return APIPrefix + "/" + url.PathEscape(r.Project) + "/" + url.PathEscape(r.Service)
}

func (r ByService) RestartPath() string {
	return r.KillPath() + "/restart"
}

func (r ByService) String() string {
	return "service " + r.Project + ":" + r.Service
}

// Resolve picks the variant from the presence of a colon alone. The first
// segment is the framework's task name prefix and is ignored. Nothing is
// checked against the framework.
func Resolve(token string) Reference {
	if !strings.Contains(token, ":") {
		return ByID{ID: token}
	}
	parts := strings.Split(token, ":")
	ref := ByService{}
	if len(parts) > 1 {
		ref.Project = parts[1]
	}
	if len(parts) > 2 {
		ref.Service = parts[2]
	}
	return ref
}
