// Package composetest runs in-process stand-ins for a Compose framework and
// the Mesos master so that commands can be exercised end to end.
package composetest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// NewFrameworkID returns an ID in the form Mesos issues them: a UUID and a
// sequence number, five hyphens in total.
func NewFrameworkID() string {
	return uuid.NewString() + "-0001"
}

// Request is what the fake framework saw.
type Request struct {
	Method   string
	Path     string
	Body     string
	User     string
	Password string
	HasAuth  bool
}

// Agent mirrors the agent block the framework embeds in each task.
type Agent struct {
	Slaves []struct {
		ID       string `json:"id"`
		Hostname string `json:"hostname"`
	} `json:"slaves"`
}

// Task is a task record as the framework lists it.
type Task struct {
	TaskID     string
	TaskName   string
	State      string
	MesosAgent Agent
}

// NewTask builds a task placed on hostname.
func NewTask(id, name, state, hostname string) Task {
	task := Task{TaskID: id, TaskName: name, State: state}
	task.MesosAgent.Slaves = append(task.MesosAgent.Slaves, struct {
		ID       string `json:"id"`
		Hostname string `json:"hostname"`
	}{ID: "agent-" + hostname, Hostname: hostname})
	return task
}

// envelope is the framework's reply shape.
type envelope struct {
	Function string
	Number   int
	Message  string
}

// Framework is a fake Compose framework API.
type Framework struct {
	Server *httptest.Server

	// Principal and Secret, when both set, are required on every request.
	Principal string
	Secret    string

	mu       sync.Mutex
	tasks    []Task
	requests []Request
}

// NewFramework starts a plain HTTP fake framework.
func NewFramework() *Framework {
	gin.SetMode(gin.TestMode)
	f := &Framework{}
	f.Server = httptest.NewServer(f.router())
	return f
}

// NewTLSFramework serves the same API behind a self-signed certificate.
func NewTLSFramework() *Framework {
	gin.SetMode(gin.TestMode)
	f := &Framework{}
	f.Server = httptest.NewTLSServer(f.router())
	return f
}

func (f *Framework) Close() {
	f.Server.Close()
}

func (f *Framework) URL() string {
	return f.Server.URL
}

// SetTasks replaces what GET /tasks returns.
func (f *Framework) SetTasks(tasks ...Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = tasks
}

// Requests returns a copy of every request seen so far.
func (f *Framework) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Request(nil), f.requests...)
}

// LastRequest returns the most recent request, or the zero value.
func (f *Framework) LastRequest() Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return Request{}
	}
	return f.requests[len(f.requests)-1]
}

func (f *Framework) router() *gin.Engine {
	r := gin.New()
	r.Use(f.record, f.checkAuth)

	api := r.Group("/api/compose")
	api.GET("/versions", func(c *gin.Context) {
		c.String(http.StatusOK, "/api/compose/v0")
	})

	v0 := api.Group("/v0")
	v0.GET("/tasks", f.showAllTasks)
	v0.PUT("/framework/reregister", f.ok("V0FrameworkReRegister"))
	v0.PUT("/framework/supress", f.ok("V0FrameworkSuppress"))
	v0.DELETE("/tasks/:taskid", f.ok("V0ComposeKillTask"))
	v0.PUT("/tasks/:taskid/restart", f.ok("V0ComposeRestartTask"))
	v0.PUT("/:project", f.push("V0ComposePush"))
	v0.Handle("UPDATE", "/:project", f.push("V0ComposeUpdate"))
	v0.DELETE("/:project/:servicename", f.ok("V0ComposeKillService"))
	v0.PUT("/:project/:servicename/restart", f.ok("V0ComposeRestartService"))

	return r
}

func (f *Framework) record(c *gin.Context) {
	body, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	user, password, ok := c.Request.BasicAuth()
	f.mu.Lock()
	f.requests = append(f.requests, Request{
		Method:   c.Request.Method,
		Path:     c.Request.URL.Path,
		Body:     string(body),
		User:     user,
		Password: password,
		HasAuth:  ok,
	})
	f.mu.Unlock()

	c.Next()
}

func (f *Framework) checkAuth(c *gin.Context) {
	if f.Principal == "" || f.Secret == "" {
		c.Next()
		return
	}
	user, password, ok := c.Request.BasicAuth()
	if !ok || user != f.Principal || password != f.Secret {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	c.Next()
}

func (f *Framework) showAllTasks(c *gin.Context) {
	f.mu.Lock()
	tasks := append([]Task(nil), f.tasks...)
	f.mu.Unlock()

	c.JSON(http.StatusOK, tasks)
}

func (f *Framework) ok(function string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, envelope{Function: function, Number: 0, Message: "ok"})
	}
}

// push answers like the framework does for a compose file: the parsed
// document re-encoded as JSON inside the Message field.
func (f *Framework) push(function string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var doc map[string]any
		if err := yaml.NewDecoder(c.Request.Body).Decode(&doc); err != nil {
			c.JSON(http.StatusOK, envelope{Function: function, Number: 2, Message: err.Error()})
			return
		}
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			c.JSON(http.StatusOK, envelope{Function: function, Number: 2, Message: err.Error()})
			return
		}
		c.JSON(http.StatusOK, envelope{Function: function, Number: 0, Message: string(out)})
	}
}
