package composetest

import (
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/gin-gonic/gin"
)

// MasterFramework is a framework entry of GET /master/frameworks.
type MasterFramework struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Active   bool   `json:"active"`
	WebUIURL string `json:"webui_url"`
}

// Master is a fake Mesos master that only knows about frameworks.
type Master struct {
	Server *httptest.Server

	mu         sync.Mutex
	frameworks []MasterFramework
	calls      int
}

// NewMaster starts a fake master listing frameworks.
func NewMaster(frameworks ...MasterFramework) *Master {
	gin.SetMode(gin.TestMode)
	m := &Master{frameworks: frameworks}

	r := gin.New()
	r.GET("/master/frameworks", m.listFrameworks)
	m.Server = httptest.NewServer(r)
	return m
}

func (m *Master) Close() {
	m.Server.Close()
}

func (m *Master) URL() string {
	return m.Server.URL
}

// Calls reports how many times the framework list was fetched.
func (m *Master) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *Master) listFrameworks(c *gin.Context) {
	m.mu.Lock()
	m.calls++
	frameworks := append([]MasterFramework(nil), m.frameworks...)
	m.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"frameworks": frameworks})
}
