package taskref

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		token   string
		want    Reference
		kill    string
		restart string
	}{
		{
			token:   "x:myproj:myservice",
			want:    ByService{Project: "myproj", Service: "myservice"},
			kill:    "/api/compose/v0/myproj/myservice",
			restart: "/api/compose/v0/myproj/myservice/restart",
		},
		{
			token:   ":myproj:myservice",
			want:    ByService{Project: "myproj", Service: "myservice"},
			kill:    "/api/compose/v0/myproj/myservice",
			restart: "/api/compose/v0/myproj/myservice/restart",
		},
		{
			token:   "mc:shop:web:extra",
			want:    ByService{Project: "shop", Service: "web"},
			kill:    "/api/compose/v0/shop/web",
			restart: "/api/compose/v0/shop/web/restart",
		},
		{
			token:   "abc123",
			want:    ByID{ID: "abc123"},
			kill:    "/api/compose/v0/tasks/abc123",
			restart: "/api/compose/v0/tasks/abc123/restart",
		},
		{
			token:   "shop_web.3f2a1c",
			want:    ByID{ID: "shop_web.3f2a1c"},
			kill:    "/api/compose/v0/tasks/shop_web.3f2a1c",
			restart: "/api/compose/v0/tasks/shop_web.3f2a1c/restart",
		},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got := Resolve(tt.token)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.kill, got.KillPath())
			assert.Equal(t, tt.restart, got.RestartPath())
		})
	}
}

func TestResolve_ShortServiceToken(t *testing.T) {
	got := Resolve("prefix:onlyproject")
	assert.Equal(t, ByService{Project: "onlyproject"}, got)
}

func TestResolve_EscapesSegments(t *testing.T) {
	assert.Equal(t, "/api/compose/v0/tasks/a%2Fb", Resolve("a/b").KillPath())
}
