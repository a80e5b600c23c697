package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandeptwidyaop/compose-remote/internal/composetest"
	"github.com/pandeptwidyaop/compose-remote/internal/handlers"
	"github.com/pandeptwidyaop/compose-remote/internal/version"
)

func setup(t *testing.T) (*composetest.Framework, string) {
	t.Helper()
	framework := composetest.NewFramework()
	t.Cleanup(framework.Close)

	master := composetest.NewMaster(composetest.MasterFramework{
		ID:       composetest.NewFrameworkID(),
		Name:     "mesos-compose",
		Active:   true,
		WebUIURL: framework.URL(),
	})
	t.Cleanup(master.Close)

	configPath := filepath.Join(t.TempDir(), "config.toml")
	content := fmt.Sprintf("[master]\naddress = %q\n", master.URL())
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))
	return framework, configPath
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"--version"}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Equal(t, version.String(), stdout.String())
}

func TestRun_Help(t *testing.T) {
	for _, flag := range []string{"--help", "-h", "help"} {
		var stdout, stderr bytes.Buffer
		code := run(context.Background(), []string{flag}, &stdout, &stderr)

		assert.Equal(t, 0, code, flag)
		assert.Contains(t, stderr.String(), "Usage:", flag)
		assert.Contains(t, stderr.String(), "framework", flag)
		assert.NotContains(t, stderr.String(), "error:", flag)
	}
}

func TestRun_Kill(t *testing.T) {
	framework, configPath := setup(t)
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"--config", configPath, "kill", "mesos-compose", "x:myproj:myservice"}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Equal(t, "DELETE", framework.LastRequest().Method)
	assert.Equal(t, "/api/compose/v0/myproj/myservice", framework.LastRequest().Path)
}

func TestRun_ListEmpty(t *testing.T) {
	_, configPath := setup(t)
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"-c", configPath, "list", "mesos-compose", "--all"}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Equal(t, handlers.NoTasksMessage+"\n", stdout.String())
}

func TestRun_FrameworkSuppress(t *testing.T) {
	framework, configPath := setup(t)
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"--config", configPath, "framework", "suppress", "mesos-compose"}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Equal(t, "/api/compose/v0/framework/supress", framework.LastRequest().Path)
}

func TestRun_ErrorExitCode(t *testing.T) {
	var stdout, stderr bytes.Buffer
	missing := filepath.Join(t.TempDir(), "missing.toml")

	code := run(context.Background(), []string{"--config", missing, "version", "mesos-compose"}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "error: unable to load configuration")
}

func TestRun_BadGlobalFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"--nope"}, &stdout, &stderr)
	assert.Equal(t, 2, code)
}
