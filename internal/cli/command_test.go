package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTree(got *[]string, all *bool) *Command {
	return &Command{
		Name:   "compose-remote",
		Stderr: &bytes.Buffer{},
		Subcommands: []*Command{
			{
				Name:  "kill",
				Usage: "<framework> <task>",
				Args:  2,
				Run: func(args []string) error {
					*got = args
					return nil
				},
			},
			{
				Name: "list",
				Args: 1,
				Flags: func() *pflag.FlagSet {
					fs := pflag.NewFlagSet("list", pflag.ContinueOnError)
					fs.BoolVarP(all, "all", "a", false, "")
					return fs
				},
				Run: func(args []string) error {
					*got = args
					return nil
				},
			},
			{
				Name: "framework",
				Subcommands: []*Command{
					{Name: "suppress", Args: 1, Run: func(args []string) error {
						*got = append([]string{"suppress"}, args...)
						return nil
					}},
				},
			},
		},
	}
}

func TestExecute_Dispatch(t *testing.T) {
	var got []string
	var all bool
	root := testTree(&got, &all)

	require.NoError(t, root.Execute([]string{"kill", "mc", "x:shop:web"}))
	assert.Equal(t, []string{"mc", "x:shop:web"}, got)

	require.NoError(t, root.Execute([]string{"list", "mc", "--all"}))
	assert.Equal(t, []string{"mc"}, got)
	assert.True(t, all)

	require.NoError(t, root.Execute([]string{"framework", "suppress", "mc"}))
	assert.Equal(t, []string{"suppress", "mc"}, got)
}

func TestExecute_ArgCount(t *testing.T) {
	var got []string
	var all bool
	err := testTree(&got, &all).Execute([]string{"kill", "mc"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expects 2 argument(s), got 1")
	assert.Contains(t, err.Error(), "compose-remote kill <framework> <task>")
}

func TestExecute_UnknownCommandSuggests(t *testing.T) {
	var got []string
	var all bool
	err := testTree(&got, &all).Execute([]string{"kil", "mc", "t"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "kill"`)
}

func TestExecute_UnknownFlag(t *testing.T) {
	var got []string
	var all bool
	err := testTree(&got, &all).Execute([]string{"list", "--everything", "mc"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown flag")
}

func TestExecute_SubcommandRequired(t *testing.T) {
	var got []string
	var all bool
	root := testTree(&got, &all)

	err := root.Execute(nil)
	assert.EqualError(t, err, "subcommand required")
	assert.Contains(t, root.Stderr.(*bytes.Buffer).String(), "Commands:")
}

func TestExecute_Help(t *testing.T) {
	var got []string
	var all bool
	root := testTree(&got, &all)

	require.NoError(t, root.Execute([]string{"--help"}))
	help := root.Stderr.(*bytes.Buffer).String()
	assert.Contains(t, help, "kill")
	assert.Contains(t, help, "framework")
}

func TestParseGlobals(t *testing.T) {
	g, rest, err := ParseGlobals([]string{"--config", "/tmp/c.toml", "-v", "kill", "mc", "--force"}, "default.toml")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/c.toml", g.ConfigPath)
	assert.True(t, g.Verbose)
	assert.Equal(t, []string{"kill", "mc", "--force"}, rest)

	g, _, err = ParseGlobals(nil, "default.toml")
	require.NoError(t, err)
	assert.Equal(t, "default.toml", g.ConfigPath)
}

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 0, levenshtein("kill", "kill"))
	assert.Equal(t, 1, levenshtein("kil", "kill"))
	assert.Equal(t, 2, levenshtein("lsit", "list"))
	assert.Equal(t, 4, levenshtein("", "list"))
}
