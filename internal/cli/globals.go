package cli

import (
	"io"

	"github.com/spf13/pflag"
)

// Globals are the flags accepted before the verb.
type Globals struct {
	ConfigPath string
	Master     string
	Verbose    bool
	Version    bool
}

// ParseGlobals consumes the leading global flags and returns the rest of
// args untouched, starting at the verb.
func ParseGlobals(args []string, defaultConfig string) (Globals, []string, error) {
	var g Globals
	flagSet := GlobalFlags(&g, defaultConfig)
	flagSet.SetOutput(io.Discard)
	flagSet.SetInterspersed(false)
	if err := flagSet.Parse(args); err != nil {
		return g, nil, err
	}
	return g, flagSet.Args(), nil
}

// GlobalFlags binds the global flags to g.
func GlobalFlags(g *Globals, defaultConfig string) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("compose-remote", pflag.ContinueOnError)
	flagSet.StringVarP(&g.ConfigPath, "config", "c", defaultConfig, "path to the Mesos CLI config file")
	flagSet.StringVarP(&g.Master, "master", "m", "", "Mesos master address, overrides [master] address")
	flagSet.BoolVarP(&g.Verbose, "verbose", "v", false, "log requests to stderr")
	flagSet.BoolVar(&g.Version, "version", false, "show version information")
	return flagSet
}
