// Package config loads framework credentials and master settings from the
// Mesos CLI configuration document.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

const (
	// Namespace is the table holding one sub-table per framework name.
	Namespace = "compose"

	DefaultAgentTimeout  = 5 * time.Second
	DefaultMasterTimeout = 5 * time.Second
	DefaultMasterAddress = "127.0.0.1:5050"
)

// ConfigError reports a configuration document that could not be read,
// parsed or interpreted.
type ConfigError struct {
	Path    string
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// FrameworkCredential is the per-framework section of the document.
// Principal and Secret are nil when the document does not set them.
type FrameworkCredential struct {
	Principal    *string
	Secret       *string
	SSLVerify    bool
	AgentTimeout time.Duration
}

// HasBasicAuth reports whether both halves of the Basic credential are set.
func (c FrameworkCredential) HasBasicAuth() bool {
	return c.Principal != nil && c.Secret != nil
}

// DefaultCredential is used when a framework has no section of its own.
func DefaultCredential() FrameworkCredential {
	return FrameworkCredential{AgentTimeout: DefaultAgentTimeout}
}

// MasterConfig is the [master] section.
type MasterConfig struct {
	Address   string
	SSLVerify bool
	Timeout   time.Duration
	Principal *string
	Secret    *string
}

// Credential returns the master settings in the shape the dispatcher takes.
func (m MasterConfig) Credential() FrameworkCredential {
	return FrameworkCredential{
		Principal:    m.Principal,
		Secret:       m.Secret,
		SSLVerify:    m.SSLVerify,
		AgentTimeout: m.Timeout,
	}
}

// Config is a loaded configuration document.
type Config struct {
	Path   string
	Master MasterConfig

	doc map[string]any
}

// DefaultPath returns $MESOS_CLI_CONFIG or ~/.mesos/config.toml.
func DefaultPath() string {
	if p := os.Getenv("MESOS_CLI_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".mesos", "config.toml")
	}
	return filepath.Join(home, ".mesos", "config.toml")
}

// Load reads the document at path. The parser is picked by file extension;
// anything that is not YAML or JSON is read as TOML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Message: "error loading config file", Err: err}
	}

	doc, err := decode(path, data)
	if err != nil {
		return nil, &ConfigError{Path: path, Message: "error parsing config file " + path, Err: err}
	}
	if doc == nil {
		doc = map[string]any{}
	}

	cfg := &Config{Path: path, doc: doc}
	if err := cfg.loadMaster(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadCredential loads path and returns the credential for frameworkName.
func LoadCredential(path, frameworkName string) (FrameworkCredential, error) {
	cfg, err := Load(path)
	if err != nil {
		return FrameworkCredential{}, err
	}
	return cfg.Credential(frameworkName)
}

func decode(path string, data []byte) (map[string]any, error) {
	var doc map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &doc); err != nil {
			return nil, err
		}
	default:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// Credential looks up the sub-table for frameworkName under the compose
// namespace. Both [compose.<name>] and ["compose.<name>"] are accepted. A
// framework without a sub-table gets DefaultCredential.
func (c *Config) Credential(frameworkName string) (FrameworkCredential, error) {
	table, err := c.frameworkTable(frameworkName)
	if err != nil {
		return FrameworkCredential{}, err
	}

	cred := DefaultCredential()
	if table == nil {
		return cred, nil
	}

	if cred.Principal, err = c.optionalString(table, "principal"); err != nil {
		return FrameworkCredential{}, err
	}
	if cred.Secret, err = c.optionalString(table, "secret"); err != nil {
		return FrameworkCredential{}, err
	}
	if v, ok := table["ssl_verify"]; ok {
		b, isBool := v.(bool)
		if !isBool {
			return FrameworkCredential{}, &ConfigError{Path: c.Path, Message: "ssl_verify must be true/false"}
		}
		cred.SSLVerify = b
	}
	if v, ok := table["agent_timeout"]; ok {
		d, err := parseTimeout(v)
		if err != nil {
			return FrameworkCredential{}, &ConfigError{Path: c.Path, Message: "invalid agent_timeout", Err: err}
		}
		cred.AgentTimeout = d
	}
	return cred, nil
}

func (c *Config) frameworkTable(name string) (map[string]any, error) {
	if ns, ok := c.doc[Namespace]; ok {
		nsTable, isTable := asTable(ns)
		if !isTable {
			return nil, &ConfigError{Path: c.Path, Message: fmt.Sprintf("%q must be a table", Namespace)}
		}
		if v, ok := nsTable[name]; ok {
			return c.table(v, Namespace+"."+name)
		}
	}
	if v, ok := c.doc[Namespace+"."+name]; ok {
		return c.table(v, Namespace+"."+name)
	}
	return nil, nil
}

func (c *Config) loadMaster() error {
	c.Master = MasterConfig{Address: DefaultMasterAddress, Timeout: DefaultMasterTimeout}

	v, ok := c.doc["master"]
	if !ok {
		return nil
	}
	table, err := c.table(v, "master")
	if err != nil {
		return err
	}

	if addr, ok := table["address"]; ok {
		s, isString := addr.(string)
		if !isString {
			return &ConfigError{Path: c.Path, Message: "master address must be a string"}
		}
		c.Master.Address = s
	}
	if v, ok := table["ssl_verify"]; ok {
		b, isBool := v.(bool)
		if !isBool {
			return &ConfigError{Path: c.Path, Message: "ssl_verify must be true/false"}
		}
		c.Master.SSLVerify = b
	}
	if v, ok := table["timeout"]; ok {
		d, err := parseTimeout(v)
		if err != nil {
			return &ConfigError{Path: c.Path, Message: "invalid master timeout", Err: err}
		}
		c.Master.Timeout = d
	}
	if c.Master.Principal, err = c.optionalString(table, "principal"); err != nil {
		return err
	}
	if c.Master.Secret, err = c.optionalString(table, "secret"); err != nil {
		return err
	}
	return nil
}

func (c *Config) table(v any, name string) (map[string]any, error) {
	t, ok := asTable(v)
	if !ok {
		return nil, &ConfigError{Path: c.Path, Message: fmt.Sprintf("%q must be a table", name)}
	}
	return t, nil
}

func (c *Config) optionalString(table map[string]any, key string) (*string, error) {
	v, ok := table[key]
	if !ok || v == nil {
		return nil, nil
	}
	s, isString := v.(string)
	if !isString {
		return nil, &ConfigError{Path: c.Path, Message: key + " must be a string"}
	}
	return &s, nil
}

func asTable(v any) (map[string]any, bool) {
	t, ok := v.(map[string]any)
	return t, ok
}

// parseTimeout accepts a duration string ("10s") or a number of seconds.
func parseTimeout(v any) (time.Duration, error) {
	var d time.Duration
	switch t := v.(type) {
	case string:
		parsed, err := time.ParseDuration(t)
		if err != nil {
			return 0, err
		}
		d = parsed
	case int:
		d = time.Duration(t) * time.Second
	case int64:
		d = time.Duration(t) * time.Second
	case float64:
		d = time.Duration(t * float64(time.Second))
	default:
		return 0, fmt.Errorf("unsupported value %v", v)
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %v", d)
	}
	return d, nil
}
