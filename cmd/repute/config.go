package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"gopkg.in/yaml.v3"
)

// Config is the CLI configuration read from the YAML file.
type Config struct {
	RPC      string        `yaml:"rpc"`
	Timeout  time.Duration `yaml:"timeout"`
	Wallet   string        `yaml:"wallet"`
	Account  string        `yaml:"account"`
	Password string        `yaml:"password"`
	Contract string        `yaml:"contract"`
	Deploy   DeployConfig  `yaml:"deploy"`
}

// DeployConfig groups parameters of the deploy command.
type DeployConfig struct {
	Sources  string       `yaml:"sources"`
	Admin    string       `yaml:"admin"`
	Token    string       `yaml:"token"`
	Cooldown uint32       `yaml:"cooldown"`
	Roles    []RoleConfig `yaml:"roles"`
}

// RoleConfig is a role configured on deployment.
type RoleConfig struct {
	Index     uint8  `yaml:"index"`
	Name      string `yaml:"name"`
	Threshold int64  `yaml:"threshold"`
}

const (
	defaultRPC     = "http://localhost:30333"
	defaultTimeout = 15 * time.Second
	defaultSources = "contracts/repute"
)

func defaultConfig() *Config {
	return &Config{
		RPC:     defaultRPC,
		Timeout: defaultTimeout,
		Deploy: DeployConfig{
			Sources: defaultSources,
		},
	}
}

// readConfig reads configuration from the file. Empty path results in the
// default configuration.
func readConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	return cfg, nil
}

var errEmptyHash = errors.New("empty script hash")

// parseHash160 accepts both Neo address and hex-encoded script hash in LE
// with optional '0x' prefix.
func parseHash160(s string) (util.Uint160, error) {
	if s == "" {
		return util.Uint160{}, errEmptyHash
	}

	if h, err := address.StringToUint160(s); err == nil {
		return h, nil
	}

	h, err := util.Uint160DecodeStringLE(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return util.Uint160{}, fmt.Errorf("%q is neither address nor script hash", s)
	}

	return h, nil
}
