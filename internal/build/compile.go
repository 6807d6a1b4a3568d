// Package build turns Repute contract sources into a deployable NEF and
// manifest pair.
package build

import (
	"fmt"
	"path/filepath"

	"github.com/nspcc-dev/neo-go/cli/smartcontract"
	"github.com/nspcc-dev/neo-go/pkg/compiler"
	"github.com/nspcc-dev/neo-go/pkg/config"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// ConfigFile is the contract configuration file name expected in the source
// directory.
const ConfigFile = "config.yml"

// compilerVersion is written into NEF when the binary carries no version.
const compilerVersion = "0.0.0-repute"

// Contract is a compiled contract.
type Contract struct {
	NEF      *nef.File
	Manifest *manifest.Manifest
}

// Compile compiles the contract sources located in dir. Manifest metadata is
// taken from the ConfigFile of the same directory.
func Compile(dir string) (*Contract, error) {
	o, err := readOptions(filepath.Join(dir, ConfigFile))
	if err != nil {
		return nil, err
	}

	if config.Version == "" {
		config.Version = compilerVersion
	}

	ne, di, err := compiler.CompileWithOptions(dir, nil, o)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", dir, err)
	}

	m, err := compiler.CreateManifest(di, o)
	if err != nil {
		return nil, fmt.Errorf("create manifest: %w", err)
	}

	return &Contract{NEF: ne, Manifest: m}, nil
}

func readOptions(path string) (*compiler.Options, error) {
	conf, err := smartcontract.ParseContractConfig(path)
	if err != nil {
		return nil, fmt.Errorf("read contract config: %w", err)
	}

	perms := make([]manifest.Permission, len(conf.Permissions))
	for i := range conf.Permissions {
		perms[i] = manifest.Permission(conf.Permissions[i])
	}

	return &compiler.Options{
		Name:                       conf.Name,
		SourceURL:                  conf.SourceURL,
		ContractEvents:             conf.Events,
		DeclaredNamedTypes:         conf.NamedTypes,
		ContractSupportedStandards: conf.SupportedStandards,
		SafeMethods:                conf.SafeMethods,
		Overloads:                  conf.Overloads,
		Permissions:                perms,
	}, nil
}

// Hash returns the hash the contract gets when deployed by sender.
func (c *Contract) Hash(sender util.Uint160) util.Uint160 {
	return state.CreateContractHash(sender, c.NEF.Checksum, c.Manifest.Name)
}
