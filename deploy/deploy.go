package deploy

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/repute-dao/repute-contract/contracts/repute/reputeconst"
	"github.com/repute-dao/repute-contract/rpc/repute"
	"go.uber.org/zap"
)

// Blockchain groups services provided by particular Neo blockchain network
// that are required for the contract deployment.
type Blockchain interface {
	// RPCActor groups functions needed to compose and send transactions.
	actor.RPCActor

	// GetContractStateByHash returns network state of the smart contract by its
	// address. It returns error with 'Unknown contract' substring if requested
	// contract is missing.
	GetContractStateByHash(util.Uint160) (*state.Contract, error)
}

// Role groups parameters of the role configured on deployment.
type Role struct {
	Index     uint8
	Name      string
	Threshold int64
}

// Prm groups all parameters of the contract deployment procedure.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	// Particular Neo blockchain instance the contract is deployed to.
	Blockchain Blockchain

	// Local process account used for transaction signing (must be unlocked).
	// It becomes the program admin unless Admin is set.
	LocalAccount *wallet.Account

	NEF      nef.File
	Manifest manifest.Manifest

	// Program admin. Must be equal to the local account address if the
	// contract is initialized after deployment.
	Admin util.Uint160

	// NEP-17 contract, holders of which may vote.
	TokenMint util.Uint160

	// Cooldown period in seconds, zero selects the contract default.
	CooldownPeriod uint32

	// Roles configured after initialization. Roles already present on the
	// chain with the same name and threshold are left untouched.
	Roles []Role
}

// Deploy deploys the contract into the network represented by
// Prm.Blockchain, initializes the program and configures roles. Steps
// already done on the chain are skipped, so Deploy can be safely repeated.
//
// Deploy returns the address of the contract.
func Deploy(ctx context.Context, prm Prm) (util.Uint160, error) {
	err := validatePrm(prm)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("invalid parameters: %w", err)
	}

	act, err := actor.NewSimple(prm.Blockchain, prm.LocalAccount)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("init transaction sender from local account: %w", err)
	}

	localAddr := prm.LocalAccount.ScriptHash()
	admin := adminAddress(prm)
	addr := state.CreateContractHash(localAddr, prm.NEF.Checksum, prm.Manifest.Name)
	l := prm.Logger.With(zap.Stringer("contract", addr))

	deployed, err := isDeployed(prm.Blockchain, addr)
	if err != nil {
		return util.Uint160{}, err
	}

	if !deployed {
		l.Info("contract is missing on the chain, deploying...")

		err = waitHalt(act.Wait(management.New(act).Deploy(&prm.NEF, &prm.Manifest, deployData(prm))))
		if err != nil {
			return util.Uint160{}, fmt.Errorf("deploy contract: %w", err)
		}

		l.Info("contract successfully deployed and initialized")
	} else {
		l.Info("contract is already deployed")
	}

	if err = ctx.Err(); err != nil {
		return util.Uint160{}, err
	}

	c := repute.New(act, addr)

	st, err := c.GetState()
	if err != nil {
		if !strings.Contains(err.Error(), reputeconst.ErrNotInitialized) {
			return util.Uint160{}, fmt.Errorf("read program state: %w", err)
		}

		if !admin.Equals(localAddr) {
			return util.Uint160{}, errors.New("program is not initialized and admin differs from the local account")
		}

		l.Info("initializing program...")

		err = waitHalt(act.Wait(c.Initialize(admin, prm.TokenMint, big.NewInt(int64(prm.CooldownPeriod)))))
		if err != nil {
			return util.Uint160{}, fmt.Errorf("initialize program: %w", err)
		}

		l.Info("program successfully initialized")
	} else {
		l.Debug("program is already initialized", zap.Stringer("admin", st.Admin),
			zap.Stringer("token", st.TokenMint), zap.Stringer("cooldown", st.CooldownPeriod))
		admin = st.Admin
	}

	if len(prm.Roles) == 0 {
		return addr, nil
	}

	if !admin.Equals(localAddr) {
		l.Warn("local account is not the program admin, roles are not configured",
			zap.Stringer("admin", admin))
		return addr, nil
	}

	for _, r := range prm.Roles {
		if err = ctx.Err(); err != nil {
			return util.Uint160{}, err
		}

		onChain, err := c.GetRole(r.Index)
		if err != nil {
			return util.Uint160{}, fmt.Errorf("read role #%d: %w", r.Index, err)
		}

		if roleUpToDate(onChain, r) {
			l.Debug("role is up to date", zap.Uint8("index", r.Index), zap.String("name", r.Name))
			continue
		}

		err = waitHalt(act.Wait(c.ConfigureRole(r.Index, r.Name, big.NewInt(r.Threshold))))
		if err != nil {
			return util.Uint160{}, fmt.Errorf("configure role #%d: %w", r.Index, err)
		}

		l.Info("role configured", zap.Uint8("index", r.Index), zap.String("name", r.Name),
			zap.Int64("threshold", r.Threshold))
	}

	return addr, nil
}

func isDeployed(b Blockchain, addr util.Uint160) (bool, error) {
	_, err := b.GetContractStateByHash(addr)
	if err == nil {
		return true, nil
	}

	if strings.Contains(err.Error(), "Unknown contract") {
		return false, nil
	}

	return false, fmt.Errorf("get contract state by address %s: %w", addr.StringLE(), err)
}

func validatePrm(prm Prm) error {
	switch {
	case prm.Logger == nil:
		return errors.New("missing logger")
	case prm.Blockchain == nil:
		return errors.New("missing blockchain")
	case prm.LocalAccount == nil:
		return errors.New("missing local account")
	case prm.TokenMint.Equals(util.Uint160{}):
		return errors.New("missing token contract")
	}

	indices := make([]int, 0, len(prm.Roles))
	for _, r := range prm.Roles {
		if len(r.Name) == 0 || len(r.Name) > reputeconst.MaxRoleNameLength {
			return fmt.Errorf("role #%d: invalid name length %d", r.Index, len(r.Name))
		}
		indices = append(indices, int(r.Index))
	}

	sort.Ints(indices)
	for i := 1; i < len(indices); i++ {
		if indices[i] == indices[i-1] {
			return fmt.Errorf("duplicated role #%d", indices[i])
		}
	}

	return nil
}

func adminAddress(prm Prm) util.Uint160 {
	if prm.Admin.Equals(util.Uint160{}) {
		return prm.LocalAccount.ScriptHash()
	}
	return prm.Admin
}

// deployData returns _deploy argument which makes the contract bootstrap the
// program in the deployment transaction.
func deployData(prm Prm) []any {
	return []any{adminAddress(prm), prm.TokenMint, int64(prm.CooldownPeriod)}
}

func roleUpToDate(onChain *repute.Role, r Role) bool {
	return onChain != nil &&
		onChain.Name == r.Name &&
		onChain.Threshold != nil && onChain.Threshold.IsInt64() && onChain.Threshold.Int64() == r.Threshold
}

func waitHalt(res *state.AppExecResult, err error) error {
	if err != nil {
		return err
	}

	if res.VMState != vmstate.Halt {
		return fmt.Errorf("transaction %s failed with %s: %s", res.Container.StringLE(), res.VMState, res.FaultException)
	}

	return nil
}
