package deploy

import (
	"errors"
	"math/big"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/repute-dao/repute-contract/rpc/repute"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type testBlockchain struct {
	Blockchain

	err error
}

func (x testBlockchain) GetContractStateByHash(util.Uint160) (*state.Contract, error) {
	if x.err != nil {
		return nil, x.err
	}
	return new(state.Contract), nil
}

func validPrm(t *testing.T) Prm {
	acc, err := wallet.NewAccount()
	require.NoError(t, err)

	return Prm{
		Logger:       zaptest.NewLogger(t),
		Blockchain:   testBlockchain{},
		LocalAccount: acc,
		TokenMint:    util.Uint160{1},
		Roles: []Role{
			{Index: 0, Name: "Member", Threshold: 0},
			{Index: 1, Name: "Elder", Threshold: 5},
		},
	}
}

func TestValidatePrm(t *testing.T) {
	require.NoError(t, validatePrm(validPrm(t)))

	for name, corrupt := range map[string]func(*Prm){
		"no logger":      func(p *Prm) { p.Logger = nil },
		"no blockchain":  func(p *Prm) { p.Blockchain = nil },
		"no account":     func(p *Prm) { p.LocalAccount = nil },
		"no token":       func(p *Prm) { p.TokenMint = util.Uint160{} },
		"empty name":     func(p *Prm) { p.Roles[0].Name = "" },
		"long name":      func(p *Prm) { p.Roles[0].Name = string(make([]byte, 33)) },
		"duplicate role": func(p *Prm) { p.Roles[1].Index = 0 },
	} {
		t.Run(name, func(t *testing.T) {
			prm := validPrm(t)
			corrupt(&prm)
			require.Error(t, validatePrm(prm))
		})
	}
}

func TestDeployData(t *testing.T) {
	prm := validPrm(t)
	prm.CooldownPeriod = 60

	require.Equal(t, []any{prm.LocalAccount.ScriptHash(), prm.TokenMint, int64(60)}, deployData(prm))

	prm.Admin = util.Uint160{9}
	require.Equal(t, []any{util.Uint160{9}, prm.TokenMint, int64(60)}, deployData(prm))
}

func TestIsDeployed(t *testing.T) {
	ok, err := isDeployed(testBlockchain{}, util.Uint160{})
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = isDeployed(testBlockchain{err: errors.New("Unknown contract")}, util.Uint160{})
	require.NoError(t, err)
	require.False(t, ok)

	_, err = isDeployed(testBlockchain{err: errors.New("connection refused")}, util.Uint160{})
	require.Error(t, err)
}

func TestRoleUpToDate(t *testing.T) {
	r := Role{Index: 1, Name: "Elder", Threshold: 5}

	require.False(t, roleUpToDate(nil, r))
	require.True(t, roleUpToDate(&repute.Role{Name: "Elder", Threshold: big.NewInt(5), Index: big.NewInt(1)}, r))
	require.False(t, roleUpToDate(&repute.Role{Name: "Elder", Threshold: big.NewInt(6), Index: big.NewInt(1)}, r))
	require.False(t, roleUpToDate(&repute.Role{Name: "Senior", Threshold: big.NewInt(5), Index: big.NewInt(1)}, r))
}

func TestWaitHalt(t *testing.T) {
	require.Error(t, waitHalt(nil, errors.New("timeout")))

	var res state.AppExecResult
	res.VMState = vmstate.Fault
	res.FaultException = "no tokens"
	require.ErrorContains(t, waitHalt(&res, nil), "no tokens")

	res.VMState = vmstate.Halt
	require.NoError(t, waitHalt(&res, nil))
}
