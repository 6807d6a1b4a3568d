package deploy

import (
	"context"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/repute-dao/repute-contract/internal/build"
	"github.com/repute-dao/repute-contract/rpc/repute"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const contractDir = "../contracts/repute"

type deployEnv struct {
	chain testChain
	local *wallet.Account
	ctr   *build.Contract
	token util.Uint160
}

func newDeployEnv(t *testing.T) *deployEnv {
	bc, validator := chain.NewSingle(t)
	e := neotest.NewExecutor(t, bc, validator, validator)

	local, err := wallet.NewAccount()
	require.NoError(t, err)

	e.ValidatorInvoker(e.NativeHash(t, nativenames.Gas)).Invoke(t, true, "transfer",
		e.Validator.ScriptHash(), local.ScriptHash(), 1000_0000_0000, nil)

	ctr, err := build.Compile(contractDir)
	require.NoError(t, err)

	return &deployEnv{
		chain: testChain{t: t, e: e},
		local: local,
		ctr:   ctr,
		token: e.NativeHash(t, nativenames.Neo),
	}
}

func (x *deployEnv) prm(t *testing.T) Prm {
	return Prm{
		Logger:         zaptest.NewLogger(t),
		Blockchain:     x.chain,
		LocalAccount:   x.local,
		NEF:            *x.ctr.NEF,
		Manifest:       *x.ctr.Manifest,
		TokenMint:      x.token,
		CooldownPeriod: 30,
		Roles: []Role{
			{Index: 0, Name: "Member", Threshold: 0},
			{Index: 1, Name: "Elder", Threshold: 5},
		},
	}
}

func (x *deployEnv) height() uint32 {
	return x.chain.e.Chain.BlockHeight()
}

func (x *deployEnv) reader(addr util.Uint160) *repute.ContractReader {
	return repute.NewReader(invoker.New(x.chain, nil), addr)
}

func requireRole(t *testing.T, r *repute.ContractReader, index uint8, name string, threshold int64) {
	role, err := r.GetRole(index)
	require.NoError(t, err)
	require.NotNil(t, role)
	require.Equal(t, name, role.Name)
	require.Equal(t, threshold, role.Threshold.Int64())
}

func TestDeploy(t *testing.T) {
	x := newDeployEnv(t)
	prm := x.prm(t)
	ctx := context.Background()

	addr, err := Deploy(ctx, prm)
	require.NoError(t, err)
	require.Equal(t, x.ctr.Hash(x.local.ScriptHash()), addr)

	r := x.reader(addr)

	st, err := r.GetState()
	require.NoError(t, err)
	require.Equal(t, x.local.ScriptHash(), st.Admin)
	require.Equal(t, x.token, st.TokenMint)
	require.Equal(t, int64(30), st.CooldownPeriod.Int64())
	require.Equal(t, int64(2), st.RoleCount.Int64())

	requireRole(t, r, 0, "Member", 0)
	requireRole(t, r, 1, "Elder", 5)

	t.Run("repeated", func(t *testing.T) {
		h := x.height()

		_, err := Deploy(ctx, prm)
		require.NoError(t, err)
		require.Equal(t, h, x.height())
	})

	t.Run("role changed", func(t *testing.T) {
		prm := x.prm(t)
		prm.Roles[1].Threshold = 7
		h := x.height()

		_, err := Deploy(ctx, prm)
		require.NoError(t, err)
		require.Equal(t, h+1, x.height())

		requireRole(t, r, 1, "Elder", 7)
		requireRole(t, r, 0, "Member", 0)

		cnt, err := r.RoleCount()
		require.NoError(t, err)
		require.Equal(t, int64(2), cnt.Int64())
	})

	t.Run("foreign admin", func(t *testing.T) {
		other, err := wallet.NewAccount()
		require.NoError(t, err)

		prm := x.prm(t)
		prm.Admin = other.ScriptHash()
		prm.Roles[1].Threshold = 7
		prm.Roles = append(prm.Roles, Role{Index: 2, Name: "Sage", Threshold: 50})
		h := x.height()

		// Already initialized program keeps its admin, roles are managed by it.
		_, err = Deploy(ctx, prm)
		require.NoError(t, err)
		require.Equal(t, h+1, x.height())
		requireRole(t, r, 2, "Sage", 50)
	})
}

func TestDeploy_NotInitialized(t *testing.T) {
	x := newDeployEnv(t)
	ctx := context.Background()

	x.chain.e.DeployContractBy(t, neotest.NewSingleSigner(x.local), &neotest.Contract{
		Hash:     x.ctr.Hash(x.local.ScriptHash()),
		NEF:      x.ctr.NEF,
		Manifest: x.ctr.Manifest,
	}, nil)

	other, err := wallet.NewAccount()
	require.NoError(t, err)

	prm := x.prm(t)
	prm.Admin = other.ScriptHash()

	_, err = Deploy(ctx, prm)
	require.ErrorContains(t, err, "not initialized")

	prm.Admin = util.Uint160{}
	addr, err := Deploy(ctx, prm)
	require.NoError(t, err)

	r := x.reader(addr)

	st, err := r.GetState()
	require.NoError(t, err)
	require.Equal(t, x.local.ScriptHash(), st.Admin)
	require.Equal(t, int64(30), st.CooldownPeriod.Int64())

	requireRole(t, r, 0, "Member", 0)
	requireRole(t, r, 1, "Elder", 5)
}
