package repute

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/repute-dao/repute-contract/common"
	"github.com/repute-dao/repute-contract/contracts/repute/reputeconst"
)

// ProgramState is a global singleton of the contract.
type ProgramState struct {
	// Admin manages roles, scores and the state itself.
	Admin interop.Hash160
	// TokenMint is a NEP-17 contract, holders of which may vote.
	TokenMint interop.Hash160
	// CooldownPeriod is a minimum time in seconds between two votes of the
	// same voter for the same target.
	CooldownPeriod int
	// RoleCount is a number of configured roles.
	RoleCount int
}

// Initialize creates the program state. It can be invoked only once and only
// with a witness of the specified admin. Zero cooldown period selects the
// default one.
//
// It produces Initialized notification.
func Initialize(admin, tokenMint interop.Hash160, cooldownPeriod int) {
	ctx := storage.GetContext()
	if common.Exists(ctx, reputeconst.StateKey) {
		panic(reputeconst.ErrAlreadyInitialized)
	}

	checkHash(admin, "admin")
	common.CheckAdminWitness(admin)

	bootstrap(ctx, admin, tokenMint, cooldownPeriod)
}

func bootstrap(ctx storage.Context, admin, tokenMint interop.Hash160, cooldownPeriod int) {
	if common.Exists(ctx, reputeconst.StateKey) {
		panic(reputeconst.ErrAlreadyInitialized)
	}

	checkHash(admin, "admin")
	checkHash(tokenMint, "token")
	if cooldownPeriod < 0 {
		panic(reputeconst.ErrInvalidInput + ": negative cooldown period")
	}
	if cooldownPeriod == 0 {
		cooldownPeriod = reputeconst.DefaultCooldownPeriod
	}

	putState(ctx, ProgramState{
		Admin:          admin,
		TokenMint:      tokenMint,
		CooldownPeriod: cooldownPeriod,
		RoleCount:      0,
	})

	runtime.Notify("Initialized", admin, tokenMint, cooldownPeriod)
}

// SetCooldown changes the cooldown period. Zero period disables cooldown. It
// can be invoked only by the admin.
//
// It produces CooldownChanged notification.
func SetCooldown(period int) {
	ctx := storage.GetContext()
	st := getState(ctx)

	common.CheckAdminWitness(st.Admin)

	if period < 0 {
		panic(reputeconst.ErrInvalidInput + ": negative cooldown period")
	}

	st.CooldownPeriod = period
	putState(ctx, st)

	runtime.Notify("CooldownChanged", period)
}

// SetAdmin hands the admin capability over to another account. Both current
// and new admins must witness the transaction.
//
// It produces AdminChanged notification.
func SetAdmin(admin interop.Hash160) {
	checkHash(admin, "admin")

	ctx := storage.GetContext()
	st := getState(ctx)

	common.CheckAdminWitness(st.Admin)
	common.CheckAdminWitness(admin)

	prev := st.Admin
	st.Admin = admin
	putState(ctx, st)

	runtime.Notify("AdminChanged", prev, admin)
}

// GetState returns the program state.
func GetState() ProgramState {
	return getState(storage.GetReadOnlyContext())
}

// RoleCount returns the number of configured roles.
func RoleCount() int {
	return getState(storage.GetReadOnlyContext()).RoleCount
}

func getState(ctx storage.Context) ProgramState {
	data := storage.Get(ctx, reputeconst.StateKey)
	if data == nil {
		panic(reputeconst.ErrNotInitialized)
	}

	return std.Deserialize(data.([]byte)).(ProgramState)
}

func putState(ctx storage.Context, st ProgramState) {
	common.SetSerialized(ctx, reputeconst.StateKey, st)
}
