package repute

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/repute-dao/repute-contract/common"
	"github.com/repute-dao/repute-contract/contracts/repute/reputeconst"
)

// _deploy bootstraps the program state if deploy data carries admin, token
// and cooldown period. Otherwise the contract waits for Initialize call.
//
// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	if data != nil {
		args := data.([]any)
		if len(args) != 3 {
			panic(reputeconst.ErrInvalidInput + ": expected admin, token and cooldown period")
		}

		bootstrap(storage.GetContext(),
			args[0].(interop.Hash160),
			args[1].(interop.Hash160),
			args[2].(int))
	}

	runtime.Log("repute contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(nefFile, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic(common.ErrCommitteeWitnessFailed)
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("repute contract updated")
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func checkHash(h interop.Hash160, what string) {
	if len(h) != interop.Hash160Len {
		panic(reputeconst.ErrInvalidInput + ": invalid " + what + " script hash")
	}
}
