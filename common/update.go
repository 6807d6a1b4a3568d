package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/neo"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
)

// HasUpdateAccess returns true if contract can be updated.
func HasUpdateAccess() bool {
	return runtime.CheckWitness(CommitteeAddress())
}

// CommitteeAddress returns M = N/2+1 multisignature address of the current
// Neo committee.
func CommitteeAddress() interop.Hash160 {
	committee := neo.GetCommittee()
	return interop.Hash160(contract.CreateMultisigAccount(len(committee)/2+1, committee))
}
