package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/repute-dao/repute-contract/contracts/repute/reputeconst"
)

const (
	// ErrAdminWitnessFailed appears when the method must be called
	// by the program admin but was not.
	ErrAdminWitnessFailed = reputeconst.ErrUnauthorized + ": admin witness check failed"
	// ErrVoterWitnessFailed appears when the vote transaction is not
	// signed by the voter.
	ErrVoterWitnessFailed = reputeconst.ErrUnauthorized + ": voter witness check failed"
	// ErrCommitteeWitnessFailed appears when the method must be called
	// by the Neo committee but was not.
	ErrCommitteeWitnessFailed = reputeconst.ErrUnauthorized + ": committee witness check failed"
)

// CheckAdminWitness checks witness of the passed admin.
// It panics with ErrAdminWitnessFailed message on fail.
func CheckAdminWitness(admin []byte) {
	checkWitnessWithPanic(admin, ErrAdminWitnessFailed)
}

// CheckVoterWitness checks witness of the passed voter.
// It panics with ErrVoterWitnessFailed message on fail.
func CheckVoterWitness(voter []byte) {
	checkWitnessWithPanic(voter, ErrVoterWitnessFailed)
}

func checkWitnessWithPanic(caller []byte, panicMsg string) {
	if !runtime.CheckWitness(caller) {
		panic(panicMsg)
	}
}
