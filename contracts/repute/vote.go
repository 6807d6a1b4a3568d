package repute

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/repute-dao/repute-contract/common"
	"github.com/repute-dao/repute-contract/contracts/repute/reputeconst"
)

// VoteRecord is the last vote of the voter for the target. Only its time is
// kept, vote direction is reflected in the target's score.
type VoteRecord struct {
	Voter  interop.Hash160
	Target interop.Hash160
	// LastVoteTime is a block timestamp (ms) of the last vote.
	LastVoteTime int
}

// Upvote increments the score of the target by one. Voter must witness the
// transaction, hold a positive balance of the program token and wait the
// cooldown period since the previous vote for the same target.
//
// It produces Vote notification.
func Upvote(voter, target interop.Hash160) {
	vote(voter, target, reputeconst.UpvoteDelta)
}

// Downvote decrements the score of the target by one. It has the same
// requirements as Upvote.
//
// It produces Vote notification.
func Downvote(voter, target interop.Hash160) {
	vote(voter, target, reputeconst.DownvoteDelta)
}

// BatchVote casts the same vote for every target in the list. Either all votes
// are cast or none of them.
//
// It produces Vote notification for each target.
func BatchVote(voter interop.Hash160, targets []interop.Hash160, up bool) {
	if len(targets) == 0 || len(targets) > reputeconst.MaxBatchSize {
		panic(reputeconst.ErrInvalidInput + ": invalid number of targets")
	}

	ctx := storage.GetContext()
	st := getState(ctx)

	checkHash(voter, "voter")
	common.CheckVoterWitness(voter)

	for i := range targets {
		checkTarget(voter, targets[i])
	}

	checkTokens(st, voter)

	delta := reputeconst.DownvoteDelta
	if up {
		delta = reputeconst.UpvoteDelta
	}

	now := runtime.GetTime()
	for i := range targets {
		castVote(ctx, st, voter, targets[i], delta, now)
	}
}

// CanVote checks whether the voter is able to vote for the target right now.
// Witness is not checked.
func CanVote(voter, target interop.Hash160) bool {
	if len(voter) != interop.Hash160Len || len(target) != interop.Hash160Len {
		return false
	}
	if voter.Equals(target) {
		return false
	}

	ctx := storage.GetReadOnlyContext()
	st := getState(ctx)

	if !hasTokens(st, voter) {
		return false
	}

	return !cooldownActive(ctx, st, voter, target, runtime.GetTime())
}

// GetVoteRecord returns the last vote record of the voter for the target or
// nil if the voter has never voted for it.
func GetVoteRecord(voter, target interop.Hash160) any {
	checkHash(voter, "voter")
	checkHash(target, "target")

	data := storage.Get(storage.GetReadOnlyContext(), voteRecordKey(voter, target))
	if data == nil {
		return nil
	}

	return std.Deserialize(data.([]byte)).(VoteRecord)
}

func vote(voter, target interop.Hash160, delta int) {
	ctx := storage.GetContext()
	st := getState(ctx)

	checkHash(voter, "voter")
	common.CheckVoterWitness(voter)
	checkTarget(voter, target)
	checkTokens(st, voter)

	castVote(ctx, st, voter, target, delta, runtime.GetTime())
}

func castVote(ctx storage.Context, st ProgramState, voter, target interop.Hash160, delta, now int) {
	if cooldownActive(ctx, st, voter, target, now) {
		panic(reputeconst.ErrCooldownActive)
	}

	common.SetSerialized(ctx, voteRecordKey(voter, target), VoteRecord{
		Voter:        voter,
		Target:       target,
		LastVoteTime: now,
	})

	s := getUserScore(ctx, target)
	s.Score += delta
	s.LastUpdated = now
	putUserScore(ctx, s)

	runtime.Notify("Vote", voter, target, delta, s.Score)
}

func cooldownActive(ctx storage.Context, st ProgramState, voter, target interop.Hash160, now int) bool {
	data := storage.Get(ctx, voteRecordKey(voter, target))
	if data == nil {
		return false
	}

	rec := std.Deserialize(data.([]byte)).(VoteRecord)

	return now-rec.LastVoteTime < st.CooldownPeriod*1000
}

func checkTarget(voter, target interop.Hash160) {
	checkHash(target, "target")
	if voter.Equals(target) {
		panic(reputeconst.ErrInvalidInput + ": self-voting is not allowed")
	}
}

func checkTokens(st ProgramState, voter interop.Hash160) {
	if !hasTokens(st, voter) {
		panic(reputeconst.ErrNoTokens)
	}
}

func hasTokens(st ProgramState, voter interop.Hash160) bool {
	balance := contract.Call(st.TokenMint, "balanceOf", contract.ReadOnly, voter).(int)
	return balance > 0
}

// voteRecordKey returns 'vote-record' followed by voter and target hashes.
func voteRecordKey(voter, target interop.Hash160) []byte {
	return append(append([]byte(reputeconst.VoteRecordPrefix), voter...), target...)
}
