package repute

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/repute-dao/repute-contract/common"
	"github.com/repute-dao/repute-contract/contracts/repute/reputeconst"
)

// UserScore is a cumulative reputation of the target wallet.
type UserScore struct {
	Target interop.Hash160
	// Score is unbounded and may go negative.
	Score int
	// LastUpdated is a block timestamp (ms) of the last vote or reset.
	LastUpdated int
}

// ScoreOf returns the current score of the user. Users nobody voted for have
// zero score.
func ScoreOf(user interop.Hash160) int {
	checkHash(user, "user")
	return getUserScore(storage.GetReadOnlyContext(), user).Score
}

// GetUserScore returns the score record of the user or nil if it has not been
// created yet.
func GetUserScore(user interop.Hash160) any {
	checkHash(user, "user")

	data := storage.Get(storage.GetReadOnlyContext(), userScoreKey(user))
	if data == nil {
		return nil
	}

	return std.Deserialize(data.([]byte)).(UserScore)
}

// ResetScores sets the score of the target to zero. It can be invoked only by
// the admin. Vote records (and so cooldowns) stay untouched.
//
// It produces ScoreReset notification.
func ResetScores(target interop.Hash160) {
	ctx := storage.GetContext()
	st := getState(ctx)

	common.CheckAdminWitness(st.Admin)
	checkHash(target, "target")

	s := getUserScore(ctx, target)
	s.Score = 0
	s.LastUpdated = runtime.GetTime()
	putUserScore(ctx, s)

	runtime.Notify("ScoreReset", target)
}

// ResetAllScores sets every existing score to zero. It can be invoked only by
// the admin. GAS cost grows linearly with the number of scored users.
//
// It produces ScoreReset notification for each user.
func ResetAllScores() {
	ctx := storage.GetContext()
	st := getState(ctx)

	common.CheckAdminWitness(st.Admin)

	now := runtime.GetTime()

	it := storage.Find(ctx, []byte(reputeconst.UserScorePrefix), storage.ValuesOnly|storage.DeserializeValues)
	for iterator.Next(it) {
		s := iterator.Value(it).(UserScore)
		s.Score = 0
		s.LastUpdated = now
		putUserScore(ctx, s)

		runtime.Notify("ScoreReset", s.Target)
	}
}

func getUserScore(ctx storage.Context, target interop.Hash160) UserScore {
	data := storage.Get(ctx, userScoreKey(target))
	if data == nil {
		return UserScore{Target: target}
	}

	return std.Deserialize(data.([]byte)).(UserScore)
}

func putUserScore(ctx storage.Context, s UserScore) {
	common.SetSerialized(ctx, userScoreKey(s.Target), s)
}

func userScoreKey(target interop.Hash160) []byte {
	return append([]byte(reputeconst.UserScorePrefix), target...)
}
