package repute

import (
	"errors"
	"math/big"
	"testing"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/stretchr/testify/require"
)

type testInv struct {
	err error
	res *result.Invoke

	method string
	params []any

	pages      [][]stackitem.Item
	terminated []uuid.UUID
}

func (t *testInv) Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error) {
	t.method, t.params = operation, params
	return t.res, t.err
}

func (t *testInv) CallAndExpandIterator(contract util.Uint160, operation string, i int, params ...any) (*result.Invoke, error) {
	t.method, t.params = operation, params
	return t.res, t.err
}

func (t *testInv) TraverseIterator(uuid.UUID, *result.Iterator, int) ([]stackitem.Item, error) {
	if len(t.pages) == 0 {
		return nil, nil
	}
	page := t.pages[0]
	t.pages = t.pages[1:]
	return page, nil
}

func (t *testInv) TerminateSession(id uuid.UUID) error {
	t.terminated = append(t.terminated, id)
	return nil
}

type testAct struct {
	testInv
}

func (t *testAct) MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error) {
	t.method, t.params = method, params
	return transaction.New([]byte{1}, 0), nil
}

func (t *testAct) MakeRun(script []byte) (*transaction.Transaction, error) {
	return transaction.New(script, 0), nil
}

func (t *testAct) MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error) {
	t.method, t.params = method, params
	return transaction.New([]byte{2}, 0), nil
}

func (t *testAct) MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error) {
	return transaction.New(script, 0), nil
}

func (t *testAct) SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error) {
	t.method, t.params = method, params
	return util.Uint256{1}, 42, t.err
}

func (t *testAct) SendRun(script []byte) (util.Uint256, uint32, error) {
	return util.Uint256{2}, 42, t.err
}

func halt(items ...stackitem.Item) *result.Invoke {
	return &result.Invoke{
		State: vmstate.Halt.String(),
		Stack: items,
	}
}

func roleItem(name string, threshold, index int64) stackitem.Item {
	return stackitem.NewStruct([]stackitem.Item{
		stackitem.NewByteArray([]byte(name)),
		stackitem.Make(threshold),
		stackitem.Make(index),
	})
}

func TestReader(t *testing.T) {
	ti := new(testInv)
	r := NewReader(ti, util.Uint160{1, 2, 3})

	admin := util.Uint160{7}
	token := util.Uint160{8}

	t.Run("fault", func(t *testing.T) {
		ti.res = &result.Invoke{
			State:          vmstate.Fault.String(),
			FaultException: "not initialized",
		}
		_, err := r.GetState()
		require.ErrorContains(t, err, "not initialized")
	})

	t.Run("transport error", func(t *testing.T) {
		ti.err = errors.New("connection refused")
		_, err := r.ScoreOf(admin)
		require.Error(t, err)
		ti.err = nil
	})

	t.Run("state", func(t *testing.T) {
		ti.res = halt(stackitem.NewStruct([]stackitem.Item{
			stackitem.NewByteArray(admin.BytesBE()),
			stackitem.NewByteArray(token.BytesBE()),
			stackitem.Make(86400),
			stackitem.Make(2),
		}))
		st, err := r.GetState()
		require.NoError(t, err)
		require.Equal(t, admin, st.Admin)
		require.Equal(t, token, st.TokenMint)
		require.Equal(t, int64(86400), st.CooldownPeriod.Int64())
		require.Equal(t, int64(2), st.RoleCount.Int64())
		require.Equal(t, "getState", ti.method)
	})

	t.Run("malformed state", func(t *testing.T) {
		ti.res = halt(stackitem.NewStruct([]stackitem.Item{
			stackitem.NewByteArray([]byte{1, 2}),
			stackitem.NewByteArray(token.BytesBE()),
			stackitem.Make(0),
			stackitem.Make(0),
		}))
		_, err := r.GetState()
		require.ErrorContains(t, err, "field Admin")

		ti.res = halt(stackitem.NewStruct(nil))
		_, err = r.GetState()
		require.Error(t, err)
	})

	t.Run("role", func(t *testing.T) {
		ti.res = halt(roleItem("Elder", 5, 1))
		role, err := r.GetRole(1)
		require.NoError(t, err)
		require.Equal(t, "Elder", role.Name)
		require.Equal(t, int64(5), role.Threshold.Int64())
		require.Equal(t, int64(1), role.Index.Int64())
		require.Equal(t, []any{int64(1)}, ti.params)

		ti.res = halt(stackitem.Null{})
		role, err = r.GetRole(2)
		require.NoError(t, err)
		require.Nil(t, role)

		ti.res = halt(stackitem.NewStruct([]stackitem.Item{
			stackitem.NewByteArray([]byte{0xff}),
			stackitem.Make(0),
			stackitem.Make(0),
		}))
		_, err = r.GetRole(0)
		require.ErrorContains(t, err, "UTF-8")
	})

	t.Run("user role", func(t *testing.T) {
		ti.res = halt(stackitem.Null{})
		role, err := r.GetUserRole(admin)
		require.NoError(t, err)
		require.Nil(t, role)
		require.Equal(t, "getUserRole", ti.method)
	})

	t.Run("score", func(t *testing.T) {
		ti.res = halt(stackitem.Make(-3))
		s, err := r.ScoreOf(admin)
		require.NoError(t, err)
		require.Equal(t, int64(-3), s.Int64())

		ti.res = halt(stackitem.NewStruct([]stackitem.Item{
			stackitem.NewByteArray(admin.BytesBE()),
			stackitem.Make(4),
			stackitem.Make(1700000000000),
		}))
		us, err := r.GetUserScore(admin)
		require.NoError(t, err)
		require.Equal(t, admin, us.Target)
		require.Equal(t, int64(4), us.Score.Int64())
		require.Equal(t, int64(1700000000000), us.LastUpdated.Int64())

		ti.res = halt(stackitem.Null{})
		us, err = r.GetUserScore(admin)
		require.NoError(t, err)
		require.Nil(t, us)
	})

	t.Run("vote record", func(t *testing.T) {
		ti.res = halt(stackitem.NewStruct([]stackitem.Item{
			stackitem.NewByteArray(admin.BytesBE()),
			stackitem.NewByteArray(token.BytesBE()),
			stackitem.Make(1000),
		}))
		vr, err := r.GetVoteRecord(admin, token)
		require.NoError(t, err)
		require.Equal(t, admin, vr.Voter)
		require.Equal(t, token, vr.Target)
		require.Equal(t, int64(1000), vr.LastVoteTime.Int64())
		require.Equal(t, []any{admin, token}, ti.params)

		ti.res = halt(stackitem.NewBool(true))
		ok, err := r.CanVote(admin, token)
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("roles expanded", func(t *testing.T) {
		ti.res = halt(stackitem.NewArray([]stackitem.Item{
			roleItem("Member", 0, 0),
			roleItem("Elder", 5, 1),
		}))
		roles, err := r.ListRolesExpanded(10)
		require.NoError(t, err)
		require.Len(t, roles, 2)
		require.Equal(t, "Member", roles[0].Name)
		require.Equal(t, "Elder", roles[1].Name)
	})

	t.Run("roles session", func(t *testing.T) {
		sess := uuid.New()
		iterID := uuid.New()
		ti.res = halt(stackitem.NewInterop(result.Iterator{ID: &iterID}))
		ti.res.Session = sess

		page := make([]stackitem.Item, rolesPerTraverse)
		for i := range page {
			page[i] = roleItem("r", int64(i), int64(i))
		}
		ti.pages = [][]stackitem.Item{page, {roleItem("last", 100, 100)}}

		roles, err := r.ListAllRoles()
		require.NoError(t, err)
		require.Len(t, roles, rolesPerTraverse+1)
		require.Equal(t, "last", roles[rolesPerTraverse].Name)
		require.Equal(t, []uuid.UUID{sess}, ti.terminated)
	})

	t.Run("roles without session", func(t *testing.T) {
		ti.res = halt(stackitem.NewInterop(result.Iterator{
			Values: []stackitem.Item{roleItem("Member", 0, 0)},
		}))

		roles, err := r.ListAllRoles()
		require.NoError(t, err)
		require.Len(t, roles, 1)
	})
}

func TestContract(t *testing.T) {
	ta := new(testAct)
	c := New(ta, util.Uint160{1, 2, 3})

	voter := util.Uint160{4}
	target := util.Uint160{5}

	h, vub, err := c.Upvote(voter, target)
	require.NoError(t, err)
	require.Equal(t, util.Uint256{1}, h)
	require.Equal(t, uint32(42), vub)
	require.Equal(t, "upvote", ta.method)
	require.Equal(t, []any{voter, target}, ta.params)

	_, err = c.DownvoteTransaction(voter, target)
	require.NoError(t, err)
	require.Equal(t, "downvote", ta.method)

	_, err = c.BatchVoteUnsigned(voter, []util.Uint160{target}, true)
	require.NoError(t, err)
	require.Equal(t, "batchVote", ta.method)
	require.Equal(t, []any{voter, []util.Uint160{target}, true}, ta.params)

	_, _, err = c.ConfigureRole(3, "Elder", big.NewInt(5))
	require.NoError(t, err)
	require.Equal(t, []any{int64(3), "Elder", big.NewInt(5)}, ta.params)

	_, _, err = c.ResetAllScores()
	require.NoError(t, err)
	require.Equal(t, "resetAllScores", ta.method)
	require.Empty(t, ta.params)

	ta.err = errors.New("insufficient funds")
	_, _, err = c.Initialize(voter, target, big.NewInt(0))
	require.Error(t, err)
}

func TestEventsFromApplicationLog(t *testing.T) {
	voter := util.Uint160{4}
	target := util.Uint160{5}

	_, err := VoteEventsFromApplicationLog(nil)
	require.Error(t, err)

	log := &result.ApplicationLog{
		Executions: []state.Execution{{
			Events: []state.NotificationEvent{
				{
					Name: "Vote",
					Item: stackitem.NewArray([]stackitem.Item{
						stackitem.NewByteArray(voter.BytesBE()),
						stackitem.NewByteArray(target.BytesBE()),
						stackitem.Make(-1),
						stackitem.Make(-1),
					}),
				},
				{
					Name: "RoleConfigured",
					Item: stackitem.NewArray([]stackitem.Item{
						stackitem.Make(1),
						stackitem.NewByteArray([]byte("Elder")),
						stackitem.Make(5),
					}),
				},
				{
					Name: "ScoreReset",
					Item: stackitem.NewArray([]stackitem.Item{
						stackitem.NewByteArray(target.BytesBE()),
					}),
				},
			},
		}},
	}

	votes, err := VoteEventsFromApplicationLog(log)
	require.NoError(t, err)
	require.Len(t, votes, 1)
	require.Equal(t, voter, votes[0].Voter)
	require.Equal(t, target, votes[0].Target)
	require.Equal(t, int64(-1), votes[0].Delta.Int64())

	roles, err := RoleConfiguredEventsFromApplicationLog(log)
	require.NoError(t, err)
	require.Len(t, roles, 1)
	require.Equal(t, "Elder", roles[0].Name)

	resets, err := ScoreResetEventsFromApplicationLog(log)
	require.NoError(t, err)
	require.Equal(t, []*ScoreResetEvent{{Target: target}}, resets)

	admins, err := AdminChangedEventsFromApplicationLog(log)
	require.NoError(t, err)
	require.Empty(t, admins)

	log.Executions[0].Events[0].Item = stackitem.NewArray(nil)
	_, err = VoteEventsFromApplicationLog(log)
	require.Error(t, err)
}
