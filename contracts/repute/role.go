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

// Role is a named tier unlocked by reaching the score threshold.
type Role struct {
	Name      string
	Threshold int
	Index     int
}

// ConfigureRole creates or overwrites the role with the specified index. It
// can be invoked only by the admin. Role count grows only when a new index is
// configured and never exceeds MaxRoleCount, so one of the indexes stays
// unused once the limit is reached.
//
// It produces RoleConfigured notification.
func ConfigureRole(index int, name string, threshold int) {
	ctx := storage.GetContext()
	st := getState(ctx)

	common.CheckAdminWitness(st.Admin)

	if index < 0 || index > reputeconst.MaxRoleIndex {
		panic(reputeconst.ErrInvalidInput + ": role index out of range")
	}
	if len(name) == 0 || len(name) > reputeconst.MaxRoleNameLength {
		panic(reputeconst.ErrInvalidInput + ": invalid role name length")
	}
	if threshold < reputeconst.MinThreshold || threshold > reputeconst.MaxThreshold {
		panic(reputeconst.ErrInvalidInput + ": threshold out of range")
	}

	key := roleKey(index)
	if !common.Exists(ctx, key) {
		if st.RoleCount >= reputeconst.MaxRoleCount {
			panic(reputeconst.ErrInvalidInput + ": role limit reached")
		}

		st.RoleCount = st.RoleCount + 1
		putState(ctx, st)
	}

	common.SetSerialized(ctx, key, Role{
		Name:      name,
		Threshold: threshold,
		Index:     index,
	})

	runtime.Notify("RoleConfigured", index, name, threshold)
}

// GetRole returns the role with the specified index or nil if it is not
// configured.
func GetRole(index int) any {
	if index < 0 || index > reputeconst.MaxRoleIndex {
		return nil
	}

	data := storage.Get(storage.GetReadOnlyContext(), roleKey(index))
	if data == nil {
		return nil
	}

	return std.Deserialize(data.([]byte)).(Role)
}

// ListRoles returns iterator over all configured roles ordered by index.
func ListRoles() iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, []byte(reputeconst.RolePrefix), storage.ValuesOnly|storage.DeserializeValues)
}

// GetUserRole returns the best role the user qualifies for: the one with the
// highest threshold not exceeding the user's score. Among roles with equal
// thresholds the one with the higher index wins. Returns nil if the score is
// below every threshold.
func GetUserRole(user interop.Hash160) any {
	checkHash(user, "user")

	ctx := storage.GetReadOnlyContext()
	score := getUserScore(ctx, user).Score

	return resolveRole(ctx, score)
}

// resolveRole relies on storage.Find returning roles in index order.
func resolveRole(ctx storage.Context, score int) any {
	var (
		best  Role
		found bool
	)

	it := storage.Find(ctx, []byte(reputeconst.RolePrefix), storage.ValuesOnly|storage.DeserializeValues)
	for iterator.Next(it) {
		r := iterator.Value(it).(Role)
		if r.Threshold > score {
			continue
		}

		if !found || r.Threshold >= best.Threshold {
			best = r
			found = true
		}
	}

	if !found {
		return nil
	}

	return best
}

// roleKey returns 'role' followed by a single index byte.
func roleKey(index int) []byte {
	key := append([]byte(reputeconst.RolePrefix), []byte{0}...)
	key[len(key)-1] = byte(index)
	return key
}
