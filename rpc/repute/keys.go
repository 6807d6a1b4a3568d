package repute

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/repute-dao/repute-contract/contracts/repute/reputeconst"
)

// Kind is a type of the contract storage record.
type Kind byte

// Storage record kinds.
const (
	KindState Kind = iota + 1
	KindRole
	KindUserScore
	KindVoteRecord
)

// ErrUnknownKey is returned by ParseKey for keys not produced by the contract.
var ErrUnknownKey = errors.New("unknown storage key")

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindState:
		return "state"
	case KindRole:
		return "role"
	case KindUserScore:
		return "user-score"
	case KindVoteRecord:
		return "vote-record"
	default:
		return fmt.Sprintf("unknown(%d)", byte(k))
	}
}

// Key is a parsed storage key of the contract. Only fields relevant to the
// Kind are set.
type Key struct {
	Kind   Kind
	Index  uint8
	Voter  util.Uint160
	Target util.Uint160
}

// StateKey returns the storage key of the program state.
func StateKey() []byte {
	return []byte(reputeconst.StateKey)
}

// RoleKey returns the storage key of the role with the given index.
func RoleKey(index uint8) []byte {
	return append([]byte(reputeconst.RolePrefix), index)
}

// UserScoreKey returns the storage key of the target's score.
func UserScoreKey(target util.Uint160) []byte {
	return append([]byte(reputeconst.UserScorePrefix), target.BytesBE()...)
}

// VoteRecordKey returns the storage key of the voter's record for the target.
func VoteRecordKey(voter, target util.Uint160) []byte {
	key := make([]byte, 0, len(reputeconst.VoteRecordPrefix)+2*util.Uint160Size)
	key = append(key, reputeconst.VoteRecordPrefix...)
	key = append(key, voter.BytesBE()...)
	return append(key, target.BytesBE()...)
}

// ParseKey decodes the raw storage key of the contract.
func ParseKey(raw []byte) (Key, error) {
	var (
		k   Key
		err error
	)

	switch {
	case bytes.Equal(raw, []byte(reputeconst.StateKey)):
		k.Kind = KindState
	case bytes.HasPrefix(raw, []byte(reputeconst.VoteRecordPrefix)):
		tail := raw[len(reputeconst.VoteRecordPrefix):]
		if len(tail) != 2*util.Uint160Size {
			return Key{}, fmt.Errorf("%w: invalid vote record key length %d", ErrUnknownKey, len(raw))
		}

		k.Kind = KindVoteRecord
		k.Voter, err = util.Uint160DecodeBytesBE(tail[:util.Uint160Size])
		if err == nil {
			k.Target, err = util.Uint160DecodeBytesBE(tail[util.Uint160Size:])
		}
	case bytes.HasPrefix(raw, []byte(reputeconst.UserScorePrefix)):
		k.Kind = KindUserScore
		k.Target, err = util.Uint160DecodeBytesBE(raw[len(reputeconst.UserScorePrefix):])
	case bytes.HasPrefix(raw, []byte(reputeconst.RolePrefix)):
		if len(raw) != len(reputeconst.RolePrefix)+1 {
			return Key{}, fmt.Errorf("%w: invalid role key length %d", ErrUnknownKey, len(raw))
		}

		k.Kind = KindRole
		k.Index = raw[len(raw)-1]
	default:
		return Key{}, ErrUnknownKey
	}

	if err != nil {
		return Key{}, fmt.Errorf("%w: %s key: %v", ErrUnknownKey, k.Kind, err)
	}

	return k, nil
}

// Bytes returns the raw storage key.
func (k Key) Bytes() []byte {
	switch k.Kind {
	case KindState:
		return StateKey()
	case KindRole:
		return RoleKey(k.Index)
	case KindUserScore:
		return UserScoreKey(k.Target)
	case KindVoteRecord:
		return VoteRecordKey(k.Voter, k.Target)
	default:
		return nil
	}
}
