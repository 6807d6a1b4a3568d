package main

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/repute-dao/repute-contract/rpc/repute"
	"github.com/stretchr/testify/require"
)

func TestParseKeyArgs(t *testing.T) {
	voter := util.Uint160{1}
	target := util.Uint160{2}

	k, err := parseKeyArgs([]string{"state"})
	require.NoError(t, err)
	require.Equal(t, repute.Key{Kind: repute.KindState}, k)

	k, err = parseKeyArgs([]string{"role", "255"})
	require.NoError(t, err)
	require.Equal(t, repute.Key{Kind: repute.KindRole, Index: 255}, k)

	k, err = parseKeyArgs([]string{"user-score", target.StringLE()})
	require.NoError(t, err)
	require.Equal(t, repute.Key{Kind: repute.KindUserScore, Target: target}, k)

	k, err = parseKeyArgs([]string{"vote-record", voter.StringLE(), target.StringLE()})
	require.NoError(t, err)
	require.Equal(t, repute.VoteRecordKey(voter, target), k.Bytes())

	for _, args := range [][]string{
		nil,
		{"ballot"},
		{"state", "extra"},
		{"role", "256"},
		{"role"},
		{"user-score", "bad"},
		{"vote-record", voter.StringLE()},
	} {
		_, err = parseKeyArgs(args)
		require.Error(t, err, args)
	}
}

func TestEncodeKey(t *testing.T) {
	key := repute.RoleKey(1)

	s, err := encodeKey(key, encodingHex)
	require.NoError(t, err)
	require.Equal(t, hex.EncodeToString(key), s)

	s, err = encodeKey(key, encodingBase58)
	require.NoError(t, err)
	decoded, err := base58.Decode(s)
	require.NoError(t, err)
	require.True(t, bytes.Equal(key, decoded))

	s, err = encodeKey(key, encodingBase64)
	require.NoError(t, err)
	require.Equal(t, "cm9sZQE=", s)

	_, err = encodeKey(key, "base32")
	require.Error(t, err)
}
