package main

import (
	"fmt"
	"io"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/repute-dao/repute-contract/rpc/repute"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

func dumpStorage(c *cli.Context) error {
	e, err := newEnvironment(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer e.close()

	h, err := e.contractHash()
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	var n int

	err = e.iterateContractStorage(h, func(key, value []byte) error {
		n++

		line, err := decodeRecord(key, value)
		if err != nil {
			e.log.Warn("undecodable storage record", zap.Binary("key", key), zap.Error(err))
			return nil
		}

		_, err = io.WriteString(c.App.Writer, line+"\n")
		return err
	})
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	e.log.Info("contract storage dumped", zap.Int("records", n))

	return nil
}

// iterateContractStorage iterates over all storage items of the Neo smart
// contract referenced by given address and passes them into f.
// iterateContractStorage breaks on any f's error and returns it.
func (e *environment) iterateContractStorage(contract util.Uint160, f func(key, value []byte) error) error {
	nLatestBlock, err := e.rpc.GetBlockCount()
	if err != nil {
		return fmt.Errorf("get number of the latest block: %w", err)
	}

	stateRoot, err := e.rpc.GetStateRootByHeight(nLatestBlock - 1)
	if err != nil {
		return fmt.Errorf("get state root at penult block #%d: %w", nLatestBlock-1, err)
	}

	var start []byte

	for {
		res, err := e.rpc.FindStates(stateRoot.Root, contract, nil, start, nil)
		if err != nil {
			return fmt.Errorf("get historical storage items of the requested contract at state root '%s': %w", stateRoot.Root, err)
		}

		for i := range res.Results {
			err = f(res.Results[i].Key, res.Results[i].Value)
			if err != nil {
				return err
			}
		}

		if !res.Truncated || len(res.Results) == 0 {
			return nil
		}

		start = res.Results[len(res.Results)-1].Key
	}
}

// decodeRecord returns human-readable representation of the storage record.
func decodeRecord(key, value []byte) (string, error) {
	k, err := repute.ParseKey(key)
	if err != nil {
		return "", err
	}

	item, err := stackitem.Deserialize(value)
	if err != nil {
		return "", fmt.Errorf("deserialize %s value: %w", k.Kind, err)
	}

	switch k.Kind {
	case repute.KindState:
		var st repute.ProgramState
		if err = st.FromStackItem(item); err != nil {
			return "", err
		}
		return fmt.Sprintf("state admin=%s token=%s cooldown=%s roles=%s",
			address.Uint160ToString(st.Admin), st.TokenMint.StringLE(), st.CooldownPeriod, st.RoleCount), nil
	case repute.KindRole:
		var r repute.Role
		if err = r.FromStackItem(item); err != nil {
			return "", err
		}
		return "role " + formatRole(&r), nil
	case repute.KindUserScore:
		var s repute.UserScore
		if err = s.FromStackItem(item); err != nil {
			return "", err
		}
		return fmt.Sprintf("user-score %s score=%s updated=%s",
			address.Uint160ToString(s.Target), s.Score, formatTimestamp(s.LastUpdated)), nil
	default:
		var vr repute.VoteRecord
		if err = vr.FromStackItem(item); err != nil {
			return "", err
		}
		return fmt.Sprintf("vote-record %s -> %s at %s",
			address.Uint160ToString(vr.Voter), address.Uint160ToString(vr.Target), formatTimestamp(vr.LastVoteTime)), nil
	}
}
