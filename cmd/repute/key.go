package main

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/repute-dao/repute-contract/rpc/repute"
	"github.com/urfave/cli"
)

// Storage key output encodings.
const (
	encodingHex    = "hex"
	encodingBase58 = "base58"
	encodingBase64 = "base64"
)

func keyCommand() cli.Command {
	return cli.Command{
		Name:      "key",
		Usage:     "Derive storage key of the contract record",
		ArgsUsage: "state | role <index> | user-score <target> | vote-record <voter> <target>",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "encoding, e",
				Usage: "Output encoding: hex, base58 or base64",
				Value: encodingHex,
			},
		},
		Action: printKey,
	}
}

func printKey(c *cli.Context) error {
	k, err := parseKeyArgs(c.Args())
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	s, err := encodeKey(k.Bytes(), c.String("encoding"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	fmt.Fprintln(c.App.Writer, s)

	return nil
}

func parseKeyArgs(args []string) (repute.Key, error) {
	var (
		k   repute.Key
		err error
	)

	if len(args) == 0 {
		return k, errors.New("missing record kind")
	}

	argc := map[string]int{
		repute.KindState.String():      1,
		repute.KindRole.String():       2,
		repute.KindUserScore.String():  2,
		repute.KindVoteRecord.String(): 3,
	}

	n, ok := argc[args[0]]
	if !ok {
		return k, fmt.Errorf("unknown record kind %q", args[0])
	}
	if len(args) != n {
		return k, fmt.Errorf("%s key expects %d arguments", args[0], n-1)
	}

	switch args[0] {
	case repute.KindState.String():
		k.Kind = repute.KindState
	case repute.KindRole.String():
		k.Kind = repute.KindRole
		k.Index, err = parseRoleIndex(args[1])
	case repute.KindUserScore.String():
		k.Kind = repute.KindUserScore
		k.Target, err = parseHash160(args[1])
	case repute.KindVoteRecord.String():
		k.Kind = repute.KindVoteRecord
		k.Voter, err = parseHash160(args[1])
		if err == nil {
			k.Target, err = parseHash160(args[2])
		}
	}

	if err != nil {
		return repute.Key{}, err
	}

	return k, nil
}

func encodeKey(key []byte, encoding string) (string, error) {
	switch encoding {
	case encodingHex:
		return hex.EncodeToString(key), nil
	case encodingBase58:
		return base58.Encode(key), nil
	case encodingBase64:
		return base64.StdEncoding.EncodeToString(key), nil
	default:
		return "", fmt.Errorf("unsupported encoding %q", encoding)
	}
}

