package main

import (
	"context"
	"fmt"
	"math/big"
	"strconv"

	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/repute-dao/repute-contract/contracts/repute/reputeconst"
	"github.com/repute-dao/repute-contract/deploy"
	"github.com/repute-dao/repute-contract/internal/build"
	"github.com/repute-dao/repute-contract/rpc/repute"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

func deployCommand() cli.Command {
	return cli.Command{
		Name:  "deploy",
		Usage: "Compile the contract, deploy it, initialize the program and configure roles from the config",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "sources",
				Usage: "Directory with the contract sources (overrides config)",
			},
			cli.StringFlag{
				Name:  "token",
				Usage: "NEP-17 contract, holders of which may vote (overrides config)",
			},
		},
		Action: deployContract,
	}
}

func deployContract(c *cli.Context) error {
	e, err := newEnvironment(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer e.close()

	dc := e.cfg.Deploy
	if v := c.String("sources"); v != "" {
		dc.Sources = v
	}
	if v := c.String("token"); v != "" {
		dc.Token = v
	}

	prm, err := deployPrm(dc)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	e.log.Info("compiling contract...", zap.String("sources", dc.Sources))

	ctr, err := build.Compile(dc.Sources)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	accs, err := e.accounts("")
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	prm.Logger = e.log
	prm.Blockchain = e.rpc
	prm.LocalAccount = accs[0]
	prm.NEF = *ctr.NEF
	prm.Manifest = *ctr.Manifest

	addr, err := deploy.Deploy(context.Background(), prm)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	fmt.Fprintf(c.App.Writer, "contract: %s\n", addr.StringLE())

	return nil
}

func deployPrm(dc DeployConfig) (deploy.Prm, error) {
	var (
		prm deploy.Prm
		err error
	)

	prm.TokenMint, err = parseHash160(dc.Token)
	if err != nil {
		return prm, fmt.Errorf("token: %w", err)
	}

	if dc.Admin != "" {
		prm.Admin, err = parseHash160(dc.Admin)
		if err != nil {
			return prm, fmt.Errorf("admin: %w", err)
		}
	}

	prm.CooldownPeriod = dc.Cooldown

	prm.Roles = make([]deploy.Role, len(dc.Roles))
	for i, r := range dc.Roles {
		prm.Roles[i] = deploy.Role{
			Index:     r.Index,
			Name:      r.Name,
			Threshold: r.Threshold,
		}
	}

	return prm, nil
}

// withWriter runs f with the contract wrapper signing with the configured
// account.
func withWriter(c *cli.Context, f func(w *repute.Contract, wait waitFunc, signer util.Uint160) error) error {
	e, err := newEnvironment(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer e.close()

	w, act, acc, err := e.writer()
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	err = f(w, e.waiter(act), acc.ScriptHash())
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

// withReader runs f with the read-only contract wrapper.
func withReader(c *cli.Context, f func(r *repute.ContractReader) error) error {
	e, err := newEnvironment(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer e.close()

	r, err := e.reader()
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	err = f(r)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func initProgram(c *cli.Context) error {
	if c.NArg() < 1 || c.NArg() > 2 {
		return cli.NewExitError("expected token and optional cooldown period", 1)
	}

	token, err := parseHash160(c.Args().Get(0))
	if err != nil {
		return cli.NewExitError(fmt.Errorf("token: %w", err), 1)
	}

	var cooldown uint64
	if c.NArg() == 2 {
		cooldown, err = strconv.ParseUint(c.Args().Get(1), 10, 32)
		if err != nil {
			return cli.NewExitError(fmt.Errorf("invalid cooldown period: %w", err), 1)
		}
	}

	return withWriter(c, func(w *repute.Contract, wait waitFunc, signer util.Uint160) error {
		return wait(w.Initialize(signer, token, new(big.Int).SetUint64(cooldown)))
	})
}

func configureRole(c *cli.Context) error {
	if c.NArg() != 3 {
		return cli.NewExitError("expected index, name and threshold", 1)
	}

	index, err := parseRoleIndex(c.Args().Get(0))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	name := c.Args().Get(1)
	if len(name) == 0 || len(name) > reputeconst.MaxRoleNameLength {
		return cli.NewExitError(fmt.Sprintf("role name must be 1 to %d bytes long", reputeconst.MaxRoleNameLength), 1)
	}

	threshold, err := strconv.ParseInt(c.Args().Get(2), 10, 64)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("invalid threshold: %w", err), 1)
	}

	return withWriter(c, func(w *repute.Contract, wait waitFunc, _ util.Uint160) error {
		return wait(w.ConfigureRole(index, name, big.NewInt(threshold)))
	})
}

func setCooldown(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.NewExitError("expected cooldown period in seconds", 1)
	}

	period, err := strconv.ParseUint(c.Args().Get(0), 10, 32)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("invalid cooldown period: %w", err), 1)
	}

	return withWriter(c, func(w *repute.Contract, wait waitFunc, _ util.Uint160) error {
		return wait(w.SetCooldown(new(big.Int).SetUint64(period)))
	})
}

func setAdmin(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.NewExitError("expected new admin", 1)
	}

	e, err := newEnvironment(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer e.close()

	h, err := e.contractHash()
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	// Both admins witness the transaction.
	accs, err := e.accounts("", c.Args().Get(0))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	act, err := e.newActor(accs...)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	err = e.waiter(act)(repute.New(act, h).SetAdmin(accs[1].ScriptHash()))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func voteAction(up bool) func(c *cli.Context) error {
	return func(c *cli.Context) error {
		if c.NArg() == 0 {
			return cli.NewExitError("expected at least one target", 1)
		}

		targets := make([]util.Uint160, c.NArg())
		for i, s := range c.Args() {
			h, err := parseHash160(s)
			if err != nil {
				return cli.NewExitError(fmt.Errorf("target #%d: %w", i, err), 1)
			}
			targets[i] = h
		}

		return withWriter(c, func(w *repute.Contract, wait waitFunc, voter util.Uint160) error {
			switch {
			case len(targets) > 1:
				return wait(w.BatchVote(voter, targets, up))
			case up:
				return wait(w.Upvote(voter, targets[0]))
			default:
				return wait(w.Downvote(voter, targets[0]))
			}
		})
	}
}

func resetScore(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.NewExitError("expected target", 1)
	}

	target, err := parseHash160(c.Args().Get(0))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	return withWriter(c, func(w *repute.Contract, wait waitFunc, _ util.Uint160) error {
		return wait(w.ResetScores(target))
	})
}

func resetAllScores(c *cli.Context) error {
	return withWriter(c, func(w *repute.Contract, wait waitFunc, _ util.Uint160) error {
		return wait(w.ResetAllScores())
	})
}

func printScore(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.NewExitError("expected user", 1)
	}

	user, err := parseHash160(c.Args().Get(0))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	return withReader(c, func(r *repute.ContractReader) error {
		s, err := r.GetUserScore(user)
		if err != nil {
			return fmt.Errorf("get user score: %w", err)
		}

		role, err := r.GetUserRole(user)
		if err != nil {
			return fmt.Errorf("get user role: %w", err)
		}

		if s == nil {
			fmt.Fprintln(c.App.Writer, "score: 0")
		} else {
			fmt.Fprintf(c.App.Writer, "score: %s\nupdated: %s\n", s.Score, formatTimestamp(s.LastUpdated))
		}

		fmt.Fprintf(c.App.Writer, "role: %s\n", formatRole(role))

		return nil
	})
}

func printRole(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.NewExitError("expected role index", 1)
	}

	index, err := parseRoleIndex(c.Args().Get(0))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	return withReader(c, func(r *repute.ContractReader) error {
		role, err := r.GetRole(index)
		if err != nil {
			return fmt.Errorf("get role: %w", err)
		}

		fmt.Fprintln(c.App.Writer, formatRole(role))

		return nil
	})
}

func printRoles(c *cli.Context) error {
	return withReader(c, func(r *repute.ContractReader) error {
		roles, err := r.ListAllRoles()
		if err != nil {
			return fmt.Errorf("list roles: %w", err)
		}

		for i := range roles {
			fmt.Fprintln(c.App.Writer, formatRole(roles[i]))
		}

		return nil
	})
}

func printState(c *cli.Context) error {
	return withReader(c, func(r *repute.ContractReader) error {
		st, err := r.GetState()
		if err != nil {
			return fmt.Errorf("get program state: %w", err)
		}

		fmt.Fprint(c.App.Writer, formatState(st))

		return nil
	})
}

func parseRoleIndex(s string) (uint8, error) {
	index, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid role index: %w", err)
	}
	return uint8(index), nil
}
