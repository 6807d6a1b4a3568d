package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/repute-dao/repute-contract/rpc/repute"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

const passwordEnv = "REPUTE_PASSWORD"

// environment is shared by all commands talking to the network.
type environment struct {
	cfg *Config
	log *zap.Logger
	rpc *rpcclient.Client
}

func newEnvironment(c *cli.Context) (*environment, error) {
	cfg, err := readConfig(c.GlobalString("config"))
	if err != nil {
		return nil, err
	}

	applyGlobalFlags(cfg, c)

	log, err := newLogger(c.GlobalBool("debug"))
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	rpc, err := rpcclient.New(ctx, cfg.RPC, rpcclient.Options{
		DialTimeout:    cfg.Timeout,
		RequestTimeout: cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("RPC client dial: %w", err)
	}

	err = rpc.Init()
	if err != nil {
		rpc.Close()
		return nil, fmt.Errorf("init RPC client: %w", err)
	}

	log.Debug("connected to RPC server", zap.String("endpoint", cfg.RPC))

	return &environment{
		cfg: cfg,
		log: log,
		rpc: rpc,
	}, nil
}

func applyGlobalFlags(cfg *Config, c *cli.Context) {
	if v := c.GlobalString("rpc"); v != "" {
		cfg.RPC = v
	}
	if v := c.GlobalString("wallet"); v != "" {
		cfg.Wallet = v
	}
	if v := c.GlobalString("account"); v != "" {
		cfg.Account = v
	}
	if v := c.GlobalString("contract"); v != "" {
		cfg.Contract = v
	}
	if v := os.Getenv(passwordEnv); v != "" {
		cfg.Password = v
	}
}

func (e *environment) close() {
	e.rpc.Close()
	_ = e.log.Sync()
}

func (e *environment) contractHash() (util.Uint160, error) {
	h, err := parseHash160(e.cfg.Contract)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("contract address: %w", err)
	}
	return h, nil
}

func (e *environment) reader() (*repute.ContractReader, error) {
	h, err := e.contractHash()
	if err != nil {
		return nil, err
	}
	return repute.NewReader(invoker.New(e.rpc, nil), h), nil
}

// accounts opens the wallet and decrypts accounts with the given addresses.
// Empty address selects the configured account or the first one.
func (e *environment) accounts(addrs ...string) ([]*wallet.Account, error) {
	if e.cfg.Wallet == "" {
		return nil, errors.New("missing wallet")
	}

	w, err := wallet.NewWalletFromFile(e.cfg.Wallet)
	if err != nil {
		return nil, fmt.Errorf("open wallet: %w", err)
	}

	if len(w.Accounts) == 0 {
		return nil, errors.New("wallet has no accounts")
	}

	res := make([]*wallet.Account, len(addrs))
	for i, s := range addrs {
		if s == "" {
			s = e.cfg.Account
		}

		acc := w.Accounts[0]
		if s != "" {
			h, err := parseHash160(s)
			if err != nil {
				return nil, fmt.Errorf("account address: %w", err)
			}

			acc = w.GetAccount(h)
			if acc == nil {
				return nil, fmt.Errorf("account %s is missing in the wallet", s)
			}
		}

		err = acc.Decrypt(e.cfg.Password, w.Scrypt)
		if err != nil {
			return nil, fmt.Errorf("decrypt account %s: %w", acc.Address, err)
		}

		res[i] = acc
	}

	return res, nil
}

// newActor creates actor signing transactions with all given accounts, the
// first one pays fees.
func (e *environment) newActor(accs ...*wallet.Account) (*actor.Actor, error) {
	signers := make([]actor.SignerAccount, len(accs))
	for i := range accs {
		signers[i] = actor.SignerAccount{
			Signer: transaction.Signer{
				Account: accs[i].ScriptHash(),
				Scopes:  transaction.CalledByEntry,
			},
			Account: accs[i],
		}
	}

	act, err := actor.New(e.rpc, signers)
	if err != nil {
		return nil, fmt.Errorf("init actor: %w", err)
	}
	return act, nil
}

// writer returns contract wrapper signing with the configured account.
func (e *environment) writer() (*repute.Contract, *actor.Actor, *wallet.Account, error) {
	h, err := e.contractHash()
	if err != nil {
		return nil, nil, nil, err
	}

	accs, err := e.accounts("")
	if err != nil {
		return nil, nil, nil, err
	}

	act, err := e.newActor(accs...)
	if err != nil {
		return nil, nil, nil, err
	}

	return repute.New(act, h), act, accs[0], nil
}

// waitFunc accepts results of transaction sending, waits for the transaction
// to be persisted and checks it succeeded.
type waitFunc func(h util.Uint256, vub uint32, err error) error

func (e *environment) waiter(act *actor.Actor) waitFunc {
	return func(h util.Uint256, vub uint32, err error) error {
		return e.await(act, h, vub, err)
	}
}

func (e *environment) await(act *actor.Actor, h util.Uint256, vub uint32, err error) error {
	if err != nil {
		return fmt.Errorf("send transaction: %w", err)
	}

	e.log.Debug("transaction sent", zap.Stringer("hash", h), zap.Uint32("vub", vub))

	res, err := act.Wait(h, vub, nil)
	if err != nil {
		return fmt.Errorf("wait for transaction %s: %w", h.StringLE(), err)
	}

	if res.VMState != vmstate.Halt {
		return fmt.Errorf("transaction %s failed: %s", h.StringLE(), res.FaultException)
	}

	e.log.Info("transaction persisted", zap.Stringer("hash", h))

	return nil
}
