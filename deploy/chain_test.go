package deploy

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/fee"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/io"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/callflag"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/trigger"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// testChain serves the RPC subset used by Deploy straight from the neotest
// chain. Every sent transaction is persisted in a new block immediately.
type testChain struct {
	t testing.TB
	e *neotest.Executor
}

var errUnsupported = errors.New("not supported by test chain")

func (x testChain) GetContractStateByHash(h util.Uint160) (*state.Contract, error) {
	cs := x.e.Chain.GetContractState(h)
	if cs == nil {
		return nil, errors.New("Unknown contract")
	}
	return cs, nil
}

func (x testChain) InvokeFunction(contract util.Uint160, operation string, params []smartcontract.Parameter, signers []transaction.Signer) (*result.Invoke, error) {
	args := make([]any, len(params))
	for i := range params {
		item, err := params[i].ToStackItem()
		if err != nil {
			return nil, err
		}
		args[i] = item
	}

	script, err := smartcontract.CreateCallScript(contract, operation, args...)
	if err != nil {
		return nil, err
	}

	return x.InvokeScript(script, signers)
}

func (x testChain) InvokeScript(script []byte, signers []transaction.Signer) (*result.Invoke, error) {
	tx := transaction.New(script, 0)
	tx.Signers = signers
	tx.ValidUntilBlock = x.e.Chain.BlockHeight() + 1

	ic, err := x.e.Chain.GetTestVM(trigger.Application, tx, x.e.NewUnsignedBlock(x.t, tx))
	if err != nil {
		return nil, err
	}
	defer ic.Finalize()

	ic.VM.LoadWithFlags(script, callflag.All)

	res := &result.Invoke{Script: script}
	if err = ic.VM.Run(); err != nil {
		res.FaultException = err.Error()
	}

	res.State = ic.VM.State().String()
	res.GasConsumed = ic.VM.GasConsumed()
	res.Stack = ic.VM.Estack().ToArray()

	return res, nil
}

func (x testChain) InvokeContractVerify(util.Uint160, []smartcontract.Parameter, []transaction.Signer, ...transaction.Witness) (*result.Invoke, error) {
	return nil, errUnsupported
}

func (x testChain) TerminateSession(uuid.UUID) (bool, error) {
	return false, errUnsupported
}

func (x testChain) TraverseIterator(uuid.UUID, uuid.UUID, int) ([]stackitem.Item, error) {
	return nil, errUnsupported
}

func (x testChain) CalculateNetworkFee(tx *transaction.Transaction) (int64, error) {
	cp := *tx
	baseFee := x.e.Chain.GetBaseExecFee()
	size := io.GetVarSize(&cp)

	var netFee int64
	for i := range cp.Scripts {
		f, sizeDelta := fee.Calculate(baseFee, cp.Scripts[i].VerificationScript)
		netFee += f
		size += sizeDelta
	}

	return netFee + int64(size)*x.e.Chain.FeePerByte(), nil
}

func (x testChain) GetBlockCount() (uint32, error) {
	return x.e.Chain.BlockHeight() + 1, nil
}

func (x testChain) GetVersion() (*result.Version, error) {
	cfg := x.e.Chain.GetConfig()
	return &result.Version{
		Protocol: result.Protocol{
			Network:                     cfg.Magic,
			MillisecondsPerBlock:        10,
			MaxValidUntilBlockIncrement: cfg.MaxValidUntilBlockIncrement,
			ValidatorsCount:             byte(cfg.GetNumOfCNs(x.e.Chain.BlockHeight())),
		},
	}, nil
}

func (x testChain) SendRawTransaction(tx *transaction.Transaction) (util.Uint256, error) {
	b := x.e.SignBlock(x.e.NewUnsignedBlock(x.t, tx))
	if err := x.e.Chain.AddBlock(b); err != nil {
		return util.Uint256{}, err
	}
	return tx.Hash(), nil
}

func (x testChain) Context() context.Context {
	return context.Background()
}

func (x testChain) GetApplicationLog(h util.Uint256, trig *trigger.Type) (*result.ApplicationLog, error) {
	aers, err := x.e.Chain.GetAppExecResults(h, trigger.All)
	if err != nil {
		return nil, err
	}

	t := trigger.All
	if trig != nil {
		t = *trig
	}

	res := result.NewApplicationLog(h, aers, t)
	return &res, nil
}
