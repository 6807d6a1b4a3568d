// Package repute contains RPC wrappers and storage key helpers for Repute DAO
// contract.
package repute

import (
	"errors"
	"fmt"
	"math/big"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// ProgramState is a contract-specific repute.ProgramState type used by its methods.
type ProgramState struct {
	Admin          util.Uint160
	TokenMint      util.Uint160
	CooldownPeriod *big.Int
	RoleCount      *big.Int
}

// Role is a contract-specific repute.Role type used by its methods.
type Role struct {
	Name      string
	Threshold *big.Int
	Index     *big.Int
}

// UserScore is a contract-specific repute.UserScore type used by its methods.
type UserScore struct {
	Target      util.Uint160
	Score       *big.Int
	LastUpdated *big.Int
}

// VoteRecord is a contract-specific repute.VoteRecord type used by its methods.
type VoteRecord struct {
	Voter        util.Uint160
	Target       util.Uint160
	LastVoteTime *big.Int
}

// InitializedEvent represents "Initialized" event emitted by the contract.
type InitializedEvent struct {
	Admin          util.Uint160
	TokenMint      util.Uint160
	CooldownPeriod *big.Int
}

// AdminChangedEvent represents "AdminChanged" event emitted by the contract.
type AdminChangedEvent struct {
	Previous util.Uint160
	Admin    util.Uint160
}

// CooldownChangedEvent represents "CooldownChanged" event emitted by the contract.
type CooldownChangedEvent struct {
	Period *big.Int
}

// RoleConfiguredEvent represents "RoleConfigured" event emitted by the contract.
type RoleConfiguredEvent struct {
	Index     *big.Int
	Name      string
	Threshold *big.Int
}

// VoteEvent represents "Vote" event emitted by the contract.
type VoteEvent struct {
	Voter  util.Uint160
	Target util.Uint160
	Delta  *big.Int
	Score  *big.Int
}

// ScoreResetEvent represents "ScoreReset" event emitted by the contract.
type ScoreResetEvent struct {
	Target util.Uint160
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
	CallAndExpandIterator(contract util.Uint160, method string, maxItems int, params ...any) (*result.Invoke, error)
	TerminateSession(sessionID uuid.UUID) error
	TraverseIterator(sessionID uuid.UUID, iterator *result.Iterator, num int) ([]stackitem.Item, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash    util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash  util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// GetState invokes `getState` method of contract.
func (c *ContractReader) GetState() (*ProgramState, error) {
	item, err := unwrap.Item(c.invoker.Call(c.hash, "getState"))
	if err != nil {
		return nil, err
	}

	res := new(ProgramState)
	return res, res.FromStackItem(item)
}

// RoleCount invokes `roleCount` method of contract.
func (c *ContractReader) RoleCount() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "roleCount"))
}

// GetRole invokes `getRole` method of contract. It returns nil role if the
// index is not configured.
func (c *ContractReader) GetRole(index uint8) (*Role, error) {
	return itemToRole(unwrap.Item(c.invoker.Call(c.hash, "getRole", int64(index))))
}

// ListRoles invokes `listRoles` method of contract.
func (c *ContractReader) ListRoles() (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "listRoles"))
}

// ListRolesExpanded is similar to ListRoles (uses the same contract
// method), but can be useful if the server used doesn't support sessions and
// doesn't expand iterators. It creates a script that will get the specified
// number of result items from the iterator right in the VM and return them to
// you. It's only limited by VM stack and GAS available for RPC invocations.
func (c *ContractReader) ListRolesExpanded(_numOfIteratorItems int) ([]*Role, error) {
	items, err := unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "listRoles", _numOfIteratorItems))
	if err != nil {
		return nil, err
	}

	return itemsToRoles(items)
}

// ListAllRoles reads all configured roles through the iterator session
// returned by ListRoles.
func (c *ContractReader) ListAllRoles() ([]*Role, error) {
	sess, iter, err := c.ListRoles()
	if err != nil {
		return nil, err
	}

	// Servers without session support expand iterators themselves.
	if iter.ID == nil {
		return itemsToRoles(iter.Values)
	}

	defer func() { _ = c.invoker.TerminateSession(sess) }()

	var res []*Role
	for {
		items, err := c.invoker.TraverseIterator(sess, &iter, rolesPerTraverse)
		if err != nil {
			return nil, err
		}

		roles, err := itemsToRoles(items)
		if err != nil {
			return nil, err
		}

		res = append(res, roles...)
		if len(items) < rolesPerTraverse {
			return res, nil
		}
	}
}

const rolesPerTraverse = 64

// ScoreOf invokes `scoreOf` method of contract.
func (c *ContractReader) ScoreOf(user util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "scoreOf", user))
}

// GetUserScore invokes `getUserScore` method of contract. It returns nil
// record if nobody voted for the user yet.
func (c *ContractReader) GetUserScore(user util.Uint160) (*UserScore, error) {
	item, err := unwrap.Item(c.invoker.Call(c.hash, "getUserScore", user))
	if err != nil || isNull(item) {
		return nil, err
	}

	res := new(UserScore)
	return res, res.FromStackItem(item)
}

// GetVoteRecord invokes `getVoteRecord` method of contract. It returns nil
// record if the voter has never voted for the target.
func (c *ContractReader) GetVoteRecord(voter util.Uint160, target util.Uint160) (*VoteRecord, error) {
	item, err := unwrap.Item(c.invoker.Call(c.hash, "getVoteRecord", voter, target))
	if err != nil || isNull(item) {
		return nil, err
	}

	res := new(VoteRecord)
	return res, res.FromStackItem(item)
}

// CanVote invokes `canVote` method of contract.
func (c *ContractReader) CanVote(voter util.Uint160, target util.Uint160) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "canVote", voter, target))
}

// GetUserRole invokes `getUserRole` method of contract. It returns nil role
// if the user's score is below every threshold.
func (c *ContractReader) GetUserRole(user util.Uint160) (*Role, error) {
	return itemToRole(unwrap.Item(c.invoker.Call(c.hash, "getUserRole", user)))
}

// Initialize creates a transaction invoking `initialize` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Initialize(admin util.Uint160, tokenMint util.Uint160, cooldownPeriod *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "initialize", admin, tokenMint, cooldownPeriod)
}

// InitializeTransaction creates a transaction invoking `initialize` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) InitializeTransaction(admin util.Uint160, tokenMint util.Uint160, cooldownPeriod *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "initialize", admin, tokenMint, cooldownPeriod)
}

// InitializeUnsigned creates a transaction invoking `initialize` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) InitializeUnsigned(admin util.Uint160, tokenMint util.Uint160, cooldownPeriod *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "initialize", nil, admin, tokenMint, cooldownPeriod)
}

// SetCooldown creates a transaction invoking `setCooldown` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetCooldown(period *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setCooldown", period)
}

// SetCooldownTransaction creates a transaction invoking `setCooldown` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetCooldownTransaction(period *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setCooldown", period)
}

// SetCooldownUnsigned creates a transaction invoking `setCooldown` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SetCooldownUnsigned(period *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setCooldown", nil, period)
}

// SetAdmin creates a transaction invoking `setAdmin` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetAdmin(admin util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setAdmin", admin)
}

// SetAdminTransaction creates a transaction invoking `setAdmin` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetAdminTransaction(admin util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setAdmin", admin)
}

// SetAdminUnsigned creates a transaction invoking `setAdmin` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SetAdminUnsigned(admin util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setAdmin", nil, admin)
}

// ConfigureRole creates a transaction invoking `configureRole` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) ConfigureRole(index uint8, name string, threshold *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "configureRole", int64(index), name, threshold)
}

// ConfigureRoleTransaction creates a transaction invoking `configureRole` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ConfigureRoleTransaction(index uint8, name string, threshold *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "configureRole", int64(index), name, threshold)
}

// ConfigureRoleUnsigned creates a transaction invoking `configureRole` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ConfigureRoleUnsigned(index uint8, name string, threshold *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "configureRole", nil, int64(index), name, threshold)
}

// Upvote creates a transaction invoking `upvote` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Upvote(voter util.Uint160, target util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "upvote", voter, target)
}

// UpvoteTransaction creates a transaction invoking `upvote` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpvoteTransaction(voter util.Uint160, target util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "upvote", voter, target)
}

// UpvoteUnsigned creates a transaction invoking `upvote` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpvoteUnsigned(voter util.Uint160, target util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "upvote", nil, voter, target)
}

// Downvote creates a transaction invoking `downvote` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Downvote(voter util.Uint160, target util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "downvote", voter, target)
}

// DownvoteTransaction creates a transaction invoking `downvote` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) DownvoteTransaction(voter util.Uint160, target util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "downvote", voter, target)
}

// DownvoteUnsigned creates a transaction invoking `downvote` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) DownvoteUnsigned(voter util.Uint160, target util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "downvote", nil, voter, target)
}

// BatchVote creates a transaction invoking `batchVote` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) BatchVote(voter util.Uint160, targets []util.Uint160, up bool) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "batchVote", voter, targets, up)
}

// BatchVoteTransaction creates a transaction invoking `batchVote` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) BatchVoteTransaction(voter util.Uint160, targets []util.Uint160, up bool) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "batchVote", voter, targets, up)
}

// BatchVoteUnsigned creates a transaction invoking `batchVote` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) BatchVoteUnsigned(voter util.Uint160, targets []util.Uint160, up bool) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "batchVote", nil, voter, targets, up)
}

// ResetScores creates a transaction invoking `resetScores` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) ResetScores(target util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "resetScores", target)
}

// ResetScoresTransaction creates a transaction invoking `resetScores` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ResetScoresTransaction(target util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "resetScores", target)
}

// ResetScoresUnsigned creates a transaction invoking `resetScores` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ResetScoresUnsigned(target util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "resetScores", nil, target)
}

// ResetAllScores creates a transaction invoking `resetAllScores` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) ResetAllScores() (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "resetAllScores")
}

// ResetAllScoresTransaction creates a transaction invoking `resetAllScores` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ResetAllScoresTransaction() (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "resetAllScores")
}

// ResetAllScoresUnsigned creates a transaction invoking `resetAllScores` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ResetAllScoresUnsigned() (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "resetAllScores", nil)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(nefFile []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", nefFile, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(nefFile []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", nefFile, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(nefFile []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, nefFile, manifest, data)
}

func isNull(item stackitem.Item) bool {
	_, ok := item.(stackitem.Null)
	return ok
}

func itemToRole(item stackitem.Item, err error) (*Role, error) {
	if err != nil || isNull(item) {
		return nil, err
	}

	res := new(Role)
	return res, res.FromStackItem(item)
}

func itemsToRoles(items []stackitem.Item) ([]*Role, error) {
	res := make([]*Role, len(items))
	for i := range items {
		res[i] = new(Role)
		if err := res[i].FromStackItem(items[i]); err != nil {
			return nil, fmt.Errorf("role #%d: %w", i, err)
		}
	}

	return res, nil
}

func structFields(item stackitem.Item, n int) ([]stackitem.Item, error) {
	if item == nil {
		return nil, errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return nil, errors.New("not an array")
	}
	if len(arr) != n {
		return nil, errors.New("wrong number of structure elements")
	}
	return arr, nil
}

func itemToUint160(item stackitem.Item) (util.Uint160, error) {
	b, err := item.TryBytes()
	if err != nil {
		return util.Uint160{}, err
	}
	return util.Uint160DecodeBytesBE(b)
}

func itemToUTF8String(item stackitem.Item) (string, error) {
	b, err := item.TryBytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", errors.New("not a UTF-8 string")
	}
	return string(b), nil
}

// FromStackItem retrieves fields of ProgramState from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *ProgramState) FromStackItem(item stackitem.Item) error {
	arr, err := structFields(item, 4)
	if err != nil {
		return err
	}

	res.Admin, err = itemToUint160(arr[0])
	if err != nil {
		return fmt.Errorf("field Admin: %w", err)
	}

	res.TokenMint, err = itemToUint160(arr[1])
	if err != nil {
		return fmt.Errorf("field TokenMint: %w", err)
	}

	res.CooldownPeriod, err = arr[2].TryInteger()
	if err != nil {
		return fmt.Errorf("field CooldownPeriod: %w", err)
	}

	res.RoleCount, err = arr[3].TryInteger()
	if err != nil {
		return fmt.Errorf("field RoleCount: %w", err)
	}

	return nil
}

// FromStackItem retrieves fields of Role from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *Role) FromStackItem(item stackitem.Item) error {
	arr, err := structFields(item, 3)
	if err != nil {
		return err
	}

	res.Name, err = itemToUTF8String(arr[0])
	if err != nil {
		return fmt.Errorf("field Name: %w", err)
	}

	res.Threshold, err = arr[1].TryInteger()
	if err != nil {
		return fmt.Errorf("field Threshold: %w", err)
	}

	res.Index, err = arr[2].TryInteger()
	if err != nil {
		return fmt.Errorf("field Index: %w", err)
	}

	return nil
}

// FromStackItem retrieves fields of UserScore from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *UserScore) FromStackItem(item stackitem.Item) error {
	arr, err := structFields(item, 3)
	if err != nil {
		return err
	}

	res.Target, err = itemToUint160(arr[0])
	if err != nil {
		return fmt.Errorf("field Target: %w", err)
	}

	res.Score, err = arr[1].TryInteger()
	if err != nil {
		return fmt.Errorf("field Score: %w", err)
	}

	res.LastUpdated, err = arr[2].TryInteger()
	if err != nil {
		return fmt.Errorf("field LastUpdated: %w", err)
	}

	return nil
}

// FromStackItem retrieves fields of VoteRecord from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *VoteRecord) FromStackItem(item stackitem.Item) error {
	arr, err := structFields(item, 3)
	if err != nil {
		return err
	}

	res.Voter, err = itemToUint160(arr[0])
	if err != nil {
		return fmt.Errorf("field Voter: %w", err)
	}

	res.Target, err = itemToUint160(arr[1])
	if err != nil {
		return fmt.Errorf("field Target: %w", err)
	}

	res.LastVoteTime, err = arr[2].TryInteger()
	if err != nil {
		return fmt.Errorf("field LastVoteTime: %w", err)
	}

	return nil
}

// eventsFromApplicationLog calls add for each event with the given name
// emitted in the provided [result.ApplicationLog].
func eventsFromApplicationLog(log *result.ApplicationLog, name string, add func(*stackitem.Array) error) error {
	if log == nil {
		return errors.New("nil application log")
	}

	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != name {
				continue
			}
			if err := add(e.Item); err != nil {
				return fmt.Errorf("failed to deserialize %sEvent from stackitem (execution #%d, event #%d): %w", name, i, j, err)
			}
		}
	}

	return nil
}

// InitializedEventsFromApplicationLog retrieves a set of all emitted events
// with "Initialized" name from the provided [result.ApplicationLog].
func InitializedEventsFromApplicationLog(log *result.ApplicationLog) ([]*InitializedEvent, error) {
	var res []*InitializedEvent
	err := eventsFromApplicationLog(log, "Initialized", func(item *stackitem.Array) error {
		e := new(InitializedEvent)
		res = append(res, e)
		return e.FromStackItem(item)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to InitializedEvent or
// returns an error if it's not possible to do to so.
func (e *InitializedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, err := structFields(item, 3)
	if err != nil {
		return err
	}

	e.Admin, err = itemToUint160(arr[0])
	if err != nil {
		return fmt.Errorf("field Admin: %w", err)
	}

	e.TokenMint, err = itemToUint160(arr[1])
	if err != nil {
		return fmt.Errorf("field TokenMint: %w", err)
	}

	e.CooldownPeriod, err = arr[2].TryInteger()
	if err != nil {
		return fmt.Errorf("field CooldownPeriod: %w", err)
	}

	return nil
}

// AdminChangedEventsFromApplicationLog retrieves a set of all emitted events
// with "AdminChanged" name from the provided [result.ApplicationLog].
func AdminChangedEventsFromApplicationLog(log *result.ApplicationLog) ([]*AdminChangedEvent, error) {
	var res []*AdminChangedEvent
	err := eventsFromApplicationLog(log, "AdminChanged", func(item *stackitem.Array) error {
		e := new(AdminChangedEvent)
		res = append(res, e)
		return e.FromStackItem(item)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to AdminChangedEvent or
// returns an error if it's not possible to do to so.
func (e *AdminChangedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, err := structFields(item, 2)
	if err != nil {
		return err
	}

	e.Previous, err = itemToUint160(arr[0])
	if err != nil {
		return fmt.Errorf("field Previous: %w", err)
	}

	e.Admin, err = itemToUint160(arr[1])
	if err != nil {
		return fmt.Errorf("field Admin: %w", err)
	}

	return nil
}

// CooldownChangedEventsFromApplicationLog retrieves a set of all emitted events
// with "CooldownChanged" name from the provided [result.ApplicationLog].
func CooldownChangedEventsFromApplicationLog(log *result.ApplicationLog) ([]*CooldownChangedEvent, error) {
	var res []*CooldownChangedEvent
	err := eventsFromApplicationLog(log, "CooldownChanged", func(item *stackitem.Array) error {
		e := new(CooldownChangedEvent)
		res = append(res, e)
		return e.FromStackItem(item)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to CooldownChangedEvent or
// returns an error if it's not possible to do to so.
func (e *CooldownChangedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, err := structFields(item, 1)
	if err != nil {
		return err
	}

	e.Period, err = arr[0].TryInteger()
	if err != nil {
		return fmt.Errorf("field Period: %w", err)
	}

	return nil
}

// RoleConfiguredEventsFromApplicationLog retrieves a set of all emitted events
// with "RoleConfigured" name from the provided [result.ApplicationLog].
func RoleConfiguredEventsFromApplicationLog(log *result.ApplicationLog) ([]*RoleConfiguredEvent, error) {
	var res []*RoleConfiguredEvent
	err := eventsFromApplicationLog(log, "RoleConfigured", func(item *stackitem.Array) error {
		e := new(RoleConfiguredEvent)
		res = append(res, e)
		return e.FromStackItem(item)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to RoleConfiguredEvent or
// returns an error if it's not possible to do to so.
func (e *RoleConfiguredEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, err := structFields(item, 3)
	if err != nil {
		return err
	}

	e.Index, err = arr[0].TryInteger()
	if err != nil {
		return fmt.Errorf("field Index: %w", err)
	}

	e.Name, err = itemToUTF8String(arr[1])
	if err != nil {
		return fmt.Errorf("field Name: %w", err)
	}

	e.Threshold, err = arr[2].TryInteger()
	if err != nil {
		return fmt.Errorf("field Threshold: %w", err)
	}

	return nil
}

// VoteEventsFromApplicationLog retrieves a set of all emitted events
// with "Vote" name from the provided [result.ApplicationLog].
func VoteEventsFromApplicationLog(log *result.ApplicationLog) ([]*VoteEvent, error) {
	var res []*VoteEvent
	err := eventsFromApplicationLog(log, "Vote", func(item *stackitem.Array) error {
		e := new(VoteEvent)
		res = append(res, e)
		return e.FromStackItem(item)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to VoteEvent or
// returns an error if it's not possible to do to so.
func (e *VoteEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, err := structFields(item, 4)
	if err != nil {
		return err
	}

	e.Voter, err = itemToUint160(arr[0])
	if err != nil {
		return fmt.Errorf("field Voter: %w", err)
	}

	e.Target, err = itemToUint160(arr[1])
	if err != nil {
		return fmt.Errorf("field Target: %w", err)
	}

	e.Delta, err = arr[2].TryInteger()
	if err != nil {
		return fmt.Errorf("field Delta: %w", err)
	}

	e.Score, err = arr[3].TryInteger()
	if err != nil {
		return fmt.Errorf("field Score: %w", err)
	}

	return nil
}

// ScoreResetEventsFromApplicationLog retrieves a set of all emitted events
// with "ScoreReset" name from the provided [result.ApplicationLog].
func ScoreResetEventsFromApplicationLog(log *result.ApplicationLog) ([]*ScoreResetEvent, error) {
	var res []*ScoreResetEvent
	err := eventsFromApplicationLog(log, "ScoreReset", func(item *stackitem.Array) error {
		e := new(ScoreResetEvent)
		res = append(res, e)
		return e.FromStackItem(item)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ScoreResetEvent or
// returns an error if it's not possible to do to so.
func (e *ScoreResetEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, err := structFields(item, 1)
	if err != nil {
		return err
	}

	e.Target, err = itemToUint160(arr[0])
	if err != nil {
		return fmt.Errorf("field Target: %w", err)
	}

	return nil
}
