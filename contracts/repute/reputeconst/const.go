/*
Package reputeconst holds values shared by the Repute contract and its
off-chain clients: storage namespace tags, error messages and bounds.
*/
package reputeconst

// Storage namespace tags. Record keys are built as tag followed by raw key
// fields, see rpc/repute for the off-chain derivation.
const (
	// StateKey addresses the ProgramState singleton.
	StateKey = "state"
	// RolePrefix is followed by a single byte role index.
	RolePrefix = "role"
	// UserScorePrefix is followed by the 20-byte target script hash.
	UserScorePrefix = "user-score"
	// VoteRecordPrefix is followed by voter and target script hashes.
	VoteRecordPrefix = "vote-record"
)

// Error messages thrown by the contract. Every exception text starts with one
// of them, so clients can match on prefix.
const (
	// ErrUnauthorized is thrown when the caller lacks admin capability or the
	// voter did not sign the transaction.
	ErrUnauthorized = "unauthorized"
	// ErrCooldownActive is thrown on a vote before the cooldown has elapsed.
	ErrCooldownActive = "cooldown active"
	// ErrNoTokens is thrown when the voter holds no gating tokens.
	ErrNoTokens = "no tokens"
	// ErrInvalidInput is thrown on malformed parameters.
	ErrInvalidInput = "invalid input"
	// ErrAlreadyInitialized is thrown on repeated bootstrap.
	ErrAlreadyInitialized = "already initialized"
	// ErrNotInitialized is thrown when the program state is missing.
	ErrNotInitialized = "not initialized"
)

// Values constraints.
const (
	// MaxRoleIndex is the largest role index.
	MaxRoleIndex = 255
	// MaxRoleCount is the number of distinct roles, it fits a byte.
	MaxRoleCount = 255
	// MaxRoleNameLength is the capacity of the role name in bytes.
	MaxRoleNameLength = 32
	// MinThreshold and MaxThreshold bound role thresholds to int64.
	MinThreshold = -1 << 63
	MaxThreshold = 1<<63 - 1
	// MaxBatchSize limits the number of targets of a single batch vote.
	MaxBatchSize = 16
	// DefaultCooldownPeriod is used when bootstrap receives zero period, in
	// seconds.
	DefaultCooldownPeriod = 24 * 60 * 60
)

// Vote deltas.
const (
	UpvoteDelta   = 1
	DownvoteDelta = -1
)
