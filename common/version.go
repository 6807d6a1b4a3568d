package common

import "github.com/nspcc-dev/neo-go/pkg/interop/native/std"

// Contract version, must match the VERSION file.
const (
	major = 0
	minor = 1
	patch = 0

	// Oldest version the contract can be updated from. 0.1.0 is the first
	// release, so any deployed version is accepted.
	minUpdMajor = 0
	minUpdMinor = 0
	minUpdPatch = 0

	Version = major*1_000_000 + minor*1_000 + patch

	PrevVersion = minUpdMajor*1_000_000 + minUpdMinor*1_000 + minUpdPatch

	// ErrVersionMismatch is thrown by CheckVersion when the deployed version
	// is older than PrevVersion.
	ErrVersionMismatch = "previous version mismatch"

	// ErrAlreadyUpdated is thrown by CheckVersion on update to the same
	// version.
	ErrAlreadyUpdated = "contract is already of the latest version"
)

// CheckVersion panics if the contract of version from can't be updated to
// the current one.
func CheckVersion(from int) {
	if from < PrevVersion {
		panic(ErrVersionMismatch + ": expected >=" + std.Itoa(PrevVersion, 10))
	}
	if from == Version {
		panic(ErrAlreadyUpdated + ": " + std.Itoa(Version, 10))
	}
}

// AppendVersion appends the current version to update data, so _deploy of
// the new code learns what it is updated from.
func AppendVersion(data any) []any {
	if data == nil {
		return []any{Version}
	}
	return append(data.([]any), Version)
}
