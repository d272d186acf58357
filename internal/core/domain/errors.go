package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidConstraint is returned when a version constraint string cannot be parsed.
	ErrInvalidConstraint = zerr.New("invalid version constraint")

	// ErrInvalidCookbookKey is returned when a "name (version)" lock key cannot be parsed.
	ErrInvalidCookbookKey = zerr.New("invalid cookbook key")

	// ErrNotInWorkingSet is returned when a conflict test targets a cookbook that has not been recorded.
	ErrNotInWorkingSet = zerr.New("cookbook not in the working set")

	// ErrDependencyConflict is the sentinel every ConflictError unwraps to.
	ErrDependencyConflict = zerr.New("dependency conflict")

	// ErrInvalidDigest is returned when a content digest is not 40 hexadecimal characters.
	ErrInvalidDigest = zerr.New("invalid content digest")

	// ErrCookbookNotFound is returned when a cookbook directory does not exist.
	ErrCookbookNotFound = zerr.New("cookbook path not found")

	// ErrFileRead is returned when a cookbook file cannot be read while fingerprinting.
	ErrFileRead = zerr.New("failed to read cookbook file")

	// ErrMetadataParseFailed is returned when cookbook metadata cannot be parsed.
	ErrMetadataParseFailed = zerr.New("failed to parse cookbook metadata")

	// ErrLockReadFailed is returned when the lock file cannot be read.
	ErrLockReadFailed = zerr.New("failed to read lock file")

	// ErrLockParseFailed is returned when the lock file cannot be decoded.
	ErrLockParseFailed = zerr.New("failed to parse lock file")

	// ErrLockWriteFailed is returned when the lock file cannot be written.
	ErrLockWriteFailed = zerr.New("failed to write lock file")

	// ErrPolicyReadFailed is returned when the policy file cannot be read.
	ErrPolicyReadFailed = zerr.New("failed to read policy file")

	// ErrPolicyParseFailed is returned when the policy file cannot be parsed.
	ErrPolicyParseFailed = zerr.New("failed to parse policy file")

	// ErrInvalidCookbookSource is returned when a policy cookbook has neither or both of path and cache_key.
	ErrInvalidCookbookSource = zerr.New("cookbook must declare exactly one of path or cache_key")

	// ErrDuplicateCookbook is returned when a policy declares the same cookbook twice.
	ErrDuplicateCookbook = zerr.New("duplicate cookbook in policy")

	// ErrMissingLockedCookbook is returned when a locked cookbook is no longer on disk.
	ErrMissingLockedCookbook = zerr.New("locked cookbook is missing")

	// ErrCookbookNameMismatch is returned when a locked cookbook's metadata declares another name.
	ErrCookbookNameMismatch = zerr.New("locked cookbook has an unexpected name")

	// ErrCachedCookbookModified is returned when a cached (non-local) cookbook's content changed.
	ErrCachedCookbookModified = zerr.New("cached cookbook has been modified")

	// ErrLockFailed is returned when generating the lock fails.
	ErrLockFailed = zerr.New("failed to lock policy")

	// ErrValidationFailed is returned when lock validation fails.
	ErrValidationFailed = zerr.New("lock validation failed")
)
