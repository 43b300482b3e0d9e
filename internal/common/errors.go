package common

import "errors"

// Failure categories the HTTP layer maps to distinct responses. The pure
// ledger core never produces any of these; they belong to the storage and
// advisory collaborators.
var (
	// ErrNotFound indicates a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrSchemaNotInitialized indicates the backing database exists but its
	// schema version is missing or stale, and setup must be run.
	ErrSchemaNotInitialized = errors.New("storage schema not initialized")

	// ErrStoreUnavailable indicates a transient storage failure (connection
	// dropped, query timeout).
	ErrStoreUnavailable = errors.New("storage unavailable")

	// ErrAdvisorUnavailable indicates the advisory text service failed; the
	// advisor service converts this into a fallback message before it ever
	// reaches a handler.
	ErrAdvisorUnavailable = errors.New("advisory service unavailable")
)
