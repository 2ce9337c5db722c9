package apperrors

import "errors"

// Domain entity errors represent missing or conflicting entities in the
// ledger. These errors indicate that a requested record does not exist or
// already exists.
var (
	// ErrItemNotFound indicates that no inventory item carries the given id.
	ErrItemNotFound = errors.New("item not found")

	// ErrDuplicateItem indicates that an item with the same deterministic id
	// (purchase time + wear value) is already present in the active inventory.
	ErrDuplicateItem = errors.New("duplicate inventory item")

	// ErrMappingNotFound indicates that a price-catalog mapping does not exist.
	ErrMappingNotFound = errors.New("item mapping not found")

	// ErrSnapshotNotFound indicates that no analytics snapshot has been
	// recorded yet.
	ErrSnapshotNotFound = errors.New("analytics snapshot not found")
)

// Business logic errors represent validation failures or lifecycle
// constraint violations. These errors indicate that an operation cannot be
// completed due to the ledger's rules.
var (
	// ErrInvalidItemState indicates that a sale was attempted on an item
	// that is not in the holding state.
	ErrInvalidItemState = errors.New("item is not in holding state")

	// ErrNegativeAmount indicates that an amount field has an invalid
	// negative value (fees, prices).
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrUnknownCounter indicates that a counter adjustment referenced a
	// counter name the ledger does not track. This is a configuration
	// mistake in the caller, not user input.
	ErrUnknownCounter = errors.New("unknown counter name")

	// ErrInvalidPeriod indicates an unsupported analytics period type.
	ErrInvalidPeriod = errors.New("invalid period type")

	// ErrInvalidItemID indicates that an id does not match the
	// time-plus-wear inventory id format.
	ErrInvalidItemID = errors.New("invalid item ID format")
)

// Operation failure errors represent system-level failures when reading or
// writing the ledger container. These errors indicate that an operation
// failed, but not due to missing entities or validation issues.
var (
	// ErrPersistence indicates that the underlying storage read or write
	// failed. The in-memory ledger is restored to the last durable state
	// before this is returned.
	ErrPersistence = errors.New("ledger persistence failure")

	ErrFailedToRetrieveInventory = errors.New("failed to retrieve inventory")
	ErrFailedToRetrieveArchive   = errors.New("failed to retrieve sold items")
	ErrFailedToRetrieveStats     = errors.New("failed to retrieve statistics")
	ErrFailedToRetrieveAnalytics = errors.New("failed to retrieve analytics")
	ErrFailedToGetVersionInfo    = errors.New("failed to get version information")
)
