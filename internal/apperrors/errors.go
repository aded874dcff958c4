package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrProjectNotFound indicates that a project with the given ID does not exist.
	ErrProjectNotFound = errors.New("project not found")

	// ErrCashFlowNotFound indicates that a cash flow with the given ID does not exist.
	ErrCashFlowNotFound = errors.New("cash flow not found")
)

// Configuration errors represent invalid waterfall setups. The engine rejects
// these at construction, before any period is processed.
var (
	// ErrInvalidTierCount indicates num_tiers is outside 1..5 or exceeds the
	// number of supplied tier configs.
	ErrInvalidTierCount = errors.New("invalid tier count")

	// ErrNonContiguousTiers indicates tier numbers are not unique and
	// contiguous starting at 1.
	ErrNonContiguousTiers = errors.New("tier numbers must be unique and contiguous from 1")

	// ErrMissingHurdle indicates a tier is missing the hurdle required by the
	// selected hurdle method.
	ErrMissingHurdle = errors.New("tier is missing required hurdle")

	// ErrInvalidSplit indicates LP/GP split percentages are negative or sum
	// above 100.
	ErrInvalidSplit = errors.New("invalid LP/GP split percentages")

	// ErrInvalidOwnership indicates lp_ownership is outside (0, 1].
	ErrInvalidOwnership = errors.New("LP ownership must be a fraction in (0, 1]")

	// ErrInvalidHurdleMethod indicates an unrecognized hurdle method.
	ErrInvalidHurdleMethod = errors.New("invalid hurdle method")

	// ErrInvalidReturnOfCapital indicates an unrecognized return-of-capital order.
	ErrInvalidReturnOfCapital = errors.New("invalid return of capital order")

	// ErrDuplicatePeriodID indicates two cash flows share a period ID. The
	// engine treats this as a caller contract violation rather than merging.
	ErrDuplicatePeriodID = errors.New("duplicate cash flow period ID")
)

// Business logic errors represent validation failures or constraint violations.
var (
	// ErrDuplicateEntry indicates that an entity with the same unique constraint already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")
)
