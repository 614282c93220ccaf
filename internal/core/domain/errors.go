package domain

import "errors"

// Sentinel errors for every failure kind the engine surfaces. Callers
// distinguish kinds with errors.Is so a client can tell "top up and
// retry" apart from "never retry, unauthorized".
var (
	// ErrUnauthorized: the caller address is not the authorized owner of
	// the entity being mutated.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound: a referenced campaign, content, application, brand or
	// creator does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateID: a caller-chosen id is already taken.
	ErrDuplicateID = errors.New("duplicate id")

	// ErrInvalidState: the operation is illegal in the entity's current
	// status (e.g. reviewing non-pending content, publishing twice).
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidSchedule: the campaign time windows are malformed.
	ErrInvalidSchedule = errors.New("invalid schedule")
	// ErrOutsideWindow: the operation ran outside its valid time window.
	ErrOutsideWindow = errors.New("outside time window")

	// ErrInsufficientFunds: the brand's own account cannot cover the
	// campaign budget at creation time.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInsufficientEscrow: the campaign escrow cannot cover a payment.
	ErrInsufficientEscrow = errors.New("insufficient escrow funds")

	// ErrAlreadyApplied: a creator may hold at most one application per
	// campaign.
	ErrAlreadyApplied = errors.New("already applied")
	// ErrWinnerNotApplicant: winners must be drawn from the applicant set.
	ErrWinnerNotApplicant = errors.New("winner is not an applicant")
	// ErrTooManyWinners: the winner list exceeds the campaign's cap.
	ErrTooManyWinners = errors.New("too many winners")
	// ErrBonusAlreadyPaid: at most one bonus payment per content.
	ErrBonusAlreadyPaid = errors.New("bonus already paid")
	// ErrNotAWinner: bonus payments go only to designated winners.
	ErrNotAWinner = errors.New("not a winner")

	// ErrInvalidInput: malformed or missing request fields.
	ErrInvalidInput = errors.New("invalid input")
)
