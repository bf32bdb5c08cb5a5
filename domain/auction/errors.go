package auction

import "errors"

var (
	// precondition
	ErrAuctionAlreadyRunning = errors.New("auction already running")
	ErrInvalidTokenAmount    = errors.New("invalid token amount")
	ErrAuctionNotFound       = errors.New("auction not found")
	// temporal
	ErrAuctionNotEnded = errors.New("auction not ended")
	ErrAuctionEnded    = errors.New("auction ended")
	// capacity
	ErrInsufficientTokensAvailable = errors.New("insufficient tokens available")
	// idempotency
	ErrAuctionAlreadyFinalized = errors.New("auction already finalized")

	ErrInvalidParameters   = errors.New("invalid auction parameters")
	ErrParametersNotFound  = errors.New("auction parameters not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
)
