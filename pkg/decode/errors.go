package decode

import "errors"

var (
	// ErrMissingAccount marks an account that does not exist on chain.
	ErrMissingAccount = errors.New("account not found")
	// ErrTransport marks an RPC failure; the cause is wrapped.
	ErrTransport = errors.New("rpc transport failure")
	// ErrDecodeFailed marks account data that does not unpack into the
	// expected record.
	ErrDecodeFailed = errors.New("account data does not decode")
	// ErrPubkeyParse marks an address input that is not a valid public
	// key.
	ErrPubkeyParse = errors.New("invalid public key")
	// ErrRuleSetRevisionUnavailable marks a rule set revision index that
	// the revision map does not contain.
	ErrRuleSetRevisionUnavailable = errors.New("rule set revision unavailable")
	// ErrNumericalOverflow marks an on-chain offset that does not fit
	// the host integer it is used as.
	ErrNumericalOverflow = errors.New("numerical overflow")
)
