// Package decode reads token metadata program state off chain. Each
// account kind gets a typed decoder that fetches the account, checks it
// exists and unpacks the Borsh record, plus a FromMint variant that
// derives the address first.
//
// Failures are classified with sentinel errors so callers can branch on
// errors.Is: ErrMissingAccount for absent accounts, ErrTransport for
// RPC failures, ErrDecodeFailed for records that do not unpack.
package decode
