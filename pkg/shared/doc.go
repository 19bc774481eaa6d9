// Package shared provides common utilities used across the SDK. It
// includes cluster normalization, RPC client construction, operator
// environment variable loading, and keypair parsing helpers.
//
// This package is typically used internally by other SDK packages but is
// also available for direct use when building custom integrations.
//
// # Environment Variables
//
// The shared package supports loading operator credentials from
// environment variables or .env files: SOLANA_CLUSTER selects the
// cluster, SOLANA_RPC_URL overrides the endpoint, and SOLANA_KEYPAIR
// carries the signing key as base58 or a JSON byte array.
package shared
