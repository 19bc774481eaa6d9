// The Token Metadata SDK for Go is a client library for the Metaplex
// Token Metadata program on Solana. It assembles instructions, derives
// program addresses, decodes on-chain records and submits transactions
// for the full asset lifecycle: create, mint, transfer, burn, update,
// delegate, revoke, verify and unverify.
//
// # Packages
//
// The SDK is organized by concern:
//
//   - pkg/tokenmeta: program constants, argument types and raw
//     instruction builders
//   - pkg/derive: program derived addresses (metadata, editions,
//     records)
//   - pkg/decode: typed reads of on-chain accounts, including rule sets
//   - pkg/asset: derived-address bundles and the token account locator
//   - pkg/mint, pkg/transfer, pkg/burn, pkg/update, pkg/delegate,
//     pkg/revoke, pkg/verify, pkg/unverify: one package per operation,
//     each resolving the accounts its instruction needs
//   - pkg/transaction: signing, submission with retries, priority fees
//     and compute unit estimation
//   - pkg/snapshot: program account scans (mints by authority or
//     creator, holders by mint)
//   - pkg/check: key=value predicates over metadata records
//   - pkg/shared: cluster endpoints and operator configuration
//
// # Installation
//
//	go get github.com/solanakit/tokenmeta-sdk-go@latest
package tokenmeta_sdk_go
