// Package tokenmeta defines the wire contract of the Token Metadata
// program: program ids, seed tags, account record enums, instruction
// argument types with their Borsh encoding, and per-operation instruction
// builders with the fixed positional account orders the program expects.
//
// Builders in this package are pure. Account resolution (PDA derivation,
// metadata lookups, holder discovery) happens in the operation packages;
// by the time a builder runs, every slot is either a resolved address or
// absent, and absent optional slots are filled with the program id as a
// non-writable, non-signer sentinel.
package tokenmeta
