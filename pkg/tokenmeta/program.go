package tokenmeta

import "github.com/gagliardetto/solana-go"

var (
	// ProgramID is the Token Metadata program.
	ProgramID = solana.MustPublicKeyFromBase58("metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s")

	// AuthRulesProgramID is the Token Auth Rules program consulted for
	// programmable assets.
	AuthRulesProgramID = solana.MustPublicKeyFromBase58("auth9SigNpDKz4sJJ1DfCTuZrZNSAgh9sFD3rboVmgg")

	// CandyMachineV2ProgramID is the Candy Machine v2 program.
	CandyMachineV2ProgramID = solana.MustPublicKeyFromBase58("cndy3Z4yapfJBmL3ShUp5exZKqR3z33thTzeNMm2gRZ")
)

// PDA seed tags. ASCII, no terminator.
const (
	SeedMetadata            = "metadata"
	SeedEdition             = "edition"
	SeedTokenRecord         = "token_record"
	SeedCandyMachine        = "candy_machine"
	SeedCollectionAuthority = "collection_authority"
	SeedUseAuthority        = "user"
)

const (
	// MintAccountSize is the byte size of an SPL token mint account.
	MintAccountSize = 82

	// OffsetToCreators is the byte offset of the creators vec inside a
	// metadata account: key (1) + update authority (32) + mint (32) +
	// name (4+32) + symbol (4+10) + uri (4+200) + seller fee (2) +
	// creators option tag (1) + vec length (4).
	OffsetToCreators = 326

	// PubkeyLength is the byte length of an address.
	PubkeyLength = 32

	// TokenAccountSize is the byte size of an SPL token account, used as
	// a data-size filter in holder scans.
	TokenAccountSize = 165

	// EditionMarkerSize is the number of editions tracked per marker.
	EditionMarkerSize = 248
)

// Instruction discriminators: the first byte of instruction data selects
// the program instruction.
const (
	IxUpdateMetadataAccountV2 byte = 15
	IxCreateMasterEditionV3   byte = 17
	IxCreateMetadataAccountV3 byte = 33
	IxBurn                    byte = 41
	IxCreate                  byte = 42
	IxMint                    byte = 43
	IxDelegate                byte = 44
	IxRevoke                  byte = 45
	IxTransfer                byte = 49
	IxUpdate                  byte = 50
	IxVerify                  byte = 52
	IxUnverify                byte = 53
)
