package tokenmeta

import (
	"github.com/gagliardetto/solana-go"
	"github.com/near/borsh-go"
)

// Key discriminates the record kinds owned by the program. It is the
// first byte of every program-owned account.
type Key uint8

const (
	KeyUninitialized Key = iota
	KeyEditionV1
	KeyMasterEditionV1
	KeyReservationListV1
	KeyMetadataV1
	KeyReservationListV2
	KeyMasterEditionV2
	KeyEditionMarker
	KeyUseAuthorityRecord
	KeyCollectionAuthorityRecord
	KeyTokenOwnedEscrow
	KeyTokenRecord
	KeyMetadataDelegate
	KeyEditionMarkerV2
)

// TokenStandard classifies an asset. The variant order is part of the
// wire encoding.
type TokenStandard uint8

const (
	NonFungible TokenStandard = iota
	FungibleAsset
	Fungible
	NonFungibleEdition
	ProgrammableNonFungible
)

func (t TokenStandard) String() string {
	switch t {
	case NonFungible:
		return "nonfungible"
	case FungibleAsset:
		return "fungible_asset"
	case Fungible:
		return "fungible"
	case NonFungibleEdition:
		return "nonfungible_edition"
	case ProgrammableNonFungible:
		return "programmable_nonfungible"
	}
	return "unknown"
}

// ParseTokenStandard is the inverse of TokenStandard.String.
func ParseTokenStandard(s string) (TokenStandard, bool) {
	switch s {
	case "nonfungible":
		return NonFungible, true
	case "fungible_asset":
		return FungibleAsset, true
	case "fungible":
		return Fungible, true
	case "nonfungible_edition":
		return NonFungibleEdition, true
	case "programmable_nonfungible":
		return ProgrammableNonFungible, true
	}
	return 0, false
}

// NeedsEdition reports whether operations on an asset of this standard
// carry the edition account. A nil standard (assets predating the field)
// is treated as non-fungible.
func NeedsEdition(standard *TokenStandard) bool {
	if standard == nil {
		return true
	}
	switch *standard {
	case NonFungible, NonFungibleEdition, ProgrammableNonFungible:
		return true
	}
	return false
}

// IsProgrammable reports whether the standard is ProgrammableNonFungible.
func IsProgrammable(standard *TokenStandard) bool {
	return standard != nil && *standard == ProgrammableNonFungible
}

type Creator struct {
	Address  solana.PublicKey
	Verified bool
	Share    uint8
}

// Collection references a verified (or not yet verified) parent mint.
type Collection struct {
	Verified bool
	Key      solana.PublicKey
}

type UseMethod uint8

const (
	UseMethodBurn UseMethod = iota
	UseMethodMultiple
	UseMethodSingle
)

type Uses struct {
	UseMethod UseMethod
	Remaining uint64
	Total     uint64
}

type CollectionDetails struct {
	Enum borsh.Enum `borsh_enum:"true"`
	V1   CollectionDetailsV1
}

type CollectionDetailsV1 struct {
	Size uint64
}

// ProgrammableConfig carries the optional rule set gating transfers of a
// programmable asset.
type ProgrammableConfig struct {
	Enum borsh.Enum `borsh_enum:"true"`
	V1   ProgrammableConfigV1
}

type ProgrammableConfigV1 struct {
	RuleSet *solana.PublicKey
}

// RuleSet returns the configured rule set, or nil.
func (c *ProgrammableConfig) RuleSet() *solana.PublicKey {
	if c == nil {
		return nil
	}
	return c.V1.RuleSet
}

// PrintSupply bounds the number of printable copies of a master edition.
type PrintSupply struct {
	Enum      borsh.Enum `borsh_enum:"true"`
	Zero      struct{}
	Limited   uint64
	Unlimited struct{}
}

func PrintSupplyZero() PrintSupply { return PrintSupply{Enum: 0} }

func PrintSupplyLimited(n uint64) PrintSupply { return PrintSupply{Enum: 1, Limited: n} }

func PrintSupplyUnlimited() PrintSupply { return PrintSupply{Enum: 2} }

// Data is the updatable metadata payload (DataV2 shape without the
// collection and uses fields folded in by newer instructions).
type Data struct {
	Name                 string
	Symbol               string
	URI                  string
	SellerFeeBasisPoints uint16
	Creators             *[]Creator
}

// DataV2 is the legacy-instruction metadata payload.
type DataV2 struct {
	Name                 string
	Symbol               string
	URI                  string
	SellerFeeBasisPoints uint16
	Creators             *[]Creator
	Collection           *Collection
	Uses                 *Uses
}

// AssetData is the full initial state of an asset passed to Create.
type AssetData struct {
	Name                 string
	Symbol               string
	URI                  string
	SellerFeeBasisPoints uint16
	Creators             *[]Creator
	PrimarySaleHappened  bool
	IsMutable            bool
	TokenStandard        TokenStandard
	Collection           *Collection
	Uses                 *Uses
	CollectionDetails    *CollectionDetails
	RuleSet              *solana.PublicKey
}

// PayloadType is a single value inside an authorization payload.
type PayloadType struct {
	Enum        borsh.Enum `borsh_enum:"true"`
	Pubkey      solana.PublicKey
	Seeds       SeedsVec
	MerkleProof ProofInfo
	Number      uint64
}

type SeedsVec struct {
	Seeds [][]byte
}

type ProofInfo struct {
	Proof [][32]uint8
}

type Payload struct {
	Map map[string]PayloadType
}

// AuthorizationData is forwarded opaquely to the auth rules program.
type AuthorizationData struct {
	Payload Payload
}
