package tokenmeta

import (
	"github.com/gagliardetto/solana-go"
	"github.com/near/borsh-go"
)

// Toggle fields in Update distinguish "leave untouched" (None) from
// "remove" (Clear) from "replace" (Set). The zero value is None.

type CollectionToggle struct {
	Enum  borsh.Enum `borsh_enum:"true"`
	None  struct{}
	Clear struct{}
	Set   Collection
}

func SetCollection(c Collection) CollectionToggle { return CollectionToggle{Enum: 2, Set: c} }

func ClearCollection() CollectionToggle { return CollectionToggle{Enum: 1} }

type CollectionDetailsToggle struct {
	Enum  borsh.Enum `borsh_enum:"true"`
	None  struct{}
	Clear struct{}
	Set   CollectionDetails
}

func SetCollectionDetails(d CollectionDetails) CollectionDetailsToggle {
	return CollectionDetailsToggle{Enum: 2, Set: d}
}

func ClearCollectionDetails() CollectionDetailsToggle { return CollectionDetailsToggle{Enum: 1} }

type UsesToggle struct {
	Enum  borsh.Enum `borsh_enum:"true"`
	None  struct{}
	Clear struct{}
	Set   Uses
}

func SetUses(u Uses) UsesToggle { return UsesToggle{Enum: 2, Set: u} }

func ClearUses() UsesToggle { return UsesToggle{Enum: 1} }

type RuleSetToggle struct {
	Enum  borsh.Enum `borsh_enum:"true"`
	None  struct{}
	Clear struct{}
	Set   solana.PublicKey
}

func SetRuleSet(rs solana.PublicKey) RuleSetToggle { return RuleSetToggle{Enum: 2, Set: rs} }

func ClearRuleSet() RuleSetToggle { return RuleSetToggle{Enum: 1} }

// CreateArgs is the tagged argument payload of the Create instruction.
type CreateArgs struct {
	Enum borsh.Enum `borsh_enum:"true"`
	V1   CreateArgsV1
}

type CreateArgsV1 struct {
	AssetData   AssetData
	Decimals    *uint8
	PrintSupply *PrintSupply
}

func NewCreateArgsV1(v CreateArgsV1) CreateArgs { return CreateArgs{V1: v} }

// MintArgs is the tagged argument payload of the Mint instruction.
type MintArgs struct {
	Enum borsh.Enum `borsh_enum:"true"`
	V1   MintArgsV1
}

type MintArgsV1 struct {
	Amount            uint64
	AuthorizationData *AuthorizationData
}

func NewMintArgsV1(amount uint64, authData *AuthorizationData) MintArgs {
	return MintArgs{V1: MintArgsV1{Amount: amount, AuthorizationData: authData}}
}

// TransferArgs is the tagged argument payload of the Transfer instruction.
type TransferArgs struct {
	Enum borsh.Enum `borsh_enum:"true"`
	V1   TransferArgsV1
}

type TransferArgsV1 struct {
	Amount            uint64
	AuthorizationData *AuthorizationData
}

func NewTransferArgsV1(amount uint64, authData *AuthorizationData) TransferArgs {
	return TransferArgs{V1: TransferArgsV1{Amount: amount, AuthorizationData: authData}}
}

// BurnArgs is the tagged argument payload of the Burn instruction.
type BurnArgs struct {
	Enum borsh.Enum `borsh_enum:"true"`
	V1   BurnArgsV1
}

type BurnArgsV1 struct {
	Amount uint64
}

func NewBurnArgsV1(amount uint64) BurnArgs {
	return BurnArgs{V1: BurnArgsV1{Amount: amount}}
}

// UpdateArgs is the tagged argument payload of the Update instruction.
// Every field defaults to "leave untouched".
type UpdateArgs struct {
	Enum borsh.Enum `borsh_enum:"true"`
	V1   UpdateArgsV1
}

type UpdateArgsV1 struct {
	NewUpdateAuthority  *solana.PublicKey
	Data                *Data
	PrimarySaleHappened *bool
	IsMutable           *bool
	Collection          CollectionToggle
	CollectionDetails   CollectionDetailsToggle
	Uses                UsesToggle
	RuleSet             RuleSetToggle
	AuthorizationData   *AuthorizationData
}

func NewUpdateArgsV1(v UpdateArgsV1) UpdateArgs { return UpdateArgs{V1: v} }

// VerificationArgs selects what Verify/Unverify attests.
type VerificationArgs struct {
	Enum         borsh.Enum `borsh_enum:"true"`
	CreatorV1    struct{}
	CollectionV1 struct{}
}

func VerifyCreatorV1() VerificationArgs { return VerificationArgs{Enum: 0} }

func VerifyCollectionV1() VerificationArgs { return VerificationArgs{Enum: 1} }

// roleAuthData is the payload shape shared by metadata-delegate variants.
type roleAuthData struct {
	AuthorizationData *AuthorizationData
}

// roleAmountAuthData is the payload shape shared by token-delegate
// variants that thread an amount.
type roleAmountAuthData struct {
	Amount            uint64
	AuthorizationData *AuthorizationData
}

// DelegateArgs is the tagged argument payload of the Delegate
// instruction. The variant order is the wire contract.
type DelegateArgs struct {
	Enum                     borsh.Enum `borsh_enum:"true"`
	CollectionV1             roleAuthData
	SaleV1                   roleAmountAuthData
	TransferV1               roleAmountAuthData
	DataV1                   roleAuthData
	UtilityV1                roleAmountAuthData
	StakingV1                roleAmountAuthData
	StandardV1               struct{ Amount uint64 }
	LockedTransferV1         lockedTransferData
	ProgrammableConfigV1     roleAuthData
	AuthorityItemV1          roleAuthData
	DataItemV1               roleAuthData
	CollectionItemV1         roleAuthData
	ProgrammableConfigItemV1 roleAuthData
	PrintDelegateV1          roleAuthData
}

type lockedTransferData struct {
	Amount            uint64
	LockedAddress     solana.PublicKey
	AuthorizationData *AuthorizationData
}

// RevokeArgs is the tagged argument payload of the Revoke instruction.
// All variants are empty; only the tag is encoded.
type RevokeArgs struct {
	Enum                     borsh.Enum `borsh_enum:"true"`
	CollectionV1             struct{}
	SaleV1                   struct{}
	TransferV1               struct{}
	DataV1                   struct{}
	UtilityV1                struct{}
	StakingV1                struct{}
	StandardV1               struct{}
	LockedTransferV1         struct{}
	ProgrammableConfigV1     struct{}
	MigrationV1              struct{}
	AuthorityItemV1          struct{}
	DataItemV1               struct{}
	CollectionItemV1         struct{}
	ProgrammableConfigItemV1 struct{}
	PrintDelegateV1          struct{}
}

// CreateMetadataAccountArgsV3 feeds the legacy CreateMetadataAccountV3
// instruction.
type CreateMetadataAccountArgsV3 struct {
	Data              DataV2
	IsMutable         bool
	CollectionDetails *CollectionDetails
}

// CreateMasterEditionArgs feeds the legacy CreateMasterEditionV3
// instruction.
type CreateMasterEditionArgs struct {
	MaxSupply *uint64
}

// UpdateMetadataAccountArgsV2 feeds the legacy UpdateMetadataAccountV2
// instruction.
type UpdateMetadataAccountArgsV2 struct {
	Data                *DataV2
	UpdateAuthority     *solana.PublicKey
	PrimarySaleHappened *bool
	IsMutable           *bool
}
