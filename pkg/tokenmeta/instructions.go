package tokenmeta

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/near/borsh-go"
)

// instructionData encodes a discriminator byte followed by the Borsh
// serialization of args.
func instructionData(discriminator byte, args interface{}) ([]byte, error) {
	payload, err := borsh.Serialize(args)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize instruction args: %w", err)
	}
	return append([]byte{discriminator}, payload...), nil
}

// meta builds an account slot.
func meta(key solana.PublicKey, writable, signer bool) *solana.AccountMeta {
	return &solana.AccountMeta{PublicKey: key, IsWritable: writable, IsSigner: signer}
}

// optMeta fills an optional account slot. The program expects every slot
// populated: absent accounts carry the program id, non-writable,
// non-signer.
func optMeta(key *solana.PublicKey, writable bool) *solana.AccountMeta {
	if key == nil {
		return meta(ProgramID, false, false)
	}
	return meta(*key, writable, false)
}

func newInstruction(accounts []*solana.AccountMeta, discriminator byte, args interface{}) (solana.Instruction, error) {
	data, err := instructionData(discriminator, args)
	if err != nil {
		return nil, err
	}
	return solana.NewInstruction(ProgramID, accounts, data), nil
}

// CreateAccounts are the resolved slots of the Create instruction.
type CreateAccounts struct {
	Metadata                solana.PublicKey
	MasterEdition           *solana.PublicKey
	Mint                    solana.PublicKey
	MintIsSigner            bool
	Authority               solana.PublicKey
	Payer                   solana.PublicKey
	UpdateAuthority         solana.PublicKey
	UpdateAuthorityIsSigner bool
	SplTokenProgram         *solana.PublicKey
}

// BuildCreate assembles the Create instruction.
func BuildCreate(accounts CreateAccounts, args CreateArgs) (solana.Instruction, error) {
	metas := []*solana.AccountMeta{
		meta(accounts.Metadata, true, false),
		optMeta(accounts.MasterEdition, true),
		meta(accounts.Mint, true, accounts.MintIsSigner),
		meta(accounts.Authority, false, true),
		meta(accounts.Payer, true, true),
		meta(accounts.UpdateAuthority, false, accounts.UpdateAuthorityIsSigner),
		meta(solana.SystemProgramID, false, false),
		meta(solana.SysVarInstructionsPubkey, false, false),
		optMeta(accounts.SplTokenProgram, false),
	}
	return newInstruction(metas, IxCreate, args)
}

// MintAccounts are the resolved slots of the Mint instruction.
type MintAccounts struct {
	Token                     solana.PublicKey
	TokenOwner                *solana.PublicKey
	Metadata                  solana.PublicKey
	MasterEdition             *solana.PublicKey
	TokenRecord               *solana.PublicKey
	Mint                      solana.PublicKey
	Authority                 solana.PublicKey
	DelegateRecord            *solana.PublicKey
	Payer                     solana.PublicKey
	AuthorizationRulesProgram *solana.PublicKey
	AuthorizationRules        *solana.PublicKey
}

// BuildMint assembles the Mint instruction.
func BuildMint(accounts MintAccounts, args MintArgs) (solana.Instruction, error) {
	metas := []*solana.AccountMeta{
		meta(accounts.Token, true, false),
		optMeta(accounts.TokenOwner, false),
		meta(accounts.Metadata, true, false),
		optMeta(accounts.MasterEdition, true),
		optMeta(accounts.TokenRecord, true),
		meta(accounts.Mint, true, false),
		meta(accounts.Authority, false, true),
		optMeta(accounts.DelegateRecord, false),
		meta(accounts.Payer, true, true),
		meta(solana.SystemProgramID, false, false),
		meta(solana.SysVarInstructionsPubkey, false, false),
		meta(solana.TokenProgramID, false, false),
		meta(solana.SPLAssociatedTokenAccountProgramID, false, false),
		optMeta(accounts.AuthorizationRulesProgram, false),
		optMeta(accounts.AuthorizationRules, false),
	}
	return newInstruction(metas, IxMint, args)
}

// TransferAccounts are the resolved slots of the Transfer instruction.
type TransferAccounts struct {
	Token                     solana.PublicKey
	TokenOwner                solana.PublicKey
	DestinationToken          solana.PublicKey
	DestinationOwner          solana.PublicKey
	Mint                      solana.PublicKey
	Metadata                  solana.PublicKey
	Edition                   *solana.PublicKey
	TokenRecord               *solana.PublicKey
	DestinationTokenRecord    *solana.PublicKey
	Authority                 solana.PublicKey
	Payer                     solana.PublicKey
	AuthorizationRulesProgram *solana.PublicKey
	AuthorizationRules        *solana.PublicKey
}

// BuildTransfer assembles the Transfer instruction.
func BuildTransfer(accounts TransferAccounts, args TransferArgs) (solana.Instruction, error) {
	metas := []*solana.AccountMeta{
		meta(accounts.Token, true, false),
		meta(accounts.TokenOwner, false, false),
		meta(accounts.DestinationToken, true, false),
		meta(accounts.DestinationOwner, false, false),
		meta(accounts.Mint, false, false),
		meta(accounts.Metadata, true, false),
		optMeta(accounts.Edition, false),
		optMeta(accounts.TokenRecord, true),
		optMeta(accounts.DestinationTokenRecord, true),
		meta(accounts.Authority, false, true),
		meta(accounts.Payer, true, true),
		meta(solana.SystemProgramID, false, false),
		meta(solana.SysVarInstructionsPubkey, false, false),
		meta(solana.TokenProgramID, false, false),
		meta(solana.SPLAssociatedTokenAccountProgramID, false, false),
		optMeta(accounts.AuthorizationRulesProgram, false),
		optMeta(accounts.AuthorizationRules, false),
	}
	return newInstruction(metas, IxTransfer, args)
}

// BurnAccounts are the resolved slots of the Burn instruction.
type BurnAccounts struct {
	Authority          solana.PublicKey
	CollectionMetadata *solana.PublicKey
	Metadata           solana.PublicKey
	Edition            *solana.PublicKey
	Mint               solana.PublicKey
	Token              solana.PublicKey
	MasterEdition      *solana.PublicKey
	MasterEditionMint  *solana.PublicKey
	MasterEditionToken *solana.PublicKey
	EditionMarker      *solana.PublicKey
	TokenRecord        *solana.PublicKey
}

// BuildBurn assembles the Burn instruction.
func BuildBurn(accounts BurnAccounts, args BurnArgs) (solana.Instruction, error) {
	metas := []*solana.AccountMeta{
		meta(accounts.Authority, true, true),
		optMeta(accounts.CollectionMetadata, true),
		meta(accounts.Metadata, true, false),
		optMeta(accounts.Edition, true),
		meta(accounts.Mint, true, false),
		meta(accounts.Token, true, false),
		optMeta(accounts.MasterEdition, true),
		optMeta(accounts.MasterEditionMint, false),
		optMeta(accounts.MasterEditionToken, false),
		optMeta(accounts.EditionMarker, true),
		optMeta(accounts.TokenRecord, true),
		meta(solana.SystemProgramID, false, false),
		meta(solana.SysVarInstructionsPubkey, false, false),
		meta(solana.TokenProgramID, false, false),
	}
	return newInstruction(metas, IxBurn, args)
}

// UpdateAccounts are the resolved slots of the Update instruction.
type UpdateAccounts struct {
	Authority                 solana.PublicKey
	DelegateRecord            *solana.PublicKey
	Token                     *solana.PublicKey
	Mint                      solana.PublicKey
	Metadata                  solana.PublicKey
	Edition                   *solana.PublicKey
	Payer                     solana.PublicKey
	AuthorizationRulesProgram *solana.PublicKey
	AuthorizationRules        *solana.PublicKey
}

// BuildUpdate assembles the Update instruction.
func BuildUpdate(accounts UpdateAccounts, args UpdateArgs) (solana.Instruction, error) {
	metas := []*solana.AccountMeta{
		meta(accounts.Authority, false, true),
		optMeta(accounts.DelegateRecord, false),
		optMeta(accounts.Token, false),
		meta(accounts.Mint, false, false),
		meta(accounts.Metadata, true, false),
		optMeta(accounts.Edition, false),
		meta(accounts.Payer, true, true),
		meta(solana.SystemProgramID, false, false),
		meta(solana.SysVarInstructionsPubkey, false, false),
		optMeta(accounts.AuthorizationRulesProgram, false),
		optMeta(accounts.AuthorizationRules, false),
	}
	return newInstruction(metas, IxUpdate, args)
}

// DelegateAccounts are the resolved slots shared by the Delegate and
// Revoke instructions.
type DelegateAccounts struct {
	DelegateRecord            *solana.PublicKey
	Delegate                  solana.PublicKey
	Metadata                  solana.PublicKey
	MasterEdition             *solana.PublicKey
	TokenRecord               *solana.PublicKey
	Mint                      solana.PublicKey
	Token                     *solana.PublicKey
	Authority                 solana.PublicKey
	Payer                     solana.PublicKey
	SplTokenProgram           *solana.PublicKey
	AuthorizationRulesProgram *solana.PublicKey
	AuthorizationRules        *solana.PublicKey
}

func delegateMetas(accounts DelegateAccounts) []*solana.AccountMeta {
	return []*solana.AccountMeta{
		optMeta(accounts.DelegateRecord, true),
		meta(accounts.Delegate, false, false),
		meta(accounts.Metadata, true, false),
		optMeta(accounts.MasterEdition, false),
		optMeta(accounts.TokenRecord, true),
		meta(accounts.Mint, false, false),
		optMeta(accounts.Token, true),
		meta(accounts.Authority, false, true),
		meta(accounts.Payer, true, true),
		meta(solana.SystemProgramID, false, false),
		meta(solana.SysVarInstructionsPubkey, false, false),
		optMeta(accounts.SplTokenProgram, false),
		optMeta(accounts.AuthorizationRulesProgram, false),
		optMeta(accounts.AuthorizationRules, false),
	}
}

// BuildDelegate assembles the Delegate instruction.
func BuildDelegate(accounts DelegateAccounts, args DelegateArgs) (solana.Instruction, error) {
	return newInstruction(delegateMetas(accounts), IxDelegate, args)
}

// BuildRevoke assembles the Revoke instruction. It shares the Delegate
// account layout.
func BuildRevoke(accounts DelegateAccounts, args RevokeArgs) (solana.Instruction, error) {
	return newInstruction(delegateMetas(accounts), IxRevoke, args)
}

// VerifyAccounts are the resolved slots of the Verify instruction.
type VerifyAccounts struct {
	Authority               solana.PublicKey
	DelegateRecord          *solana.PublicKey
	Metadata                solana.PublicKey
	CollectionMint          *solana.PublicKey
	CollectionMetadata      *solana.PublicKey
	CollectionMasterEdition *solana.PublicKey
}

// BuildVerify assembles the Verify instruction.
func BuildVerify(accounts VerifyAccounts, args VerificationArgs) (solana.Instruction, error) {
	metas := []*solana.AccountMeta{
		meta(accounts.Authority, false, true),
		optMeta(accounts.DelegateRecord, false),
		meta(accounts.Metadata, true, false),
		optMeta(accounts.CollectionMint, false),
		optMeta(accounts.CollectionMetadata, true),
		optMeta(accounts.CollectionMasterEdition, false),
		meta(solana.SystemProgramID, false, false),
		meta(solana.SysVarInstructionsPubkey, false, false),
	}
	return newInstruction(metas, IxVerify, args)
}

// UnverifyAccounts are the resolved slots of the Unverify instruction.
// Unlike Verify there is no master edition slot.
type UnverifyAccounts struct {
	Authority          solana.PublicKey
	DelegateRecord     *solana.PublicKey
	Metadata           solana.PublicKey
	CollectionMint     *solana.PublicKey
	CollectionMetadata *solana.PublicKey
}

// BuildUnverify assembles the Unverify instruction.
func BuildUnverify(accounts UnverifyAccounts, args VerificationArgs) (solana.Instruction, error) {
	metas := []*solana.AccountMeta{
		meta(accounts.Authority, false, true),
		optMeta(accounts.DelegateRecord, false),
		meta(accounts.Metadata, true, false),
		optMeta(accounts.CollectionMint, false),
		optMeta(accounts.CollectionMetadata, true),
		meta(solana.SystemProgramID, false, false),
		meta(solana.SysVarInstructionsPubkey, false, false),
	}
	return newInstruction(metas, IxUnverify, args)
}
