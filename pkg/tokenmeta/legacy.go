package tokenmeta

import (
	"github.com/gagliardetto/solana-go"
)

// Legacy metadata instructions predating the unified Token Metadata
// interface. They remain the cheapest path for plain NFTs without
// programmable features.

// CreateMetadataAccountV3Accounts are the slots of the
// CreateMetadataAccountV3 instruction.
type CreateMetadataAccountV3Accounts struct {
	Metadata                solana.PublicKey
	Mint                    solana.PublicKey
	MintAuthority           solana.PublicKey
	Payer                   solana.PublicKey
	UpdateAuthority         solana.PublicKey
	UpdateAuthorityIsSigner bool
	Rent                    *solana.PublicKey
}

// BuildCreateMetadataAccountV3 assembles the legacy metadata account
// creation instruction.
func BuildCreateMetadataAccountV3(accounts CreateMetadataAccountV3Accounts, args CreateMetadataAccountArgsV3) (solana.Instruction, error) {
	metas := []*solana.AccountMeta{
		meta(accounts.Metadata, true, false),
		meta(accounts.Mint, false, false),
		meta(accounts.MintAuthority, false, true),
		meta(accounts.Payer, true, true),
		meta(accounts.UpdateAuthority, false, accounts.UpdateAuthorityIsSigner),
		meta(solana.SystemProgramID, false, false),
		optMeta(accounts.Rent, false),
	}
	return newInstruction(metas, IxCreateMetadataAccountV3, args)
}

// CreateMasterEditionV3Accounts are the slots of the
// CreateMasterEditionV3 instruction.
type CreateMasterEditionV3Accounts struct {
	Edition         solana.PublicKey
	Mint            solana.PublicKey
	UpdateAuthority solana.PublicKey
	MintAuthority   solana.PublicKey
	Payer           solana.PublicKey
	Metadata        solana.PublicKey
	Rent            *solana.PublicKey
}

// BuildCreateMasterEditionV3 assembles the legacy master edition
// creation instruction.
func BuildCreateMasterEditionV3(accounts CreateMasterEditionV3Accounts, args CreateMasterEditionArgs) (solana.Instruction, error) {
	metas := []*solana.AccountMeta{
		meta(accounts.Edition, true, false),
		meta(accounts.Mint, true, false),
		meta(accounts.UpdateAuthority, false, true),
		meta(accounts.MintAuthority, false, true),
		meta(accounts.Payer, true, true),
		meta(accounts.Metadata, true, false),
		meta(solana.TokenProgramID, false, false),
		meta(solana.SystemProgramID, false, false),
		optMeta(accounts.Rent, false),
	}
	return newInstruction(metas, IxCreateMasterEditionV3, args)
}

// UpdateMetadataAccountV2Accounts are the slots of the
// UpdateMetadataAccountV2 instruction.
type UpdateMetadataAccountV2Accounts struct {
	Metadata        solana.PublicKey
	UpdateAuthority solana.PublicKey
}

// BuildUpdateMetadataAccountV2 assembles the legacy metadata update
// instruction.
func BuildUpdateMetadataAccountV2(accounts UpdateMetadataAccountV2Accounts, args UpdateMetadataAccountArgsV2) (solana.Instruction, error) {
	metas := []*solana.AccountMeta{
		meta(accounts.Metadata, true, false),
		meta(accounts.UpdateAuthority, false, true),
	}
	return newInstruction(metas, IxUpdateMetadataAccountV2, args)
}
