// Package mint creates assets and issues their tokens. The unified
// Create and Mint instructions cover every token standard; NFT keeps
// the legacy instruction sequence for plain non-fungibles.
package mint

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/solanakit/tokenmeta-sdk-go/pkg/decode"
	"github.com/solanakit/tokenmeta-sdk-go/pkg/derive"
	"github.com/solanakit/tokenmeta-sdk-go/pkg/tokenmeta"
	"github.com/solanakit/tokenmeta-sdk-go/pkg/transaction"
)

const maxMintDecimals = 9

// Client is the RPC surface the mint flows need.
type Client interface {
	decode.AccountFetcher
	transaction.Chain
	GetMinimumBalanceForRentExemption(ctx context.Context, dataSize uint64, commitment rpc.CommitmentType) (uint64, error)
}

// Result reports a completed mint flow.
type Result struct {
	Signature solana.Signature
	Mint      solana.PublicKey
}

// CreateArgs is the versioned parameter envelope of asset creation.
type CreateArgs interface {
	isCreateArgs()
}

// CreateV1 creates the metadata (and edition, when the standard calls
// for one) of Mint. MintIsSigner marks a fresh mint the program
// initializes itself. Payer, when set, fills the payer slot in place of
// the authority.
type CreateV1 struct {
	Authority    solana.PublicKey
	Payer        *solana.PublicKey
	Mint         decode.Address
	MintIsSigner bool
	AssetData    tokenmeta.AssetData
	Decimals     *uint8
	PrintSupply  *tokenmeta.PrintSupply
}

func (CreateV1) isCreateArgs() {}

// MintArgs is the versioned parameter envelope of token issuance.
type MintArgs interface {
	isMintArgs()
}

// MintV1 issues Amount tokens of Mint into TokenOwner's associated
// token account. Payer, when set, fills the payer slot in place of the
// authority.
type MintV1 struct {
	Authority         solana.PublicKey
	Payer             *solana.PublicKey
	Mint              decode.Address
	TokenOwner        decode.Address
	Amount            uint64
	AuthorizationData *tokenmeta.AuthorizationData
}

func (MintV1) isMintArgs() {}

func validateCreate(a CreateV1) error {
	standard := a.AssetData.TokenStandard
	if a.Decimals != nil && *a.Decimals > maxMintDecimals {
		return fmt.Errorf("mint decimals must not exceed %d, got %d", maxMintDecimals, *a.Decimals)
	}
	switch standard {
	case tokenmeta.Fungible, tokenmeta.FungibleAsset:
		if a.PrintSupply != nil {
			return fmt.Errorf("fungible assets cannot declare a print supply")
		}
	default:
		if a.Decimals != nil && *a.Decimals != 0 {
			return fmt.Errorf("non-fungible mints must use zero decimals, got %d", *a.Decimals)
		}
	}
	return nil
}

// CreateInstruction assembles the Create instruction. It needs no RPC
// round trip; every account derives from the mint.
func CreateInstruction(args CreateArgs) (solana.Instruction, error) {
	switch a := args.(type) {
	case CreateV1:
		if err := validateCreate(a); err != nil {
			return nil, err
		}
		mint, err := decode.Resolve(a.Mint)
		if err != nil {
			return nil, fmt.Errorf("invalid mint: %w", err)
		}
		standard := a.AssetData.TokenStandard
		accounts := tokenmeta.CreateAccounts{
			Metadata:        derive.Metadata(mint),
			Mint:            mint,
			MintIsSigner:    a.MintIsSigner,
			Authority:       a.Authority,
			Payer:           a.Authority,
			UpdateAuthority: a.Authority,
			SplTokenProgram: &solana.TokenProgramID,
		}
		if a.Payer != nil {
			accounts.Payer = *a.Payer
		}
		if tokenmeta.NeedsEdition(&standard) {
			edition := derive.Edition(mint)
			accounts.MasterEdition = &edition
		}
		return tokenmeta.BuildCreate(accounts, tokenmeta.NewCreateArgsV1(tokenmeta.CreateArgsV1{
			AssetData:   a.AssetData,
			Decimals:    a.Decimals,
			PrintSupply: a.PrintSupply,
		}))
	default:
		return nil, fmt.Errorf("unsupported args version %T", args)
	}
}

// mintInstruction assembles the Mint instruction from an already known
// standard and rule set, so the create-and-mint flow can run before the
// metadata exists on chain.
func mintInstruction(a MintV1, standard *tokenmeta.TokenStandard, ruleSet *solana.PublicKey) (solana.Instruction, error) {
	if a.Amount == 0 {
		return nil, fmt.Errorf("mint amount must be positive")
	}
	if standard != nil && a.Amount != 1 {
		switch *standard {
		case tokenmeta.NonFungible, tokenmeta.ProgrammableNonFungible:
			return nil, fmt.Errorf("non-fungible assets mint exactly one token, got %d", a.Amount)
		}
	}
	mint, err := decode.Resolve(a.Mint)
	if err != nil {
		return nil, fmt.Errorf("invalid mint: %w", err)
	}
	tokenOwner, err := decode.Resolve(a.TokenOwner)
	if err != nil {
		return nil, fmt.Errorf("invalid token owner: %w", err)
	}

	token := derive.AssociatedToken(tokenOwner, mint)
	accounts := tokenmeta.MintAccounts{
		Token:      token,
		TokenOwner: &tokenOwner,
		Metadata:   derive.Metadata(mint),
		Mint:       mint,
		Authority:  a.Authority,
		Payer:      a.Authority,
	}
	if a.Payer != nil {
		accounts.Payer = *a.Payer
	}
	if tokenmeta.NeedsEdition(standard) {
		edition := derive.Edition(mint)
		accounts.MasterEdition = &edition
	}
	if tokenmeta.IsProgrammable(standard) {
		record := derive.TokenRecord(mint, token)
		accounts.TokenRecord = &record
		if ruleSet != nil {
			accounts.AuthorizationRules = ruleSet
			accounts.AuthorizationRulesProgram = &tokenmeta.AuthRulesProgramID
		}
	}
	return tokenmeta.BuildMint(accounts, tokenmeta.NewMintArgsV1(a.Amount, a.AuthorizationData))
}

// MintInstruction assembles the Mint instruction for an existing asset,
// reading its standard and rule set from chain.
func MintInstruction(ctx context.Context, fetcher decode.AccountFetcher, args MintArgs) (solana.Instruction, error) {
	switch a := args.(type) {
	case MintV1:
		mint, err := decode.Resolve(a.Mint)
		if err != nil {
			return nil, fmt.Errorf("invalid mint: %w", err)
		}
		md, err := decode.GetMetadataFromMint(ctx, fetcher, mint)
		if err != nil {
			return nil, fmt.Errorf("failed to read asset metadata: %w", err)
		}
		return mintInstruction(a, md.TokenStandard, md.RuleSet())
	default:
		return nil, fmt.Errorf("unsupported args version %T", args)
	}
}

// Create submits asset creation signed by authority. mintKeypair signs
// too when the mint is fresh.
func Create(ctx context.Context, client Client, authority solana.PrivateKey, mintKeypair *solana.PrivateKey, args CreateArgs, opts ...transaction.Option) (Result, error) {
	instruction, err := CreateInstruction(args)
	if err != nil {
		return Result{}, err
	}

	var signers []solana.PrivateKey
	mint := instruction.Accounts()[2].PublicKey
	if mintKeypair != nil {
		signers = append(signers, *mintKeypair)
	}

	sender := transaction.NewSender(client, opts...)
	signature, err := sender.SendWithRetries(ctx, []solana.Instruction{instruction}, authority, signers...)
	if err != nil {
		return Result{}, err
	}
	return Result{Signature: signature, Mint: mint}, nil
}

// Mint submits token issuance for an existing asset.
func Mint(ctx context.Context, client Client, authority solana.PrivateKey, args MintArgs, opts ...transaction.Option) (Result, error) {
	instruction, err := MintInstruction(ctx, client, args)
	if err != nil {
		return Result{}, err
	}
	sender := transaction.NewSender(client, opts...)
	signature, err := sender.SendWithRetries(ctx, []solana.Instruction{instruction}, authority)
	if err != nil {
		return Result{}, err
	}

	switch a := args.(type) {
	case MintV1:
		mint, err := decode.Resolve(a.Mint)
		if err != nil {
			return Result{Signature: signature}, nil
		}
		return Result{Signature: signature, Mint: mint}, nil
	default:
		return Result{Signature: signature}, nil
	}
}

// CreateAndMint creates a fresh asset and issues its first token in one
// transaction. The mint keypair is generated here and returned through
// the result.
func CreateAndMint(ctx context.Context, client Client, authority solana.PrivateKey, assetData tokenmeta.AssetData, printSupply *tokenmeta.PrintSupply, tokenOwner solana.PublicKey, amount uint64, opts ...transaction.Option) (Result, error) {
	mintWallet := solana.NewWallet()

	createIx, err := CreateInstruction(CreateV1{
		Authority:    authority.PublicKey(),
		Mint:         decode.Pubkey(mintWallet.PublicKey()),
		MintIsSigner: true,
		AssetData:    assetData,
		PrintSupply:  printSupply,
	})
	if err != nil {
		return Result{}, err
	}

	standard := assetData.TokenStandard
	mintIx, err := mintInstruction(MintV1{
		Authority:  authority.PublicKey(),
		Mint:       decode.Pubkey(mintWallet.PublicKey()),
		TokenOwner: decode.Pubkey(tokenOwner),
		Amount:     amount,
	}, &standard, assetData.RuleSet)
	if err != nil {
		return Result{}, err
	}

	sender := transaction.NewSender(client, opts...)
	signature, err := sender.SendWithRetries(ctx, []solana.Instruction{createIx, mintIx}, authority, mintWallet.PrivateKey)
	if err != nil {
		return Result{}, err
	}
	return Result{Signature: signature, Mint: mintWallet.PublicKey()}, nil
}
