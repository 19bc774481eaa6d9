package mint

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/solanakit/tokenmeta-sdk-go/pkg/derive"
	"github.com/solanakit/tokenmeta-sdk-go/pkg/tokenmeta"
	"github.com/solanakit/tokenmeta-sdk-go/pkg/transaction"
)

// NFT mints a plain non-fungible through the legacy instruction
// sequence: initialize the mint, issue the single token, then attach
// metadata and a master edition. The authority pays, owns the token,
// and becomes the update authority.
func NFT(ctx context.Context, client Client, authority solana.PrivateKey, data tokenmeta.DataV2, maxSupply *uint64, opts ...transaction.Option) (Result, error) {
	mintWallet := solana.NewWallet()
	mint := mintWallet.PublicKey()
	owner := authority.PublicKey()

	rent, err := client.GetMinimumBalanceForRentExemption(ctx, tokenmeta.MintAccountSize, rpc.CommitmentConfirmed)
	if err != nil {
		return Result{}, fmt.Errorf("failed to fetch mint rent: %w", err)
	}

	ata := derive.AssociatedToken(owner, mint)
	instructions := []solana.Instruction{
		system.NewCreateAccountInstruction(
			rent,
			tokenmeta.MintAccountSize,
			solana.TokenProgramID,
			owner,
			mint,
		).Build(),
		token.NewInitializeMintInstruction(
			0,
			owner,
			owner,
			mint,
			solana.SysVarRentPubkey,
		).Build(),
		associatedtokenaccount.NewCreateInstruction(
			owner,
			owner,
			mint,
		).Build(),
		token.NewMintToInstruction(
			1,
			mint,
			ata,
			owner,
			nil,
		).Build(),
	}

	metadataIx, err := tokenmeta.BuildCreateMetadataAccountV3(
		tokenmeta.CreateMetadataAccountV3Accounts{
			Metadata:                derive.Metadata(mint),
			Mint:                    mint,
			MintAuthority:           owner,
			Payer:                   owner,
			UpdateAuthority:         owner,
			UpdateAuthorityIsSigner: true,
		},
		tokenmeta.CreateMetadataAccountArgsV3{Data: data, IsMutable: true},
	)
	if err != nil {
		return Result{}, err
	}
	editionIx, err := tokenmeta.BuildCreateMasterEditionV3(
		tokenmeta.CreateMasterEditionV3Accounts{
			Edition:         derive.Edition(mint),
			Mint:            mint,
			UpdateAuthority: owner,
			MintAuthority:   owner,
			Payer:           owner,
			Metadata:        derive.Metadata(mint),
		},
		tokenmeta.CreateMasterEditionArgs{MaxSupply: maxSupply},
	)
	if err != nil {
		return Result{}, err
	}
	instructions = append(instructions, metadataIx, editionIx)

	sender := transaction.NewSender(client, opts...)
	signature, err := sender.SendWithRetries(ctx, instructions, authority, mintWallet.PrivateKey)
	if err != nil {
		return Result{}, err
	}
	return Result{Signature: signature, Mint: mint}, nil
}
