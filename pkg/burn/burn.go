// Package burn destroys tokens and closes the metadata accounts that
// go with them.
package burn

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/solanakit/tokenmeta-sdk-go/pkg/asset"
	"github.com/solanakit/tokenmeta-sdk-go/pkg/decode"
	"github.com/solanakit/tokenmeta-sdk-go/pkg/derive"
	"github.com/solanakit/tokenmeta-sdk-go/pkg/tokenmeta"
	"github.com/solanakit/tokenmeta-sdk-go/pkg/transaction"
)

// Args is the versioned parameter envelope. V1 is the only version.
type Args interface {
	isBurnArgs()
}

// V1 burns Amount tokens of Mint held by the authority. Token names the
// holding token account; when nil the single holder of a non-fungible
// is located automatically. TokenRecord overrides the derived token
// record of a programmable asset. MasterEditionMint and
// MasterEditionToken are required when burning a print edition, so the
// parent supply can be decremented.
type V1 struct {
	Authority          solana.PublicKey
	Mint               decode.Address
	Token              decode.Address
	TokenRecord        decode.Address
	Amount             uint64
	MasterEditionMint  decode.Address
	MasterEditionToken decode.Address
}

func (V1) isBurnArgs() {}

// Client is the RPC surface the resolver needs.
type Client interface {
	asset.TokenClient
	transaction.Chain
}

// Instruction assembles the Burn instruction for args.
func Instruction(ctx context.Context, client asset.TokenClient, args Args) (solana.Instruction, error) {
	switch a := args.(type) {
	case V1:
		if a.Amount == 0 {
			return nil, fmt.Errorf("burn amount must be positive")
		}
		mint, err := decode.Resolve(a.Mint)
		if err != nil {
			return nil, fmt.Errorf("invalid mint: %w", err)
		}
		token, err := decode.ResolveOptional(a.Token)
		if err != nil {
			return nil, fmt.Errorf("invalid token account: %w", err)
		}
		tokenRecord, err := decode.ResolveOptional(a.TokenRecord)
		if err != nil {
			return nil, fmt.Errorf("invalid token record: %w", err)
		}
		masterEditionMint, err := decode.ResolveOptional(a.MasterEditionMint)
		if err != nil {
			return nil, fmt.Errorf("invalid master edition mint: %w", err)
		}
		masterEditionToken, err := decode.ResolveOptional(a.MasterEditionToken)
		if err != nil {
			return nil, fmt.Errorf("invalid master edition token: %w", err)
		}
		md, err := decode.GetMetadataFromMint(ctx, client, mint)
		if err != nil {
			return nil, fmt.Errorf("failed to read asset metadata: %w", err)
		}

		if token == nil {
			located, err := asset.FindSingleHolder(ctx, client, mint)
			if err != nil {
				return nil, err
			}
			token = &located
		}

		accounts := tokenmeta.BurnAccounts{
			Authority: a.Authority,
			Metadata:  derive.Metadata(mint),
			Mint:      mint,
			Token:     *token,
		}
		if md.Collection != nil && md.Collection.Verified {
			collectionMetadata := derive.Metadata(md.Collection.Key)
			accounts.CollectionMetadata = &collectionMetadata
		}
		if tokenmeta.NeedsEdition(md.TokenStandard) {
			edition := derive.Edition(mint)
			accounts.Edition = &edition
		}
		switch {
		case tokenRecord != nil:
			accounts.TokenRecord = tokenRecord
		case tokenmeta.IsProgrammable(md.TokenStandard):
			record := derive.TokenRecord(mint, *token)
			accounts.TokenRecord = &record
		}

		// print editions also unwind their claim on the parent master
		// edition
		if md.TokenStandard != nil && *md.TokenStandard == tokenmeta.NonFungibleEdition {
			if masterEditionMint == nil || masterEditionToken == nil {
				return nil, fmt.Errorf("burning a print edition requires the master edition mint and token")
			}
			editionRecord, err := decode.GetEdition(ctx, client, derive.Edition(mint))
			if err != nil {
				return nil, fmt.Errorf("failed to read print edition record: %w", err)
			}
			masterEdition := derive.Edition(*masterEditionMint)
			marker := derive.EditionMarker(*masterEditionMint, editionRecord.Edition)
			accounts.MasterEdition = &masterEdition
			accounts.MasterEditionMint = masterEditionMint
			accounts.MasterEditionToken = masterEditionToken
			accounts.EditionMarker = &marker
		}

		return tokenmeta.BuildBurn(accounts, tokenmeta.NewBurnArgsV1(a.Amount))
	default:
		return nil, fmt.Errorf("unsupported args version %T", args)
	}
}

// Send assembles the burn and submits it signed by authority.
func Send(ctx context.Context, client Client, authority solana.PrivateKey, args Args, opts ...transaction.Option) (solana.Signature, error) {
	instruction, err := Instruction(ctx, client, args)
	if err != nil {
		return solana.Signature{}, err
	}
	sender := transaction.NewSender(client, opts...)
	return sender.SendWithRetries(ctx, []solana.Instruction{instruction}, authority)
}
