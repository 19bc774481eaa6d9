// Package transfer moves tokens between wallets, resolving the extra
// accounts programmable assets require.
package transfer

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
	isTransferArgs()
}

// V1 moves Amount tokens of Mint from the authority's holding to the
// destination owner. Token names the source token account; when nil the
// single holder of a non-fungible is located automatically. SourceOwner
// names the source wallet and skips the on-chain owner lookup.
// DestinationToken overrides the destination's associated token
// account. Payer, when set, fills the payer slot in place of the
// authority.
type V1 struct {
	Authority         solana.PublicKey
	Payer             *solana.PublicKey
	Mint              decode.Address
	SourceOwner       decode.Address
	Token             decode.Address
	DestinationOwner  decode.Address
	DestinationToken  decode.Address
	Amount            uint64
	AuthorizationData *tokenmeta.AuthorizationData
}

func (V1) isTransferArgs() {}

// Client is the RPC surface the resolver needs.
type Client interface {
	asset.TokenClient
	transaction.Chain
}

// Instruction assembles the Transfer instruction for args.
func Instruction(ctx context.Context, client asset.TokenClient, args Args) (solana.Instruction, error) {
	switch a := args.(type) {
	case V1:
		if a.Amount == 0 {
			return nil, fmt.Errorf("transfer amount must be positive")
		}
		mint, err := decode.Resolve(a.Mint)
		if err != nil {
			return nil, fmt.Errorf("invalid mint: %w", err)
		}
		destinationOwner, err := decode.Resolve(a.DestinationOwner)
		if err != nil {
			return nil, fmt.Errorf("invalid destination owner: %w", err)
		}
		providedToken, err := decode.ResolveOptional(a.Token)
		if err != nil {
			return nil, fmt.Errorf("invalid token account: %w", err)
		}
		sourceOwner, err := decode.ResolveOptional(a.SourceOwner)
		if err != nil {
			return nil, fmt.Errorf("invalid source owner: %w", err)
		}
		providedDestination, err := decode.ResolveOptional(a.DestinationToken)
		if err != nil {
			return nil, fmt.Errorf("invalid destination token account: %w", err)
		}
		md, err := decode.GetMetadataFromMint(ctx, client, mint)
		if err != nil {
			return nil, fmt.Errorf("failed to read asset metadata: %w", err)
		}

		var token solana.PublicKey
		switch {
		case providedToken != nil:
			token = *providedToken
		case sourceOwner != nil:
			token = derive.AssociatedToken(*sourceOwner, mint)
		default:
			token, err = asset.FindSingleHolder(ctx, client, mint)
			if err != nil {
				return nil, err
			}
		}
		tokenOwner := sourceOwner
		if tokenOwner == nil {
			owner, err := asset.TokenOwner(ctx, client, token)
			if err != nil {
				return nil, fmt.Errorf("failed to read source token owner: %w", err)
			}
			tokenOwner = &owner
		}
		destinationToken := derive.AssociatedToken(destinationOwner, mint)
		if providedDestination != nil {
			destinationToken = *providedDestination
		}

		accounts := tokenmeta.TransferAccounts{
			Token:            token,
			TokenOwner:       *tokenOwner,
			DestinationToken: destinationToken,
			DestinationOwner: destinationOwner,
			Mint:             mint,
			Metadata:         derive.Metadata(mint),
			Authority:        a.Authority,
			Payer:            a.Authority,
		}
		if a.Payer != nil {
			accounts.Payer = *a.Payer
		}
		if tokenmeta.NeedsEdition(md.TokenStandard) {
			edition := derive.Edition(mint)
			accounts.Edition = &edition
		}
		if tokenmeta.IsProgrammable(md.TokenStandard) {
			ownerRecord := derive.TokenRecord(mint, token)
			destinationRecord := derive.TokenRecord(mint, destinationToken)
			accounts.TokenRecord = &ownerRecord
			accounts.DestinationTokenRecord = &destinationRecord
			if ruleSet := md.RuleSet(); ruleSet != nil {
				accounts.AuthorizationRules = ruleSet
				accounts.AuthorizationRulesProgram = &tokenmeta.AuthRulesProgramID
			}
		}
		return tokenmeta.BuildTransfer(accounts, tokenmeta.NewTransferArgsV1(a.Amount, a.AuthorizationData))
	default:
		return nil, fmt.Errorf("unsupported args version %T", args)
	}
}

// Send assembles the transfer and submits it signed by authority.
func Send(ctx context.Context, client Client, authority solana.PrivateKey, args Args, opts ...transaction.Option) (solana.Signature, error) {
	instruction, err := Instruction(ctx, client, args)
	if err != nil {
		return solana.Signature{}, err
	}
	sender := transaction.NewSender(client, opts...)
	return sender.SendWithRetries(ctx, []solana.Instruction{instruction}, authority)
}
