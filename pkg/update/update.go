// Package update rewrites fields of a metadata record through the
// Update instruction. Fields left at their zero value stay untouched on
// chain.
package update

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

// updateComputeLimit caps the budget of an update transaction. Updates
// are cheap; the cap keeps priority fees proportionate.
const updateComputeLimit = 50_000

// Args is the versioned parameter envelope. V1 is the only version.
type Args interface {
	isUpdateArgs()
}

// V1 carries the mutations to apply. Nil pointers and None toggles
// leave the corresponding field alone. Payer, when set, fills the payer
// slot in place of the authority.
type V1 struct {
	Authority           solana.PublicKey
	Payer               *solana.PublicKey
	Mint                decode.Address
	Token               decode.Address
	NewUpdateAuthority  *solana.PublicKey
	Data                *tokenmeta.Data
	PrimarySaleHappened *bool
	IsMutable           *bool
	Collection          tokenmeta.CollectionToggle
	CollectionDetails   tokenmeta.CollectionDetailsToggle
	Uses                tokenmeta.UsesToggle
	RuleSet             tokenmeta.RuleSetToggle
	AuthorizationData   *tokenmeta.AuthorizationData
}

func (V1) isUpdateArgs() {}

// Client is the RPC surface the resolver needs.
type Client interface {
	asset.TokenClient
	transaction.Chain
}

// Instruction assembles the Update instruction for args.
func Instruction(ctx context.Context, client asset.TokenClient, args Args) (solana.Instruction, error) {
	switch a := args.(type) {
	case V1:
		mint, err := decode.Resolve(a.Mint)
		if err != nil {
			return nil, fmt.Errorf("invalid mint: %w", err)
		}
		token, err := decode.ResolveOptional(a.Token)
		if err != nil {
			return nil, fmt.Errorf("invalid token account: %w", err)
		}
		md, err := decode.GetMetadataFromMint(ctx, client, mint)
		if err != nil {
			return nil, fmt.Errorf("failed to read asset metadata: %w", err)
		}

		accounts := tokenmeta.UpdateAccounts{
			Authority: a.Authority,
			Mint:      mint,
			Metadata:  derive.Metadata(mint),
			Payer:     a.Authority,
			Token:     token,
		}
		if a.Payer != nil {
			accounts.Payer = *a.Payer
		}
		if tokenmeta.NeedsEdition(md.TokenStandard) {
			edition := derive.Edition(mint)
			accounts.Edition = &edition
		}
		if tokenmeta.IsProgrammable(md.TokenStandard) {
			if accounts.Token == nil {
				located, err := asset.FindSingleHolder(ctx, client, mint)
				if err != nil {
					return nil, err
				}
				accounts.Token = &located
			}
			if ruleSet := md.RuleSet(); ruleSet != nil {
				accounts.AuthorizationRules = ruleSet
				accounts.AuthorizationRulesProgram = &tokenmeta.AuthRulesProgramID
			}
		}

		return tokenmeta.BuildUpdate(accounts, tokenmeta.NewUpdateArgsV1(tokenmeta.UpdateArgsV1{
			NewUpdateAuthority:  a.NewUpdateAuthority,
			Data:                a.Data,
			PrimarySaleHappened: a.PrimarySaleHappened,
			IsMutable:           a.IsMutable,
			Collection:          a.Collection,
			CollectionDetails:   a.CollectionDetails,
			Uses:                a.Uses,
			RuleSet:             a.RuleSet,
			AuthorizationData:   a.AuthorizationData,
		}))
	default:
		return nil, fmt.Errorf("unsupported args version %T", args)
	}
}

// Send assembles the update and submits it signed by authority. The
// transaction carries a compute budget at the requested priority.
func Send(ctx context.Context, client Client, authority solana.PrivateKey, args Args, priority transaction.Priority, opts ...transaction.Option) (solana.Signature, error) {
	instruction, err := Instruction(ctx, client, args)
	if err != nil {
		return solana.Signature{}, err
	}
	instructions := transaction.PrependComputeBudget([]solana.Instruction{instruction}, priority, updateComputeLimit)
	sender := transaction.NewSender(client, opts...)
	return sender.SendWithRetries(ctx, instructions, authority)
}
