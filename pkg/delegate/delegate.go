// Package delegate grants scoped authority over an asset to another
// key. The role decides where the grant is recorded: the token record,
// a persistent metadata delegate record, or the token account itself.
package delegate

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
	isDelegateArgs()
}

// V1 delegates Role over Mint to Delegate. Amount applies to the
// token-family roles; LockedAddress only to LockedTransfer. Token names
// the holding token account; when nil and the role needs one, the
// single holder of a non-fungible is located automatically. Payer, when
// set, fills the payer slot in place of the authority.
type V1 struct {
	Authority         solana.PublicKey
	Payer             *solana.PublicKey
	Mint              decode.Address
	Delegate          decode.Address
	Role              tokenmeta.Role
	Amount            uint64
	LockedAddress     *solana.PublicKey
	Token             decode.Address
	AuthorizationData *tokenmeta.AuthorizationData
}

func (V1) isDelegateArgs() {}

// Client is the RPC surface the resolver needs.
type Client interface {
	asset.TokenClient
	transaction.Chain
}

// ResolveAccounts fills the account layout shared by the Delegate and
// Revoke instructions. The revoke package reuses it.
func ResolveAccounts(ctx context.Context, client asset.TokenClient, authority, mint, delegateKey solana.PublicKey, role tokenmeta.Role, token *solana.PublicKey) (tokenmeta.DelegateAccounts, error) {
	md, err := decode.GetMetadataFromMint(ctx, client, mint)
	if err != nil {
		return tokenmeta.DelegateAccounts{}, fmt.Errorf("failed to read asset metadata: %w", err)
	}

	accounts := tokenmeta.DelegateAccounts{
		Delegate:  delegateKey,
		Metadata:  derive.Metadata(mint),
		Mint:      mint,
		Authority: authority,
		Payer:     authority,
	}
	if tokenmeta.NeedsEdition(md.TokenStandard) {
		edition := derive.Edition(mint)
		accounts.MasterEdition = &edition
	}

	switch role.RecordKind() {
	case tokenmeta.RecordMetadata:
		record, err := derive.MetadataDelegateRecord(mint, role, authority, delegateKey)
		if err != nil {
			return tokenmeta.DelegateAccounts{}, err
		}
		accounts.DelegateRecord = &record
	default:
		// token-family roles operate on the holding itself
		if token == nil {
			located, err := asset.FindSingleHolder(ctx, client, mint)
			if err != nil {
				return tokenmeta.DelegateAccounts{}, err
			}
			token = &located
		}
		accounts.Token = token
		accounts.SplTokenProgram = &solana.TokenProgramID
		if role.RecordKind() == tokenmeta.RecordToken {
			record := derive.TokenRecord(mint, *token)
			accounts.TokenRecord = &record
		}
	}

	if tokenmeta.IsProgrammable(md.TokenStandard) {
		if ruleSet := md.RuleSet(); ruleSet != nil {
			accounts.AuthorizationRules = ruleSet
			accounts.AuthorizationRulesProgram = &tokenmeta.AuthRulesProgramID
		}
	}
	return accounts, nil
}

// Instruction assembles the Delegate instruction for args.
func Instruction(ctx context.Context, client asset.TokenClient, args Args) (solana.Instruction, error) {
	switch a := args.(type) {
	case V1:
		delegateArgs, err := tokenmeta.NewDelegateArgs(a.Role, a.Amount, a.LockedAddress, a.AuthorizationData)
		if err != nil {
			return nil, err
		}
		mint, err := decode.Resolve(a.Mint)
		if err != nil {
			return nil, fmt.Errorf("invalid mint: %w", err)
		}
		delegateKey, err := decode.Resolve(a.Delegate)
		if err != nil {
			return nil, fmt.Errorf("invalid delegate: %w", err)
		}
		token, err := decode.ResolveOptional(a.Token)
		if err != nil {
			return nil, fmt.Errorf("invalid token account: %w", err)
		}
		accounts, err := ResolveAccounts(ctx, client, a.Authority, mint, delegateKey, a.Role, token)
		if err != nil {
			return nil, err
		}
		if a.Payer != nil {
			accounts.Payer = *a.Payer
		}
		return tokenmeta.BuildDelegate(accounts, delegateArgs)
	default:
		return nil, fmt.Errorf("unsupported args version %T", args)
	}
}

// Send assembles the delegation and submits it signed by authority.
func Send(ctx context.Context, client Client, authority solana.PrivateKey, args Args, opts ...transaction.Option) (solana.Signature, error) {
	instruction, err := Instruction(ctx, client, args)
	if err != nil {
		return solana.Signature{}, err
	}
	sender := transaction.NewSender(client, opts...)
	return sender.SendWithRetries(ctx, []solana.Instruction{instruction}, authority)
}
