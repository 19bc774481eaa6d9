// Package revoke withdraws a delegation granted through the delegate
// package. Revoke reuses the delegate account layout; only the argument
// variant differs.
package revoke

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/solanakit/tokenmeta-sdk-go/pkg/asset"
	"github.com/solanakit/tokenmeta-sdk-go/pkg/decode"
	"github.com/solanakit/tokenmeta-sdk-go/pkg/delegate"
	"github.com/solanakit/tokenmeta-sdk-go/pkg/tokenmeta"
	"github.com/solanakit/tokenmeta-sdk-go/pkg/transaction"
)

// Args is the versioned parameter envelope. V1 is the only version.
type Args interface {
	isRevokeArgs()
}

// V1 revokes Role over Mint from Delegate. Payer, when set, fills the
// payer slot in place of the authority.
type V1 struct {
	Authority solana.PublicKey
	Payer     *solana.PublicKey
	Mint      decode.Address
	Delegate  decode.Address
	Role      tokenmeta.Role
	Token     decode.Address
}

func (V1) isRevokeArgs() {}

// Client is the RPC surface Send needs.
type Client interface {
	asset.TokenClient
	transaction.Chain
}

// Instruction assembles the Revoke instruction for args.
func Instruction(ctx context.Context, client asset.TokenClient, args Args) (solana.Instruction, error) {
	switch a := args.(type) {
	case V1:
		revokeArgs, err := tokenmeta.NewRevokeArgs(a.Role)
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
		accounts, err := delegate.ResolveAccounts(ctx, client, a.Authority, mint, delegateKey, a.Role, token)
		if err != nil {
			return nil, err
		}
		if a.Payer != nil {
			accounts.Payer = *a.Payer
		}
		return tokenmeta.BuildRevoke(accounts, revokeArgs)
	default:
		return nil, fmt.Errorf("unsupported args version %T", args)
	}
}

// Send assembles the revocation and submits it signed by authority.
func Send(ctx context.Context, client Client, authority solana.PrivateKey, args Args, opts ...transaction.Option) (solana.Signature, error) {
	instruction, err := Instruction(ctx, client, args)
	if err != nil {
		return solana.Signature{}, err
	}
	sender := transaction.NewSender(client, opts...)
	return sender.SendWithRetries(ctx, []solana.Instruction{instruction}, authority)
}
