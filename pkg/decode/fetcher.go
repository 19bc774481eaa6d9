package decode

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// AccountFetcher is the read surface the decoders need from an RPC
// client. *rpc.Client satisfies it.
type AccountFetcher interface {
	GetAccountInfo(ctx context.Context, account solana.PublicKey) (*rpc.GetAccountInfoResult, error)
}

// AccountData fetches the raw data of account, mapping absence to
// ErrMissingAccount and transport failures to ErrTransport.
func AccountData(ctx context.Context, fetcher AccountFetcher, account solana.PublicKey) ([]byte, error) {
	result, err := fetcher.GetAccountInfo(ctx, account)
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrMissingAccount, account)
		}
		return nil, fmt.Errorf("%w: get account %s: %w", ErrTransport, account, err)
	}
	if result == nil || result.Value == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingAccount, account)
	}
	data := result.Value.Data.GetBinary()
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s holds no data", ErrMissingAccount, account)
	}
	return data, nil
}
