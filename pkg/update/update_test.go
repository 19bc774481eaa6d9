package update

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/near/borsh-go"

	"github.com/solanakit/tokenmeta-sdk-go/pkg/decode"
	"github.com/solanakit/tokenmeta-sdk-go/pkg/derive"
	"github.com/solanakit/tokenmeta-sdk-go/pkg/tokenmeta"
	"github.com/solanakit/tokenmeta-sdk-go/pkg/transaction"
)

type fakeClient struct {
	accounts map[solana.PublicKey][]byte
	largest  []*rpc.TokenLargestAccountsResult
	lastSent *solana.Transaction
}

func (f *fakeClient) GetAccountInfo(_ context.Context, account solana.PublicKey) (*rpc.GetAccountInfoResult, error) {
	data, ok := f.accounts[account]
	if !ok {
		return nil, rpc.ErrNotFound
	}
	return &rpc.GetAccountInfoResult{
		Value: &rpc.Account{Data: rpc.DataBytesOrJSONFromBytes(data)},
	}, nil
}

func (f *fakeClient) GetTokenLargestAccounts(_ context.Context, _ solana.PublicKey, _ rpc.CommitmentType) (*rpc.GetTokenLargestAccountsResult, error) {
	return &rpc.GetTokenLargestAccountsResult{Value: f.largest}, nil
}

func (f *fakeClient) GetLatestBlockhash(_ context.Context, _ rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error) {
	return &rpc.GetLatestBlockhashResult{
		Value: &rpc.LatestBlockhashResult{Blockhash: solana.Hash{1}},
	}, nil
}

func (f *fakeClient) SendTransaction(_ context.Context, tx *solana.Transaction) (solana.Signature, error) {
	f.lastSent = tx
	return solana.Signature{42}, nil
}

func (f *fakeClient) SimulateTransactionWithOpts(_ context.Context, _ *solana.Transaction, _ *rpc.SimulateTransactionOpts) (*rpc.SimulateTransactionResponse, error) {
	return &rpc.SimulateTransactionResponse{Value: &rpc.SimulateTransactionResult{}}, nil
}

func (f *fakeClient) serveMetadata(t *testing.T, mint solana.PublicKey, standard tokenmeta.TokenStandard, ruleSet *solana.PublicKey) {
	t.Helper()
	s := standard
	md := decode.Metadata{
		Key:             tokenmeta.KeyMetadataV1,
		UpdateAuthority: solana.NewWallet().PublicKey(),
		Mint:            mint,
		Data:            tokenmeta.Data{Name: "Asset", Symbol: "AST", URI: "https://x"},
		TokenStandard:   &s,
	}
	if ruleSet != nil {
		md.ProgrammableConfig = &tokenmeta.ProgrammableConfig{
			V1: tokenmeta.ProgrammableConfigV1{RuleSet: ruleSet},
		}
	}
	data, err := borsh.Serialize(md)
	if err != nil {
		t.Fatalf("failed to serialize fixture: %v", err)
	}
	f.accounts[derive.Metadata(mint)] = data
}

func newClient() *fakeClient {
	return &fakeClient{accounts: map[solana.PublicKey][]byte{}}
}

func isSentinel(meta *solana.AccountMeta) bool {
	return meta.PublicKey.Equals(tokenmeta.ProgramID) && !meta.IsWritable && !meta.IsSigner
}

func TestInstructionPlainNonFungible(t *testing.T) {
	mint := solana.NewWallet().PublicKey()
	authority := solana.NewWallet().PublicKey()
	client := newClient()
	client.serveMetadata(t, mint, tokenmeta.NonFungible, nil)

	name := "Renamed"
	data := tokenmeta.Data{Name: name, Symbol: "AST", URI: "https://x"}
	ix, err := Instruction(context.Background(), client, V1{
		Authority: authority,
		Mint:      decode.Pubkey(mint),
		Data:      &data,
	})
	if err != nil {
		t.Fatalf("failed to assemble: %v", err)
	}

	raw, err := ix.Data()
	if err != nil {
		t.Fatalf("failed to read data: %v", err)
	}
	if raw[0] != tokenmeta.IxUpdate || raw[1] != 0 {
		t.Fatalf("unexpected encoding % d", raw[:2])
	}

	metas := ix.Accounts()
	if len(metas) != 11 {
		t.Fatalf("expected 11 account slots, got %d", len(metas))
	}
	if !metas[0].PublicKey.Equals(authority) || !metas[0].IsSigner {
		t.Fatal("authority slot must sign")
	}
	if !isSentinel(metas[2]) {
		t.Fatal("plain non-fungibles need no token slot")
	}
	if !metas[4].PublicKey.Equals(derive.Metadata(mint)) || !metas[4].IsWritable {
		t.Fatal("metadata slot must be writable")
	}
	if !metas[5].PublicKey.Equals(derive.Edition(mint)) {
		t.Fatal("edition slot mismatch")
	}
	if !isSentinel(metas[9]) || !isSentinel(metas[10]) {
		t.Fatal("without a rule set the authorization slots must hold the program sentinel")
	}
}

func TestInstructionProgrammableLocatesToken(t *testing.T) {
	mint := solana.NewWallet().PublicKey()
	token := solana.NewWallet().PublicKey()
	ruleSet := solana.NewWallet().PublicKey()
	client := newClient()
	client.serveMetadata(t, mint, tokenmeta.ProgrammableNonFungible, &ruleSet)
	client.largest = []*rpc.TokenLargestAccountsResult{{Address: token, UiTokenAmount: rpc.UiTokenAmount{Amount: "1"}}}

	ix, err := Instruction(context.Background(), client, V1{
		Authority: solana.NewWallet().PublicKey(),
		Mint:      decode.Pubkey(mint),
	})
	if err != nil {
		t.Fatalf("failed to assemble: %v", err)
	}

	metas := ix.Accounts()
	if !metas[2].PublicKey.Equals(token) {
		t.Fatal("the locator must fill the token slot for programmables")
	}
	if !metas[9].PublicKey.Equals(tokenmeta.AuthRulesProgramID) || !metas[10].PublicKey.Equals(ruleSet) {
		t.Fatal("authorization slots must carry the rule set")
	}
}

func TestSendCarriesComputeBudget(t *testing.T) {
	mint := solana.NewWallet().PublicKey()
	authority := solana.NewWallet().PrivateKey
	client := newClient()
	client.serveMetadata(t, mint, tokenmeta.NonFungible, nil)

	if _, err := Send(context.Background(), client, authority, V1{
		Authority: authority.PublicKey(),
		Mint:      decode.Pubkey(mint),
	}, transaction.PriorityHigh); err != nil {
		t.Fatalf("failed to send: %v", err)
	}

	message := client.lastSent.Message
	if len(message.Instructions) != 3 {
		t.Fatalf("expected exactly 3 instructions, got %d", len(message.Instructions))
	}

	limit := message.Instructions[0]
	if !message.AccountKeys[limit.ProgramIDIndex].Equals(computebudget.ProgramID) || limit.Data[0] != 2 {
		t.Fatal("first instruction must set the compute unit limit")
	}
	if got := binary.LittleEndian.Uint32(limit.Data[1:5]); got != updateComputeLimit {
		t.Fatalf("compute unit limit %d, want %d", got, updateComputeLimit)
	}

	price := message.Instructions[1]
	if !message.AccountKeys[price.ProgramIDIndex].Equals(computebudget.ProgramID) || price.Data[0] != 3 {
		t.Fatal("second instruction must set the compute unit price")
	}
	if got := binary.LittleEndian.Uint64(price.Data[1:9]); got != transaction.PriorityHigh.MicroLamports() {
		t.Fatalf("compute unit price %d, want %d", got, transaction.PriorityHigh.MicroLamports())
	}

	if !message.AccountKeys[message.Instructions[2].ProgramIDIndex].Equals(tokenmeta.ProgramID) {
		t.Fatal("third instruction must be the update itself")
	}
}

func TestInstructionPayerOverride(t *testing.T) {
	mint := solana.NewWallet().PublicKey()
	authority := solana.NewWallet().PublicKey()
	payer := solana.NewWallet().PublicKey()
	client := newClient()
	client.serveMetadata(t, mint, tokenmeta.NonFungible, nil)

	ix, err := Instruction(context.Background(), client, V1{
		Authority: authority,
		Payer:     &payer,
		Mint:      decode.Pubkey(mint),
	})
	if err != nil {
		t.Fatalf("failed to assemble: %v", err)
	}

	metas := ix.Accounts()
	if !metas[6].PublicKey.Equals(payer) || !metas[6].IsSigner || !metas[6].IsWritable {
		t.Fatal("payer slot must hold the designated payer as a writable signer")
	}
	if !metas[0].PublicKey.Equals(authority) {
		t.Fatal("authority slot must stay with the authority")
	}
}
