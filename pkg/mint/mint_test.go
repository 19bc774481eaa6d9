package mint

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/near/borsh-go"

	"github.com/solanakit/tokenmeta-sdk-go/pkg/decode"
	"github.com/solanakit/tokenmeta-sdk-go/pkg/derive"
	"github.com/solanakit/tokenmeta-sdk-go/pkg/tokenmeta"
)

type fakeClient struct {
	accounts map[solana.PublicKey][]byte
	rent     uint64
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

func (f *fakeClient) GetMinimumBalanceForRentExemption(_ context.Context, _ uint64, _ rpc.CommitmentType) (uint64, error) {
	return f.rent, nil
}

func newClient() *fakeClient {
	return &fakeClient{accounts: map[solana.PublicKey][]byte{}, rent: 1_461_600}
}

func assetData(standard tokenmeta.TokenStandard) tokenmeta.AssetData {
	return tokenmeta.AssetData{
		Name:                 "Asset",
		Symbol:               "AST",
		URI:                  "https://x",
		SellerFeeBasisPoints: 500,
		PrimarySaleHappened:  false,
		IsMutable:            true,
		TokenStandard:        standard,
	}
}

func isSentinel(meta *solana.AccountMeta) bool {
	return meta.PublicKey.Equals(tokenmeta.ProgramID) && !meta.IsWritable && !meta.IsSigner
}

func TestCreateInstructionProgrammable(t *testing.T) {
	mint := solana.NewWallet().PublicKey()
	authority := solana.NewWallet().PublicKey()
	supply := tokenmeta.PrintSupplyZero()

	ix, err := CreateInstruction(CreateV1{
		Authority:    authority,
		Mint:         decode.Pubkey(mint),
		MintIsSigner: true,
		AssetData:    assetData(tokenmeta.ProgrammableNonFungible),
		PrintSupply:  &supply,
	})
	if err != nil {
		t.Fatalf("failed to assemble: %v", err)
	}

	data, err := ix.Data()
	if err != nil {
		t.Fatalf("failed to read data: %v", err)
	}
	if data[0] != tokenmeta.IxCreate || data[1] != 0 {
		t.Fatalf("unexpected encoding % d", data[:2])
	}

	metas := ix.Accounts()
	if len(metas) != 9 {
		t.Fatalf("expected 9 account slots, got %d", len(metas))
	}
	if !metas[0].PublicKey.Equals(derive.Metadata(mint)) || !metas[0].IsWritable {
		t.Fatal("metadata slot must be writable")
	}
	if !metas[1].PublicKey.Equals(derive.Edition(mint)) {
		t.Fatal("master edition slot mismatch")
	}
	if !metas[2].PublicKey.Equals(mint) || !metas[2].IsSigner {
		t.Fatal("a fresh mint must sign its own creation")
	}
	if !metas[3].PublicKey.Equals(authority) || !metas[3].IsSigner {
		t.Fatal("authority slot must sign")
	}
	if !metas[8].PublicKey.Equals(solana.TokenProgramID) {
		t.Fatal("token program slot mismatch")
	}
}

func TestCreateInstructionFungible(t *testing.T) {
	decimals := uint8(6)
	ix, err := CreateInstruction(CreateV1{
		Authority: solana.NewWallet().PublicKey(),
		Mint:      decode.Pubkey(solana.NewWallet().PublicKey()),
		AssetData: assetData(tokenmeta.Fungible),
		Decimals:  &decimals,
	})
	if err != nil {
		t.Fatalf("failed to assemble: %v", err)
	}
	if !isSentinel(ix.Accounts()[1]) {
		t.Fatal("fungibles carry no master edition")
	}
}

func TestCreateInstructionValidation(t *testing.T) {
	authority := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()
	supply := tokenmeta.PrintSupplyZero()

	tooMany := uint8(10)
	if _, err := CreateInstruction(CreateV1{
		Authority: authority, Mint: decode.Pubkey(mint),
		AssetData: assetData(tokenmeta.Fungible), Decimals: &tooMany,
	}); err == nil {
		t.Fatal("expected decimals above nine to be rejected")
	}

	if _, err := CreateInstruction(CreateV1{
		Authority: authority, Mint: decode.Pubkey(mint),
		AssetData: assetData(tokenmeta.Fungible), PrintSupply: &supply,
	}); err == nil {
		t.Fatal("expected a fungible print supply to be rejected")
	}

	nonZero := uint8(2)
	if _, err := CreateInstruction(CreateV1{
		Authority: authority, Mint: decode.Pubkey(mint),
		AssetData: assetData(tokenmeta.NonFungible), Decimals: &nonZero,
	}); err == nil {
		t.Fatal("expected non-zero decimals on a non-fungible to be rejected")
	}
}

func TestMintInstructionProgrammable(t *testing.T) {
	mint := solana.NewWallet().PublicKey()
	owner := solana.NewWallet().PublicKey()
	ruleSet := solana.NewWallet().PublicKey()
	standard := tokenmeta.ProgrammableNonFungible

	client := newClient()
	md, err := borsh.Serialize(decode.Metadata{
		Key:             tokenmeta.KeyMetadataV1,
		UpdateAuthority: solana.NewWallet().PublicKey(),
		Mint:            mint,
		Data:            tokenmeta.Data{Name: "Asset", Symbol: "AST", URI: "https://x"},
		TokenStandard:   &standard,
		ProgrammableConfig: &tokenmeta.ProgrammableConfig{
			V1: tokenmeta.ProgrammableConfigV1{RuleSet: &ruleSet},
		},
	})
	if err != nil {
		t.Fatalf("failed to serialize fixture: %v", err)
	}
	client.accounts[derive.Metadata(mint)] = md

	ix, err := MintInstruction(context.Background(), client, MintV1{
		Authority:  solana.NewWallet().PublicKey(),
		Mint:       decode.Pubkey(mint),
		TokenOwner: decode.Pubkey(owner),
		Amount:     1,
	})
	if err != nil {
		t.Fatalf("failed to assemble: %v", err)
	}

	data, _ := ix.Data()
	if data[0] != tokenmeta.IxMint || data[1] != 0 {
		t.Fatalf("unexpected encoding % d", data[:2])
	}

	metas := ix.Accounts()
	ata := derive.AssociatedToken(owner, mint)
	if !metas[0].PublicKey.Equals(ata) {
		t.Fatal("token slot must be the owner's associated account")
	}
	if !metas[4].PublicKey.Equals(derive.TokenRecord(mint, ata)) {
		t.Fatal("token record slot mismatch")
	}
	if !metas[13].PublicKey.Equals(tokenmeta.AuthRulesProgramID) || !metas[14].PublicKey.Equals(ruleSet) {
		t.Fatal("authorization slots must carry the rule set")
	}
}

func TestMintInstructionAmountRules(t *testing.T) {
	standard := tokenmeta.NonFungible
	if _, err := mintInstruction(MintV1{
		Authority:  solana.NewWallet().PublicKey(),
		Mint:       decode.Pubkey(solana.NewWallet().PublicKey()),
		TokenOwner: decode.Pubkey(solana.NewWallet().PublicKey()),
		Amount:     2,
	}, &standard, nil); err == nil {
		t.Fatal("expected a multi-token non-fungible mint to be rejected")
	}

	if _, err := mintInstruction(MintV1{
		Authority:  solana.NewWallet().PublicKey(),
		Mint:       decode.Pubkey(solana.NewWallet().PublicKey()),
		TokenOwner: decode.Pubkey(solana.NewWallet().PublicKey()),
	}, &standard, nil); err == nil {
		t.Fatal("expected a zero amount to be rejected")
	}

	fungible := tokenmeta.Fungible
	if _, err := mintInstruction(MintV1{
		Authority:  solana.NewWallet().PublicKey(),
		Mint:       decode.Pubkey(solana.NewWallet().PublicKey()),
		TokenOwner: decode.Pubkey(solana.NewWallet().PublicKey()),
		Amount:     1_000_000,
	}, &fungible, nil); err != nil {
		t.Fatalf("fungible mints take any positive amount: %v", err)
	}
}

func TestCreateAndMint(t *testing.T) {
	client := newClient()
	authority := solana.NewWallet().PrivateKey
	owner := solana.NewWallet().PublicKey()
	supply := tokenmeta.PrintSupplyZero()

	result, err := CreateAndMint(context.Background(), client, authority,
		assetData(tokenmeta.NonFungible), &supply, owner, 1)
	if err != nil {
		t.Fatalf("failed to create and mint: %v", err)
	}
	if result.Mint == (solana.PublicKey{}) {
		t.Fatal("expected a fresh mint in the result")
	}

	message := client.lastSent.Message
	if len(message.Instructions) != 2 {
		t.Fatalf("expected create and mint in one transaction, got %d instructions", len(message.Instructions))
	}
	if message.Instructions[0].Data[0] != tokenmeta.IxCreate || message.Instructions[1].Data[0] != tokenmeta.IxMint {
		t.Fatal("instruction order mismatch")
	}
}

func TestNFTLegacySequence(t *testing.T) {
	client := newClient()
	authority := solana.NewWallet().PrivateKey

	result, err := NFT(context.Background(), client, authority, tokenmeta.DataV2{
		Name:   "Legacy",
		Symbol: "LGC",
		URI:    "https://x",
	}, nil)
	if err != nil {
		t.Fatalf("failed to mint: %v", err)
	}
	if result.Mint == (solana.PublicKey{}) {
		t.Fatal("expected a fresh mint in the result")
	}

	message := client.lastSent.Message
	if len(message.Instructions) != 6 {
		t.Fatalf("expected 6 instructions, got %d", len(message.Instructions))
	}
	programs := make([]solana.PublicKey, 0, 6)
	for _, ci := range message.Instructions {
		programs = append(programs, message.AccountKeys[ci.ProgramIDIndex])
	}
	want := []solana.PublicKey{
		solana.SystemProgramID,
		solana.TokenProgramID,
		solana.SPLAssociatedTokenAccountProgramID,
		solana.TokenProgramID,
		tokenmeta.ProgramID,
		tokenmeta.ProgramID,
	}
	for i, program := range want {
		if !programs[i].Equals(program) {
			t.Fatalf("instruction %d ran %s, want %s", i, programs[i], program)
		}
	}
	if message.Instructions[4].Data[0] != tokenmeta.IxCreateMetadataAccountV3 {
		t.Fatal("fifth instruction must create the metadata account")
	}
	if message.Instructions[5].Data[0] != tokenmeta.IxCreateMasterEditionV3 {
		t.Fatal("sixth instruction must create the master edition")
	}
}
