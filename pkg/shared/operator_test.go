package shared

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gagliardetto/solana-go"
)

var operatorEnvKeys = []string{
	"SOLANA_CLUSTER",
	"CLUSTER",
	"SOLANA_KEYPAIR",
	"SOLANA_PRIVATE_KEY",
	"KEYPAIR",
	"SOLANA_RPC_URL",
	"RPC_URL",
	"MAINNET_SOLANA_KEYPAIR",
	"MAINNET_KEYPAIR",
	"MAINNET_SOLANA_RPC_URL",
	"MAINNET_RPC_URL",
	"DEVNET_SOLANA_KEYPAIR",
	"DEVNET_KEYPAIR",
	"DEVNET_SOLANA_RPC_URL",
	"DEVNET_RPC_URL",
}

func testKeypair(t *testing.T) string {
	t.Helper()
	return solana.NewWallet().PrivateKey.String()
}

func resetOperatorEnv(t *testing.T) {
	t.Helper()
	dotenvLoadOnce = sync.Once{}
	dotenvLoadOnce.Do(func() {})
	for _, key := range operatorEnvKeys {
		t.Setenv(key, "")
	}
}

func TestIsValidEnvKey(t *testing.T) {
	valid := []string{
		"A", "ABC", "a_b", "MY_VAR", "foo_bar", "A1", "A_1_B",
		"SOLANA_CLUSTER", "_LEADING_UNDERSCORE",
	}
	for _, key := range valid {
		if !isValidEnvKey(key) {
			t.Fatalf("expected %q to be valid", key)
		}
	}
}

func TestIsValidEnvKeyInvalid(t *testing.T) {
	invalid := []string{
		"", "1ABC", "A B", "A-B", "A.B", "A=B",
	}
	for _, key := range invalid {
		if isValidEnvKey(key) {
			t.Fatalf("expected %q to be invalid", key)
		}
	}
}

func TestFirstNonEmptyEnv(t *testing.T) {
	os.Setenv("_TEST_FIRST_A", "")
	os.Setenv("_TEST_FIRST_B", "hello")
	defer os.Unsetenv("_TEST_FIRST_A")
	defer os.Unsetenv("_TEST_FIRST_B")

	result := firstNonEmptyEnv("_TEST_FIRST_A", "_TEST_FIRST_B")
	if result != "hello" {
		t.Fatalf("expected 'hello', got %q", result)
	}
}

func TestFirstNonEmptyEnvAllEmpty(t *testing.T) {
	result := firstNonEmptyEnv("_TEST_NONEXISTENT_1", "_TEST_NONEXISTENT_2")
	if result != "" {
		t.Fatalf("expected empty string, got %q", result)
	}
}

func TestFirstNonEmptyEnvTrimsWhitespace(t *testing.T) {
	os.Setenv("_TEST_WS", "   ")
	defer os.Unsetenv("_TEST_WS")

	result := firstNonEmptyEnv("_TEST_WS")
	if result != "" {
		t.Fatalf("expected empty string for whitespace-only, got %q", result)
	}
}

func TestParsePrivateKeyEmpty(t *testing.T) {
	_, err := ParsePrivateKey("")
	if err == nil {
		t.Fatal("expected error for empty key")
	}
}

func TestParsePrivateKeyWhitespace(t *testing.T) {
	_, err := ParsePrivateKey("   ")
	if err == nil {
		t.Fatal("expected error for whitespace key")
	}
}

func TestParsePrivateKeyInvalid(t *testing.T) {
	_, err := ParsePrivateKey("notavalidkey!!!")
	if err == nil {
		t.Fatal("expected error for invalid key")
	}
}

func TestParsePrivateKeyBase58(t *testing.T) {
	wallet := solana.NewWallet()
	key, err := ParsePrivateKey(wallet.PrivateKey.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !key.PublicKey().Equals(wallet.PublicKey()) {
		t.Fatal("parsed key does not match the source wallet")
	}
}

func TestParsePrivateKeyJSONArray(t *testing.T) {
	// the solana-keygen format: a bracketed list of decimal bytes
	wallet := solana.NewWallet()
	values := make([]int, len(wallet.PrivateKey))
	for i, b := range wallet.PrivateKey {
		values[i] = int(b)
	}
	raw, err := json.Marshal(values)
	if err != nil {
		t.Fatalf("failed to marshal keypair: %v", err)
	}
	if raw[0] != '[' {
		t.Fatalf("fixture must be a JSON array, got %s", raw[:1])
	}

	key, err := ParsePrivateKey(string(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !key.PublicKey().Equals(wallet.PublicKey()) {
		t.Fatal("parsed key does not match the source wallet")
	}
}

func TestParsePrivateKeyJSONArrayWrongLength(t *testing.T) {
	_, err := ParsePrivateKey("[1,2,3]")
	if err == nil {
		t.Fatal("expected error for short keypair array")
	}
}

func TestParsePrivateKeyJSONArrayOutOfRange(t *testing.T) {
	values := make([]int, 64)
	values[17] = 300
	raw, err := json.Marshal(values)
	if err != nil {
		t.Fatalf("failed to marshal fixture: %v", err)
	}
	if _, err := ParsePrivateKey(string(raw)); err == nil {
		t.Fatal("expected error for an entry outside byte range")
	}
}

func TestOperatorConfigFromEnvMissingKeypair(t *testing.T) {
	resetOperatorEnv(t)
	t.Setenv("SOLANA_CLUSTER", "devnet")

	_, err := OperatorConfigFromEnv()
	if err == nil {
		t.Fatal("expected error for missing keypair")
	}
}

func TestOperatorConfigFromEnvSuccessDevnet(t *testing.T) {
	resetOperatorEnv(t)
	keypair := testKeypair(t)
	t.Setenv("SOLANA_CLUSTER", "devnet")
	t.Setenv("SOLANA_KEYPAIR", keypair)

	config, err := OperatorConfigFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Keypair != keypair {
		t.Fatalf("expected keypair %q, got %q", keypair, config.Keypair)
	}
	if config.Cluster != ClusterDevnet {
		t.Fatalf("expected cluster 'devnet', got %q", config.Cluster)
	}
	if config.RPCURL == "" {
		t.Fatal("expected a default RPC URL")
	}
}

func TestOperatorConfigFromEnvScopedMainnet(t *testing.T) {
	resetOperatorEnv(t)
	scoped := testKeypair(t)
	t.Setenv("SOLANA_CLUSTER", "mainnet")
	t.Setenv("SOLANA_KEYPAIR", testKeypair(t))
	t.Setenv("MAINNET_SOLANA_KEYPAIR", scoped)
	t.Setenv("MAINNET_SOLANA_RPC_URL", "https://rpc.example.com")

	config, err := OperatorConfigFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Keypair != scoped {
		t.Fatal("expected the mainnet-scoped keypair to win")
	}
	if config.RPCURL != "https://rpc.example.com" {
		t.Fatalf("expected scoped RPC URL, got %q", config.RPCURL)
	}
}

func TestOperatorConfigFromEnvDefaultCluster(t *testing.T) {
	resetOperatorEnv(t)
	t.Setenv("SOLANA_KEYPAIR", testKeypair(t))

	config, err := OperatorConfigFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Cluster != ClusterDevnet {
		t.Fatalf("expected default cluster 'devnet', got %q", config.Cluster)
	}
}

func TestOperatorConfigFromEnvBadCluster(t *testing.T) {
	resetOperatorEnv(t)
	t.Setenv("SOLANA_CLUSTER", "badnet")
	t.Setenv("SOLANA_KEYPAIR", testKeypair(t))

	if _, err := OperatorConfigFromEnv(); err == nil {
		t.Fatal("expected error for unsupported cluster")
	}
}

func TestLoadDotEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("_TEST_DOTENV_LOAD=loaded_value\n"), 0644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	defer os.Unsetenv("_TEST_DOTENV_LOAD")

	result := loadDotEnvFile(envPath)
	if !result {
		t.Fatal("expected loadDotEnvFile to return true")
	}
	if os.Getenv("_TEST_DOTENV_LOAD") != "loaded_value" {
		t.Fatalf("expected 'loaded_value', got %q", os.Getenv("_TEST_DOTENV_LOAD"))
	}
}

func TestLoadDotEnvFileSkipsComments(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env-comments")
	content := "# comment\n\n_TEST_DOTENV_COMMENT=yes\nexport _TEST_DOTENV_EXPORT=exported\n"
	if err := os.WriteFile(envPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	defer os.Unsetenv("_TEST_DOTENV_COMMENT")
	defer os.Unsetenv("_TEST_DOTENV_EXPORT")

	result := loadDotEnvFile(envPath)
	if !result {
		t.Fatal("expected loadDotEnvFile to return true")
	}
	if os.Getenv("_TEST_DOTENV_COMMENT") != "yes" {
		t.Fatalf("expected 'yes', got %q", os.Getenv("_TEST_DOTENV_COMMENT"))
	}
	if os.Getenv("_TEST_DOTENV_EXPORT") != "exported" {
		t.Fatalf("expected 'exported', got %q", os.Getenv("_TEST_DOTENV_EXPORT"))
	}
}

func TestLoadDotEnvFileStripsQuotes(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env-quotes")
	content := "_TEST_DOTENV_DQ=\"double-quoted\"\n_TEST_DOTENV_SQ='single-quoted'\n"
	if err := os.WriteFile(envPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	defer os.Unsetenv("_TEST_DOTENV_DQ")
	defer os.Unsetenv("_TEST_DOTENV_SQ")

	result := loadDotEnvFile(envPath)
	if !result {
		t.Fatal("expected loadDotEnvFile to return true")
	}
	if os.Getenv("_TEST_DOTENV_DQ") != "double-quoted" {
		t.Fatalf("expected 'double-quoted', got %q", os.Getenv("_TEST_DOTENV_DQ"))
	}
	if os.Getenv("_TEST_DOTENV_SQ") != "single-quoted" {
		t.Fatalf("expected 'single-quoted', got %q", os.Getenv("_TEST_DOTENV_SQ"))
	}
}

func TestLoadDotEnvFileSkipsAlreadySet(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env-skip")
	os.Setenv("_TEST_DOTENV_PREEXIST", "original")
	content := "_TEST_DOTENV_PREEXIST=overridden\n"
	if err := os.WriteFile(envPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	defer os.Unsetenv("_TEST_DOTENV_PREEXIST")

	loadDotEnvFile(envPath)
	if os.Getenv("_TEST_DOTENV_PREEXIST") != "original" {
		t.Fatalf("expected 'original' (not overridden), got %q", os.Getenv("_TEST_DOTENV_PREEXIST"))
	}
}

func TestLoadDotEnvFileSkipsInvalidKeys(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env-invalid-keys")
	content := "1BAD=value\n=nokey\n"
	if err := os.WriteFile(envPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}

	result := loadDotEnvFile(envPath)
	if result {
		t.Fatal("expected loadDotEnvFile to return false for invalid keys")
	}
	if _, exists := os.LookupEnv("1BAD"); exists {
		t.Fatal("expected invalid key 1BAD to remain unset")
	}
}

func TestLoadDotEnvFileNonexistent(t *testing.T) {
	result := loadDotEnvFile("/tmp/_nonexistent_test_env_file_12345")
	if result {
		t.Fatal("expected loadDotEnvFile to return false for nonexistent file")
	}
}
