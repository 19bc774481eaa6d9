package shared

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/gagliardetto/solana-go"
)

type OperatorConfig struct {
	Keypair string
	RPCURL  string
	Cluster string
}

var dotenvLoadOnce sync.Once

// OperatorConfigFromEnv loads operator settings from the environment,
// falling back to the nearest .env file. Cluster-scoped variables
// (MAINNET_SOLANA_KEYPAIR and friends) override the generic ones.
func OperatorConfigFromEnv() (OperatorConfig, error) {
	loadDotEnvIfPresent()

	cluster := firstNonEmptyEnv("SOLANA_CLUSTER", "CLUSTER")
	normalized, err := NormalizeCluster(cluster)
	if err != nil {
		return OperatorConfig{}, err
	}

	keypair := firstNonEmptyEnv("SOLANA_KEYPAIR", "SOLANA_PRIVATE_KEY", "KEYPAIR")
	rpcURL := firstNonEmptyEnv("SOLANA_RPC_URL", "RPC_URL")

	switch normalized {
	case ClusterMainnet:
		if scopedKey := firstNonEmptyEnv("MAINNET_SOLANA_KEYPAIR", "MAINNET_KEYPAIR"); scopedKey != "" {
			keypair = scopedKey
		}
		if scopedURL := firstNonEmptyEnv("MAINNET_SOLANA_RPC_URL", "MAINNET_RPC_URL"); scopedURL != "" {
			rpcURL = scopedURL
		}
	case ClusterDevnet:
		if scopedKey := firstNonEmptyEnv("DEVNET_SOLANA_KEYPAIR", "DEVNET_KEYPAIR"); scopedKey != "" {
			keypair = scopedKey
		}
		if scopedURL := firstNonEmptyEnv("DEVNET_SOLANA_RPC_URL", "DEVNET_RPC_URL"); scopedURL != "" {
			rpcURL = scopedURL
		}
	}

	if rpcURL == "" {
		rpcURL, err = ClusterEndpoint(normalized)
		if err != nil {
			return OperatorConfig{}, err
		}
	}
	if keypair == "" {
		return OperatorConfig{}, fmt.Errorf("SOLANA_KEYPAIR is required")
	}

	return OperatorConfig{
		Keypair: keypair,
		RPCURL:  rpcURL,
		Cluster: normalized,
	}, nil
}

func loadDotEnvIfPresent() {
	dotenvLoadOnce.Do(func() {
		startPaths := make([]string, 0, 2)

		if cwd, err := os.Getwd(); err == nil {
			startPaths = append(startPaths, cwd)
		}
		if _, currentFile, _, ok := runtime.Caller(0); ok {
			startPaths = append(startPaths, filepath.Dir(currentFile))
		}

		seenCandidates := make(map[string]struct{})
		for _, start := range startPaths {
			current := start
			for {
				candidate := filepath.Join(current, ".env")
				if _, exists := seenCandidates[candidate]; !exists {
					seenCandidates[candidate] = struct{}{}
					if _, statErr := os.Stat(candidate); statErr == nil {
						loadDotEnvFile(candidate)
						return
					}
				}

				parent := filepath.Dir(current)
				if parent == current {
					break
				}
				current = parent
			}
		}
	})
}

func loadDotEnvFile(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	loadedAny := false
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "export ") {
			line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		}

		separator := strings.Index(line, "=")
		if separator <= 0 {
			continue
		}

		key := strings.TrimSpace(line[:separator])
		if !isValidEnvKey(key) {
			continue
		}
		if _, alreadySet := os.LookupEnv(key); alreadySet {
			continue
		}

		value := strings.TrimSpace(line[separator+1:])
		if len(value) >= 2 {
			first := value[0]
			last := value[len(value)-1]
			if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
				value = value[1 : len(value)-1]
			}
		}

		if setErr := os.Setenv(key, value); setErr == nil {
			loadedAny = true
		}
	}

	return loadedAny
}

func isValidEnvKey(key string) bool {
	if key == "" {
		return false
	}
	for index, character := range key {
		if (character >= 'A' && character <= 'Z') ||
			(character >= 'a' && character <= 'z') ||
			(index > 0 && character >= '0' && character <= '9') ||
			character == '_' {
			continue
		}
		return false
	}
	return true
}

func firstNonEmptyEnv(keys ...string) string {
	for _, key := range keys {
		value := strings.TrimSpace(os.Getenv(key))
		if value != "" {
			return value
		}
	}
	return ""
}

// ParsePrivateKey accepts a keypair as base58 or as the JSON byte array
// produced by solana-keygen.
func ParsePrivateKey(raw string) (solana.PrivateKey, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return nil, fmt.Errorf("private key cannot be empty")
	}

	if strings.HasPrefix(candidate, "[") {
		// solana-keygen writes the key as a JSON array of numbers, not
		// the base64 string encoding/json expects for []byte.
		var values []int
		if err := json.Unmarshal([]byte(candidate), &values); err != nil {
			return nil, fmt.Errorf("failed to parse keypair JSON array: %w", err)
		}
		if len(values) != 64 {
			return nil, fmt.Errorf("keypair array must hold 64 bytes, got %d", len(values))
		}
		bytes := make([]byte, len(values))
		for i, value := range values {
			if value < 0 || value > 255 {
				return nil, fmt.Errorf("keypair array entry %d out of byte range: %d", i, value)
			}
			bytes[i] = byte(value)
		}
		return solana.PrivateKey(bytes), nil
	}

	key, err := solana.PrivateKeyFromBase58(candidate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base58 private key: %w", err)
	}
	return key, nil
}
