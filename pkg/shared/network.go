package shared

import (
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go/rpc"
)

const (
	ClusterMainnet  = "mainnet-beta"
	ClusterDevnet   = "devnet"
	ClusterTestnet  = "testnet"
	ClusterLocalnet = "localnet"
)

// NormalizeCluster maps the common spellings of a cluster name onto the
// canonical one. An empty input selects devnet.
func NormalizeCluster(cluster string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(cluster))
	if normalized == "" {
		return ClusterDevnet, nil
	}

	switch normalized {
	case "mainnet", "mainnet-beta":
		return ClusterMainnet, nil
	case ClusterDevnet, ClusterTestnet, ClusterLocalnet:
		return normalized, nil
	default:
		return "", fmt.Errorf("unsupported cluster %q", cluster)
	}
}

// ClusterEndpoint returns the public RPC endpoint of a cluster.
func ClusterEndpoint(cluster string) (string, error) {
	normalized, err := NormalizeCluster(cluster)
	if err != nil {
		return "", err
	}

	switch normalized {
	case ClusterMainnet:
		return rpc.MainNetBeta_RPC, nil
	case ClusterTestnet:
		return rpc.TestNet_RPC, nil
	case ClusterLocalnet:
		return rpc.LocalNet_RPC, nil
	default:
		return rpc.DevNet_RPC, nil
	}
}

// NewRPCClient creates an RPC client for the given cluster.
func NewRPCClient(cluster string) (*rpc.Client, error) {
	endpoint, err := ClusterEndpoint(cluster)
	if err != nil {
		return nil, err
	}
	return rpc.New(endpoint), nil
}
