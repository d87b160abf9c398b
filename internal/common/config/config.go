package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port   int    `env:"PORT" envDefault:"8080"`
		Origin string `env:"ORIGIN" envDefault:"http://localhost:3000"`
	}

	Redis struct {
		Host     string `env:"REDIS_HOST" envDefault:"localhost"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`

		// Disabled means the service runs without a cache and every read
		// goes straight to the fullnode.
		Disabled bool `env:"REDIS_DISABLED" envDefault:"false"`
	}

	Sui struct {
		RPCURL        string `env:"SUI_RPC_URL" envDefault:"https://fullnode.testnet.sui.io:443"`
		AddressesFile string `env:"DEPLOYED_ADDRESSES_FILE" envDefault:"deployed_addresses.json"`

		// UseMockTokens selects the mock token set minted by the deployment
		// tooling instead of the production USDT/USDC types.
		UseMockTokens bool `env:"USE_MOCK_TOKENS" envDefault:"false"`

		// SettleDelay is the heuristic wait between a submitted mutation and
		// the cache refresh that re-reads the ledger. Not a confirmation.
		SettleDelay time.Duration `env:"SETTLE_DELAY" envDefault:"2s"`

		CacheTTL time.Duration `env:"RAFFLE_CACHE_TTL" envDefault:"10s"`
	}
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		// No .env file is fine; production sets variables directly.
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}

	return cfg
}

// DeployedAddresses maps logical contract names to on-chain identifiers.
// The file is written by the deployment tooling; every chain-touching
// feature depends on it, so a missing or unreadable file is fatal.
type DeployedAddresses struct {
	PackageID         string `json:"PACKAGE_ID"`
	AdminCap          string `json:"ADMIN_CAP"`
	WhitelistRegistry string `json:"WHITELIST_REGISTRY"`

	MockUSDTTreasury string `json:"MOCK_USDT_TREASURY,omitempty"`
	MockUSDCTreasury string `json:"MOCK_USDC_TREASURY,omitempty"`
	MockUSDTType     string `json:"MOCK_USDT_TYPE,omitempty"`
	MockUSDCType     string `json:"MOCK_USDC_TYPE,omitempty"`
}

// LoadDeployedAddresses reads and validates the deployed-addresses document.
func LoadDeployedAddresses(path string) (*DeployedAddresses, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deployed addresses %s: %w", path, err)
	}

	addrs := &DeployedAddresses{}
	if err := json.Unmarshal(data, addrs); err != nil {
		return nil, fmt.Errorf("parse deployed addresses %s: %w", path, err)
	}

	if addrs.PackageID == "" {
		return nil, fmt.Errorf("deployed addresses %s: missing PACKAGE_ID", path)
	}
	if addrs.WhitelistRegistry == "" {
		return nil, fmt.Errorf("deployed addresses %s: missing WHITELIST_REGISTRY", path)
	}

	return addrs, nil
}
