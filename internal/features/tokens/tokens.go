// Package tokens carries the configured token sets and the mock-token mint
// builders used by the development deployment.
package tokens

import (
	"strings"

	"raffle-tool-backend/internal/common/config"
	"raffle-tool-backend/internal/platform/sui"
)

// Decimal exponents for amount presentation. Amounts everywhere else in the
// service stay in the token's smallest unit.
const (
	SuiDecimals = 9
	USDDecimals = 6
)

// Token is a display name paired with its fully-qualified on-chain type.
type Token struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Registry is the active token set. Built once at startup from config;
// nothing reads the mock/production switch after that.
type Registry struct {
	tokens []Token
}

// NewRegistry selects the mock or production token set. The mock set takes
// its coin types from the deployed-addresses document, falling back to the
// conventional module paths under the deployed package.
func NewRegistry(useMock bool, addrs *config.DeployedAddresses) *Registry {
	if !useMock {
		return &Registry{tokens: []Token{
			{Name: "SUI", Address: sui.NativeCoinType},
			{Name: "USDT", Address: "0x375f70cf2ae4c00bf37117d0c85a2c71545e6ee05c4a5c7d282cd66a4504b068::usdt::USDT"},
			{Name: "USDC", Address: "0xdba34672e30cb065b1f93e3ab55318768fd6fef66c15942c9f7cb846e2f900e7::usdc::USDC"},
		}}
	}

	usdtType := addrs.MockUSDTType
	if usdtType == "" {
		usdtType = addrs.PackageID + "::mock_usdt::MOCK_USDT"
	}
	usdcType := addrs.MockUSDCType
	if usdcType == "" {
		usdcType = addrs.PackageID + "::mock_usdc::MOCK_USDC"
	}

	return &Registry{tokens: []Token{
		{Name: "SUI", Address: sui.NativeCoinType},
		{Name: "USDT (Mock)", Address: usdtType},
		{Name: "USDC (Mock)", Address: usdcType},
	}}
}

// Tokens returns the active token set in display order.
func (r *Registry) Tokens() []Token {
	return r.tokens
}

// NameFor resolves a coin type to its display name, empty when unknown.
func (r *Registry) NameFor(coinType string) string {
	for _, t := range r.tokens {
		if t.Address == coinType {
			return t.Name
		}
	}
	return ""
}

// Decimals returns the decimal exponent used to present amounts of a coin
// type. Unknown types use the USD convention.
func (r *Registry) Decimals(coinType string) int {
	if sui.IsNativeCoin(coinType) {
		return SuiDecimals
	}
	return USDDecimals
}

// FormatTypeForDisplay shortens the address part of a type string for UI
// rendering: 0x123456...abcd::module::Name.
func FormatTypeForDisplay(typeName string) string {
	parts := strings.Split(typeName, "::")
	if len(parts) < 2 {
		return typeName
	}

	address := parts[0]
	if len(address) > 10 {
		address = address[:6] + "..." + address[len(address)-4:]
	}

	return address + "::" + strings.Join(parts[1:], "::")
}

// MintBuilder builds mint transactions for the mock treasuries. Only the
// development deployment publishes the mock coin modules.
type MintBuilder struct {
	packageID    string
	usdtTreasury string
	usdcTreasury string
}

func NewMintBuilder(addrs *config.DeployedAddresses) *MintBuilder {
	return &MintBuilder{
		packageID:    addrs.PackageID,
		usdtTreasury: addrs.MockUSDTTreasury,
		usdcTreasury: addrs.MockUSDCTreasury,
	}
}

// MintMockUSDT builds a mint of amount (smallest units) to recipient.
func (b *MintBuilder) MintMockUSDT(amount uint64, recipient string) *sui.Transaction {
	tx := sui.NewTransaction()
	tx.MoveCall(b.packageID+"::mock_usdt::mint", nil,
		tx.Object(b.usdtTreasury),
		tx.PureU64(amount),
		tx.PureAddress(recipient),
	)
	return tx
}

// MintMockUSDC builds a mint of amount (smallest units) to recipient.
func (b *MintBuilder) MintMockUSDC(amount uint64, recipient string) *sui.Transaction {
	tx := sui.NewTransaction()
	tx.MoveCall(b.packageID+"::mock_usdc::mint", nil,
		tx.Object(b.usdcTreasury),
		tx.PureU64(amount),
		tx.PureAddress(recipient),
	)
	return tx
}

// MintTestTokens mints both mock tokens to recipient in one transaction.
func (b *MintBuilder) MintTestTokens(usdtAmount, usdcAmount uint64, recipient string) *sui.Transaction {
	tx := sui.NewTransaction()
	tx.MoveCall(b.packageID+"::mock_usdt::mint", nil,
		tx.Object(b.usdtTreasury),
		tx.PureU64(usdtAmount),
		tx.PureAddress(recipient),
	)
	tx.MoveCall(b.packageID+"::mock_usdc::mint", nil,
		tx.Object(b.usdcTreasury),
		tx.PureU64(usdcAmount),
		tx.PureAddress(recipient),
	)
	return tx
}
