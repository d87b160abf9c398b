package models

// WhitelistRegistry is the read projection of the shared registry object
// gating which coin and NFT types may back raffles.
type WhitelistRegistry struct {
	ID               string   `json:"id"`
	Admin            string   `json:"admin"`
	WhitelistedCoins []string `json:"whitelisted_coins"`
	WhitelistedNFTs  []string `json:"whitelisted_nfts"`
}

// HasCoin reports whether a coin type is whitelisted.
func (r *WhitelistRegistry) HasCoin(coinType string) bool {
	return contains(r.WhitelistedCoins, coinType)
}

// HasNFT reports whether an NFT type is whitelisted.
func (r *WhitelistRegistry) HasNFT(nftType string) bool {
	return contains(r.WhitelistedNFTs, nftType)
}

func contains(list []string, v string) bool {
	for _, entry := range list {
		if entry == v {
			return true
		}
	}
	return false
}
