package models

// NFT is a wallet-owned NFT as shown in the reward picker. Metadata comes
// from the object's struct fields, with display metadata as a fallback.
type NFT struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}
