// Package service implements wallet-side chain reads: coin selection for
// payments and the owned-NFT listing backing the reward picker.
package service

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"raffle-tool-backend/internal/common/errors"
	"raffle-tool-backend/internal/features/wallet/models"
	"raffle-tool-backend/internal/platform/sui"
)

// ChainReader is the fullnode surface the wallet service consumes.
type ChainReader interface {
	GetCoins(ctx context.Context, owner, coinType string) ([]sui.Coin, error)
	GetOwnedObjects(ctx context.Context, owner, structType string) ([]sui.ObjectData, error)
}

type Service struct {
	chain  ChainReader
	logger *zap.Logger
}

func NewService(chain ChainReader, logger *zap.Logger) *Service {
	return &Service{chain: chain, logger: logger}
}

// PrepareCoin appends the coin-handling commands that produce a single coin
// argument worth exactly amount of coinType, usable as a payment in the same
// transaction. For the native coin the amount is split straight off the gas
// coin. For any other coin type the owner's non-empty coins are merged into
// one and the amount split off; the merge mutates the first coin but the
// wallet resolves object versions at signing time, so this is safe.
func (s *Service) PrepareCoin(ctx context.Context, tx *sui.Transaction, owner, coinType string, amount uint64) (sui.Argument, error) {
	if sui.IsNativeCoin(coinType) {
		return tx.SplitCoins(tx.Gas(), tx.PureU64(amount)), nil
	}

	coins, err := s.chain.GetCoins(ctx, owner, coinType)
	if err != nil {
		return sui.Argument{}, errors.NewRPCError("suix_getCoins", err)
	}

	usable := coins[:0]
	var total uint64
	for _, coin := range coins {
		if coin.Balance == 0 {
			continue
		}
		usable = append(usable, coin)
		total += uint64(coin.Balance)
	}

	if len(usable) == 0 {
		return sui.Argument{}, errors.NewNoCoinsError(owner, coinType)
	}
	if total < amount {
		return sui.Argument{}, errors.NewInsufficientFundsError(coinType, amount, total)
	}

	primary := tx.Object(usable[0].CoinObjectID)
	if len(usable) > 1 {
		rest := make([]sui.Argument, 0, len(usable)-1)
		for _, coin := range usable[1:] {
			rest = append(rest, tx.Object(coin.CoinObjectID))
		}
		tx.MergeCoins(primary, rest...)
	}

	s.logger.Debug("prepared payment coin",
		zap.String("coin_type", coinType),
		zap.Int("coins_used", len(usable)),
		zap.Uint64("amount", amount))

	return tx.SplitCoins(primary, tx.PureU64(amount)), nil
}

// OwnedNFTs lists the owner's NFTs. Coin objects are excluded; everything
// else with move content qualifies. Struct fields win over display metadata
// when both carry a value.
func (s *Service) OwnedNFTs(ctx context.Context, owner string) ([]models.NFT, error) {
	objects, err := s.chain.GetOwnedObjects(ctx, owner, "")
	if err != nil {
		return nil, errors.NewRPCError("suix_getOwnedObjects", err)
	}

	nfts := make([]models.NFT, 0, len(objects))
	for _, obj := range objects {
		if obj.Content == nil || obj.Content.DataType != "moveObject" {
			continue
		}
		objType := obj.Content.Type
		if objType == "" {
			objType = obj.Type
		}
		if isCoinType(objType) {
			continue
		}
		nfts = append(nfts, decodeNFT(obj, objType))
	}
	return nfts, nil
}

func isCoinType(objType string) bool {
	return strings.HasPrefix(objType, "0x2::coin::Coin<") ||
		strings.Contains(objType, "::coin::Coin<")
}

// nftFields is the metadata convention most NFT contracts follow. The url
// variants cover collections that name the image field differently.
type nftFields struct {
	ID       json.RawMessage `json:"id"`
	Name     string          `json:"name"`
	Desc     string          `json:"description"`
	ImageURL string          `json:"image_url"`
	URL      string          `json:"url"`
}

func decodeNFT(obj sui.ObjectData, objType string) models.NFT {
	nft := models.NFT{
		ID:   obj.ObjectID,
		Type: objType,
		Name: "Unknown NFT",
	}

	var fields nftFields
	if len(obj.Content.Fields) > 0 {
		_ = json.Unmarshal(obj.Content.Fields, &fields)
	}
	if fields.Name != "" {
		nft.Name = fields.Name
	}
	nft.Description = fields.Desc
	nft.ImageURL = fields.ImageURL
	if nft.ImageURL == "" {
		nft.ImageURL = fields.URL
	}

	if obj.Display != nil {
		if nft.Name == "Unknown NFT" && obj.Display.Data["name"] != "" {
			nft.Name = obj.Display.Data["name"]
		}
		if nft.Description == "" {
			nft.Description = obj.Display.Data["description"]
		}
		if nft.ImageURL == "" {
			nft.ImageURL = obj.Display.Data["image_url"]
		}
	}
	return nft
}
