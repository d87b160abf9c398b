// Package service reads the whitelist registry and builds the admin-gated
// transactions that mutate it.
package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"raffle-tool-backend/internal/common/cache"
	"raffle-tool-backend/internal/common/errors"
	"raffle-tool-backend/internal/features/whitelist/models"
	"raffle-tool-backend/internal/platform/sui"
)

const registryCacheKey = "whitelist_registry"

// ChainReader is the fullnode surface the whitelist service consumes.
type ChainReader interface {
	GetObject(ctx context.Context, objectID string) (*sui.ObjectData, error)
	GetOwnedObjects(ctx context.Context, owner, structType string) ([]sui.ObjectData, error)
}

type Service struct {
	chain      ChainReader
	cache      *cache.CacheService
	cacheTTL   time.Duration
	packageID  string
	registryID string
	logger     *zap.Logger
}

func NewService(chain ChainReader, cacheService *cache.CacheService, cacheTTL time.Duration, packageID, registryID string, logger *zap.Logger) *Service {
	return &Service{
		chain:      chain,
		cache:      cacheService,
		cacheTTL:   cacheTTL,
		packageID:  packageID,
		registryID: registryID,
		logger:     logger,
	}
}

// registryFields is the move schema of the registry object.
type registryFields struct {
	Admin            string   `json:"admin"`
	WhitelistedCoins []string `json:"whitelisted_coins"`
	WhitelistedNFTs  []string `json:"whitelisted_nfts"`
}

// GetRegistry fetches the whitelist registry projection. A registry object
// with unexpected content yields (nil, nil): creation pages render without
// the whitelist rather than failing on a stale deployment.
func (s *Service) GetRegistry(ctx context.Context) (*models.WhitelistRegistry, error) {
	var registry *models.WhitelistRegistry
	err := s.cache.GetOrSet(ctx, registryCacheKey, &registry, s.cacheTTL, func() (interface{}, error) {
		return s.fetchRegistry(ctx)
	})
	if err != nil {
		return nil, err
	}
	return registry, nil
}

func (s *Service) fetchRegistry(ctx context.Context) (*models.WhitelistRegistry, error) {
	obj, err := s.chain.GetObject(ctx, s.registryID)
	if err != nil {
		return nil, errors.NewRPCError("sui_getObject", err)
	}
	if obj.Content == nil || obj.Content.DataType != "moveObject" {
		s.logger.Warn("whitelist registry has no move content", zap.String("object_id", s.registryID))
		return nil, nil
	}

	var fields registryFields
	if err := json.Unmarshal(obj.Content.Fields, &fields); err != nil {
		s.logger.Warn("whitelist registry fields undecodable", zap.Error(err))
		return nil, nil
	}

	registry := &models.WhitelistRegistry{
		ID:               obj.ObjectID,
		Admin:            fields.Admin,
		WhitelistedCoins: fields.WhitelistedCoins,
		WhitelistedNFTs:  fields.WhitelistedNFTs,
	}
	if registry.WhitelistedCoins == nil {
		registry.WhitelistedCoins = []string{}
	}
	if registry.WhitelistedNFTs == nil {
		registry.WhitelistedNFTs = []string{}
	}
	return registry, nil
}

// IsAdmin reports whether the address is the registry admin.
func (s *Service) IsAdmin(ctx context.Context, address string) (bool, error) {
	registry, err := s.GetRegistry(ctx)
	if err != nil {
		return false, err
	}
	return registry != nil && registry.Admin == address, nil
}

// FindAdminCap locates the admin capability object owned by the address.
func (s *Service) FindAdminCap(ctx context.Context, owner string) (string, error) {
	caps, err := s.chain.GetOwnedObjects(ctx, owner, s.packageID+"::raffles::AdminCap")
	if err != nil {
		return "", errors.NewRPCError("suix_getOwnedObjects", err)
	}
	if len(caps) == 0 {
		return "", errors.NewNoAdminCapError(owner)
	}
	return caps[0].ObjectID, nil
}

// AddCoin builds the add_coin_to_whitelist call for the sender's admin cap.
func (s *Service) AddCoin(ctx context.Context, sender, coinType string) (*sui.Transaction, error) {
	return s.mutate(ctx, sender, "add_coin_to_whitelist", normalizeCoinType(coinType))
}

// RemoveCoin builds the remove_coin_from_whitelist call.
func (s *Service) RemoveCoin(ctx context.Context, sender, coinType string) (*sui.Transaction, error) {
	return s.mutate(ctx, sender, "remove_coin_from_whitelist", normalizeCoinType(coinType))
}

// AddNFT builds the add_nft_to_whitelist call.
func (s *Service) AddNFT(ctx context.Context, sender, nftType string) (*sui.Transaction, error) {
	return s.mutate(ctx, sender, "add_nft_to_whitelist", nftType)
}

// RemoveNFT builds the remove_nft_from_whitelist call.
func (s *Service) RemoveNFT(ctx context.Context, sender, nftType string) (*sui.Transaction, error) {
	return s.mutate(ctx, sender, "remove_nft_from_whitelist", nftType)
}

func (s *Service) mutate(ctx context.Context, sender, fn, typeName string) (*sui.Transaction, error) {
	if typeName == "" {
		return nil, errors.NewValidationError("type", "must not be empty")
	}

	capID, err := s.FindAdminCap(ctx, sender)
	if err != nil {
		return nil, err
	}

	tx := sui.NewTransaction()
	tx.MoveCall(s.packageID+"::raffles::"+fn, nil,
		tx.Object(capID),
		tx.Object(s.registryID),
		tx.PureString(typeName),
	)
	return tx, nil
}

// normalizeCoinType expands the short native-coin form to the unprefixed
// full-address form the registry stores.
func normalizeCoinType(coinType string) string {
	if coinType == sui.NativeCoinType {
		return sui.NativeCoinTypeLong
	}
	return coinType
}
