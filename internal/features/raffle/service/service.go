// Package service discovers raffles through the chain event log and projects
// their objects into typed read views.
package service

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"raffle-tool-backend/internal/common/cache"
	"raffle-tool-backend/internal/common/errors"
	"raffle-tool-backend/internal/features/raffle/models"
	"raffle-tool-backend/internal/platform/sui"
)

const (
	raffleIDsCacheKey    = "raffle_ids"
	raffleCacheKeyPrefix = "raffle:"
)

// ChainReader is the fullnode surface the raffle service consumes.
type ChainReader interface {
	GetObject(ctx context.Context, objectID string) (*sui.ObjectData, error)
	QueryEvents(ctx context.Context, eventType string) ([]sui.Event, error)
}

type Service struct {
	chain       ChainReader
	cache       *cache.CacheService
	cacheTTL    time.Duration
	settleDelay time.Duration
	packageID   string
	logger      *zap.Logger
}

func NewService(chain ChainReader, cacheService *cache.CacheService, cacheTTL, settleDelay time.Duration, packageID string, logger *zap.Logger) *Service {
	return &Service{
		chain:       chain,
		cache:       cacheService,
		cacheTTL:    cacheTTL,
		settleDelay: settleDelay,
		packageID:   packageID,
		logger:      logger,
	}
}

// creationEvent is the payload both creation events share.
type creationEvent struct {
	ID string `json:"id"`
}

// ListRaffleIDs returns the ids of every raffle ever created, coin raffles
// first, each group in event-log order. The event log is append-only, so the
// ordering is stable across calls.
func (s *Service) ListRaffleIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := s.cache.GetOrSet(ctx, raffleIDsCacheKey, &ids, s.cacheTTL, func() (interface{}, error) {
		return s.fetchRaffleIDs(ctx)
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *Service) fetchRaffleIDs(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, 16)
	for _, eventType := range []string{
		s.packageID + "::raffles::RaffleCreated",
		s.packageID + "::raffles::NFTRaffleCreated",
	} {
		events, err := s.chain.QueryEvents(ctx, eventType)
		if err != nil {
			return nil, errors.NewRPCError("suix_queryEvents", err)
		}
		for _, event := range events {
			var payload creationEvent
			if err := json.Unmarshal(event.ParsedJSON, &payload); err != nil || payload.ID == "" {
				s.logger.Warn("creation event without raffle id",
					zap.String("event_type", eventType),
					zap.String("tx_digest", event.ID.TxDigest))
				continue
			}
			ids = append(ids, payload.ID)
		}
	}
	return ids, nil
}

// GetRaffle fetches and projects a single raffle.
func (s *Service) GetRaffle(ctx context.Context, raffleID string) (*models.Raffle, error) {
	if raffleID == "" {
		return nil, errors.NewValidationError("raffle_id", "must not be empty")
	}

	var raffle *models.Raffle
	err := s.cache.GetOrSet(ctx, raffleCacheKeyPrefix+raffleID, &raffle, s.cacheTTL, func() (interface{}, error) {
		return s.fetchRaffle(ctx, raffleID)
	})
	if err != nil {
		return nil, err
	}
	return raffle, nil
}

func (s *Service) fetchRaffle(ctx context.Context, raffleID string) (*models.Raffle, error) {
	obj, err := s.chain.GetObject(ctx, raffleID)
	if err != nil {
		if stderrors.Is(err, sui.ErrObjectNotFound) {
			return nil, errors.NewRaffleNotFoundError(raffleID)
		}
		return nil, errors.NewRPCError("sui_getObject", err)
	}
	return models.RaffleFromObject(obj)
}

// ListRaffles projects every known raffle, fetching concurrently. A raffle
// whose fetch or projection fails is skipped so one bad object cannot take
// down the listing; the skip is logged.
func (s *Service) ListRaffles(ctx context.Context) ([]*models.Raffle, error) {
	ids, err := s.ListRaffleIDs(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]*models.Raffle, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			raffle, err := s.GetRaffle(ctx, id)
			if err != nil {
				s.logger.Warn("skipping raffle in listing",
					zap.String("raffle_id", id),
					zap.Error(err))
				return
			}
			results[i] = raffle
		}(i, id)
	}
	wg.Wait()

	raffles := make([]*models.Raffle, 0, len(results))
	for _, raffle := range results {
		if raffle != nil {
			raffles = append(raffles, raffle)
		}
	}
	return raffles, nil
}

// Refresh waits for the fullnode to settle a just-executed transaction, then
// drops the cached projections so the next read sees the new state.
func (s *Service) Refresh(ctx context.Context) error {
	select {
	case <-time.After(s.settleDelay):
	case <-ctx.Done():
		return ctx.Err()
	}

	if err := s.cache.InvalidateRaffleCache(ctx); err != nil {
		return errors.Wrap(err, errors.ErrCodeCache, "Failed to invalidate raffle cache")
	}
	return nil
}
