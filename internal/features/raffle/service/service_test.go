package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"raffle-tool-backend/internal/common/errors"
	"raffle-tool-backend/internal/platform/sui"
)

const pkg = "0xabc"

type fakeChain struct {
	objects map[string]*sui.ObjectData
	events  map[string][]sui.Event
	objErr  error
	evErr   error
}

func (f *fakeChain) GetObject(ctx context.Context, objectID string) (*sui.ObjectData, error) {
	if f.objErr != nil {
		return nil, f.objErr
	}
	obj, ok := f.objects[objectID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", sui.ErrObjectNotFound, objectID)
	}
	return obj, nil
}

func (f *fakeChain) QueryEvents(ctx context.Context, eventType string) ([]sui.Event, error) {
	if f.evErr != nil {
		return nil, f.evErr
	}
	return f.events[eventType], nil
}

func creationEventFor(id string) sui.Event {
	return sui.Event{
		ID:         sui.EventID{TxDigest: "digest-" + id},
		ParsedJSON: json.RawMessage(fmt.Sprintf(`{"id": %q}`, id)),
	}
}

func raffleObject(id string) *sui.ObjectData {
	fields := fmt.Sprintf(`{
		"id": {"id": %q},
		"reward": "100",
		"owner": "0xaaa",
		"participants": [],
		"winner": "0x0000000000000000000000000000000000000000000000000000000000000000",
		"status": 0
	}`, id)
	return &sui.ObjectData{
		ObjectID: id,
		Content: &sui.ObjectContent{
			DataType: "moveObject",
			Type:     pkg + "::raffles::Raffle<0x2::sui::SUI, 0x2::sui::SUI>",
			Fields:   json.RawMessage(fields),
		},
	}
}

func newTestService(chain *fakeChain) *Service {
	return NewService(chain, nil, time.Second, time.Millisecond, pkg, zap.NewNop())
}

func TestListRaffleIDs_CoinRafflesFirst(t *testing.T) {
	chain := &fakeChain{events: map[string][]sui.Event{
		pkg + "::raffles::RaffleCreated":    {creationEventFor("0xr1"), creationEventFor("0xr2")},
		pkg + "::raffles::NFTRaffleCreated": {creationEventFor("0xn1")},
	}}

	ids, err := newTestService(chain).ListRaffleIDs(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"0xr1", "0xr2", "0xn1"}, ids)
}

func TestListRaffleIDs_SkipsEventsWithoutID(t *testing.T) {
	chain := &fakeChain{events: map[string][]sui.Event{
		pkg + "::raffles::RaffleCreated": {
			creationEventFor("0xr1"),
			{ParsedJSON: json.RawMessage(`{"something_else": true}`)},
			{ParsedJSON: json.RawMessage(`not json`)},
			creationEventFor("0xr2"),
		},
	}}

	ids, err := newTestService(chain).ListRaffleIDs(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"0xr1", "0xr2"}, ids)
}

func TestListRaffleIDs_QueryFailure(t *testing.T) {
	chain := &fakeChain{evErr: fmt.Errorf("node down")}

	_, err := newTestService(chain).ListRaffleIDs(context.Background())

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeRPC, appErr.Code)
}

func TestGetRaffle(t *testing.T) {
	chain := &fakeChain{objects: map[string]*sui.ObjectData{
		"0xr1": raffleObject("0xr1"),
	}}

	raffle, err := newTestService(chain).GetRaffle(context.Background(), "0xr1")
	require.NoError(t, err)

	assert.Equal(t, "0xr1", raffle.ID)
	assert.Equal(t, sui.Uint64(100), raffle.Reward)
}

func TestGetRaffle_NotFound(t *testing.T) {
	chain := &fakeChain{objects: map[string]*sui.ObjectData{}}

	_, err := newTestService(chain).GetRaffle(context.Background(), "0xmissing")

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeRaffleNotFound, appErr.Code)
}

func TestGetRaffle_EmptyID(t *testing.T) {
	_, err := newTestService(&fakeChain{}).GetRaffle(context.Background(), "")

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
}

func TestListRaffles_SkipsFailedFetches(t *testing.T) {
	chain := &fakeChain{
		events: map[string][]sui.Event{
			pkg + "::raffles::RaffleCreated": {
				creationEventFor("0xr1"),
				creationEventFor("0xgone"),
				creationEventFor("0xr2"),
			},
		},
		objects: map[string]*sui.ObjectData{
			"0xr1": raffleObject("0xr1"),
			"0xr2": raffleObject("0xr2"),
		},
	}

	raffles, err := newTestService(chain).ListRaffles(context.Background())
	require.NoError(t, err)

	require.Len(t, raffles, 2)
	assert.Equal(t, "0xr1", raffles[0].ID)
	assert.Equal(t, "0xr2", raffles[1].ID)
}

func TestRefresh_WaitsForSettleDelay(t *testing.T) {
	svc := NewService(&fakeChain{}, nil, time.Second, 50*time.Millisecond, pkg, zap.NewNop())

	start := time.Now()
	err := svc.Refresh(context.Background())
	require.NoError(t, err)

	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestRefresh_CancelledContext(t *testing.T) {
	svc := NewService(&fakeChain{}, nil, time.Second, time.Minute, pkg, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := svc.Refresh(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
