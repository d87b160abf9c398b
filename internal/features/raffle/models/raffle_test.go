package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raffle-tool-backend/internal/common/errors"
	"raffle-tool-backend/internal/platform/sui"
)

func moveObject(typeTag, fields string) *sui.ObjectData {
	return &sui.ObjectData{
		ObjectID: "0x111",
		Content: &sui.ObjectContent{
			DataType: "moveObject",
			Type:     typeTag,
			Fields:   json.RawMessage(fields),
		},
	}
}

func TestRaffleFromObject_CoinRaffle(t *testing.T) {
	obj := moveObject(pkg+"::raffles::Raffle<0x2::sui::SUI, 0xdef::usdt::USDT>", `{
		"id": {"id": "0x111"},
		"reward": "5000000000",
		"owner": "0xaaa",
		"end_date": "1760000000000",
		"min_tickets": "10",
		"max_tickets": "100",
		"ticket_price": "1000000",
		"participants": ["0xbbb", "0xccc"],
		"balance": "2000000",
		"winner": "0x0000000000000000000000000000000000000000000000000000000000000000",
		"status": 0
	}`)

	raffle, err := RaffleFromObject(obj)
	require.NoError(t, err)

	assert.Equal(t, "0x111", raffle.ID)
	assert.Equal(t, sui.Uint64(5000000000), raffle.Reward)
	assert.Nil(t, raffle.NFTReward)
	assert.Equal(t, "0xaaa", raffle.Owner)
	assert.Equal(t, sui.Uint64(1000000), raffle.TicketPrice)
	assert.Equal(t, []string{"0xbbb", "0xccc"}, raffle.Participants)
	assert.Equal(t, StatusInProgress, raffle.Status)
	assert.Equal(t, "0x2::sui::SUI", raffle.RewardType)
	assert.Equal(t, "0xdef::usdt::USDT", raffle.PaymentType)
	assert.False(t, raffle.IsNFTRaffle)
	assert.False(t, raffle.HasWinner())
	assert.False(t, raffle.RewardRedeemed())
}

func TestRaffleFromObject_NFTRaffle(t *testing.T) {
	obj := moveObject(pkg+"::raffles::NFTRaffle<0xbeef::art::Art, 0x2::sui::SUI>", `{
		"id": {"id": "0x222"},
		"reward": {
			"type": "0xbeef::art::Art",
			"fields": {
				"id": {"id": "0x333"},
				"name": "Sunset",
				"description": "A sunset",
				"image_url": "https://img.example/sunset.png"
			}
		},
		"owner": "0xaaa",
		"end_date": "1760000000000",
		"min_tickets": "1",
		"max_tickets": "50",
		"ticket_price": "100000000",
		"participants": [],
		"balance": "0",
		"winner": "0x0000000000000000000000000000000000000000000000000000000000000000",
		"status": 0
	}`)

	raffle, err := RaffleFromObject(obj)
	require.NoError(t, err)

	assert.True(t, raffle.IsNFTRaffle)
	require.NotNil(t, raffle.NFTReward)
	assert.Equal(t, "0x333", raffle.NFTReward.ID)
	assert.Equal(t, "Sunset", raffle.NFTReward.Name)
	assert.Equal(t, "https://img.example/sunset.png", raffle.NFTReward.ImageURL)
	assert.False(t, raffle.RewardRedeemed())
}

func TestRaffleFromObject_NFTRewardAttributes(t *testing.T) {
	obj := moveObject(pkg+"::raffles::NFTRaffle<0xbeef::art::Art, 0x2::sui::SUI>", `{
		"id": {"id": "0x222"},
		"reward": {
			"type": "0xbeef::art::Art",
			"fields": {
				"id": {"id": "0x333"},
				"name": "Sunset",
				"rarity": "legendary",
				"edition": "7",
				"serial": 42
			}
		},
		"owner": "0xaaa",
		"participants": [],
		"winner": "0x0000000000000000000000000000000000000000000000000000000000000000",
		"status": 0
	}`)

	raffle, err := RaffleFromObject(obj)
	require.NoError(t, err)

	require.NotNil(t, raffle.NFTReward)
	// Standard metadata stays out of the attribute map; non-string extras
	// are dropped.
	assert.Equal(t, map[string]string{"rarity": "legendary", "edition": "7"}, raffle.NFTReward.Attributes)
}

func TestRaffleFromObject_NFTRewardNoExtraFields(t *testing.T) {
	obj := moveObject(pkg+"::raffles::NFTRaffle<0xbeef::art::Art, 0x2::sui::SUI>", `{
		"id": {"id": "0x222"},
		"reward": {"fields": {"id": {"id": "0x333"}, "name": "Sunset"}},
		"owner": "0xaaa",
		"participants": [],
		"winner": "0x0000000000000000000000000000000000000000000000000000000000000000",
		"status": 0
	}`)

	raffle, err := RaffleFromObject(obj)
	require.NoError(t, err)

	require.NotNil(t, raffle.NFTReward)
	assert.Nil(t, raffle.NFTReward.Attributes)
}

func TestRaffleFromObject_NFTRewardMissingName(t *testing.T) {
	obj := moveObject(pkg+"::raffles::NFTRaffle<0xbeef::art::Art, 0x2::sui::SUI>", `{
		"id": {"id": "0x222"},
		"reward": {"fields": {"id": {"id": "0x333"}}},
		"owner": "0xaaa",
		"participants": [],
		"winner": "0x0000000000000000000000000000000000000000000000000000000000000000",
		"status": 0
	}`)

	raffle, err := RaffleFromObject(obj)
	require.NoError(t, err)

	require.NotNil(t, raffle.NFTReward)
	assert.Equal(t, "Unknown NFT", raffle.NFTReward.Name)
}

func TestRaffleFromObject_RedeemedNFTReward(t *testing.T) {
	obj := moveObject(pkg+"::raffles::NFTRaffle<0xbeef::art::Art, 0x2::sui::SUI>", `{
		"id": {"id": "0x222"},
		"reward": null,
		"owner": "0xaaa",
		"participants": ["0xbbb"],
		"winner": "0xbbb",
		"status": 1
	}`)

	raffle, err := RaffleFromObject(obj)
	require.NoError(t, err)

	assert.Nil(t, raffle.NFTReward)
	assert.True(t, raffle.RewardRedeemed())
	assert.True(t, raffle.HasWinner())
	assert.Equal(t, StatusCompleted, raffle.Status)
}

func TestRaffleFromObject_StatusAsString(t *testing.T) {
	obj := moveObject(pkg+"::raffles::Raffle<0x2::sui::SUI, 0x2::sui::SUI>", `{
		"id": {"id": "0x111"},
		"reward": "1",
		"owner": "0xaaa",
		"participants": [],
		"winner": "0x0000000000000000000000000000000000000000000000000000000000000000",
		"status": "2"
	}`)

	raffle, err := RaffleFromObject(obj)
	require.NoError(t, err)

	assert.Equal(t, StatusFailed, raffle.Status)
	assert.Equal(t, "FAILED", raffle.Status.String())
}

func TestRaffleFromObject_NoContent(t *testing.T) {
	_, err := RaffleFromObject(&sui.ObjectData{ObjectID: "0x111"})

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeMalformedObject, appErr.Code)
}

func TestRaffleFromObject_MalformedFields(t *testing.T) {
	obj := moveObject(pkg+"::raffles::Raffle<0x2::sui::SUI, 0x2::sui::SUI>", `{"end_date": {"nested": true}}`)

	_, err := RaffleFromObject(obj)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeMalformedObject, appErr.Code)
}

func TestRaffleFromObject_UnrecognizedTagStillProjects(t *testing.T) {
	obj := moveObject(pkg+"::other::Mystery", `{
		"id": {"id": "0x111"},
		"reward": "1",
		"owner": "0xaaa",
		"participants": [],
		"winner": "0x0000000000000000000000000000000000000000000000000000000000000000",
		"status": 0
	}`)

	raffle, err := RaffleFromObject(obj)
	require.NoError(t, err)

	assert.Equal(t, sui.NativeCoinType, raffle.RewardType)
	assert.Equal(t, sui.NativeCoinType, raffle.PaymentType)
	assert.False(t, raffle.IsNFTRaffle)
}
