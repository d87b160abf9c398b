package txbuild

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raffle-tool-backend/internal/common/errors"
	"raffle-tool-backend/internal/platform/sui"
)

const (
	pkg        = "0xabc"
	registryID = "0xreg"
	sender     = "0xaaa"
	raffleID   = "0xr1"
	usdtType   = "0xdef::usdt::USDT"
	nftType    = "0xbeef::art::Art"
)

// stubPreparer splits off the gas coin regardless of coin type, recording
// what it was asked for.
type stubPreparer struct {
	coinType string
	amount   uint64
	err      error
}

func (s *stubPreparer) PrepareCoin(ctx context.Context, tx *sui.Transaction, owner, coinType string, amount uint64) (sui.Argument, error) {
	s.coinType = coinType
	s.amount = amount
	if s.err != nil {
		return sui.Argument{}, s.err
	}
	return tx.SplitCoins(tx.Gas(), tx.PureU64(amount)), nil
}

func newTestBuilder(prep *stubPreparer) *Builder {
	return NewBuilder(pkg, registryID, prep)
}

func TestCreateRaffle(t *testing.T) {
	prep := &stubPreparer{}
	tx, err := newTestBuilder(prep).CreateRaffle(context.Background(), CreateRaffleParams{
		Sender:       sender,
		RewardType:   usdtType,
		PaymentType:  sui.NativeCoinType,
		RewardAmount: 1000,
		EndDate:      1760000000000,
		MinTickets:   5,
		MaxTickets:   50,
		TicketPrice:  10,
	})
	require.NoError(t, err)

	assert.Equal(t, usdtType, prep.coinType)
	assert.Equal(t, uint64(1000), prep.amount)

	calls := tx.MoveCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, pkg+"::raffles::create_raffle", calls[0].Target)
	assert.Equal(t, []string{usdtType, sui.NativeCoinType}, calls[0].TypeArguments)
	require.Len(t, calls[0].Arguments, 6)

	// First argument is the registry object.
	inputs := tx.Inputs()
	registryArg := calls[0].Arguments[0]
	assert.Equal(t, "input", registryArg.Kind)
	assert.Equal(t, registryID, inputs[registryArg.Index].Object)

	// Second is the prepared reward coin.
	assert.Equal(t, "result", calls[0].Arguments[1].Kind)
}

func TestCreateRaffle_Validation(t *testing.T) {
	builder := newTestBuilder(&stubPreparer{})

	_, err := builder.CreateRaffle(context.Background(), CreateRaffleParams{
		RewardType:   usdtType,
		PaymentType:  sui.NativeCoinType,
		RewardAmount: 1000,
	})

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
}

func TestCreateRaffle_PropagatesCoinFailure(t *testing.T) {
	prep := &stubPreparer{err: errors.NewInsufficientFundsError(usdtType, 1000, 10)}

	_, err := newTestBuilder(prep).CreateRaffle(context.Background(), CreateRaffleParams{
		Sender:       sender,
		RewardType:   usdtType,
		PaymentType:  sui.NativeCoinType,
		RewardAmount: 1000,
	})

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeInsufficientFunds, appErr.Code)
}

func TestCreateNFTRaffle(t *testing.T) {
	tx, err := newTestBuilder(&stubPreparer{}).CreateNFTRaffle(CreateNFTRaffleParams{
		NFTID:       "0xn1",
		NFTType:     nftType,
		PaymentType: usdtType,
		EndDate:     1760000000000,
		MinTickets:  1,
		MaxTickets:  10,
		TicketPrice: 100,
	})
	require.NoError(t, err)

	calls := tx.MoveCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, pkg+"::raffles::create_nft_raffle", calls[0].Target)
	assert.Equal(t, []string{nftType, usdtType}, calls[0].TypeArguments)

	inputs := tx.Inputs()
	assert.Equal(t, registryID, inputs[calls[0].Arguments[0].Index].Object)
	assert.Equal(t, "0xn1", inputs[calls[0].Arguments[1].Index].Object)
}

func TestBuyTickets(t *testing.T) {
	prep := &stubPreparer{}
	tx, err := newTestBuilder(prep).BuyTickets(context.Background(), BuyTicketParams{
		Sender:      sender,
		RaffleID:    raffleID,
		RewardType:  usdtType,
		PaymentType: sui.NativeCoinType,
		TicketPrice: 250,
		Count:       4,
	})
	require.NoError(t, err)

	// Payment covers price * count.
	assert.Equal(t, uint64(1000), prep.amount)

	calls := tx.MoveCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, pkg+"::raffles::buy_ticket", calls[0].Target)
	require.Len(t, calls[0].Arguments, 4)

	inputs := tx.Inputs()
	assert.Equal(t, raffleID, inputs[calls[0].Arguments[0].Index].Object)
	assert.Equal(t, sui.ClockObjectID, inputs[calls[0].Arguments[3].Index].Object)
}

func TestBuyTickets_NFTVariant(t *testing.T) {
	tx, err := newTestBuilder(&stubPreparer{}).BuyTickets(context.Background(), BuyTicketParams{
		Sender:      sender,
		RaffleID:    raffleID,
		RewardType:  nftType,
		PaymentType: usdtType,
		TicketPrice: 100,
		Count:       1,
		IsNFTRaffle: true,
	})
	require.NoError(t, err)

	calls := tx.MoveCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, pkg+"::raffles::buy_nft_ticket", calls[0].Target)
}

func TestBuyTickets_ZeroCount(t *testing.T) {
	_, err := newTestBuilder(&stubPreparer{}).BuyTickets(context.Background(), BuyTicketParams{
		Sender:      sender,
		RaffleID:    raffleID,
		RewardType:  usdtType,
		PaymentType: usdtType,
		TicketPrice: 100,
	})

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
}

func TestBuyTickets_TotalPriceOverflow(t *testing.T) {
	prep := &stubPreparer{}
	_, err := newTestBuilder(prep).BuyTickets(context.Background(), BuyTicketParams{
		Sender:      sender,
		RaffleID:    raffleID,
		RewardType:  usdtType,
		PaymentType: usdtType,
		TicketPrice: 1 << 63,
		Count:       2,
	})

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
	// No payment must be requested once the total wraps.
	assert.Zero(t, prep.amount)
}

func TestDetermineWinner_BindsRandomnessAndClock(t *testing.T) {
	for _, isNFT := range []bool{false, true} {
		tx, err := newTestBuilder(&stubPreparer{}).DetermineWinner(raffleID, usdtType, sui.NativeCoinType, isNFT)
		require.NoError(t, err)

		calls := tx.MoveCalls()
		require.Len(t, calls, 1)
		if isNFT {
			assert.Equal(t, pkg+"::raffles::determine_nft_winner", calls[0].Target)
		} else {
			assert.Equal(t, pkg+"::raffles::determine_winner", calls[0].Target)
		}

		inputs := tx.Inputs()
		require.Len(t, calls[0].Arguments, 3)
		assert.Equal(t, raffleID, inputs[calls[0].Arguments[0].Index].Object)
		assert.Equal(t, sui.RandomObjectID, inputs[calls[0].Arguments[1].Index].Object)
		assert.Equal(t, sui.ClockObjectID, inputs[calls[0].Arguments[2].Index].Object)
	}
}

func TestRedeemTargets(t *testing.T) {
	builder := newTestBuilder(&stubPreparer{})

	cases := []struct {
		build  func() (*sui.Transaction, error)
		target string
	}{
		{func() (*sui.Transaction, error) { return builder.RedeemReward(raffleID, usdtType, usdtType, false) }, pkg + "::raffles::redeem"},
		{func() (*sui.Transaction, error) { return builder.RedeemReward(raffleID, nftType, usdtType, true) }, pkg + "::raffles::redeem_nft"},
		{func() (*sui.Transaction, error) { return builder.RedeemProceeds(raffleID, usdtType, usdtType, false) }, pkg + "::raffles::redeem_owner"},
		{func() (*sui.Transaction, error) { return builder.RedeemProceeds(raffleID, nftType, usdtType, true) }, pkg + "::raffles::redeem_nft_owner"},
	}

	for _, tc := range cases {
		tx, err := tc.build()
		require.NoError(t, err)

		calls := tx.MoveCalls()
		require.Len(t, calls, 1)
		assert.Equal(t, tc.target, calls[0].Target)
		assert.Len(t, calls[0].Arguments, 1)
	}
}

func TestRedeem_EmptyRaffleID(t *testing.T) {
	builder := newTestBuilder(&stubPreparer{})

	_, err := builder.RedeemReward("", usdtType, usdtType, false)
	require.Error(t, err)

	_, err = builder.DetermineWinner("", usdtType, usdtType, false)
	require.Error(t, err)
}
