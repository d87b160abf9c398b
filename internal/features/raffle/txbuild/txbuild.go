// Package txbuild assembles the unsigned transactions for every raffle
// contract entry point. Builders validate their handles up front so a bad
// request fails here instead of at the wallet.
package txbuild

import (
	"context"
	"math"

	"raffle-tool-backend/internal/common/errors"
	"raffle-tool-backend/internal/platform/sui"
)

// CoinPreparer produces a coin argument worth an exact amount inside the
// transaction being built.
type CoinPreparer interface {
	PrepareCoin(ctx context.Context, tx *sui.Transaction, owner, coinType string, amount uint64) (sui.Argument, error)
}

// Builder builds raffle transactions against one deployed package.
type Builder struct {
	packageID  string
	registryID string
	wallet     CoinPreparer
}

func NewBuilder(packageID, registryID string, wallet CoinPreparer) *Builder {
	return &Builder{packageID: packageID, registryID: registryID, wallet: wallet}
}

func (b *Builder) target(fn string) string {
	return b.packageID + "::raffles::" + fn
}

// CreateRaffleParams carries the inputs of a coin raffle creation. Amounts
// and timestamps are in smallest units and epoch milliseconds.
type CreateRaffleParams struct {
	Sender       string
	RewardType   string
	PaymentType  string
	RewardAmount uint64
	EndDate      uint64
	MinTickets   uint64
	MaxTickets   uint64
	TicketPrice  uint64
}

func (p CreateRaffleParams) validate() error {
	switch {
	case p.Sender == "":
		return errors.NewValidationError("sender", "must not be empty")
	case p.RewardType == "":
		return errors.NewValidationError("reward_type", "must not be empty")
	case p.PaymentType == "":
		return errors.NewValidationError("payment_type", "must not be empty")
	case p.RewardAmount == 0:
		return errors.NewValidationError("reward_amount", "must be positive")
	}
	return nil
}

// CreateRaffle builds the create_raffle call. The reward amount is gathered
// from the sender's coins in the same transaction and escrowed by the
// contract.
func (b *Builder) CreateRaffle(ctx context.Context, p CreateRaffleParams) (*sui.Transaction, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	tx := sui.NewTransaction()
	reward, err := b.wallet.PrepareCoin(ctx, tx, p.Sender, p.RewardType, p.RewardAmount)
	if err != nil {
		return nil, err
	}

	tx.MoveCall(b.target("create_raffle"),
		[]string{p.RewardType, p.PaymentType},
		tx.Object(b.registryID),
		reward,
		tx.PureU64(p.EndDate),
		tx.PureU64(p.MinTickets),
		tx.PureU64(p.MaxTickets),
		tx.PureU64(p.TicketPrice),
	)
	return tx, nil
}

// CreateNFTRaffleParams carries the inputs of an NFT raffle creation.
type CreateNFTRaffleParams struct {
	NFTID       string
	NFTType     string
	PaymentType string
	EndDate     uint64
	MinTickets  uint64
	MaxTickets  uint64
	TicketPrice uint64
}

// CreateNFTRaffle builds the create_nft_raffle call escrowing the given NFT.
func (b *Builder) CreateNFTRaffle(p CreateNFTRaffleParams) (*sui.Transaction, error) {
	switch {
	case p.NFTID == "":
		return nil, errors.NewValidationError("nft_id", "must not be empty")
	case p.NFTType == "":
		return nil, errors.NewValidationError("nft_type", "must not be empty")
	case p.PaymentType == "":
		return nil, errors.NewValidationError("payment_type", "must not be empty")
	}

	tx := sui.NewTransaction()
	tx.MoveCall(b.target("create_nft_raffle"),
		[]string{p.NFTType, p.PaymentType},
		tx.Object(b.registryID),
		tx.Object(p.NFTID),
		tx.PureU64(p.EndDate),
		tx.PureU64(p.MinTickets),
		tx.PureU64(p.MaxTickets),
		tx.PureU64(p.TicketPrice),
	)
	return tx, nil
}

// BuyTicketParams carries the inputs of a ticket purchase for either raffle
// shape.
type BuyTicketParams struct {
	Sender      string
	RaffleID    string
	RewardType  string
	PaymentType string
	TicketPrice uint64
	Count       uint64
	IsNFTRaffle bool
}

// BuyTickets builds the buy_ticket or buy_nft_ticket call, paying
// price*count out of the sender's coins.
func (b *Builder) BuyTickets(ctx context.Context, p BuyTicketParams) (*sui.Transaction, error) {
	switch {
	case p.Sender == "":
		return nil, errors.NewValidationError("sender", "must not be empty")
	case p.RaffleID == "":
		return nil, errors.NewValidationError("raffle_id", "must not be empty")
	case p.PaymentType == "":
		return nil, errors.NewValidationError("payment_type", "must not be empty")
	case p.Count == 0:
		return nil, errors.NewValidationError("count", "must be positive")
	}
	if p.TicketPrice != 0 && p.Count > math.MaxUint64/p.TicketPrice {
		return nil, errors.NewValidationError("count", "total price overflows u64")
	}

	tx := sui.NewTransaction()
	payment, err := b.wallet.PrepareCoin(ctx, tx, p.Sender, p.PaymentType, p.TicketPrice*p.Count)
	if err != nil {
		return nil, err
	}

	fn := "buy_ticket"
	if p.IsNFTRaffle {
		fn = "buy_nft_ticket"
	}
	tx.MoveCall(b.target(fn),
		[]string{p.RewardType, p.PaymentType},
		tx.Object(p.RaffleID),
		payment,
		tx.PureU64(p.Count),
		tx.Object(sui.ClockObjectID),
	)
	return tx, nil
}

// DetermineWinner builds the winner draw, binding the shared randomness
// beacon and the clock. It needs no coins and is buildable by anyone.
func (b *Builder) DetermineWinner(raffleID, rewardType, paymentType string, isNFT bool) (*sui.Transaction, error) {
	if raffleID == "" {
		return nil, errors.NewValidationError("raffle_id", "must not be empty")
	}

	fn := "determine_winner"
	if isNFT {
		fn = "determine_nft_winner"
	}

	tx := sui.NewTransaction()
	tx.MoveCall(b.target(fn),
		[]string{rewardType, paymentType},
		tx.Object(raffleID),
		tx.Object(sui.RandomObjectID),
		tx.Object(sui.ClockObjectID),
	)
	return tx, nil
}

// RedeemReward builds the winner's reward claim.
func (b *Builder) RedeemReward(raffleID, rewardType, paymentType string, isNFT bool) (*sui.Transaction, error) {
	fn := "redeem"
	if isNFT {
		fn = "redeem_nft"
	}
	return b.redeem(fn, raffleID, rewardType, paymentType)
}

// RedeemProceeds builds the owner's proceeds claim, which also covers the
// refund path of a failed raffle.
func (b *Builder) RedeemProceeds(raffleID, rewardType, paymentType string, isNFT bool) (*sui.Transaction, error) {
	fn := "redeem_owner"
	if isNFT {
		fn = "redeem_nft_owner"
	}
	return b.redeem(fn, raffleID, rewardType, paymentType)
}

func (b *Builder) redeem(fn, raffleID, rewardType, paymentType string) (*sui.Transaction, error) {
	if raffleID == "" {
		return nil, errors.NewValidationError("raffle_id", "must not be empty")
	}

	tx := sui.NewTransaction()
	tx.MoveCall(b.target(fn),
		[]string{rewardType, paymentType},
		tx.Object(raffleID),
	)
	return tx, nil
}
