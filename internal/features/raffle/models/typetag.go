package models

import (
	"strings"

	"raffle-tool-backend/internal/platform/sui"
)

// RaffleKind discriminates the shapes a raffle object's type tag can take.
type RaffleKind int

const (
	KindUnrecognized RaffleKind = iota
	KindCoinRaffle
	KindNFTRaffle
)

// RaffleTypeTag is the parsed form of an on-chain raffle type tag. For
// unrecognized tags both token types default to the native coin so a raffle
// with an unexpected tag still renders instead of blocking the list.
type RaffleTypeTag struct {
	Kind        RaffleKind
	RewardType  string
	PaymentType string
}

// IsNFT reports whether the tag denotes an NFT-backed raffle.
func (t RaffleTypeTag) IsNFT() bool {
	return t.Kind == KindNFTRaffle
}

// ParseRaffleTypeTag parses a type tag of shape
// <pkg>::raffles::Raffle<T_reward, T_payment> or
// <pkg>::raffles::NFTRaffle<T_reward, T_payment>. Anything else, including
// a matching shape with fewer than two generic arguments, yields the
// unrecognized fallback. The parse never fails.
func ParseRaffleTypeTag(typeTag string) RaffleTypeTag {
	fallback := RaffleTypeTag{
		Kind:        KindUnrecognized,
		RewardType:  sui.NativeCoinType,
		PaymentType: sui.NativeCoinType,
	}

	kind := KindUnrecognized
	var marker string
	switch {
	case strings.Contains(typeTag, "::NFTRaffle<"):
		kind = KindNFTRaffle
		marker = "::NFTRaffle<"
	case strings.Contains(typeTag, "::Raffle<"):
		kind = KindCoinRaffle
		marker = "::Raffle<"
	default:
		return fallback
	}

	start := strings.Index(typeTag, marker) + len(marker)
	if !strings.HasSuffix(typeTag, ">") {
		return fallback
	}
	inner := typeTag[start : len(typeTag)-1]

	args := splitTypeArguments(inner)
	if len(args) < 2 || args[0] == "" || args[1] == "" {
		return fallback
	}

	return RaffleTypeTag{
		Kind:        kind,
		RewardType:  args[0],
		PaymentType: args[1],
	}
}

// splitTypeArguments splits a generic argument list on top-level commas,
// so nested generics like Coin<0x2::sui::SUI> stay intact.
func splitTypeArguments(inner string) []string {
	var args []string
	depth := 0
	start := 0
	for i, r := range inner {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(inner[start:i]))
				start = i + 1
			}
		}
	}
	args = append(args, strings.TrimSpace(inner[start:]))
	return args
}
