package models

import (
	"encoding/json"
	"strconv"
	"strings"

	"raffle-tool-backend/internal/common/errors"
	"raffle-tool-backend/internal/platform/sui"
)

// Status mirrors the contract's raffle status enumeration.
type Status int

const (
	StatusInProgress Status = 0
	StatusCompleted  Status = 1
	StatusFailed     Status = 2
)

func (s Status) String() string {
	switch s {
	case StatusInProgress:
		return "IN_PROGRESS"
	case StatusCompleted:
		return "COMPLETED"
	case StatusFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// UnmarshalJSON tolerates the fullnode emitting u8 values as numbers or
// strings depending on the envelope.
func (s *Status) UnmarshalJSON(data []byte) error {
	v, err := strconv.Atoi(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*s = Status(v)
	return nil
}

// NFTDescriptor describes an escrowed NFT reward.
type NFTDescriptor struct {
	ID          string            `json:"id"`
	Type        string            `json:"type,omitempty"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	ImageURL    string            `json:"image_url"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}

// Raffle is the typed read projection of an on-chain raffle object. Every
// field is owned and mutated by the contract; this view is recomputed from
// the chain on each read and never written back.
type Raffle struct {
	ID           string         `json:"id"`
	Reward       sui.Uint64     `json:"reward"`
	NFTReward    *NFTDescriptor `json:"nft_reward,omitempty"`
	Owner        string         `json:"owner"`
	EndDate      sui.Uint64     `json:"end_date"` // epoch millis
	MinTickets   sui.Uint64     `json:"min_tickets"`
	MaxTickets   sui.Uint64     `json:"max_tickets"`
	TicketPrice  sui.Uint64     `json:"ticket_price"`
	Participants []string       `json:"participants"`
	Balance      sui.Uint64     `json:"balance"`
	Winner       string         `json:"winner"`
	Status       Status         `json:"status"`
	RewardType   string         `json:"reward_type"`
	PaymentType  string         `json:"payment_type"`
	IsNFTRaffle  bool           `json:"is_nft_raffle"`
}

// HasWinner reports whether the contract has drawn a winner. The all-zero
// address is the contract's "unset" sentinel.
func (r *Raffle) HasWinner() bool {
	return r.Winner != "" && r.Winner != sui.ZeroAddress
}

// RewardRedeemed reports whether the escrowed reward has left the raffle.
func (r *Raffle) RewardRedeemed() bool {
	if r.IsNFTRaffle {
		return r.NFTReward == nil
	}
	return r.Reward == 0
}

// uid decodes a move object id that arrives either as a bare string or as
// the UID struct {"id": "0x.."}.
type uid struct {
	ID string
}

func (u *uid) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		u.ID = s
		return nil
	}
	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	u.ID = obj.ID
	return nil
}

// rawRaffleFields is the move struct schema of both raffle shapes. The
// reward field stays raw: a u64 for coin raffles, a nested object for NFT
// raffles, null once redeemed.
type rawRaffleFields struct {
	ID           uid             `json:"id"`
	Reward       json.RawMessage `json:"reward"`
	Owner        string          `json:"owner"`
	EndDate      sui.Uint64      `json:"end_date"`
	MinTickets   sui.Uint64      `json:"min_tickets"`
	MaxTickets   sui.Uint64      `json:"max_tickets"`
	TicketPrice  sui.Uint64      `json:"ticket_price"`
	Participants []string        `json:"participants"`
	Balance      sui.Uint64      `json:"balance"`
	Winner       string          `json:"winner"`
	Status       Status          `json:"status"`
}

type rawNFTReward struct {
	Type   string          `json:"type"`
	Fields json.RawMessage `json:"fields"`
}

type nftRewardFields struct {
	ID          uid     `json:"id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
}

// RaffleFromObject projects a fetched object into a Raffle. The type tag
// drives the coin/NFT discriminant and the token identities; malformed tags
// fall back to the native coin rather than failing the projection.
func RaffleFromObject(obj *sui.ObjectData) (*Raffle, error) {
	if obj == nil || obj.Content == nil || obj.Content.DataType != "moveObject" {
		return nil, errors.New(errors.ErrCodeMalformedObject, "Object has no move content").
			WithDetail("object_id", objID(obj))
	}

	typeTag := obj.Content.Type
	if typeTag == "" {
		typeTag = obj.Type
	}
	tag := ParseRaffleTypeTag(typeTag)

	var fields rawRaffleFields
	if err := json.Unmarshal(obj.Content.Fields, &fields); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeMalformedObject, "Failed to decode raffle fields").
			WithDetail("object_id", objID(obj))
	}

	raffle := &Raffle{
		ID:           fields.ID.ID,
		Owner:        fields.Owner,
		EndDate:      fields.EndDate,
		MinTickets:   fields.MinTickets,
		MaxTickets:   fields.MaxTickets,
		TicketPrice:  fields.TicketPrice,
		Participants: fields.Participants,
		Balance:      fields.Balance,
		Winner:       fields.Winner,
		Status:       fields.Status,
		RewardType:   tag.RewardType,
		PaymentType:  tag.PaymentType,
		IsNFTRaffle:  tag.IsNFT(),
	}
	if raffle.ID == "" {
		raffle.ID = obj.ObjectID
	}
	if raffle.Participants == nil {
		raffle.Participants = []string{}
	}

	if tag.IsNFT() {
		raffle.NFTReward = decodeNFTReward(fields.Reward)
	} else if len(fields.Reward) > 0 && string(fields.Reward) != "null" {
		if err := json.Unmarshal(fields.Reward, &raffle.Reward); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeMalformedObject, "Failed to decode reward amount").
				WithDetail("object_id", raffle.ID)
		}
	}

	return raffle, nil
}

// decodeNFTReward builds the descriptor of an escrowed NFT. A null or
// undecodable reward means the NFT already left the raffle.
func decodeNFTReward(raw json.RawMessage) *NFTDescriptor {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var nft rawNFTReward
	if err := json.Unmarshal(raw, &nft); err != nil {
		return nil
	}

	var fields nftRewardFields
	if err := json.Unmarshal(nft.Fields, &fields); err != nil {
		return nil
	}
	if fields.ID.ID == "" {
		return nil
	}

	desc := &NFTDescriptor{
		ID:          fields.ID.ID,
		Type:        nft.Type,
		Name:        "Unknown NFT",
		Description: "",
		ImageURL:    "",
		Attributes:  extraAttributes(nft.Fields),
	}
	if fields.Name != nil && *fields.Name != "" {
		desc.Name = *fields.Name
	}
	if fields.Description != nil {
		desc.Description = *fields.Description
	}
	if fields.ImageURL != nil {
		desc.ImageURL = *fields.ImageURL
	}
	return desc
}

// extraAttributes collects the reward object's string fields beyond the
// standard metadata, so collection-specific traits survive the projection.
func extraAttributes(raw json.RawMessage) map[string]string {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(raw, &all); err != nil {
		return nil
	}

	attrs := make(map[string]string)
	for key, value := range all {
		switch key {
		case "id", "name", "description", "image_url":
			continue
		}
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			continue
		}
		attrs[key] = s
	}
	if len(attrs) == 0 {
		return nil
	}
	return attrs
}

func objID(obj *sui.ObjectData) string {
	if obj == nil {
		return ""
	}
	return obj.ObjectID
}
