// Package sui is a thin typed client for the subset of the Sui fullnode
// JSON-RPC API this service consumes, plus a programmable-transaction
// description model for the unsigned transactions it produces. Signing and
// submission stay with the caller's wallet.
package sui

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const (
	// NativeCoinType is the chain's native coin in short form.
	NativeCoinType = "0x2::sui::SUI"

	// NativeCoinTypeLong is the same type with the full 32-byte address, as
	// it appears inside object type tags returned by the fullnode.
	NativeCoinTypeLong = "0000000000000000000000000000000000000000000000000000000000000002::sui::SUI"

	// ClockObjectID is the shared system clock object.
	ClockObjectID = "0x6"

	// RandomObjectID is the shared randomness beacon object.
	RandomObjectID = "0x8"

	// ZeroAddress is the all-zero address the contract uses as the
	// "no winner yet" sentinel.
	ZeroAddress = "0x0000000000000000000000000000000000000000000000000000000000000000"
)

// IsNativeCoin reports whether a type string denotes the native coin,
// in either short or long address form.
func IsNativeCoin(coinType string) bool {
	return coinType == NativeCoinType || strings.HasSuffix(coinType, "::sui::SUI")
}

// Uint64 decodes the fullnode's u64 representation, which arrives as a
// decimal string for move values and as a plain number in some event
// payloads. It marshals back to a string to stay lossless for JS callers.
type Uint64 uint64

func (u *Uint64) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*u = 0
		return nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid u64 value %q: %w", s, err)
	}
	*u = Uint64(v)
	return nil
}

func (u Uint64) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strconv.FormatUint(uint64(u), 10) + `"`), nil
}

// ObjectData is the content of a single on-chain object.
type ObjectData struct {
	ObjectID string         `json:"objectId"`
	Version  string         `json:"version,omitempty"`
	Digest   string         `json:"digest,omitempty"`
	Type     string         `json:"type,omitempty"`
	Content  *ObjectContent `json:"content,omitempty"`
	Display  *ObjectDisplay `json:"display,omitempty"`
}

// ObjectContent carries the move struct payload. Fields stays raw so each
// feature decodes its own schema.
type ObjectContent struct {
	DataType string          `json:"dataType"`
	Type     string          `json:"type"`
	Fields   json.RawMessage `json:"fields"`
}

// ObjectDisplay is the off-chain display metadata attached to an object.
type ObjectDisplay struct {
	Data map[string]string `json:"data"`
}

// objectError is the fullnode's in-band object lookup failure.
type objectError struct {
	Code     string `json:"code"`
	ObjectID string `json:"object_id,omitempty"`
}

// Coin is a single owned coin object of some coin type.
type Coin struct {
	CoinType     string `json:"coinType"`
	CoinObjectID string `json:"coinObjectId"`
	Balance      Uint64 `json:"balance"`
}

// EventID identifies an event within its transaction.
type EventID struct {
	TxDigest string `json:"txDigest"`
	EventSeq string `json:"eventSeq"`
}

// Event is one entry of the chain event log. ParsedJSON is the
// contract-emitted payload and is not validated here.
type Event struct {
	ID          EventID         `json:"id"`
	PackageID   string          `json:"packageId"`
	Type        string          `json:"type"`
	Sender      string          `json:"sender"`
	ParsedJSON  json.RawMessage `json:"parsedJson"`
	TimestampMs string          `json:"timestampMs,omitempty"`
}

type objectResponse struct {
	Data  *ObjectData  `json:"data"`
	Error *objectError `json:"error"`
}

type coinPage struct {
	Data        []Coin          `json:"data"`
	NextCursor  json.RawMessage `json:"nextCursor"`
	HasNextPage bool            `json:"hasNextPage"`
}

type eventPage struct {
	Data        []Event         `json:"data"`
	NextCursor  json.RawMessage `json:"nextCursor"`
	HasNextPage bool            `json:"hasNextPage"`
}

type ownedObjectPage struct {
	Data        []objectResponse `json:"data"`
	NextCursor  json.RawMessage  `json:"nextCursor"`
	HasNextPage bool             `json:"hasNextPage"`
}
