package sui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"raffle-tool-backend/internal/common/logger"
)

// ErrObjectNotFound is returned when the fullnode reports a missing or
// deleted object for a well-formed request.
var ErrObjectNotFound = fmt.Errorf("object not found")

const pageLimit = 50

// Client speaks JSON-RPC 2.0 to a Sui fullnode.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a fullnode client for the given RPC endpoint.
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// call performs one JSON-RPC exchange. Transport and node errors are
// returned unmodified for the caller to classify.
func (c *Client) call(ctx context.Context, method string, params []interface{}, out interface{}) error {
	body, err := json.Marshal(rpcRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: params})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fullnode http %d for %s", resp.StatusCode, method)
	}

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return err
	}
	if rpcResp.Error != nil {
		return fmt.Errorf("%s: rpc error %d: %s", method, rpcResp.Error.Code, rpcResp.Error.Message)
	}

	logger.Debug().Str("method", method).Msg("RPC call completed")
	return json.Unmarshal(rpcResp.Result, out)
}

var objectOptions = map[string]bool{
	"showContent": true,
	"showType":    true,
	"showDisplay": true,
}

// GetObject fetches one object with content, type tag and display metadata.
func (c *Client) GetObject(ctx context.Context, objectID string) (*ObjectData, error) {
	if objectID == "" {
		return nil, fmt.Errorf("empty object id")
	}

	var resp objectResponse
	if err := c.call(ctx, "sui_getObject", []interface{}{objectID, objectOptions}, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil || resp.Data == nil {
		return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, objectID)
	}
	return resp.Data, nil
}

// QueryEvents returns all events of one move event type, oldest first,
// following pagination to the end.
func (c *Client) QueryEvents(ctx context.Context, eventType string) ([]Event, error) {
	filter := map[string]string{"MoveEventType": eventType}

	var events []Event
	var cursor interface{}
	for {
		var page eventPage
		if err := c.call(ctx, "suix_queryEvents", []interface{}{filter, cursor, pageLimit, false}, &page); err != nil {
			return nil, err
		}
		events = append(events, page.Data...)
		if !page.HasNextPage {
			return events, nil
		}
		cursor = page.NextCursor
	}
}

// GetCoins returns all coin objects of coinType owned by owner.
func (c *Client) GetCoins(ctx context.Context, owner, coinType string) ([]Coin, error) {
	var coins []Coin
	var cursor interface{}
	for {
		var page coinPage
		if err := c.call(ctx, "suix_getCoins", []interface{}{owner, coinType, cursor, pageLimit}, &page); err != nil {
			return nil, err
		}
		coins = append(coins, page.Data...)
		if !page.HasNextPage {
			return coins, nil
		}
		cursor = page.NextCursor
	}
}

// GetOwnedObjects returns objects owned by owner, optionally filtered by
// struct type, with content and display metadata resolved.
func (c *Client) GetOwnedObjects(ctx context.Context, owner, structType string) ([]ObjectData, error) {
	query := map[string]interface{}{"options": objectOptions}
	if structType != "" {
		query["filter"] = map[string]string{"StructType": structType}
	}

	var objects []ObjectData
	var cursor interface{}
	for {
		var page ownedObjectPage
		if err := c.call(ctx, "suix_getOwnedObjects", []interface{}{owner, query, cursor, pageLimit}, &page); err != nil {
			return nil, err
		}
		for _, entry := range page.Data {
			if entry.Data != nil {
				objects = append(objects, *entry.Data)
			}
		}
		if !page.HasNextPage {
			return objects, nil
		}
		cursor = page.NextCursor
	}
}
