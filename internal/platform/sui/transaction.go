package sui

import (
	"encoding/json"
	"strconv"
)

// Transaction is an unsigned programmable-transaction description. Builders
// append inputs and commands; the serialized form is handed to the caller's
// wallet, which resolves object references, signs and submits. No network
// I/O happens here.
type Transaction struct {
	inputs   []Input
	commands []Command
}

// Input is a transaction input: an object reference or a pure value.
// Pure u64 values are carried as decimal strings to survive JS callers.
type Input struct {
	Kind      string `json:"kind"` // "object" or "pure"
	Object    string `json:"object,omitempty"`
	ValueType string `json:"valueType,omitempty"` // "u64", "string", "address", "bool"
	Value     string `json:"value,omitempty"`
}

// Argument references an input, the gas coin, or a prior command's result.
type Argument struct {
	Kind  string `json:"kind"` // "input", "gas", "result"
	Index int    `json:"index"`
}

// Command is one step of the transaction, exactly one field set.
type Command struct {
	MoveCall   *MoveCall   `json:"MoveCall,omitempty"`
	SplitCoins *SplitCoins `json:"SplitCoins,omitempty"`
	MergeCoins *MergeCoins `json:"MergeCoins,omitempty"`
}

// MoveCall invokes a contract entry point.
type MoveCall struct {
	Target        string     `json:"target"` // <package>::<module>::<function>
	TypeArguments []string   `json:"typeArguments,omitempty"`
	Arguments     []Argument `json:"arguments"`
}

// SplitCoins splits amounts off a coin; the result is the first split coin.
type SplitCoins struct {
	Coin    Argument   `json:"coin"`
	Amounts []Argument `json:"amounts"`
}

// MergeCoins merges source coins into a destination coin.
type MergeCoins struct {
	Destination Argument   `json:"destination"`
	Sources     []Argument `json:"sources"`
}

func NewTransaction() *Transaction {
	return &Transaction{}
}

func (t *Transaction) addInput(in Input) Argument {
	t.inputs = append(t.inputs, in)
	return Argument{Kind: "input", Index: len(t.inputs) - 1}
}

func (t *Transaction) addCommand(cmd Command) Argument {
	t.commands = append(t.commands, cmd)
	return Argument{Kind: "result", Index: len(t.commands) - 1}
}

// Object adds an object-reference input.
func (t *Transaction) Object(objectID string) Argument {
	return t.addInput(Input{Kind: "object", Object: objectID})
}

// PureU64 adds a pure u64 input.
func (t *Transaction) PureU64(v uint64) Argument {
	return t.addInput(Input{Kind: "pure", ValueType: "u64", Value: strconv.FormatUint(v, 10)})
}

// PureString adds a pure string input.
func (t *Transaction) PureString(s string) Argument {
	return t.addInput(Input{Kind: "pure", ValueType: "string", Value: s})
}

// PureAddress adds a pure address input.
func (t *Transaction) PureAddress(addr string) Argument {
	return t.addInput(Input{Kind: "pure", ValueType: "address", Value: addr})
}

// Gas references the gas coin.
func (t *Transaction) Gas() Argument {
	return Argument{Kind: "gas"}
}

// SplitCoins appends a split command and returns the split-off coin.
func (t *Transaction) SplitCoins(coin Argument, amounts ...Argument) Argument {
	return t.addCommand(Command{SplitCoins: &SplitCoins{Coin: coin, Amounts: amounts}})
}

// MergeCoins appends a merge command. The merged value stays in destination.
func (t *Transaction) MergeCoins(destination Argument, sources ...Argument) {
	t.addCommand(Command{MergeCoins: &MergeCoins{Destination: destination, Sources: sources}})
}

// MoveCall appends an entry-point invocation and returns its result.
func (t *Transaction) MoveCall(target string, typeArguments []string, arguments ...Argument) Argument {
	if arguments == nil {
		arguments = []Argument{}
	}
	return t.addCommand(Command{MoveCall: &MoveCall{
		Target:        target,
		TypeArguments: typeArguments,
		Arguments:     arguments,
	}})
}

// Inputs returns the accumulated inputs.
func (t *Transaction) Inputs() []Input {
	return t.inputs
}

// Commands returns the accumulated commands.
func (t *Transaction) Commands() []Command {
	return t.commands
}

// MoveCalls returns the move-call commands in order.
func (t *Transaction) MoveCalls() []*MoveCall {
	var calls []*MoveCall
	for _, cmd := range t.commands {
		if cmd.MoveCall != nil {
			calls = append(calls, cmd.MoveCall)
		}
	}
	return calls
}

type transactionJSON struct {
	Inputs   []Input   `json:"inputs"`
	Commands []Command `json:"commands"`
}

func (t *Transaction) MarshalJSON() ([]byte, error) {
	inputs := t.inputs
	if inputs == nil {
		inputs = []Input{}
	}
	commands := t.commands
	if commands == nil {
		commands = []Command{}
	}
	return json.Marshal(transactionJSON{Inputs: inputs, Commands: commands})
}
