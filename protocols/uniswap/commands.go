package uniswap

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	vscommon "github.com/tranvictor/visualsign/common"
	"github.com/tranvictor/visualsign/txanalyzer"
)

// Command is a Universal Router opcode with its flag bits removed.
type Command byte

const (
	V3SwapExactIn       Command = 0x00
	V3SwapExactOut      Command = 0x01
	Permit2TransferFrom Command = 0x02
	Sweep               Command = 0x04
	Transfer            Command = 0x05
	PayPortion          Command = 0x06
	V2SwapExactIn       Command = 0x08
	V2SwapExactOut      Command = 0x09
	Permit2Permit       Command = 0x0a
	WrapETH             Command = 0x0b
	UnwrapWETH          Command = 0x0c
)

const (
	FlagAllowRevert byte = 0x80
	commandMask     byte = 0x3f
)

var commandNames = map[Command]string{
	V3SwapExactIn:       "V3_SWAP_EXACT_IN",
	V3SwapExactOut:      "V3_SWAP_EXACT_OUT",
	Permit2TransferFrom: "PERMIT2_TRANSFER_FROM",
	Sweep:               "SWEEP",
	Transfer:            "TRANSFER",
	PayPortion:          "PAY_PORTION",
	V2SwapExactIn:       "V2_SWAP_EXACT_IN",
	V2SwapExactOut:      "V2_SWAP_EXACT_OUT",
	Permit2Permit:       "PERMIT2_PERMIT",
	WrapETH:             "WRAP_ETH",
	UnwrapWETH:          "UNWRAP_WETH",
}

// ParseCommand splits a command byte into its opcode and allow-revert flag.
func ParseCommand(b byte) (Command, bool) {
	return Command(b & commandMask), b&FlagAllowRevert != 0
}

func (c Command) String() string {
	if name, found := commandNames[c]; found {
		return name
	}
	return fmt.Sprintf("0x%02x", byte(c))
}

var (
	titleCaser   = cases.Title(language.English)
	acronymFixer = strings.NewReplacer("Eth", "ETH", "Weth", "WETH")
)

// Title is the display name of the command, "V3 Swap Exact In" for
// V3_SWAP_EXACT_IN.
func (c Command) Title() string {
	name, found := commandNames[c]
	if !found {
		return "Command " + c.String()
	}
	words := strings.ToLower(strings.ReplaceAll(name, "_", " "))
	return acronymFixer.Replace(titleCaser.String(words))
}

// Each command's input is the ABI encoding of its parameters. They are
// declared as functions so go-ethereum can unpack them by name.
const commandInputsJSON = `[
{"type":"function","name":"V3_SWAP_EXACT_IN","outputs":[],"inputs":[
	{"name":"recipient","type":"address"},{"name":"amountIn","type":"uint256"},
	{"name":"amountOutMin","type":"uint256"},{"name":"path","type":"bytes"},
	{"name":"payerIsUser","type":"bool"}]},
{"type":"function","name":"V3_SWAP_EXACT_OUT","outputs":[],"inputs":[
	{"name":"recipient","type":"address"},{"name":"amountOut","type":"uint256"},
	{"name":"amountInMax","type":"uint256"},{"name":"path","type":"bytes"},
	{"name":"payerIsUser","type":"bool"}]},
{"type":"function","name":"PERMIT2_TRANSFER_FROM","outputs":[],"inputs":[
	{"name":"token","type":"address"},{"name":"recipient","type":"address"},
	{"name":"amount","type":"uint160"}]},
{"type":"function","name":"SWEEP","outputs":[],"inputs":[
	{"name":"token","type":"address"},{"name":"recipient","type":"address"},
	{"name":"amountMin","type":"uint256"}]},
{"type":"function","name":"TRANSFER","outputs":[],"inputs":[
	{"name":"token","type":"address"},{"name":"recipient","type":"address"},
	{"name":"value","type":"uint256"}]},
{"type":"function","name":"PAY_PORTION","outputs":[],"inputs":[
	{"name":"token","type":"address"},{"name":"recipient","type":"address"},
	{"name":"bips","type":"uint256"}]},
{"type":"function","name":"V2_SWAP_EXACT_IN","outputs":[],"inputs":[
	{"name":"recipient","type":"address"},{"name":"amountIn","type":"uint256"},
	{"name":"amountOutMin","type":"uint256"},{"name":"path","type":"address[]"},
	{"name":"payerIsUser","type":"bool"}]},
{"type":"function","name":"V2_SWAP_EXACT_OUT","outputs":[],"inputs":[
	{"name":"recipient","type":"address"},{"name":"amountOut","type":"uint256"},
	{"name":"amountInMax","type":"uint256"},{"name":"path","type":"address[]"},
	{"name":"payerIsUser","type":"bool"}]},
{"type":"function","name":"PERMIT2_PERMIT","outputs":[],"inputs":[
	{"name":"permitSingle","type":"tuple","components":[
		{"name":"details","type":"tuple","components":[
			{"name":"token","type":"address"},{"name":"amount","type":"uint160"},
			{"name":"expiration","type":"uint48"},{"name":"nonce","type":"uint48"}]},
		{"name":"spender","type":"address"},{"name":"sigDeadline","type":"uint256"}]},
	{"name":"signature","type":"bytes"}]},
{"type":"function","name":"WRAP_ETH","outputs":[],"inputs":[
	{"name":"recipient","type":"address"},{"name":"amountMin","type":"uint256"}]},
{"type":"function","name":"UNWRAP_WETH","outputs":[],"inputs":[
	{"name":"recipient","type":"address"},{"name":"amountMin","type":"uint256"}]}
]`

var commandInputs = txanalyzer.MustParseABI(commandInputsJSON)

// decodeInput unpacks the input blob of c into a FunctionCall so decoders
// can read parameters by name.
func decodeInput(c Command, blob []byte) (*txanalyzer.FunctionCall, error) {
	m, found := commandInputs.Methods[c.String()]
	if !found {
		return nil, errors.Errorf("no decoder for command %s", c)
	}
	values, err := m.Inputs.UnpackValues(blob)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't unpack %s input", c)
	}
	fc := &txanalyzer.FunctionCall{Method: m.Name, Signature: m.Sig}
	for i, input := range m.Inputs {
		fc.Params = append(fc.Params, txanalyzer.ParamResult{
			Name:  input.Name,
			Type:  input.Type,
			Raw:   values[i],
			Value: txanalyzer.ParamAsString(input.Type, values[i]),
		})
	}
	return fc, nil
}

// Hop is one pool crossing of a V3 path.
type Hop struct {
	TokenIn  common.Address
	Fee      uint32
	TokenOut common.Address
}

const (
	pathAddrSize = 20
	pathFeeSize  = 3
)

// ParsePath splits a packed V3 path token(20) fee(3) token(20)... into hops.
func ParsePath(path []byte) ([]Hop, error) {
	if len(path) < 2*pathAddrSize+pathFeeSize || (len(path)-pathAddrSize)%(pathAddrSize+pathFeeSize) != 0 {
		return nil, errors.Errorf("invalid V3 path length %d", len(path))
	}
	var hops []Hop
	for off := 0; off+pathAddrSize < len(path); off += pathAddrSize + pathFeeSize {
		fee := path[off+pathAddrSize : off+pathAddrSize+pathFeeSize]
		hops = append(hops, Hop{
			TokenIn:  common.BytesToAddress(path[off : off+pathAddrSize]),
			Fee:      uint32(fee[0])<<16 | uint32(fee[1])<<8 | uint32(fee[2]),
			TokenOut: common.BytesToAddress(path[off+pathAddrSize+pathFeeSize : off+2*pathAddrSize+pathFeeSize]),
		})
	}
	return hops, nil
}

// FeePercent renders a fee in hundredths of a bip, 500 as "0.05%".
func FeePercent(fee uint32) string {
	return vscommon.FormatUnits(new(big.Int).SetUint64(uint64(fee)), 4) + "%"
}

// PathString renders hops as "WETH > 0.05% > USDC".
func PathString(hops []Hop, symbol func(common.Address) string) string {
	if len(hops) == 0 {
		return ""
	}
	parts := []string{symbol(hops[0].TokenIn)}
	for _, h := range hops {
		parts = append(parts, FeePercent(h.Fee), symbol(h.TokenOut))
	}
	return strings.Join(parts, " > ")
}

// EncodeInput ABI encodes args as the input of command c.
func EncodeInput(c Command, args ...interface{}) ([]byte, error) {
	m, found := commandInputs.Methods[c.String()]
	if !found {
		return nil, errors.Errorf("no encoder for command %s", c)
	}
	return m.Inputs.Pack(args...)
}
