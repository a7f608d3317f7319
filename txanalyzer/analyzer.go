package txanalyzer

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// AnalyzeMethodCall matches the 4 byte selector of data against a and
// unpacks the parameters.
func AnalyzeMethodCall(a *abi.ABI, data []byte) (*FunctionCall, error) {
	if len(data) < 4 {
		return nil, ErrCalldataTooShort
	}
	if a == nil {
		return nil, ErrSelectorNotFound
	}
	m, err := a.MethodById(data[:4])
	if err != nil {
		return nil, ErrSelectorNotFound
	}
	ps, err := m.Inputs.UnpackValues(data[4:])
	if err != nil {
		types := make([]string, 0, len(m.Inputs))
		for _, input := range m.Inputs {
			types = append(types, input.Type.String())
		}
		return nil, &DecodeError{Method: m.RawName, Types: types, Data: data[4:], Err: err}
	}

	fc := &FunctionCall{
		Method:    m.RawName,
		Signature: m.Sig,
		Selector:  common.Bytes2Hex(data[:4]),
		Params:    make([]ParamResult, 0, len(m.Inputs)),
	}
	for i, input := range m.Inputs {
		name := input.Name
		if name == "" {
			name = fmt.Sprintf("param%d", i)
		}
		fc.Params = append(fc.Params, ParamResult{
			Name:  name,
			Type:  input.Type,
			Raw:   ps[i],
			Value: ParamAsString(input.Type, ps[i]),
		})
	}
	return fc, nil
}

func nonArrayParamAsString(t abi.Type, value interface{}) string {
	switch t.T {
	case abi.StringTy:
		s := value.(string)
		if s == "" {
			return `""`
		}
		return s
	case abi.IntTy, abi.UintTy:
		return fmt.Sprintf("%d", value)
	case abi.BoolTy:
		return fmt.Sprintf("%t", value.(bool))
	case abi.AddressTy:
		return value.(common.Address).Hex()
	case abi.HashTy:
		return value.(common.Hash).Hex()
	case abi.BytesTy:
		return hexutil.Encode(value.([]byte))
	case abi.FixedBytesTy, abi.FunctionTy:
		v := reflect.ValueOf(value)
		word := make([]byte, v.Len())
		reflect.Copy(reflect.ValueOf(word), v)
		return hexutil.Encode(word)
	default:
		return fmt.Sprintf("%v", value)
	}
}

// ParamAsString renders an unpacked ABI value. Arrays render as [a, b] and
// tuples as (a, b), recursively.
func ParamAsString(t abi.Type, value interface{}) string {
	switch t.T {
	case abi.SliceTy, abi.ArrayTy:
		realVal := reflect.ValueOf(value)
		elems := make([]string, 0, realVal.Len())
		for i := 0; i < realVal.Len(); i++ {
			elems = append(elems, ParamAsString(*t.Elem, realVal.Index(i).Interface()))
		}
		return "[" + strings.Join(elems, ", ") + "]"
	case abi.TupleTy:
		realVal := reflect.Indirect(reflect.ValueOf(value))
		elems := make([]string, 0, len(t.TupleElems))
		for i, field := range t.TupleElems {
			elems = append(elems, ParamAsString(*field, realVal.Field(i).Interface()))
		}
		return "(" + strings.Join(elems, ", ") + ")"
	default:
		return nonArrayParamAsString(t, value)
	}
}
