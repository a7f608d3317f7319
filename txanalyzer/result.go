package txanalyzer

import (
	"math/big"
	"reflect"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/tranvictor/visualsign/payload"
	"github.com/tranvictor/visualsign/util/addrbook"
)

type ParamResult struct {
	Name  string
	Type  abi.Type
	Raw   interface{}
	Value string
}

// FunctionCall is one decoded call against a known ABI.
type FunctionCall struct {
	Method    string
	Signature string
	Selector  string
	Params    []ParamResult
}

// Param returns the parameter called name.
func (fc *FunctionCall) Param(name string) (ParamResult, bool) {
	for _, p := range fc.Params {
		if p.Name == name {
			return p, true
		}
	}
	return ParamResult{}, false
}

// Address returns the address parameter called name, the zero address when
// it is missing or of another type.
func (fc *FunctionCall) Address(name string) common.Address {
	p, _ := fc.Param(name)
	addr, _ := p.Raw.(common.Address)
	return addr
}

// Big returns the integer parameter called name whatever its width. Missing
// or non integer parameters yield 0.
func (fc *FunctionCall) Big(name string) *big.Int {
	p, _ := fc.Param(name)
	return toBig(p.Raw)
}

func (fc *FunctionCall) Bool(name string) bool {
	p, _ := fc.Param(name)
	b, _ := p.Raw.(bool)
	return b
}

func toBig(v interface{}) *big.Int {
	switch n := v.(type) {
	case *big.Int:
		if n == nil {
			return new(big.Int)
		}
		return n
	case nil:
		return new(big.Int)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return new(big.Int).SetUint64(rv.Uint())
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return big.NewInt(rv.Int())
	}
	return new(big.Int)
}

// Field renders the call as a preview layout with one expanded field per
// declared parameter. resolver may be nil.
func (fc *FunctionCall) Field(resolver addrbook.AddressResolver) payload.Field {
	expanded := make([]payload.Field, 0, len(fc.Params))
	for _, p := range fc.Params {
		expanded = append(expanded, p.Field(resolver))
	}
	return payload.Preview{
		Label:    fc.Method,
		Title:    fc.Method,
		Subtitle: fc.Signature,
		Expanded: expanded,
	}.Field()
}

// Field renders a single parameter. Addresses become address fields with a
// resolved name, integers become number fields, everything else text.
func (p ParamResult) Field(resolver addrbook.AddressResolver) payload.Field {
	switch p.Type.T {
	case abi.AddressTy:
		addr := p.Raw.(common.Address).Hex()
		name := ""
		if resolver != nil {
			name = resolver.Resolve(addr).Name()
		}
		return payload.NewAddressField(p.Name, addr, name, "")
	case abi.IntTy, abi.UintTy:
		return payload.NewNumberField(p.Name, p.Value)
	}
	return payload.NewTextField(p.Name, p.Value)
}
