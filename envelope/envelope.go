// Package envelope decodes raw Ethereum transaction envelopes into unsigned
// go-ethereum transactions.
package envelope

import (
	"bytes"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
)

// Options is the decode policy.
type Options struct {
	// AllowSigned accepts fully signed envelopes. The signature is dropped.
	AllowSigned bool
	// Supported lists the accepted kinds. Nil means DefaultSupported.
	Supported []Kind
}

// DefaultSupported are the kinds accepted when Options.Supported is nil.
var DefaultSupported = []Kind{KindLegacy, KindDynamicFee}

// AllKinds accepts every envelope kind this package can decode.
var AllKinds = []Kind{KindLegacy, KindAccessList, KindDynamicFee, KindBlob, KindSetCode}

func (o Options) supports(k Kind) bool {
	supported := o.Supported
	if supported == nil {
		supported = DefaultSupported
	}
	for _, s := range supported {
		if s == k {
			return true
		}
	}
	return false
}

// Decode reads one unsigned transaction from raw. Every byte must be
// consumed.
func Decode(raw []byte, opts Options) (*Transaction, error) {
	if len(raw) == 0 {
		return nil, ErrInputTooShort
	}
	first := raw[0]
	if first == 0 || (first >= 0x80 && first < 0xc0) {
		return nil, errors.Wrapf(ErrUnexpectedType, "%d", first)
	}

	kind := KindLegacy
	body := raw
	if first <= 0x7f {
		k, ok := kindOf(first)
		if !ok {
			return nil, errors.Wrapf(ErrUnexpectedType, "%d", first)
		}
		kind = k
		body = raw[1:]
	}
	if !opts.supports(kind) {
		return nil, &UnsupportedKindError{Kind: kind}
	}

	f, err := decodeUnsigned(kind, body)
	if err != nil {
		if errors.Is(err, ErrTrailingBytes) {
			return nil, err
		}
		signed := new(types.Transaction)
		if serr := signed.UnmarshalBinary(raw); serr != nil {
			return nil, err
		}
		if !opts.AllowSigned {
			return nil, errors.Wrapf(ErrSignedNotAllowed, "%s", kind)
		}
		f = fieldsOf(signed)
	}
	return f.transaction()
}

// splitList checks that b is exactly one RLP list and returns a stream
// positioned before it.
func splitList(b []byte) (*rlp.Stream, error) {
	k, _, rest, err := rlp.Split(b)
	if err != nil {
		return nil, errors.Errorf("Failed to decode transaction: %s", err)
	}
	if k != rlp.List {
		return nil, errors.New("Failed to decode transaction: expected rlp list")
	}
	if len(rest) > 0 {
		return nil, errors.Wrapf(ErrTrailingBytes, "%x", rest)
	}
	return rlp.NewStream(bytes.NewReader(b), uint64(len(b))), nil
}

func decodeUnsigned(kind Kind, body []byte) (*fields, error) {
	s, err := splitList(body)
	if err != nil {
		return nil, err
	}
	var f *fields
	switch kind {
	case KindLegacy:
		f, err = decodeLegacy(s)
	case KindAccessList:
		var shape accessListShape
		if err = s.Decode(&shape); err == nil {
			f = shape.fields()
		}
	case KindDynamicFee:
		var shape dynamicFeeShape
		if err = s.Decode(&shape); err == nil {
			f = shape.fields()
		}
	case KindBlob:
		var shape blobShape
		if err = s.Decode(&shape); err == nil {
			f = shape.fields()
		}
	case KindSetCode:
		var shape setCodeShape
		if err = s.Decode(&shape); err == nil {
			f = shape.fields()
		}
	}
	if err != nil {
		return nil, errors.Errorf("Failed to decode transaction: %s", err)
	}
	return f, nil
}

// decodeLegacy reads [nonce, gasPrice, gas, to, value, data] with an
// optional EIP-155 tail [chainId, 0, 0].
func decodeLegacy(s *rlp.Stream) (*fields, error) {
	if _, err := s.List(); err != nil {
		return nil, err
	}
	f := &fields{kind: KindLegacy}
	var err error
	if f.nonce, err = s.Uint64(); err != nil {
		return nil, errors.Wrap(err, "nonce")
	}
	if f.gasPrice, err = s.BigInt(); err != nil {
		return nil, errors.Wrap(err, "gas price")
	}
	if f.gas, err = s.Uint64(); err != nil {
		return nil, errors.Wrap(err, "gas limit")
	}
	if f.to, err = decodeTo(s); err != nil {
		return nil, errors.Wrap(err, "to")
	}
	if f.value, err = s.BigInt(); err != nil {
		return nil, errors.Wrap(err, "value")
	}
	if f.data, err = s.Bytes(); err != nil {
		return nil, errors.Wrap(err, "data")
	}

	chainID, err := s.BigInt()
	switch {
	case err == rlp.EOL:
		return f, s.ListEnd()
	case err != nil:
		return nil, errors.Wrap(err, "chain id")
	}
	for _, name := range []string{"eip-155 r", "eip-155 s"} {
		zero, err := s.Uint64()
		if err != nil {
			return nil, errors.Wrap(err, name)
		}
		if zero != 0 {
			return nil, errors.Errorf("%s must be zero in an unsigned transaction", name)
		}
	}
	if err := s.ListEnd(); err != nil {
		return nil, err
	}
	f.chainID = chainID
	return f, nil
}

func decodeTo(s *rlp.Stream) (*common.Address, error) {
	b, err := s.Bytes()
	if err != nil {
		return nil, err
	}
	switch len(b) {
	case 0:
		return nil, nil
	case common.AddressLength:
		addr := common.BytesToAddress(b)
		return &addr, nil
	}
	return nil, errors.Errorf("invalid address length %d", len(b))
}

type accessListShape struct {
	ChainID    *big.Int
	Nonce      uint64
	GasPrice   *big.Int
	Gas        uint64
	To         *common.Address `rlp:"nil"`
	Value      *big.Int
	Data       []byte
	AccessList types.AccessList
}

func (s *accessListShape) fields() *fields {
	return &fields{
		kind:       KindAccessList,
		chainID:    s.ChainID,
		nonce:      s.Nonce,
		gasPrice:   s.GasPrice,
		gas:        s.Gas,
		to:         s.To,
		value:      s.Value,
		data:       s.Data,
		accessList: s.AccessList,
	}
}

type dynamicFeeShape struct {
	ChainID    *big.Int
	Nonce      uint64
	GasTipCap  *big.Int
	GasFeeCap  *big.Int
	Gas        uint64
	To         *common.Address `rlp:"nil"`
	Value      *big.Int
	Data       []byte
	AccessList types.AccessList
}

func (s *dynamicFeeShape) fields() *fields {
	return &fields{
		kind:       KindDynamicFee,
		chainID:    s.ChainID,
		nonce:      s.Nonce,
		gasTipCap:  s.GasTipCap,
		gasFeeCap:  s.GasFeeCap,
		gas:        s.Gas,
		to:         s.To,
		value:      s.Value,
		data:       s.Data,
		accessList: s.AccessList,
	}
}

type blobShape struct {
	ChainID    *big.Int
	Nonce      uint64
	GasTipCap  *big.Int
	GasFeeCap  *big.Int
	Gas        uint64
	To         common.Address
	Value      *big.Int
	Data       []byte
	AccessList types.AccessList
	BlobFeeCap *big.Int
	BlobHashes []common.Hash
}

func (s *blobShape) fields() *fields {
	to := s.To
	return &fields{
		kind:       KindBlob,
		chainID:    s.ChainID,
		nonce:      s.Nonce,
		gasTipCap:  s.GasTipCap,
		gasFeeCap:  s.GasFeeCap,
		gas:        s.Gas,
		to:         &to,
		value:      s.Value,
		data:       s.Data,
		accessList: s.AccessList,
		blobFeeCap: s.BlobFeeCap,
		blobHashes: s.BlobHashes,
	}
}

type setCodeShape struct {
	ChainID    *big.Int
	Nonce      uint64
	GasTipCap  *big.Int
	GasFeeCap  *big.Int
	Gas        uint64
	To         common.Address
	Value      *big.Int
	Data       []byte
	AccessList types.AccessList
	AuthList   []types.SetCodeAuthorization
}

func (s *setCodeShape) fields() *fields {
	to := s.To
	return &fields{
		kind:       KindSetCode,
		chainID:    s.ChainID,
		nonce:      s.Nonce,
		gasTipCap:  s.GasTipCap,
		gasFeeCap:  s.GasFeeCap,
		gas:        s.Gas,
		to:         &to,
		value:      s.Value,
		data:       s.Data,
		accessList: s.AccessList,
		authList:   s.AuthList,
	}
}
