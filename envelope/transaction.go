package envelope

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// Kind is the EIP-2718 envelope kind. Values match the go-ethereum type
// bytes.
type Kind uint8

const (
	KindLegacy     Kind = types.LegacyTxType
	KindAccessList Kind = types.AccessListTxType
	KindDynamicFee Kind = types.DynamicFeeTxType
	KindBlob       Kind = types.BlobTxType
	KindSetCode    Kind = types.SetCodeTxType
)

func (k Kind) String() string {
	switch k {
	case KindLegacy:
		return "legacy"
	case KindAccessList:
		return "eip-2930"
	case KindDynamicFee:
		return "eip-1559"
	case KindBlob:
		return "eip-4844"
	case KindSetCode:
		return "eip-7702"
	}
	return fmt.Sprintf("type-0x%02x", uint8(k))
}

// HasFeeMarket reports whether the kind prices gas with a fee cap and a tip
// instead of a single gas price.
func (k Kind) HasFeeMarket() bool {
	return k == KindDynamicFee || k == KindBlob || k == KindSetCode
}

func kindOf(b byte) (Kind, bool) {
	switch Kind(b) {
	case KindAccessList, KindDynamicFee, KindBlob, KindSetCode:
		return Kind(b), true
	}
	return 0, false
}

// Transaction is a decoded, unsigned transaction.
type Transaction struct {
	Tx   *types.Transaction
	Kind Kind
	// Partial is set when the transaction came from the custom partial
	// format rather than a standard envelope.
	Partial bool

	chainID *big.Int
}

// Wrap strips any signature from tx. Legacy transactions keep a chain id
// only when tx is EIP-155 protected, or when chainID is given.
func Wrap(tx *types.Transaction, chainID *big.Int) (*Transaction, error) {
	f := fieldsOf(tx)
	if chainID != nil {
		f.chainID = chainID
	}
	return f.transaction()
}

// ChainID returns the chain id carried by the envelope. A legacy transaction
// without the EIP-155 tail has none.
func (t *Transaction) ChainID() (uint64, bool) {
	if t.chainID == nil || !t.chainID.IsUint64() {
		return 0, false
	}
	return t.chainID.Uint64(), true
}

func (t *Transaction) To() *common.Address { return t.Tx.To() }

func (t *Transaction) Data() []byte { return t.Tx.Data() }

func (t *Transaction) Value() *big.Int { return t.Tx.Value() }

// IsDeployment reports whether the transaction creates a contract.
func (t *Transaction) IsDeployment() bool { return t.Tx.To() == nil }

// fields is the kind independent unsigned content of an envelope.
type fields struct {
	kind       Kind
	chainID    *big.Int
	nonce      uint64
	gasPrice   *big.Int
	gasTipCap  *big.Int
	gasFeeCap  *big.Int
	gas        uint64
	to         *common.Address
	value      *big.Int
	data       []byte
	accessList types.AccessList
	blobFeeCap *big.Int
	blobHashes []common.Hash
	authList   []types.SetCodeAuthorization
}

func fieldsOf(tx *types.Transaction) *fields {
	f := &fields{
		kind:       Kind(tx.Type()),
		nonce:      tx.Nonce(),
		gasPrice:   tx.GasPrice(),
		gasTipCap:  tx.GasTipCap(),
		gasFeeCap:  tx.GasFeeCap(),
		gas:        tx.Gas(),
		to:         tx.To(),
		value:      tx.Value(),
		data:       tx.Data(),
		accessList: tx.AccessList(),
		blobFeeCap: tx.BlobGasFeeCap(),
		blobHashes: tx.BlobHashes(),
		authList:   tx.SetCodeAuthorizations(),
	}
	if f.kind != KindLegacy || tx.Protected() {
		f.chainID = tx.ChainId()
	}
	return f
}

func toUint256(name string, v *big.Int) (*uint256.Int, error) {
	if v == nil {
		return new(uint256.Int), nil
	}
	if v.Sign() < 0 {
		return nil, errors.Errorf("%s is negative", name)
	}
	out, overflow := uint256.FromBig(v)
	if overflow {
		return nil, errors.Errorf("%s overflows 256 bits", name)
	}
	return out, nil
}

func (f *fields) transaction() (*Transaction, error) {
	var inner types.TxData
	switch f.kind {
	case KindLegacy:
		inner = &types.LegacyTx{
			Nonce:    f.nonce,
			GasPrice: f.gasPrice,
			Gas:      f.gas,
			To:       f.to,
			Value:    f.value,
			Data:     f.data,
		}
	case KindAccessList:
		inner = &types.AccessListTx{
			ChainID:    f.chainID,
			Nonce:      f.nonce,
			GasPrice:   f.gasPrice,
			Gas:        f.gas,
			To:         f.to,
			Value:      f.value,
			Data:       f.data,
			AccessList: f.accessList,
		}
	case KindDynamicFee:
		inner = &types.DynamicFeeTx{
			ChainID:    f.chainID,
			Nonce:      f.nonce,
			GasTipCap:  f.gasTipCap,
			GasFeeCap:  f.gasFeeCap,
			Gas:        f.gas,
			To:         f.to,
			Value:      f.value,
			Data:       f.data,
			AccessList: f.accessList,
		}
	case KindBlob, KindSetCode:
		if f.to == nil {
			return nil, errors.Errorf("%s transaction without destination", f.kind)
		}
		ints := map[string]*big.Int{
			"chain id":    f.chainID,
			"gas tip cap": f.gasTipCap,
			"gas fee cap": f.gasFeeCap,
			"value":       f.value,
			"blob fee":    f.blobFeeCap,
		}
		u := make(map[string]*uint256.Int, len(ints))
		for name, v := range ints {
			conv, err := toUint256(name, v)
			if err != nil {
				return nil, err
			}
			u[name] = conv
		}
		if f.kind == KindBlob {
			inner = &types.BlobTx{
				ChainID:    u["chain id"],
				Nonce:      f.nonce,
				GasTipCap:  u["gas tip cap"],
				GasFeeCap:  u["gas fee cap"],
				Gas:        f.gas,
				To:         *f.to,
				Value:      u["value"],
				Data:       f.data,
				AccessList: f.accessList,
				BlobFeeCap: u["blob fee"],
				BlobHashes: f.blobHashes,
			}
		} else {
			inner = &types.SetCodeTx{
				ChainID:    u["chain id"],
				Nonce:      f.nonce,
				GasTipCap:  u["gas tip cap"],
				GasFeeCap:  u["gas fee cap"],
				Gas:        f.gas,
				To:         *f.to,
				Value:      u["value"],
				Data:       f.data,
				AccessList: f.accessList,
				AuthList:   f.authList,
			}
		}
	default:
		return nil, errors.Wrapf(ErrUnexpectedType, "0x%02x", uint8(f.kind))
	}
	return &Transaction{
		Tx:      types.NewTx(inner),
		Kind:    f.kind,
		chainID: f.chainID,
	}, nil
}
