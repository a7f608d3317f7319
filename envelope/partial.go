package envelope

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
)

// partialShape is the wallet side partial transaction: a bare RLP list
// without a type byte, priced like a fee market transaction.
type partialShape struct {
	ChainID    *big.Int
	Nonce      uint64
	GasPrice   *big.Int
	GasTip     *big.Int
	GasLimit   uint64
	To         *common.Address `rlp:"nil"`
	Value      *big.Int
	Data       []byte
	AccessList types.AccessList
}

// DecodePartial reads the custom partial format
// [chain_id, nonce, gas_price, gas_tip, gas_limit, to, value, data, access_list]
// into a fee market transaction. gas_price becomes the fee cap.
func DecodePartial(raw []byte) (*Transaction, error) {
	if len(raw) == 0 {
		return nil, errors.New("Cannot decode transaction from empty data")
	}
	s, err := splitList(raw)
	if err != nil {
		return nil, err
	}
	var shape partialShape
	if err := s.Decode(&shape); err != nil {
		return nil, errors.Errorf("Failed to decode RLP: %s", err)
	}
	f := &fields{
		kind:       KindDynamicFee,
		chainID:    shape.ChainID,
		nonce:      shape.Nonce,
		gasTipCap:  shape.GasTip,
		gasFeeCap:  shape.GasPrice,
		gas:        shape.GasLimit,
		to:         shape.To,
		value:      shape.Value,
		data:       shape.Data,
		accessList: shape.AccessList,
	}
	tx, err := f.transaction()
	if err != nil {
		return nil, err
	}
	tx.Partial = true
	return tx, nil
}

// EncodePartial is the inverse of DecodePartial.
func EncodePartial(t *Transaction) ([]byte, error) {
	f := fieldsOf(t.Tx)
	return rlp.EncodeToBytes(&partialShape{
		ChainID:    t.chainID,
		Nonce:      f.nonce,
		GasPrice:   f.gasFeeCap,
		GasTip:     f.gasTipCap,
		GasLimit:   f.gas,
		To:         f.to,
		Value:      f.value,
		Data:       f.data,
		AccessList: f.accessList,
	})
}
