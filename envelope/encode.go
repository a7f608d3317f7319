package envelope

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
)

type legacyShape struct {
	Nonce    uint64
	GasPrice *big.Int
	Gas      uint64
	To       *common.Address `rlp:"nil"`
	Value    *big.Int
	Data     []byte
}

type legacyEIP155Shape struct {
	Nonce    uint64
	GasPrice *big.Int
	Gas      uint64
	To       *common.Address `rlp:"nil"`
	Value    *big.Int
	Data     []byte
	ChainID  *big.Int
	R, S     uint
}

// EncodeUnsigned produces the unsigned envelope Decode accepts for t.
func EncodeUnsigned(t *Transaction) ([]byte, error) {
	f := fieldsOf(t.Tx)
	f.chainID = t.chainID

	var shape any
	switch f.kind {
	case KindLegacy:
		if f.chainID == nil {
			shape = &legacyShape{f.nonce, f.gasPrice, f.gas, f.to, f.value, f.data}
		} else {
			shape = &legacyEIP155Shape{
				f.nonce, f.gasPrice, f.gas, f.to, f.value, f.data, f.chainID, 0, 0,
			}
		}
		return rlp.EncodeToBytes(shape)
	case KindAccessList:
		shape = &accessListShape{
			f.chainID, f.nonce, f.gasPrice, f.gas, f.to, f.value, f.data, f.accessList,
		}
	case KindDynamicFee:
		shape = &dynamicFeeShape{
			f.chainID, f.nonce, f.gasTipCap, f.gasFeeCap, f.gas, f.to, f.value, f.data, f.accessList,
		}
	case KindBlob:
		shape = &blobShape{
			f.chainID, f.nonce, f.gasTipCap, f.gasFeeCap, f.gas, *f.to, f.value, f.data,
			f.accessList, f.blobFeeCap, f.blobHashes,
		}
	case KindSetCode:
		shape = &setCodeShape{
			f.chainID, f.nonce, f.gasTipCap, f.gasFeeCap, f.gas, *f.to, f.value, f.data,
			f.accessList, f.authList,
		}
	}
	body, err := rlp.EncodeToBytes(shape)
	if err != nil {
		return nil, err
	}
	return append([]byte{byte(f.kind)}, body...), nil
}
