package aave

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// The L2Pool packs each call's arguments into one big-endian 256-bit word.
// Bit offsets below count from the least significant bit.

func bits(word *uint256.Int, offset, width uint) *uint256.Int {
	v := new(uint256.Int).Rsh(word, offset)
	mask := new(uint256.Int).Lsh(uint256.NewInt(1), width)
	mask.SubUint64(mask, 1)
	return v.And(v, mask)
}

func put(word *uint256.Int, value *uint256.Int, offset, width uint) {
	v := bits(value, 0, width)
	word.Or(word, v.Lsh(v, offset))
}

func putUint(word *uint256.Int, value uint64, offset, width uint) {
	put(word, uint256.NewInt(value), offset, width)
}

func putBig(word *uint256.Int, value *big.Int, offset, width uint) {
	if value == nil {
		return
	}
	v, _ := uint256.FromBig(value)
	put(word, v, offset, width)
}

func putBool(word *uint256.Int, value bool, offset uint) {
	if value {
		putUint(word, 1, offset, 1)
	}
}

func load(w [32]byte) *uint256.Int {
	return new(uint256.Int).SetBytes32(w[:])
}

func uintAt(word *uint256.Int, offset, width uint) uint64 {
	return bits(word, offset, width).Uint64()
}

func bigAt(word *uint256.Int, offset, width uint) *big.Int {
	return bits(word, offset, width).ToBig()
}

type SupplyArgs struct {
	AssetID      uint16
	Amount       *big.Int
	ReferralCode uint16
}

func UnpackSupply(w [32]byte) SupplyArgs {
	word := load(w)
	return SupplyArgs{
		AssetID:      uint16(uintAt(word, 0, 16)),
		Amount:       bigAt(word, 16, 128),
		ReferralCode: uint16(uintAt(word, 144, 16)),
	}
}

func (a SupplyArgs) pack(word *uint256.Int) {
	putUint(word, uint64(a.AssetID), 0, 16)
	putBig(word, a.Amount, 16, 128)
	putUint(word, uint64(a.ReferralCode), 144, 16)
}

func (a SupplyArgs) Pack() [32]byte {
	word := new(uint256.Int)
	a.pack(word)
	return word.Bytes32()
}

type SupplyWithPermitArgs struct {
	SupplyArgs
	Deadline uint32
	PermitV  uint8
}

func UnpackSupplyWithPermit(w [32]byte) SupplyWithPermitArgs {
	word := load(w)
	return SupplyWithPermitArgs{
		SupplyArgs: UnpackSupply(w),
		Deadline:   uint32(uintAt(word, 160, 32)),
		PermitV:    uint8(uintAt(word, 192, 8)),
	}
}

func (a SupplyWithPermitArgs) Pack() [32]byte {
	word := new(uint256.Int)
	a.SupplyArgs.pack(word)
	putUint(word, uint64(a.Deadline), 160, 32)
	putUint(word, uint64(a.PermitV), 192, 8)
	return word.Bytes32()
}

type WithdrawArgs struct {
	AssetID uint16
	Amount  *big.Int
}

func UnpackWithdraw(w [32]byte) WithdrawArgs {
	word := load(w)
	return WithdrawArgs{
		AssetID: uint16(uintAt(word, 0, 16)),
		Amount:  bigAt(word, 16, 128),
	}
}

func (a WithdrawArgs) Pack() [32]byte {
	word := new(uint256.Int)
	putUint(word, uint64(a.AssetID), 0, 16)
	putBig(word, a.Amount, 16, 128)
	return word.Bytes32()
}

type BorrowArgs struct {
	AssetID          uint16
	Amount           *big.Int
	InterestRateMode uint8
	ReferralCode     uint16
}

func UnpackBorrow(w [32]byte) BorrowArgs {
	word := load(w)
	return BorrowArgs{
		AssetID:          uint16(uintAt(word, 0, 16)),
		Amount:           bigAt(word, 16, 128),
		InterestRateMode: uint8(uintAt(word, 144, 8)),
		ReferralCode:     uint16(uintAt(word, 152, 16)),
	}
}

func (a BorrowArgs) Pack() [32]byte {
	word := new(uint256.Int)
	putUint(word, uint64(a.AssetID), 0, 16)
	putBig(word, a.Amount, 16, 128)
	putUint(word, uint64(a.InterestRateMode), 144, 8)
	putUint(word, uint64(a.ReferralCode), 152, 16)
	return word.Bytes32()
}

// RepayArgs is shared by repay and repayWithATokens.
type RepayArgs struct {
	AssetID          uint16
	Amount           *big.Int
	InterestRateMode uint8
}

func UnpackRepay(w [32]byte) RepayArgs {
	word := load(w)
	return RepayArgs{
		AssetID:          uint16(uintAt(word, 0, 16)),
		Amount:           bigAt(word, 16, 128),
		InterestRateMode: uint8(uintAt(word, 144, 8)),
	}
}

func (a RepayArgs) pack(word *uint256.Int) {
	putUint(word, uint64(a.AssetID), 0, 16)
	putBig(word, a.Amount, 16, 128)
	putUint(word, uint64(a.InterestRateMode), 144, 8)
}

func (a RepayArgs) Pack() [32]byte {
	word := new(uint256.Int)
	a.pack(word)
	return word.Bytes32()
}

type RepayWithPermitArgs struct {
	RepayArgs
	Deadline uint32
	PermitV  uint8
}

func UnpackRepayWithPermit(w [32]byte) RepayWithPermitArgs {
	word := load(w)
	return RepayWithPermitArgs{
		RepayArgs: UnpackRepay(w),
		Deadline:  uint32(uintAt(word, 152, 32)),
		PermitV:   uint8(uintAt(word, 184, 8)),
	}
}

func (a RepayWithPermitArgs) Pack() [32]byte {
	word := new(uint256.Int)
	a.RepayArgs.pack(word)
	putUint(word, uint64(a.Deadline), 152, 32)
	putUint(word, uint64(a.PermitV), 184, 8)
	return word.Bytes32()
}

type CollateralArgs struct {
	AssetID         uint16
	UseAsCollateral bool
}

func UnpackCollateral(w [32]byte) CollateralArgs {
	word := load(w)
	return CollateralArgs{
		AssetID:         uint16(uintAt(word, 0, 16)),
		UseAsCollateral: uintAt(word, 16, 1) == 1,
	}
}

func (a CollateralArgs) Pack() [32]byte {
	word := new(uint256.Int)
	putUint(word, uint64(a.AssetID), 0, 16)
	putBool(word, a.UseAsCollateral, 16)
	return word.Bytes32()
}

// LiquidationArgs spans two words: the assets and the user in the first,
// the amount and the aToken flag in the second.
type LiquidationArgs struct {
	CollateralAssetID uint16
	DebtAssetID       uint16
	User              common.Address
	DebtToCover       *big.Int
	ReceiveAToken     bool
}

func UnpackLiquidation(args1, args2 [32]byte) LiquidationArgs {
	w1, w2 := load(args1), load(args2)
	user := bits(w1, 32, 160).Bytes20()
	return LiquidationArgs{
		CollateralAssetID: uint16(uintAt(w1, 0, 16)),
		DebtAssetID:       uint16(uintAt(w1, 16, 16)),
		User:              common.Address(user),
		DebtToCover:       bigAt(w2, 0, 128),
		ReceiveAToken:     uintAt(w2, 128, 1) == 1,
	}
}

func (a LiquidationArgs) Pack() ([32]byte, [32]byte) {
	w1, w2 := new(uint256.Int), new(uint256.Int)
	putUint(w1, uint64(a.CollateralAssetID), 0, 16)
	putUint(w1, uint64(a.DebtAssetID), 16, 16)
	put(w1, new(uint256.Int).SetBytes20(a.User.Bytes()), 32, 160)
	putBig(w2, a.DebtToCover, 0, 128)
	putBool(w2, a.ReceiveAToken, 128)
	return w1.Bytes32(), w2.Bytes32()
}
