package aave

import (
	"fmt"
	"math"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/crypto"

	vscommon "github.com/tranvictor/visualsign/common"
	"github.com/tranvictor/visualsign/payload"
	"github.com/tranvictor/visualsign/txanalyzer"
)

type l2Decoder func(ctx *txanalyzer.AnalysisContext, words [][32]byte) payload.Field

type l2Operation struct {
	words  int
	decode l2Decoder
}

var l2Operations = map[[4]byte]l2Operation{
	l2Selector("supply(bytes32)"):                           {1, decodeL2Supply},
	l2Selector("supplyWithPermit(bytes32,bytes32,bytes32)"): {3, decodeL2SupplyWithPermit},
	l2Selector("withdraw(bytes32)"):                         {1, decodeL2Withdraw},
	l2Selector("borrow(bytes32)"):                           {1, decodeL2Borrow},
	l2Selector("repay(bytes32)"):                            {1, decodeL2Repay},
	l2Selector("repayWithPermit(bytes32,bytes32,bytes32)"):  {3, decodeL2RepayWithPermit},
	l2Selector("repayWithATokens(bytes32)"):                 {1, decodeL2RepayWithATokens},
	l2Selector("setUserUseReserveAsCollateral(bytes32)"):    {1, decodeL2Collateral},
	l2Selector("liquidationCall(bytes32,bytes32)"):          {2, decodeL2Liquidation},
}

func l2Selector(signature string) [4]byte {
	var sel [4]byte
	copy(sel[:], crypto.Keccak256([]byte(signature))[:4])
	return sel
}

// IsL2Selector reports whether data starts with one of the L2Pool packed
// selectors.
func IsL2Selector(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	_, found := l2Operations[[4]byte(data[:4])]
	return found
}

// VisualizeL2 decodes a call to an L2Pool entry point taking packed bytes32
// arguments. Calldata must be exactly the selector plus the packed words.
func VisualizeL2(ctx *txanalyzer.AnalysisContext, data []byte) (payload.Field, bool) {
	if len(data) < 4 {
		return payload.Field{}, false
	}
	op, found := l2Operations[[4]byte(data[:4])]
	if !found || len(data) != 4+32*op.words {
		return payload.Field{}, false
	}
	words := make([][32]byte, op.words)
	for i := range words {
		copy(words[i][:], data[4+32*i:4+32*(i+1)])
	}
	return op.decode(ctx, words), true
}

const (
	maxAvailable = "Maximum available"
	fullDebt     = "Full debt"
	fullBalance  = "Full balance"
)

// l2Amount renders a packed uint128 amount. maxText replaces the amount
// when it is type(uint128).max; an empty maxText disables that.
func l2Amount(ctx *txanalyzer.AnalysisContext, asset assetRef, amount *big.Int, maxText string) (string, payload.Field) {
	formatted := amount.String()
	if asset.found {
		formatted, _, _ = ctx.FormatTokenAmount(asset.addr, amount)
	}
	display := formatted
	text := fmt.Sprintf("%s %s (raw: %s)", formatted, asset.symbol, amount)
	if maxText != "" && vscommon.IsMaxUint(amount, 128) {
		display = maxText
		text = maxText + " (type(uint128).max)"
	}
	return display, payload.NewTextFieldWithFallback("Amount", text, display+" "+asset.symbol)
}

func rateMode(mode uint8) (string, bool) {
	switch mode {
	case 1:
		return "Stable (Deprecated)", true
	case 2:
		return "Variable", true
	}
	return "", false
}

func invalidRateMode(mode uint8) payload.Field {
	return payload.NewTextFieldWithFallback(
		"Error",
		fmt.Sprintf("Invalid interest rate mode: %d", mode),
		fmt.Sprintf("Unknown rate mode: %d", mode),
	)
}

func rateModeField(name string, mode uint8) payload.Field {
	return payload.NewTextFieldWithFallback("Interest Rate Mode", fmt.Sprintf("%s (%d)", name, mode), name)
}

func permitDeadline(deadline uint32) string {
	if deadline == math.MaxUint32 {
		return "never"
	}
	return time.Unix(int64(deadline), 0).UTC().Format("2006-01-02 15:04 UTC")
}

func authorizationField() payload.Field {
	return payload.NewTextFieldWithFallback("Authorization", "Using gasless ERC-2612 permit signature", "ERC-2612 Permit")
}

func l2Preview(label, operation, summary string, condensed payload.Field, expanded ...payload.Field) payload.Field {
	return payload.Preview{
		Label:     label,
		Title:     "Aave v3 L2 " + operation,
		Subtitle:  summary,
		Condensed: []payload.Field{condensed},
		Expanded:  expanded,
	}.Field()
}

func decodeL2Supply(ctx *txanalyzer.AnalysisContext, words [][32]byte) payload.Field {
	args := UnpackSupply(words[0])
	asset := l2Asset(ctx, args.AssetID)
	display, amount := l2Amount(ctx, asset, args.Amount, "")
	return l2Preview("Aave L2 Supply", "Supply",
		fmt.Sprintf("Supply %s %s", display, asset.symbol),
		amount, asset.field("Asset"), amount)
}

func decodeL2SupplyWithPermit(ctx *txanalyzer.AnalysisContext, words [][32]byte) payload.Field {
	args := UnpackSupplyWithPermit(words[0])
	asset := l2Asset(ctx, args.AssetID)
	display, amount := l2Amount(ctx, asset, args.Amount, "")
	return l2Preview("Aave L2 Supply with Permit", "Supply with Permit",
		fmt.Sprintf("Supply %s %s with permit (expires: %s)", display, asset.symbol, permitDeadline(args.Deadline)),
		amount, asset.field("Asset"), amount, authorizationField())
}

func decodeL2Withdraw(ctx *txanalyzer.AnalysisContext, words [][32]byte) payload.Field {
	args := UnpackWithdraw(words[0])
	asset := l2Asset(ctx, args.AssetID)
	display, amount := l2Amount(ctx, asset, args.Amount, maxAvailable)
	return l2Preview("Aave L2 Withdraw", "Withdraw",
		fmt.Sprintf("Withdraw %s %s", display, asset.symbol),
		amount, asset.field("Asset"), amount)
}

func decodeL2Borrow(ctx *txanalyzer.AnalysisContext, words [][32]byte) payload.Field {
	args := UnpackBorrow(words[0])
	mode, ok := rateMode(args.InterestRateMode)
	if !ok {
		return invalidRateMode(args.InterestRateMode)
	}
	asset := l2Asset(ctx, args.AssetID)
	display, amount := l2Amount(ctx, asset, args.Amount, "")
	return l2Preview("Aave L2 Borrow", "Borrow",
		fmt.Sprintf("Borrow %s %s at %s rate", display, asset.symbol, mode),
		amount, asset.field("Asset"), amount, rateModeField(mode, args.InterestRateMode))
}

func decodeL2Repay(ctx *txanalyzer.AnalysisContext, words [][32]byte) payload.Field {
	args := UnpackRepay(words[0])
	mode, ok := rateMode(args.InterestRateMode)
	if !ok {
		return invalidRateMode(args.InterestRateMode)
	}
	asset := l2Asset(ctx, args.AssetID)
	display, amount := l2Amount(ctx, asset, args.Amount, fullDebt)
	return l2Preview("Aave L2 Repay", "Repay",
		fmt.Sprintf("Repay %s %s at %s rate", display, asset.symbol, mode),
		amount, asset.field("Asset"), amount, rateModeField(mode, args.InterestRateMode))
}

func decodeL2RepayWithPermit(ctx *txanalyzer.AnalysisContext, words [][32]byte) payload.Field {
	args := UnpackRepayWithPermit(words[0])
	mode, ok := rateMode(args.InterestRateMode)
	if !ok {
		return invalidRateMode(args.InterestRateMode)
	}
	asset := l2Asset(ctx, args.AssetID)
	display, amount := l2Amount(ctx, asset, args.Amount, fullDebt)
	return l2Preview("Aave L2 Repay with Permit", "Repay with Permit",
		fmt.Sprintf("Repay %s %s at %s rate with permit (expires: %s)", display, asset.symbol, mode, permitDeadline(args.Deadline)),
		amount, asset.field("Asset"), amount, rateModeField(mode, args.InterestRateMode), authorizationField())
}

func decodeL2RepayWithATokens(ctx *txanalyzer.AnalysisContext, words [][32]byte) payload.Field {
	args := UnpackRepay(words[0])
	mode, ok := rateMode(args.InterestRateMode)
	if !ok {
		return invalidRateMode(args.InterestRateMode)
	}
	asset := l2Asset(ctx, args.AssetID)
	display, amount := l2Amount(ctx, asset, args.Amount, fullBalance)
	return l2Preview("Aave L2 Repay with aTokens", "Repay with aTokens",
		fmt.Sprintf("Repay %s %s at %s rate", display, asset.symbol, mode),
		amount, asset.field("Asset"), amount, rateModeField(mode, args.InterestRateMode),
		payload.NewTextFieldWithFallback("Repayment Method", "Repaying with aTokens (no transfer required)", "Using aTokens"))
}

func decodeL2Collateral(ctx *txanalyzer.AnalysisContext, words [][32]byte) payload.Field {
	args := UnpackCollateral(words[0])
	asset := l2Asset(ctx, args.AssetID)
	verb, detail := "Disable", "Disable as collateral (reduces borrowing power)"
	if args.UseAsCollateral {
		verb, detail = "Enable", "Enable as collateral (allows borrowing)"
	}
	action := payload.NewTextFieldWithFallback("Action", detail, verb)
	return payload.Preview{
		Label:     "Aave L2 Collateral Setting",
		Title:     "Aave v3 L2 Set Collateral",
		Subtitle:  fmt.Sprintf("%s %s as collateral", verb, asset.symbol),
		Condensed: []payload.Field{action},
		Expanded:  []payload.Field{asset.field("Asset"), action},
	}.Field()
}

func decodeL2Liquidation(ctx *txanalyzer.AnalysisContext, words [][32]byte) payload.Field {
	args := UnpackLiquidation(words[0], words[1])
	debt := l2Asset(ctx, args.DebtAssetID)
	collateral := l2Asset(ctx, args.CollateralAssetID)
	display, amount := l2Amount(ctx, debt, args.DebtToCover, fullDebt)
	amount.Label = "Debt to Cover"

	summary := fmt.Sprintf("Liquidate %s %s debt, seize %s collateral", display, debt.symbol, collateral.symbol)
	bonus := payload.NewTextFieldWithFallback("Liquidation Bonus", "Receive underlying asset", "Receive underlying")
	if args.ReceiveAToken {
		summary += " (receive aTokens)"
		bonus = payload.NewTextFieldWithFallback("Liquidation Bonus", "Receive aTokens (no transfer)", "Receive aTokens")
	}
	user := ctx.ResolveAddress(args.User)
	return payload.Preview{
		Label:     "Aave L2 Liquidation",
		Title:     "Aave v3 L2 Liquidation Call",
		Subtitle:  summary,
		Condensed: []payload.Field{amount},
		Expanded: []payload.Field{
			payload.NewAddressField("User", args.User.Hex(), user.Name(), ""),
			debt.field("Debt Asset"),
			amount,
			collateral.field("Collateral Asset"),
			bonus,
		},
	}.Field()
}
