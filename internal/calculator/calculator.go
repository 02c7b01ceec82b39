// Package calculator 日内交易仓位计算。纯函数，无状态。
package calculator

import (
	"errors"
	"math"
)

// ErrIncompleteInput 有字段缺失、非数字或不大于0，不进行计算
var ErrIncompleteInput = errors.New("calculator: incomplete input")

// 多算一张时允许的亏损误差，只吸收 0.6/0.6000000000000001 这类乘法舍入，不放宽最大亏损
const floorTolerance = 1e-12

// 商离下一个整数的最大距离，大额本金时不能只看亏损的相对误差
const quotientGap = 1e-9

// 超过 2^53 的商已经没有小数部分
const maxExactQuotient = 1 << 53

type PositionSizingInput struct {
	Capital        float64    `json:"capital"`
	StopDistance   float64    `json:"stop_distance"`
	TargetDistance float64    `json:"target_distance"`
	MaxLossPercent float64    `json:"max_loss_percent"`
	Instrument     Instrument `json:"instrument"`
}

type PositionSizingResult struct {
	ContractCount int64   `json:"contract_count"`
	MaxLossAmount float64 `json:"max_loss_amount"`
	LossPerUnit   float64 `json:"loss_per_unit"`
	TotalGain     float64 `json:"total_gain"`
	GainPerUnit   float64 `json:"gain_per_unit"`
	PayoffRatio   float64 `json:"payoff_ratio"`
}

// Validate 四个数值字段必须是有限的正数，且亏损比例不超过100
func (in PositionSizingInput) Validate() error {
	for _, v := range []float64{in.Capital, in.StopDistance, in.TargetDistance, in.MaxLossPercent} {
		if !positive(v) {
			return ErrIncompleteInput
		}
	}
	if in.MaxLossPercent > 100 {
		return ErrIncompleteInput
	}
	return nil
}

// Calculate 计算可开合约数量及盈亏。
// 合约数向下取整：推荐的仓位在止损时的亏损不能超过用户设定的最大亏损。
func Calculate(in PositionSizingInput) (PositionSizingResult, error) {
	if err := in.Validate(); err != nil {
		return PositionSizingResult{}, err
	}
	multiplier, err := MultiplierOf(in.Instrument)
	if err != nil {
		return PositionSizingResult{}, err
	}

	var res PositionSizingResult
	res.MaxLossAmount = in.Capital * (in.MaxLossPercent / 100)
	res.LossPerUnit = in.StopDistance * multiplier
	res.ContractCount = floorCount(res.MaxLossAmount, res.LossPerUnit)
	res.GainPerUnit = in.TargetDistance * multiplier
	res.TotalGain = float64(res.ContractCount) * res.GainPerUnit
	res.PayoffRatio = res.TotalGain / res.MaxLossAmount
	return res, nil
}

// floorCount 向下取整；只有多一张的亏损在舍入误差内不超过最大亏损时才补上
func floorCount(maxLoss, lossPerUnit float64) int64 {
	q := maxLoss / lossPerUnit
	n := math.Floor(q)
	if q < maxExactQuotient && n+1-q <= quotientGap && (n+1)*lossPerUnit <= maxLoss*(1+floorTolerance) {
		n++
	}
	if n < 0 {
		return 0
	}
	if n >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(n)
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
