package calculator

import "errors"

// Instrument 可交易的期货合约代码
type Instrument string

const (
	InstrumentWIN Instrument = "WIN" // 迷你指数期货
	InstrumentWDO Instrument = "WDO" // 迷你美元期货
	InstrumentBIT Instrument = "BIT" // 比特币期货
)

// ErrUnknownInstrument 合约代码不在固定集合内，属于配置或程序错误，不做默认值处理
var ErrUnknownInstrument = errors.New("calculator: unknown instrument")

// 每个点每张合约对应的金额
var multipliers = map[Instrument]float64{
	InstrumentWIN: 0.2,
	InstrumentWDO: 10,
	InstrumentBIT: 0.1,
}

// InstrumentInfo 给前端展示的合约表
type InstrumentInfo struct {
	Code        Instrument `json:"code"`
	Description string     `json:"description"`
	Multiplier  float64    `json:"multiplier"`
}

var instruments = []InstrumentInfo{
	{Code: InstrumentWIN, Description: "Mini index future", Multiplier: multipliers[InstrumentWIN]},
	{Code: InstrumentWDO, Description: "Mini dollar future", Multiplier: multipliers[InstrumentWDO]},
	{Code: InstrumentBIT, Description: "Bitcoin future", Multiplier: multipliers[InstrumentBIT]},
}

func MultiplierOf(code Instrument) (float64, error) {
	m, ok := multipliers[code]
	if !ok {
		return 0, ErrUnknownInstrument
	}
	return m, nil
}

// Instruments 返回合约表的副本
func Instruments() []InstrumentInfo {
	out := make([]InstrumentInfo, len(instruments))
	copy(out, instruments)
	return out
}
