package calculator

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cast"
)

// Form 计算器表单，数值字段保留用户输入的原文
type Form struct {
	Capital        Number `form:"capital" json:"capital" swaggertype:"string"`
	Instrument     string `form:"instrument" json:"instrument" validate:"required"`
	StopDistance   Number `form:"stop_distance" json:"stop_distance" swaggertype:"string"`
	TargetDistance Number `form:"target_distance" json:"target_distance" swaggertype:"string"`
	MaxLossPercent Number `form:"max_loss_percent" json:"max_loss_percent" swaggertype:"string"`
}

// Number 表单里的数值原文，JSON 中可以是数字也可以是字符串
type Number string

func (n *Number) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*n = Number(s)
		return nil
	}
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	// 数字、布尔等保留原文，解析失败时按输入不完整处理
	*n = Number(data)
	return nil
}

// ParseForm 解析表单，任一数值字段为空、非数字或不大于0时返回 ErrIncompleteInput
func ParseForm(f Form) (PositionSizingInput, error) {
	var in PositionSizingInput
	fields := []struct {
		raw Number
		dst *float64
	}{
		{f.Capital, &in.Capital},
		{f.StopDistance, &in.StopDistance},
		{f.TargetDistance, &in.TargetDistance},
		{f.MaxLossPercent, &in.MaxLossPercent},
	}
	for _, fd := range fields {
		v, err := parseNumber(string(fd.raw))
		if err != nil {
			return PositionSizingInput{}, ErrIncompleteInput
		}
		*fd.dst = v
	}
	in.Instrument = Instrument(strings.ToUpper(strings.TrimSpace(f.Instrument)))
	if err := in.Validate(); err != nil {
		return PositionSizingInput{}, err
	}
	if _, err := MultiplierOf(in.Instrument); err != nil {
		return PositionSizingInput{}, err
	}
	return in, nil
}

// 支持 "1500,5" 这种逗号小数
func parseNumber(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, ErrIncompleteInput
	}
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	}
	return cast.ToFloat64E(s)
}

// Display 展示用的格式化结果：金额两位小数，盈亏比一位小数
type Display struct {
	ContractCount string `json:"contract_count"`
	MaxLossAmount string `json:"max_loss_amount"`
	LossPerUnit   string `json:"loss_per_unit"`
	TotalGain     string `json:"total_gain"`
	GainPerUnit   string `json:"gain_per_unit"`
	PayoffRatio   string `json:"payoff_ratio"`
}

func Format(r PositionSizingResult, currency string) Display {
	money := func(v float64) string {
		if currency == "" {
			return fmt.Sprintf("%.2f", v)
		}
		return fmt.Sprintf("%s %.2f", currency, v)
	}
	return Display{
		ContractCount: fmt.Sprintf("%d", r.ContractCount),
		MaxLossAmount: money(r.MaxLossAmount),
		LossPerUnit:   money(r.LossPerUnit),
		TotalGain:     money(r.TotalGain),
		GainPerUnit:   money(r.GainPerUnit),
		PayoffRatio:   fmt.Sprintf("%.1f", r.PayoffRatio),
	}
}
