package model

import "robodesk/internal/calculator"

type CalculatorRes struct {
	Result  calculator.PositionSizingResult `json:"result"`
	Display calculator.Display              `json:"display"`
}
