package booking

import (
	"math"

	"raynott/constants"
)

type PriceBreakdown struct {
	Nights      int     `json:"nights"`
	NightlyRate float64 `json:"nightlyRate"`
	Subtotal    float64 `json:"subtotal"`
	ServiceFee  float64 `json:"serviceFee"`
	Taxes       float64 `json:"taxes"`
	Total       float64 `json:"total"`
}

// ComputePrice: subtotal = nights*rate, phí dịch vụ 10% và thuế 5% làm tròn
func ComputePrice(nightlyRate float64, nights int) PriceBreakdown {
	if nights <= 0 {
		return PriceBreakdown{}
	}
	subtotal := float64(nights) * nightlyRate
	fee := math.Round(subtotal * constants.ServiceFeeRate)
	taxes := math.Round(subtotal * constants.TaxRate)
	return PriceBreakdown{
		Nights:      nights,
		NightlyRate: nightlyRate,
		Subtotal:    subtotal,
		ServiceFee:  fee,
		Taxes:       taxes,
		Total:       subtotal + fee + taxes,
	}
}

// IsZero: breakdown rỗng khi khoảng ngày không hợp lệ
func (p PriceBreakdown) IsZero() bool {
	return p == PriceBreakdown{}
}
