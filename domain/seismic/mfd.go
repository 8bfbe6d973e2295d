package seismic

import (
	"fmt"
	"math"

	"gohaz/domain/core"
)

// MagnitudeRate is one magnitude bin of a discretized magnitude-frequency
// distribution: the bin's central magnitude and its mean annual rate.
type MagnitudeRate struct {
	Magnitude float64
	Rate      float64
}

// TruncatedGRMFD is a doubly truncated Gutenberg-Richter magnitude-frequency
// distribution, discretized into evenly spaced magnitude bins.
type TruncatedGRMFD struct {
	AValue   float64 // log10 of cumulative annual rate at magnitude zero
	BValue   float64 // decay rate of occurrence with magnitude
	MinMag   float64
	MaxMag   float64
	BinWidth float64
}

// Validate checks the distribution parameters
func (m TruncatedGRMFD) Validate() error {
	if m.BValue <= 0 {
		return fmt.Errorf("%w: GR b-value must be positive, got %v", core.ErrConfiguration, m.BValue)
	}
	if m.BinWidth <= 0 {
		return fmt.Errorf("%w: GR bin width must be positive, got %v", core.ErrConfiguration, m.BinWidth)
	}
	if m.MaxMag <= m.MinMag {
		return fmt.Errorf("%w: GR max magnitude %v <= min magnitude %v", core.ErrConfiguration, m.MaxMag, m.MinMag)
	}
	return nil
}

// AnnualRates discretizes the distribution: one entry per bin of BinWidth
// between MinMag and MaxMag, rate = 10^(a - b*mlo) - 10^(a - b*mhi).
func (m TruncatedGRMFD) AnnualRates() ([]MagnitudeRate, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	cumulative := func(mag float64) float64 {
		return math.Pow(10, m.AValue-m.BValue*mag)
	}
	numBins := int(math.Ceil((m.MaxMag - m.MinMag) / m.BinWidth))
	rates := make([]MagnitudeRate, 0, numBins)
	for i := 0; i < numBins; i++ {
		lo := m.MinMag + float64(i)*m.BinWidth
		hi := math.Min(lo+m.BinWidth, m.MaxMag)
		rates = append(rates, MagnitudeRate{
			Magnitude: (lo + hi) / 2,
			Rate:      cumulative(lo) - cumulative(hi),
		})
	}
	return rates, nil
}
