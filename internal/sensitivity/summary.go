package sensitivity

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
)

// Summary condenses a series into the figures used to rank sensitivity.
type Summary struct {
	Key         string  `json:"key"`
	Label       string  `json:"label"`
	MinNPV      float64 `json:"minNpv"`
	MaxNPV      float64 `json:"maxNpv"`
	MeanNPV     float64 `json:"meanNpv"`
	Spread      float64 `json:"spread"`
	BestValue   float64 `json:"bestValue"`
	Correlation float64 `json:"correlation"`
}

// Summarize computes a Summary per series, most sensitive first. Ties are
// broken by key.
func Summarize(series map[string]Series) ([]Summary, error) {
	out := make([]Summary, 0, len(series))
	for _, s := range series {
		sum, err := summarizeSeries(s)
		if err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Spread != out[j].Spread {
			return out[i].Spread > out[j].Spread
		}
		return out[i].Key < out[j].Key
	})
	return out, nil
}

func summarizeSeries(s Series) (Summary, error) {
	npvs := s.NPVs()
	sum := Summary{Key: s.Key, Label: s.Label}

	var err error
	if sum.MinNPV, err = stats.Min(npvs); err != nil {
		return Summary{}, err
	}
	if sum.MaxNPV, err = stats.Max(npvs); err != nil {
		return Summary{}, err
	}
	if sum.MeanNPV, err = stats.Mean(npvs); err != nil {
		return Summary{}, err
	}
	sum.Spread = sum.MaxNPV - sum.MinNPV

	for _, p := range s.Points {
		if p.NPV == sum.MaxNPV {
			sum.BestValue = p.Value
			break
		}
	}

	// A flat series has no direction.
	if sum.Spread > 0 {
		corr, err := stats.Correlation(s.Values(), npvs)
		if err == nil && !math.IsNaN(corr) {
			sum.Correlation = corr
		}
	}
	return sum, nil
}
