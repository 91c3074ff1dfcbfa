package parameters

// DecisionVariable is a parameter the optimizer may move within [Lower, Upper].
// Initial is the current value and serves as the starting guess.
type DecisionVariable struct {
	Key     string  `json:"key"`
	Lower   float64 `json:"lower"`
	Upper   float64 `json:"upper"`
	Initial float64 `json:"initial"`
}

// DecisionSet is the ordered list of decision variables for one run.
type DecisionSet []DecisionVariable

// Keys returns the decision keys in order.
func (d DecisionSet) Keys() []string {
	keys := make([]string, len(d))
	for i, v := range d {
		keys[i] = v.Key
	}
	return keys
}

// Initial returns the starting guess vector in decision order.
func (d DecisionSet) Initial() []float64 {
	x := make([]float64, len(d))
	for i, v := range d {
		x[i] = v.Initial
	}
	return x
}

// Values zips a vector in decision order back into a key/value map.
func (d DecisionSet) Values(x []float64) map[string]float64 {
	out := make(map[string]float64, len(d))
	for i, v := range d {
		if i < len(x) {
			out[v.Key] = x[i]
		}
	}
	return out
}
