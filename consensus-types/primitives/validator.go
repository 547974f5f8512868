package primitives

// ValidatorIndex in eth2.
type ValidatorIndex uint64

// Gwei is the denomination of validator balances.
type Gwei uint64

// Div divides validator index by x.
func (v ValidatorIndex) Div(x uint64) ValidatorIndex {
	if x == 0 {
		panic("divbyzero")
	}
	return ValidatorIndex(uint64(v) / x)
}

// Add increases validator index by x.
func (v ValidatorIndex) Add(x uint64) ValidatorIndex {
	return ValidatorIndex(uint64(v) + x)
}
