package ffg

import (
	mathutil "github.com/prysmaticlabs/gasper/math"
)

// Threshold is the smallest vote weight forming a supermajority of total:
// floor(2*total/3) + 1. It is computed without overflow for any total.
func Threshold(total uint64) uint64 {
	return mathutil.TwoThirdsFloor(total) + 1
}

// IsSupermajority reports whether votes reach the supermajority threshold of total.
// A zero total never yields a supermajority.
func IsSupermajority(votes, total uint64) bool {
	if total == 0 {
		return false
	}
	return votes >= Threshold(total)
}
