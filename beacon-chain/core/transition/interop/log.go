// Package interop writes blocks and states to disk for debugging state
// transitions when the interop-write-ssz-state-transitions feature is set.
package interop

import "github.com/sirupsen/logrus"

var log = logrus.WithField("prefix", "interop")
