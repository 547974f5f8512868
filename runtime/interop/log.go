package interop

import "github.com/sirupsen/logrus"

var log = logrus.WithField("prefix", "interop")
