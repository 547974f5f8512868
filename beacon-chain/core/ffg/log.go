package ffg

import "github.com/sirupsen/logrus"

var log = logrus.WithField("prefix", "ffg")
