package prometheus

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/prysmaticlabs/gasper/testing/assert"
	"github.com/prysmaticlabs/gasper/testing/require"
	"github.com/sirupsen/logrus"
)

func TestLogrusCollector(t *testing.T) {
	hook := NewLogrusCollector()
	logger := logrus.New()
	logger.AddHook(hook)

	before := testutil.ToFloat64(counterVec.WithLabelValues("info", "collector-test"))
	logger.WithField(prefixKey, "collector-test").Info("hello")
	logger.WithField(prefixKey, "collector-test").Debug("not counted")
	assert.Equal(t, before+1, testutil.ToFloat64(counterVec.WithLabelValues("info", "collector-test")))

	globalBefore := testutil.ToFloat64(counterVec.WithLabelValues("warning", defaultPrefix))
	logger.Warn("no prefix")
	assert.Equal(t, globalBefore+1, testutil.ToFloat64(counterVec.WithLabelValues("warning", defaultPrefix)))
}

func TestLogrusCollector_BadPrefix(t *testing.T) {
	hook := NewLogrusCollector()
	err := hook.Fire(&logrus.Entry{Level: logrus.InfoLevel, Data: logrus.Fields{prefixKey: 7}})
	require.ErrorContains(t, "prefix is not a string", err)
}
