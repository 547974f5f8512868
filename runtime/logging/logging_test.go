package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	joonix "github.com/joonix/log"
	"github.com/prysmaticlabs/gasper/testing/assert"
	"github.com/prysmaticlabs/gasper/testing/require"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

func TestFormatter(t *testing.T) {
	f, err := Formatter("text", true)
	require.NoError(t, err)
	text, ok := f.(*prefixed.TextFormatter)
	require.Equal(t, true, ok)
	assert.Equal(t, true, text.DisableColors)
	assert.Equal(t, timestampFormat, text.TimestampFormat)

	f, err = Formatter("fluentd", false)
	require.NoError(t, err)
	_, ok = f.(*joonix.Formatter)
	assert.Equal(t, true, ok)

	f, err = Formatter("json", false)
	require.NoError(t, err)
	_, ok = f.(*logrus.JSONFormatter)
	assert.Equal(t, true, ok)

	_, err = Formatter("xml", false)
	assert.ErrorContains(t, "unknown log format xml", err)
}

func TestSetLoggingLevel(t *testing.T) {
	prev := logrus.GetLevel()
	defer logrus.SetLevel(prev)

	require.NoError(t, SetLoggingLevel("debug"))
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	assert.NotNil(t, SetLoggingLevel("loud"))
}

func TestConfigurePersistentLogging(t *testing.T) {
	prevHooks := logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks))
	defer logrus.StandardLogger().ReplaceHooks(prevHooks)

	fileName := filepath.Join(t.TempDir(), "beacon.log")
	require.NoError(t, ConfigurePersistentLogging(fileName, "json"))
	logrus.WithField("prefix", "test").Info("persisted line")

	content, err := os.ReadFile(fileName)
	require.NoError(t, err)
	assert.Equal(t, true, strings.Contains(string(content), "persisted line"))

	assert.NotNil(t, ConfigurePersistentLogging(filepath.Join(t.TempDir(), "other.log"), "xml"))
}
