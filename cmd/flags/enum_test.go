package flags

import (
	"flag"
	"testing"

	"github.com/prysmaticlabs/gasper/testing/assert"
	"github.com/prysmaticlabs/gasper/testing/require"
)

func TestEnumValue(t *testing.T) {
	var dest string
	e := &EnumValue{
		Name:        "format",
		Destination: &dest,
		Enum:        []string{"text", "json"},
		Value:       "text",
	}
	assert.Equal(t, "text", e.String())
	require.NoError(t, e.Set("json"))
	assert.Equal(t, "json", dest)
	assert.Equal(t, "json", e.String())
	assert.ErrorContains(t, "allowed values are text, json", e.Set("xml"))
}

func TestLogFormatFlag(t *testing.T) {
	set := flag.NewFlagSet("test", 0)
	require.NoError(t, LogFormatFlag.Apply(set))
	require.NoError(t, set.Parse([]string{"--log-format", "fluentd"}))
	assert.Equal(t, "fluentd", LogFormat)

	set = flag.NewFlagSet("test", flag.ContinueOnError)
	require.NoError(t, LogFormatFlag.Apply(set))
	assert.NotNil(t, set.Parse([]string{"--log-format", "xml"}))
}
