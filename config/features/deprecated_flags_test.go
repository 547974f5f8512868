package features

import (
	"testing"

	"github.com/prysmaticlabs/gasper/testing/assert"
	"github.com/urfave/cli/v2"
)

func TestDeprecatedFlags(t *testing.T) {
	for _, f := range deprecatedFlags {
		var hidden bool
		var usage string
		switch flag := f.(type) {
		case *cli.BoolFlag:
			hidden, usage = flag.Hidden, flag.Usage
		case *cli.StringFlag:
			hidden, usage = flag.Hidden, flag.Usage
		default:
			t.Fatalf("unexpected deprecated flag type %T", f)
		}
		assert.Equal(t, true, hidden, "%s must be hidden", f.Names()[0])
		assert.Equal(t, deprecatedUsage, usage, "%s usage", f.Names()[0])
	}
}

func TestDeprecatedFlags_InBeaconChainFlags(t *testing.T) {
	names := make(map[string]bool)
	for _, f := range BeaconChainFlags {
		names[f.Names()[0]] = true
	}
	for _, f := range deprecatedFlags {
		assert.Equal(t, true, names[f.Names()[0]], "%s not registered", f.Names()[0])
	}
}
