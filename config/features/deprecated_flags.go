package features

import "github.com/urfave/cli/v2"

const deprecatedUsage = "DEPRECATED. DO NOT USE."

// Flags that no longer change anything. They stay accepted, hidden, so old
// invocations keep parsing; ConfigureFlags logs an error when one is set.
var deprecatedFlags = []cli.Flag{
	// The ssz root cache is always on.
	&cli.BoolFlag{Name: "enable-ssz-cache", Usage: deprecatedUsage, Hidden: true},
	// Superseded by --disable-skip-slot-cache.
	&cli.BoolFlag{Name: "enable-skip-slots-cache", Usage: deprecatedUsage, Hidden: true},
	// Links are always resolved over every epoch pair of the window.
	&cli.StringFlag{Name: "ebb-link-window", Usage: deprecatedUsage, Hidden: true},
}
