// Package main defines pcli, a command line utility to inspect ssz encoded
// containers, run manual state transitions, and simulate chains through the
// fork-head service.
package main

import (
	"os"
	"sync"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/gasper/cmd/flags"
	"github.com/prysmaticlabs/gasper/config/features"
	"github.com/prysmaticlabs/gasper/monitoring/prometheus"
	"github.com/prysmaticlabs/gasper/monitoring/tracing"
	"github.com/prysmaticlabs/gasper/runtime/logging"
	"github.com/prysmaticlabs/gasper/runtime/version"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var (
	log          = logrus.WithField("prefix", "pcli")
	logCollector sync.Once
)

var appFlags = append([]cli.Flag{
	flags.VerbosityFlag,
	flags.LogFormatFlag,
	flags.LogFileName,
	flags.EnableTracingFlag,
	flags.TracingProcessNameFlag,
	flags.TracingEndpointFlag,
	flags.TraceSampleFractionFlag,
}, features.BeaconChainFlags...)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := &cli.App{}
	app.Name = "pcli"
	app.Usage = "A command line utility to run casper ffg specific commands"
	app.Version = version.Version()
	app.Flags = appFlags
	app.Before = before
	app.Commands = []*cli.Command{
		prettyCommand(),
		stateTransitionCommand(),
		simulateCommand(),
		configCommand(),
	}
	return app
}

func before(ctx *cli.Context) error {
	format := flags.LogFormat
	if format == "" {
		format = "text"
	}
	logFileName := ctx.String(flags.LogFileName.Name)
	if err := logging.SetLoggingFormat(format, logFileName != "" /* disableColors */); err != nil {
		return err
	}
	if err := logging.SetLoggingLevel(ctx.String(flags.VerbosityFlag.Name)); err != nil {
		return errors.Wrap(err, "could not parse verbosity")
	}
	logCollector.Do(func() {
		logrus.AddHook(prometheus.NewLogrusCollector())
	})
	if logFileName != "" {
		if err := logging.ConfigurePersistentLogging(logFileName, format); err != nil {
			log.WithError(err).Error("Failed to configuring logging to disk.")
		}
	}
	if err := features.ConfigureFlags(ctx); err != nil {
		return errors.Wrap(err, "could not configure features")
	}
	return tracing.Setup(
		ctx.String(flags.TracingProcessNameFlag.Name),
		ctx.String(flags.TracingEndpointFlag.Name),
		ctx.Float64(flags.TraceSampleFractionFlag.Name),
		ctx.Bool(flags.EnableTracingFlag.Name),
	)
}
