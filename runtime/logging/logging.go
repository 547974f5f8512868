// Package logging configures the process wide logrus formatter and an
// optional persistent log file that mirrors everything written to stdout.
package logging

import (
	"fmt"
	"os"
	"strings"

	joonix "github.com/joonix/log"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

const timestampFormat = "2006-01-02 15:04:05"

var _ = logrus.Hook(&WriterHook{})

// WriterHook is a hook that writes logs of specified LogLevels to specified Writer.
type WriterHook struct {
	LogLevels []logrus.Level
	Logger    *logrus.Logger
}

// Fire will be called when some logging function is called with current hook.
// It will format log entry to string and write it to appropriate writer.
func (hook *WriterHook) Fire(entry *logrus.Entry) error {
	line, err := entry.String()
	if err != nil {
		return err
	}
	// simply call the file logger Println func after removing the new line char
	hook.Logger.Println(strings.TrimSuffix(line, "\n"))
	return nil
}

// Levels defines on which log levels this hook would trigger.
func (hook *WriterHook) Levels() []logrus.Level {
	return hook.LogLevels
}

// Formatter returns the logrus formatter for a format name: text, fluentd or json.
func Formatter(format string, disableColors bool) (logrus.Formatter, error) {
	switch format {
	case "text":
		formatter := new(prefixed.TextFormatter)
		formatter.TimestampFormat = timestampFormat
		formatter.FullTimestamp = true
		// If persistent log files are written - we disable the log messages coloring because
		// the colors are ANSI codes and seen as Gibberish in the log files.
		formatter.DisableColors = disableColors
		return formatter, nil
	case "fluentd":
		return joonix.NewFormatter(), nil
	case "json":
		return &logrus.JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown log format %s", format)
	}
}

// SetLoggingFormat installs the formatter for format on the standard logger.
func SetLoggingFormat(format string, disableColors bool) error {
	formatter, err := Formatter(format, disableColors)
	if err != nil {
		return err
	}
	logrus.SetFormatter(formatter)
	return nil
}

// SetLoggingLevel parses and installs the verbosity of the standard logger.
func SetLoggingLevel(verbosity string) error {
	level, err := logrus.ParseLevel(verbosity)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)
	return nil
}

// ConfigurePersistentLogging adds a log-to-file writer hook to the logrus logger. The writer hook appends new
// logs to the specified log file.
func ConfigurePersistentLogging(logFileName, logFileFormatName string) error {
	logrus.WithField("logFileName", logFileName).Info("Logs will be made persistent")
	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) // #nosec G304
	if err != nil {
		return err
	}
	formatter, err := Formatter(logFileFormatName, true /* disableColors */)
	if err != nil {
		return err
	}
	fileLogger := &logrus.Logger{
		Out:       f,
		Level:     logrus.TraceLevel,
		Formatter: formatter,
		Hooks:     make(logrus.LevelHooks),
	}
	logrus.AddHook(&WriterHook{
		LogLevels: logrus.AllLevels,
		Logger:    fileLogger,
	})
	logrus.Info("File logger initialized")
	return nil
}
