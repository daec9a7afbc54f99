// file: logger/logger.go

package logger

import (
	"io"
	"os"

	"go-bank-ledger/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the process-wide logger. It is usable before Init is called.
var Log = logrus.New()

// Init configures Log from config.AppConfig.Log. When a log file is configured,
// entries go to a size-rotated file so they do not interleave with the console
// menu; otherwise they go to stderr.
func Init() {
	cfg := config.AppConfig.Log

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	var out io.Writer = os.Stderr
	if cfg.File != "" {
		out = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	Log.SetOutput(out)
}

// Close releases the rotating log file, if one is open.
func Close() error {
	if c, ok := Log.Out.(io.Closer); ok && Log.Out != os.Stderr {
		return c.Close()
	}
	return nil
}
