package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zerologr"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// logLevels maps -log-level values to zerolog levels. zerologr logs V(1)
// at debug level and errors at error level, so "critical" and "fatal"
// silence all output of the library packages.
var logLevels = map[string]zerolog.Level{
	"debug":    zerolog.DebugLevel,
	"info":     zerolog.InfoLevel,
	"warn":     zerolog.WarnLevel,
	"warning":  zerolog.WarnLevel,
	"error":    zerolog.ErrorLevel,
	"critical": zerolog.FatalLevel,
	"fatal":    zerolog.PanicLevel,
}

// NewLogger returns a console logger writing to w at the given level.
// Colors are used only when w is a terminal.
func NewLogger(w io.Writer, level string) (logr.Logger, error) {
	lvl, ok := logLevels[level]
	if !ok {
		return logr.Discard(), fmt.Errorf("invalid log level %q", level)
	}

	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
		NoColor:    !isTerminal(w),
	}
	zlog := zerolog.New(output).Level(lvl).With().Timestamp().Logger()

	return zerologr.New(&zlog), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
