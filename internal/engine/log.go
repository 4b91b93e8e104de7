package engine

import (
	"os"

	"github.com/op/go-logging"
)

// logger carries the engine's structured diagnostics. The only messages
// sent through it are configuration load failures; TT statistics and
// search-abort events are not logged. It never carries
// the per-depth progress line, which is not a log line — that goes
// through the caller-supplied sink (see search.go).
var logger = logging.MustGetLogger("engine")

func init() {
	formatter := logging.MustStringFormatter(
		`%{time:15:04:05.000} %{level:.4s} %{module}: %{message}`,
	)
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatted := logging.NewBackendFormatter(backend, formatter)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(logging.WARNING, "")
	logging.SetBackend(leveled)
}
