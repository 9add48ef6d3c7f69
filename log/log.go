package log

import (
	"io"
	"log"
	"os"
)

var (
	Trace   *log.Logger
	Info    *log.Logger
	Warning *log.Logger
	Error   *log.Logger
)

func init() {
	InitLog()
}

// InitLog initializes the shared loggers. Trace output is discarded
// unless the TEGAKI_TRACE environment variable is set.
func InitLog() {
	traceOut := io.Discard
	if os.Getenv("TEGAKI_TRACE") != "" {
		traceOut = os.Stdout
	}

	Trace = log.New(traceOut, "TRACE: ", log.Ldate|log.Ltime|log.Lshortfile)
	Info = log.New(os.Stdout, "", 0)
	Warning = log.New(os.Stdout, "WARNING: ", 0)
	Error = log.New(os.Stderr, "ERROR: ", log.Lshortfile)
}
