package logger

import (
	"io"
	"log"
	"os"
	"strings"
)

type LogLevel int

const (
	ERROR LogLevel = iota
	WARN
	INFO
	DEBUG
	TRACE
)

const flags = log.Ldate | log.Ltime | log.Lshortfile

var (
	nullWriter   = &NullWriter{}
	currentLevel = ERROR
	Info         *log.Logger
	Warn         *log.Logger
	Error        *log.Logger
	Debug        *log.Logger
	Trace        *log.Logger
)

func StringToLogLevel(value string) LogLevel {
	switch strings.ToLower(value) {
	case "error":
		return ERROR
	case "warn":
		return WARN
	case "info":
		return INFO
	case "debug":
		return DEBUG
	case "trace":
		return TRACE
	}
	log.Printf("Invalid log level: '%s'. Returning WARN", value)
	return WARN
}

func (s LogLevel) String() string {
	switch s {
	case ERROR:
		return "ERROR"
	case WARN:
		return "WARN"
	case INFO:
		return "INFO"
	case DEBUG:
		return "DEBUG"
	case TRACE:
		return "TRACE"
	}
	return "UNKNOWN"
}

type NullWriter struct {
	io.Writer
}

func (s *NullWriter) Write(p []byte) (n int, err error) {
	return len(p), nil
}

func init() {
	InitializeWithWriter(ERROR, nullWriter)
}

// Initialize enables the loggers up to logLevel. Everything goes to stderr:
// stdout is reserved for the program's actual output.
func Initialize(logLevel LogLevel) {
	InitializeWithWriter(logLevel, os.Stderr)
	Debug.Printf("Initialize loggers: '%s'", logLevel.String())
}

func InitializeWithWriter(logLevel LogLevel, writer io.Writer) {
	var errorWriter io.Writer = nullWriter
	var warnWriter io.Writer = nullWriter
	var infoWriter io.Writer = nullWriter
	var debugWriter io.Writer = nullWriter
	var traceWriter io.Writer = nullWriter
	if logLevel >= ERROR {
		errorWriter = writer
	}
	if logLevel >= WARN {
		warnWriter = writer
	}
	if logLevel >= INFO {
		infoWriter = writer
	}
	if logLevel >= DEBUG {
		debugWriter = writer
	}
	if logLevel >= TRACE {
		traceWriter = writer
	}

	currentLevel = logLevel
	Error = log.New(errorWriter, "ERROR: ", flags)
	Warn = log.New(warnWriter, "WARN:  ", flags)
	Info = log.New(infoWriter, "INFO:  ", flags)
	Debug = log.New(debugWriter, "DEBUG: ", flags)
	Trace = log.New(traceWriter, "TRACE: ", flags)
}

func IsLogLevel(logLevel LogLevel) bool {
	return currentLevel >= logLevel
}
