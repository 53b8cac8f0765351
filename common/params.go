package common

import (
	"flag"
	"fmt"
	"io"
	"runtime"
	"vincit.fi/imgsmlr/backend/imageloader"
	"vincit.fi/imgsmlr/pattern"
)

type Params struct {
	patternSize int
	resampler   string
	threadCount int
	logLevel    string
	dbPath      string
	debugDir    string
	print       bool
	files       []string
}

// ParseParams parses the command line arguments (without the program name).
// Usage is written to output on error.
func ParseParams(name string, args []string, output io.Writer) (*Params, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(output)
	flags.Usage = func() {
		fmt.Fprintf(output, "Usage: %s [flags] FILE [FILE]...\n", name)
		flags.PrintDefaults()
	}

	patternSize := flags.Int("size", pattern.DefaultSize, "Pattern size. Must be a power of two")
	resampler := flags.String("resampler", imageloader.DefaultResampler, "Resampling filter: linear, box, bilinear-nfnt, bilinear-xdraw")
	threadCount := flags.Int("threads", runtime.NumCPU(), "Number of images processed concurrently")
	logLevel := flags.String("logLevel", "WARN", "Log level: ERROR, WARN, INFO, DEBUG, TRACE")
	dbPath := flags.String("db", "", "Store fingerprints and distances into this SQLite database")
	debugDir := flags.String("debugDir", "", "Write intermediate patterns as images into this directory")
	printValues := flags.Bool("print", false, "Print patterns and signatures of each image")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return nil, fmt.Errorf("no files given")
	}
	if *threadCount < 1 {
		*threadCount = 1
	}

	return &Params{
		patternSize: *patternSize,
		resampler:   *resampler,
		threadCount: *threadCount,
		logLevel:    *logLevel,
		dbPath:      *dbPath,
		debugDir:    *debugDir,
		print:       *printValues,
		files:       flags.Args(),
	}, nil
}

func (s *Params) PatternSize() int {
	return s.patternSize
}

func (s *Params) Resampler() string {
	return s.resampler
}

func (s *Params) ThreadCount() int {
	return s.threadCount
}

func (s *Params) LogLevel() string {
	return s.logLevel
}

func (s *Params) DbPath() string {
	return s.dbPath
}

func (s *Params) DebugDir() string {
	return s.debugDir
}

func (s *Params) Print() bool {
	return s.print
}

func (s *Params) Files() []string {
	return s.files
}
