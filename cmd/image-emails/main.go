package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ironsheep/image-emails/internal/batch"
	"github.com/ironsheep/image-emails/internal/config"
	"github.com/ironsheep/image-emails/internal/extractor"
	"github.com/ironsheep/image-emails/internal/ocr"
	"github.com/ironsheep/image-emails/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const usage = `image-emails - extract email addresses from images

Usage:
  image-emails --input <image> --output <file> [options]
  image-emails --input-dir <dir> --output-dir <dir> [options]
  image-emails serve [options]

Options:
  --input <path>        Image to search
  --output <path>       Text file receiving one address per line
  --input-dir <dir>     Batch mode: process <dir>/*/*
  --output-dir <dir>    Batch mode: write <dir>/<category>/<name>.txt
  --config <path>       INI configuration file (default config.ini)
  --save-rotated        Keep a copy of rotated pages next to the output
  --timeout <duration>  Text recognition timeout, e.g. 60s
  --engine <kind>       OCR engine: auto, native or cli
  --tesseract <path>    tesseract binary
  --version, -v         Print version information
  --help, -h            Print this help message

Environment variables:
  IMAGE_EMAILS_LOG_LEVEL=debug    Enable debug logging

The serve command speaks MCP over stdin/stdout.
`

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-emails %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Print(usage)
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	debug := os.Getenv("IMAGE_EMAILS_LOG_LEVEL") == "debug"
	if debug {
		log.Printf("image-emails v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], debug)
	stop()
	os.Exit(code)
}

type options struct {
	input       string
	output      string
	inputDir    string
	outputDir   string
	configPath  string
	saveRotated bool
	timeout     time.Duration
	engine      string
	tesseract   string
	serve       bool
}

func parseArgs(args []string) (options, map[string]bool, error) {
	var o options
	if len(args) > 0 && args[0] == "serve" {
		o.serve = true
		args = args[1:]
	}

	fs := flag.NewFlagSet("image-emails", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&o.input, "input", "", "")
	fs.StringVar(&o.output, "output", "", "")
	fs.StringVar(&o.inputDir, "input-dir", "", "")
	fs.StringVar(&o.outputDir, "output-dir", "", "")
	fs.StringVar(&o.configPath, "config", config.DefaultPath, "")
	fs.BoolVar(&o.saveRotated, "save-rotated", true, "")
	fs.DurationVar(&o.timeout, "timeout", 0, "")
	fs.StringVar(&o.engine, "engine", "", "")
	fs.StringVar(&o.tesseract, "tesseract", "", "")
	if err := fs.Parse(args); err != nil {
		return o, nil, err
	}
	if fs.NArg() > 0 {
		return o, nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	switch {
	case o.serve:
	case o.inputDir != "" || o.outputDir != "":
		if o.inputDir == "" || o.outputDir == "" {
			return o, nil, errors.New("--input-dir and --output-dir must be given together")
		}
	case o.input == "" || o.output == "":
		return o, nil, errors.New("--input and --output are required")
	}
	return o, set, nil
}

// settings loads the configuration file and applies the flags given on the
// command line over it.
func settings(o options, set map[string]bool) (config.Settings, error) {
	s, err := config.Load(o.configPath)
	if err != nil {
		return s, err
	}
	if !s.OCR.IsEmpty() {
		log.Printf("Found tesseract options: %s; they apply to every OCR call", s.OCR)
	}

	if set["save-rotated"] {
		s.SaveRotated = o.saveRotated
	}
	if set["timeout"] {
		if o.timeout <= 0 {
			return s, fmt.Errorf("invalid --timeout %v: must be positive", o.timeout)
		}
		s.Timeout = o.timeout
	}
	if set["engine"] {
		s.Engine = o.engine
	}
	if set["tesseract"] {
		s.TesseractPath = o.tesseract
	}
	return s, nil
}

func newPipeline(s config.Settings, debug bool) (*extractor.Pipeline, ocr.Engine, error) {
	engine, err := ocr.Open(s.Engine, s.TesseractPath)
	if err != nil {
		return nil, nil, err
	}
	bg, err := s.BackgroundColor()
	if err != nil {
		return nil, nil, err
	}

	p := extractor.NewPipeline(engine, s.OCR)
	p.SaveRotated = s.SaveRotated
	p.Normalizer.Background = bg
	p.Normalizer.AutoBackground = s.AutoBackground()
	p.Normalizer.Verbose = debug
	p.Extractor.Timeout = s.Timeout
	p.Extractor.Verbose = debug

	if debug {
		log.Printf("OCR backend: %+v", ocr.Describe(engine))
	}
	return p, engine, nil
}

func run(ctx context.Context, args []string, debug bool) int {
	o, set, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n\n%s", err, usage)
		return 2
	}

	s, err := settings(o, set)
	if err != nil {
		log.Printf("Configuration error: %v", err)
		return 1
	}

	p, engine, err := newPipeline(s, debug)
	if err != nil {
		log.Printf("Setup failed: %v", err)
		return 1
	}

	switch {
	case o.serve:
		srv := server.New(engine, p)
		srv.Version = Version
		if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("Server error: %v", err)
			return 1
		}
		return 0

	case o.inputDir != "":
		jobs, err := batch.Jobs(o.inputDir, o.outputDir)
		if err != nil {
			log.Printf("Batch failed: %v", err)
			return 1
		}
		if err := batch.Run(ctx, p, jobs).Err(); err != nil {
			log.Printf("Batch finished with errors: %v", err)
			return 1
		}
		return 0

	default:
		if _, err := p.Run(ctx, extractor.Job{Input: o.input, Output: o.output}); err != nil {
			var inputErr *extractor.InputError
			if errors.As(err, &inputErr) {
				log.Printf("%v. Make sure you passed a valid image path.", err)
			} else {
				log.Printf("Extraction failed: %v", err)
			}
			return 1
		}
		return 0
	}
}
