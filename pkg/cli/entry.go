// Package cli implements jsastac's compiler driver: flag parsing, project
// config discovery, orchestrating one compile through internal/pipeline,
// and reporting diagnostics with the right process exit code.
package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nanov/jsasta/internal/cache"
	"github.com/nanov/jsasta/internal/codegen"
	"github.com/nanov/jsasta/internal/config"
	"github.com/nanov/jsasta/internal/diag"
	"github.com/nanov/jsasta/internal/diagprint"
	"github.com/nanov/jsasta/internal/modules"
	"github.com/nanov/jsasta/internal/pipeline"
)

// Exit codes, per §6 of the external interface: 0 success, 1 usage/IO,
// 404 missing input or import, 500 parse or type error.
const (
	ExitOK          = 0
	ExitUsage       = 1
	ExitMissing     = 404
	ExitCompileFail = 500
)

// emitMode is the requested codegen hand-off mode. The core never performs
// the hand-off itself (§1); it only decides the default output name, since
// that depends on mode.
type emitMode string

const (
	emitExe  emitMode = "exe"
	emitObj  emitMode = "object"
	emitAsm  emitMode = "asm"
	emitLLVM emitMode = "llvm"
)

func (m emitMode) defaultOutputName() string {
	switch m {
	case emitObj:
		return "output.o"
	case emitAsm:
		return "output.s"
	case emitLLVM:
		return "output.ll"
	default:
		return "a.out"
	}
}

type options struct {
	output      string
	emit        emitMode
	optLevel    int
	sanitize    string
	debugSyms   bool
	debugMode   bool
	verbose     bool
	quiet       bool
	cacheDir    string
	noCache     bool
	entryPath   string
}

// Run is the jsastac entry point, called from cmd/jsastac/main.go. It never
// returns without calling os.Exit, matching the teacher's own Run().
func Run() {
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("JSASTA_DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "this is a bug in jsastac, please report it")
			os.Exit(ExitCompileFail)
		}
	}()

	opts, ok := parseArgs(os.Args[1:])
	if !ok {
		os.Exit(ExitUsage)
	}
	os.Exit(runCompile(opts))
}

func parseArgs(args []string) (options, bool) {
	fs := flag.NewFlagSet("jsastac", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := options{emit: emitExe}

	var (
		objectOnly = fs.Bool("c", false, "emit an object file only")
		asmOnly    = fs.Bool("S", false, "emit assembly only")
		emitLL     = fs.Bool("L", false, "emit LLVM IR")
		emitLLLong = fs.Bool("emit-llvm", false, "emit LLVM IR")
		o0         = fs.Bool("O0", false, "optimization level 0")
		o1         = fs.Bool("O1", false, "optimization level 1")
		o2         = fs.Bool("O2", false, "optimization level 2")
		o3         = fs.Bool("O3", false, "optimization level 3")
	)
	fs.StringVar(&opts.output, "o", "", "output file path")
	fs.StringVar(&opts.sanitize, "sanitize", "", "sanitizer: address, memory, thread, undefined")
	fs.BoolVar(&opts.debugSyms, "g", false, "emit debug symbols")
	fs.BoolVar(&opts.debugSyms, "debug", false, "emit debug symbols")
	fs.BoolVar(&opts.debugMode, "d", false, "enable runtime debug asserts")
	fs.BoolVar(&opts.debugMode, "debug-mode", false, "enable runtime debug asserts")
	fs.BoolVar(&opts.verbose, "v", false, "verbose output")
	fs.BoolVar(&opts.verbose, "verbose", false, "verbose output")
	fs.BoolVar(&opts.quiet, "q", false, "suppress non-error output")
	fs.BoolVar(&opts.quiet, "quiet", false, "suppress non-error output")
	fs.StringVar(&opts.cacheDir, "cache-dir", "", "compile cache directory (default .jsasta-cache)")
	fs.BoolVar(&opts.noCache, "no-cache", false, "disable the compile cache")
	help := fs.Bool("h", false, "show usage")
	helpLong := fs.Bool("help", false, "show usage")

	if err := fs.Parse(args); err != nil {
		return opts, false
	}
	if *help || *helpLong {
		printUsage(fs)
		return opts, false
	}

	switch {
	case *objectOnly:
		opts.emit = emitObj
	case *asmOnly:
		opts.emit = emitAsm
	case *emitLL || *emitLLLong:
		opts.emit = emitLLVM
	}
	switch {
	case *o3:
		opts.optLevel = 3
	case *o2:
		opts.optLevel = 2
	case *o1:
		opts.optLevel = 1
	case *o0:
		opts.optLevel = 0
	}

	rest := fs.Args()
	if len(rest) < 1 {
		applyProjectDefaults(&opts, "")
		if opts.entryPath == "" {
			fmt.Fprintln(os.Stderr, "jsastac: missing input file")
			printUsage(fs)
			return opts, false
		}
		return opts, true
	}
	opts.entryPath = rest[0]
	applyProjectDefaults(&opts, opts.entryPath)
	return opts, true
}

// applyProjectDefaults reads jsasta.yaml from the project root (if any) and
// fills in any flag the user didn't set explicitly on the command line.
func applyProjectDefaults(opts *options, entryPath string) {
	dir := "."
	if entryPath != "" {
		dir = filepath.Dir(entryPath)
	}
	proj, err := config.LoadProject(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jsastac: %v\n", err)
		proj = &config.Project{}
	}
	if opts.entryPath == "" && proj.Entry != "" {
		opts.entryPath = filepath.Join(dir, proj.Entry)
	}
	if opts.cacheDir == "" {
		if proj.CacheDir != "" {
			opts.cacheDir = proj.CacheDir
		} else {
			opts.cacheDir = ".jsasta-cache"
		}
	}
	if !opts.noCache && proj.NoCache {
		opts.noCache = true
	}
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintln(os.Stderr, "usage: jsastac [options] <input.jsa>")
	fs.PrintDefaults()
}

// runCompile drives one compile: check the cache, run the pipeline if
// needed, print diagnostics, and return the process exit code.
func runCompile(opts options) int {
	if opts.entryPath == "" {
		return ExitUsage
	}
	if _, err := os.Stat(opts.entryPath); err != nil {
		fmt.Fprintf(os.Stderr, "jsastac: %s: %v\n", opts.entryPath, err)
		return ExitMissing
	}

	printer := diagprint.New(os.Stderr)
	start := time.Now()

	var compileCache *cache.Cache
	if !opts.noCache {
		c, err := cache.Open(opts.cacheDir)
		if err == nil {
			compileCache = c
			defer compileCache.Close()
		} else if opts.verbose {
			fmt.Fprintf(os.Stderr, "jsastac: cache disabled: %v\n", err)
		}
	}

	if compileCache != nil {
		if entry, hit, err := compileCache.Lookup(opts.entryPath); err == nil && hit {
			sink := diag.NewSink()
			for _, d := range entry.Diagnostics {
				sink.Add(d)
			}
			printer.Print(sink)
			if !opts.quiet {
				printer.Summary(sink, entry.Elapsed, true)
			}
			return exitCodeFor(sink)
		}
	}

	sink := diag.NewSink()
	reg := modules.NewRegistry(sink)
	ctx := &pipeline.PipelineContext{EntryPath: opts.entryPath, Registry: reg, Sink: sink}
	pipeline.Standard().Run(ctx)

	elapsed := time.Since(start)
	printer.Print(sink)
	if !opts.quiet {
		printer.Summary(sink, elapsed, false)
		if opts.verbose {
			fmt.Fprintf(os.Stderr, "jsastac: would emit %s -> %s (-O%d)\n",
				opts.emit, outputPath(opts), opts.optLevel)
		}
	}

	if !sink.HasErrors() && opts.verbose {
		unit := codegen.Collect(reg.Modules())
		fmt.Fprintf(os.Stderr, "jsastac: handing off %d module(s), %d specialization(s) to the backend\n",
			len(unit.Modules), len(unit.Specializations))
	}

	if compileCache != nil {
		if _, err := compileCache.Store(opts.entryPath, sink.All(), elapsed); err != nil && opts.verbose {
			fmt.Fprintf(os.Stderr, "jsastac: cache store failed: %v\n", err)
		}
	}

	return exitCodeFor(sink)
}

func exitCodeFor(sink *diag.Sink) int {
	if !sink.HasErrors() {
		return ExitOK
	}
	for _, d := range sink.All() {
		if strings.HasPrefix(d.Code, "I") {
			return ExitMissing
		}
	}
	return ExitCompileFail
}

func outputPath(opts options) string {
	if opts.output != "" {
		return opts.output
	}
	return opts.emit.defaultOutputName()
}
