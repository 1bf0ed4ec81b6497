package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"remap/compiler"
	"remap/config"
	"remap/function"
	"remap/parser"
	"remap/stdlib"
	"remap/trace"
	"remap/transform"
	"remap/types"
)

// maxRecordSize bounds a single NDJSON line
const maxRecordSize = 16 * 1024 * 1024

func main() {
	configPath := flag.String("config", "", "YAML config file")
	program := flag.String("program", "", "Program source (e.g., '.tags = append(.tags, [\"new\"])')")
	programFile := flag.String("file", "", "Program file path")
	workers := flag.Int("workers", 0, "Concurrent records (0 = one per CPU)")
	tz := flag.String("tz", "", "Default timezone for timestamp functions (e.g., 'Europe/Paris')")

	// Trace flags
	traceEnabled := flag.Bool("trace", false, "Enable call tracing")
	traceFilter := flag.String("trace-filter", "", "Trace filter pattern (glob, e.g., 'append' or 'parse_*')")

	watch := flag.Bool("watch", false, "Recompile the program file when it changes")
	listFunctions := flag.Bool("list-functions", false, "List built-in functions and exit")
	check := flag.Bool("check", false, "Compile the program, print it with its type, and exit")

	flag.Parse()

	registry := stdlib.NewRegistry()

	if *listFunctions {
		listFunctionsCommand(registry)
		return
	}

	cfg := config.Defaults()
	if *configPath != "" {
		loaded, err := config.Load(*configPath, os.Getenv)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	// Flags override the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "program":
			cfg.Program, cfg.ProgramFile = *program, ""
		case "file":
			cfg.ProgramFile, cfg.Program = *programFile, ""
		case "workers":
			cfg.Workers = *workers
		case "tz":
			cfg.Timezone = *tz
		case "trace":
			cfg.Trace = *traceEnabled
		case "trace-filter":
			cfg.TraceFilter = config.SplitList(*traceFilter)
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	source, err := cfg.Source()
	if err != nil {
		log.Fatalf("%v", err)
	}

	if *check {
		if err := checkCommand(source, registry); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Initialize tracer
	var sink trace.Sink = trace.Discard
	if cfg.Trace {
		trace.Init(true, cfg.TraceFilter, os.Stderr)
		sink = trace.Global()
		log.Printf("Tracing enabled (filters: %v)", []string(cfg.TraceFilter))
	} else {
		trace.Init(false, nil, nil)
	}

	prog, err := compiler.Compile(source, registry, nil)
	if err != nil {
		log.Fatalf("Failed to compile program: %v", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("%v", err)
	}

	t := transform.New(prog, sink, transform.Options{
		Workers:  cfg.Workers,
		Timezone: loc,
		Tracer:   trace.Global(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *watch {
		if cfg.ProgramFile == "" {
			log.Fatalf("-watch requires a program file")
		}
		w, err := newWatcher(cfg.ProgramFile, func(src string) error {
			p, err := compiler.Compile(src, registry, nil)
			if err != nil {
				return err
			}
			t.Swap(p)
			return nil
		})
		if err != nil {
			log.Fatalf("Failed to watch %s: %v", cfg.ProgramFile, err)
		}
		defer w.Close()
		if err := w.Start(ctx); err != nil {
			log.Fatalf("Failed to watch %s: %v", cfg.ProgramFile, err)
		}
	}

	if err := run(ctx, t, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Transform error: %v", err)
	}
}

// run streams NDJSON records from r through t and writes the results to w
// in input order. Lines that are not valid JSON and records that fail to
// transform are logged and dropped.
func run(ctx context.Context, t *transform.Transform, r io.Reader, w io.Writer) error {
	in := make(chan types.Value)
	out := make(chan transform.Result)

	readErr := make(chan error, 1)
	go func() {
		defer close(in)
		readErr <- readRecords(ctx, r, in)
	}()

	runErr := make(chan error, 1)
	go func() {
		runErr <- t.Run(ctx, in, out)
	}()

	bw := bufio.NewWriter(w)
	writeErr := writeResults(out, bw)
	if err := bw.Flush(); writeErr == nil {
		writeErr = err
	}

	if err := <-runErr; err != nil {
		return err
	}
	if writeErr != nil {
		return writeErr
	}
	return <-readErr
}

func readRecords(ctx context.Context, r io.Reader, in chan<- types.Value) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxRecordSize)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		record, err := types.ParseJSON([]byte(text))
		if err != nil {
			log.Printf("line %d: invalid JSON: %v", line, err)
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case in <- record:
		}
	}
	return scanner.Err()
}

// writeResults drains out, restoring input order with Result.Seq
func writeResults(out <-chan transform.Result, w io.Writer) error {
	pending := make(map[int64]transform.Result)
	next := int64(1)
	var firstErr error

	for res := range out {
		pending[res.Seq] = res
		for {
			r, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++
			if err := writeResult(r, w); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func writeResult(r transform.Result, w io.Writer) error {
	if r.Err != nil {
		log.Printf("record %d dropped: %v", r.Seq, r.Err)
		return nil
	}
	data, err := types.MarshalJSON(r.Output)
	if err != nil {
		log.Printf("record %d dropped: %v", r.Seq, err)
		return nil
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return err
	}
	return nil
}

// checkCommand compiles source and prints its canonical form and type
func checkCommand(source string, registry *function.Registry) error {
	tree, err := parser.Parse(source)
	if err != nil {
		return err
	}
	prog, err := compiler.Compile(source, registry, nil)
	if err != nil {
		return err
	}

	for _, line := range parser.UnparseProgram(tree) {
		fmt.Println(line)
	}
	fmt.Printf("=> %s\n", prog.TypeDef())
	return nil
}

// listFunctionsCommand prints every built-in signature
func listFunctionsCommand(registry *function.Registry) {
	for _, name := range registry.Names() {
		fn, _ := registry.Get(name)
		params := make([]string, 0, len(fn.Parameters()))
		for _, p := range fn.Parameters() {
			s := fmt.Sprintf("%s: %s", p.Keyword, p.Kind)
			if !p.Required {
				s += "?"
			}
			params = append(params, s)
		}
		fmt.Printf("%s(%s)\n", name, strings.Join(params, ", "))
	}
}
