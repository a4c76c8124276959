package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/reusee/dscope"
	"github.com/satorilang/satori/cmds"
	"github.com/satorilang/satori/debugs"
	"github.com/satorilang/satori/logs"
	"github.com/satorilang/satori/modes"
	"github.com/satorilang/satori/satlang"
	"github.com/satorilang/satori/satoriconfigs"
	_ "github.com/satorilang/satori/satstd"
	"github.com/satorilang/satori/satvm"
	"github.com/satorilang/satori/syncs"
	"golang.org/x/term"
)

const version = "0.1.0"

var (
	tokensOnly = flagSwitch("-t", "--tokens")
	astOnly    = flagSwitch("-a", "--ast")
	disasmOnly = flagSwitch("-d", "--disasm")
	checkOnly  = flagSwitch("-check", "--check")
	traceFlag  = flagSwitch("-trace", "--trace")
	debugRepl  = flagSwitch("-debug-repl", "--debug-repl")

	configPath = cmds.Var[string]("-config")
	debugEval  = cmds.Var[string]("-debug-eval")
)

func init() {
	// interpret is the default mode
	cmds.Define("-i", cmds.Func(func() {}).
		Desc("interpret the file (default)").
		Alias("--interpret"))

	cmds.Define("-v", cmds.Func(func() {
		fmt.Printf("satori %s\n", version)
		os.Exit(0)
	}).Desc("print version").Alias("--version"))
}

// flagSwitch is a boolean flag reachable under several spellings.
func flagSwitch(names ...string) *bool {
	value := new(bool)
	for _, name := range names {
		cmds.Define(name, cmds.Func(func() {
			*value = true
		}))
	}
	return value
}

// flags that consume the next argument
var valueFlags = map[string]bool{
	"-config":     true,
	"-debug-eval": true,
}

func main() {
	flagArgs, paths := partitionArgs(os.Args[1:])
	cmds.Execute(flagArgs)

	ctx := context.Background()

	// debugs.Module embeds logs.Module, so one module carries both
	// provider sets.
	scope := dscope.New(
		new(debugs.Module),
		modes.ForProduction(),
	)

	var exitCode int
	scope.Call(func(
		logger logs.Logger,
		newSpan logs.NewSpan,
		debugEvalFn debugs.Eval,
		tapFn debugs.Tap,
		mode modes.Mode,
	) {
		config, err := satoriconfigs.Load(configPaths())
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			exitCode = 1
			return
		}
		if *traceFlag || mode == modes.ModeDevelopment {
			config.Trace = true
		}
		if *disasmOnly {
			config.Disasm = true
		}

		if *checkOnly {
			if !checkFiles(ctx, logger, paths) {
				exitCode = 1
			}
			return
		}

		path, source, err := readSource(paths)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			exitCode = 1
			return
		}

		ctx, _ := newSpan(ctx, "")
		logger.DebugContext(ctx, "source loaded",
			"path", path,
			"len", len(source),
		)

		if *tokensOnly {
			satlang.PrintTokens(os.Stdout, source)
			return
		}

		if !run(ctx, logger, debugEvalFn, tapFn, config, path, source) {
			exitCode = 1
		}
	})

	os.Exit(exitCode)
}

func configPaths() []string {
	if *configPath != "" {
		return []string{*configPath}
	}
	return []string{"satori.cue"}
}

// partitionArgs splits flag-shaped arguments (handed to the command
// executor) from positional source paths.
func partitionArgs(args []string) (flagArgs []string, paths []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if strings.HasPrefix(arg, "-") && arg != "-" {
			flagArgs = append(flagArgs, arg)
			if valueFlags[arg] && i+1 < len(args) {
				i++
				flagArgs = append(flagArgs, args[i])
			}
		} else {
			paths = append(paths, arg)
		}
	}
	return
}

// readSource returns the program text: the first path argument, or
// stdin when no path is given and stdin is not a terminal. "-" forces
// stdin.
func readSource(paths []string) (string, string, error) {
	if len(paths) == 0 || paths[0] == "-" {
		if len(paths) == 0 && term.IsTerminal(int(os.Stdin.Fd())) {
			return "", "", fmt.Errorf("no input file specified")
		}
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", err
		}
		return "<stdin>", string(content), nil
	}

	content, err := os.ReadFile(paths[0])
	if err != nil {
		return "", "", fmt.Errorf("could not read file '%s': %w", paths[0], err)
	}
	return paths[0], string(content), nil
}

// run drives the pipeline for one source text. It reports success;
// diagnostics go to stderr as they are produced.
func run(
	ctx context.Context,
	logger logs.Logger,
	debugEvalFn debugs.Eval,
	tapFn debugs.Tap,
	config satoriconfigs.Config,
	path string,
	source string,
) bool {

	parser := satlang.NewParser(path, source)
	program, err := parser.Parse()
	if err != nil {
		logger.DebugContext(ctx, "parse failed", "path", path)
		return false
	}

	if *astOnly {
		satlang.PrintAST(os.Stdout, program)
		return true
	}

	chunk, err := satvm.Compile(program)
	if err != nil {
		logger.DebugContext(ctx, "compile failed", "path", path)
		return false
	}

	if config.Disasm {
		satvm.Disassemble(os.Stdout, chunk, path)
		if *disasmOnly {
			return true
		}
	}

	vm := satvm.NewVM(chunk)
	if config.StackSize != satvm.DefaultStackSize {
		vm.SetStackSize(config.StackSize)
	}
	if len(config.Modules) > 0 {
		vm.SetAllowedModules(config.Modules)
	}
	if config.Trace {
		vm.SetTrace(os.Stderr)
	}

	if err := vm.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		logger.DebugContext(ctx, "run failed", "path", path)
		return false
	}

	if *debugEval != "" {
		result, err := debugEvalFn(ctx, *debugEval, debugs.VMSnapshot(vm, chunk))
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return false
		}
		fmt.Println(result)
	}

	if *debugRepl {
		tapFn(ctx, path, debugs.VMSnapshot(vm, chunk))
	}

	return true
}

// checkFiles parses each file, concurrently but bounded, and reports
// whether all of them are clean.
func checkFiles(ctx context.Context, logger logs.Logger, paths []string) bool {
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "error: no input files to check")
		return false
	}

	semaphore := syncs.NewSemaphore(8)
	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := true

	for _, path := range paths {
		wg.Add(1)
		semaphore.Acquire()
		go func() {
			defer wg.Done()
			defer semaphore.Release()

			content, err := os.ReadFile(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: could not read file '%s'\n", path)
				mu.Lock()
				ok = false
				mu.Unlock()
				return
			}

			parser := satlang.NewParser(path, string(content))
			if _, err := parser.Parse(); err != nil {
				mu.Lock()
				ok = false
				mu.Unlock()
				return
			}
			logger.DebugContext(ctx, "check passed", "path", path)
		}()
	}
	wg.Wait()

	return ok
}
