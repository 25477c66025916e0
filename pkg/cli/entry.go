// Package cli implements the funsel command line interface.
//
// Commands:
//
//	funsel resolve <operation> <type>     select and run one implementation
//	funsel eval <function> <args...>      bounded compile-time evaluation
//	funsel list ops|types|funcs           enumerate the built-in domain
//	funsel inspect <dir> [patterns...]    derive a universe from Go packages
//	funsel help                           usage
package cli

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/funvibe/funsel/internal/builtins"
	"github.com/funvibe/funsel/internal/cache"
	"github.com/funvibe/funsel/internal/config"
	"github.com/funvibe/funsel/internal/consteval"
	"github.com/funvibe/funsel/internal/dispatch"
	"github.com/funvibe/funsel/internal/inspect"
	"github.com/funvibe/funsel/internal/predicate"
	"github.com/funvibe/funsel/internal/typesystem"
)

const usage = `funsel - capability-based dispatch and bounded evaluation

Usage:
  funsel resolve <operation> <type>    Select one implementation and run it
  funsel eval <function> <args...>     Evaluate a bounded recursive function
  funsel list ops|types|funcs          List operations, types or functions
  funsel inspect <dir> [patterns...]   Derive types from a Go package
  funsel purge-cache                   Drop all recorded selections
  funsel help                          Show this help

Flags (before the command):
  -config <path>   Configuration file (default funsel.yaml if present)
  -cache <path>    Selection cache database (overrides config)
  -no-color        Disable colored output
`

// session bundles everything a command needs: configuration, the built-in
// universe and table with rank overrides applied, and a resolver that may
// carry a persistent selection store.
type session struct {
	cfg      *config.Config
	universe *typesystem.Universe
	table    *dispatch.Table
	resolver *dispatch.Resolver
	eval     *consteval.Evaluator
	store    *cache.Store
}

func (s *session) close() {
	if s.store != nil {
		s.store.Close()
	}
}

type options struct {
	configPath string
	cachePath  string
}

func newSession(opts options) (*session, error) {
	path := opts.configPath
	if path == "" {
		path = config.ConfigFileName
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	table := builtins.Table()
	for label, value := range cfg.Ranks {
		// Candidate labels are "<operation>.<name>"; the operation is the
		// first segment.
		op, _, ok := strings.Cut(label, ".")
		if !ok {
			return nil, fmt.Errorf("invalid rank override key %q (want operation.name)", label)
		}
		rank, err := dispatch.ParseRank(value)
		if err != nil {
			return nil, err
		}
		if err := table.SetRank(op, label, rank); err != nil {
			return nil, err
		}
	}

	universe := builtins.Universe()
	resolver := dispatch.NewResolver(table, predicate.NewEnv(universe))

	s := &session{
		cfg:      cfg,
		universe: universe,
		table:    table,
		resolver: resolver,
		eval:     consteval.New(cfg.MaxDepth),
	}

	cachePath := opts.cachePath
	if cachePath == "" {
		cachePath = cfg.Cache
	}
	if cachePath != "" {
		store, err := cache.Open(cachePath)
		if err != nil {
			return nil, fmt.Errorf("opening selection cache: %w", err)
		}
		s.store = store
		s.resolver.WithStore(store)
	}
	return s, nil
}

// Run is the CLI entry point. It exits the process on error.
func Run() {
	args := os.Args[1:]

	opts := options{}
	for len(args) > 0 && strings.HasPrefix(args[0], "-") {
		switch args[0] {
		case "-config", "--config":
			if len(args) < 2 {
				fail("-config requires a path")
			}
			opts.configPath = args[1]
			args = args[2:]
		case "-cache", "--cache":
			if len(args) < 2 {
				fail("-cache requires a path")
			}
			opts.cachePath = args[1]
			args = args[2:]
		case "-no-color", "--no-color":
			NoColor = true
			args = args[1:]
		case "-help", "--help", "-h":
			fmt.Print(usage)
			return
		default:
			fail("unknown flag: %s", args[0])
		}
	}

	if len(args) == 0 {
		fmt.Print(usage)
		os.Exit(1)
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "help":
		fmt.Print(usage)
	case "resolve":
		runResolve(opts, rest)
	case "eval":
		runEval(opts, rest)
	case "list":
		runList(opts, rest)
	case "inspect":
		runInspect(rest)
	case "purge-cache":
		runPurgeCache(opts)
	default:
		fail("unknown command %q (see 'funsel help')", cmd)
	}
}

func fail(format string, a ...any) {
	fmt.Fprintf(os.Stderr, red("Error: ")+format+"\n", a...)
	os.Exit(1)
}

func runResolve(opts options, args []string) {
	if len(args) != 2 {
		fail("usage: funsel resolve <operation> <type>")
	}
	s, err := newSession(opts)
	if err != nil {
		fail("%s", err)
	}
	defer s.close()

	op, typeName := args[0], args[1]
	t, ok := s.universe.Lookup(typeName)
	if !ok {
		fail("unknown type %q (see 'funsel list types')", typeName)
	}

	sel, err := s.resolver.Resolve(op, t)
	if err != nil {
		fail("%s", err)
	}
	printSelection(sel)
}

func printSelection(sel *dispatch.Selection) {
	fmt.Printf("%s %s(%s)\n", bold("operation"), sel.Op, cyan(sel.Type.String()))
	fmt.Printf("%s %s", bold("selected "), sel.Label)
	switch sel.Kind {
	case dispatch.KindGuarded:
		fmt.Printf(" %s\n", dim("(guarded, rank "+sel.Rank.String()+")"))
	default:
		fmt.Printf(" %s\n", dim("("+sel.Kind.String()+")"))
	}
	if len(sel.Bindings) > 0 {
		names := make([]string, 0, len(sel.Bindings))
		for name := range sel.Bindings {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("%s %s = %s\n", bold("binding  "), name, sel.Bindings[name])
		}
	}
	fmt.Printf("%s %s\n", bold("result   "), green(sel.Result.Text))
	// The trace id is fresh per resolution; test mode drops it so output
	// is comparable across runs.
	if !config.IsTestMode {
		fmt.Printf("%s %s\n", bold("trace    "), dim(sel.TraceID))
	}
}

func runEval(opts options, args []string) {
	if len(args) < 1 {
		fail("usage: funsel eval <function> <args...>")
	}
	s, err := newSession(opts)
	if err != nil {
		fail("%s", err)
	}
	defer s.close()

	fn := args[0]
	for _, name := range builtins.NumericFuncNames() {
		if fn == name {
			evalNumeric(s, fn, args[1:])
			return
		}
	}
	for _, name := range builtins.ListFuncNames() {
		if fn == name {
			evalList(s, fn, args[1:])
			return
		}
	}
	fail("unknown function %q (see 'funsel list funcs')", fn)
}

func evalNumeric(s *session, fn string, rawArgs []string) {
	nums := make([]int64, 0, len(rawArgs))
	for _, raw := range rawArgs {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			fail("argument %q is not an integer", raw)
		}
		nums = append(nums, n)
	}
	result, err := builtins.EvalNumeric(s.eval, fn, nums)
	if err != nil {
		fail("%s", err)
	}
	fmt.Printf("%s(%s) = %s\n", fn, strings.Join(rawArgs, ", "), green(strconv.FormatInt(result, 10)))
}

// evalList runs a type-list function. The list is given as comma-separated
// type names; append takes the element as a trailing argument:
//
//	funsel eval front int,double,string
//	funsel eval append int,double bool
func evalList(s *session, fn string, rawArgs []string) {
	if len(rawArgs) < 1 {
		fail("usage: funsel eval %s <type,type,...> [extra]", fn)
	}
	list, err := parseTypeList(s.universe, rawArgs[0])
	if err != nil {
		fail("%s", err)
	}

	switch fn {
	case config.FrontFuncName:
		front, err := list.Front()
		if err != nil {
			fail("%s", err)
		}
		fmt.Printf("front(%s) = %s\n", list, green(front.String()))
	case config.TailFuncName:
		tail, err := list.Tail()
		if err != nil {
			fail("%s", err)
		}
		fmt.Printf("tail(%s) = %s\n", list, green(tail.String()))
	case config.SizeFuncName:
		n, err := s.eval.Size(list)
		if err != nil {
			fail("%s", err)
		}
		fmt.Printf("size(%s) = %s\n", list, green(strconv.Itoa(n)))
	case config.AppendFuncName:
		if len(rawArgs) != 2 {
			fail("usage: funsel eval append <type,type,...> <type>")
		}
		elem, ok := s.universe.Lookup(rawArgs[1])
		if !ok {
			fail("unknown type %q", rawArgs[1])
		}
		out, err := s.eval.Append(list, elem)
		if err != nil {
			fail("%s", err)
		}
		fmt.Printf("append(%s, %s) = %s\n", list, rawArgs[1], green(out.String()))
	}
}

func parseTypeList(u *typesystem.Universe, raw string) (*consteval.List, error) {
	var types []typesystem.Type
	for _, name := range strings.Split(raw, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		t, ok := u.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown type %q in list", name)
		}
		types = append(types, t)
	}
	return consteval.FromTypes(types...), nil
}

func runList(opts options, args []string) {
	if len(args) != 1 {
		fail("usage: funsel list ops|types|funcs")
	}
	s, err := newSession(opts)
	if err != nil {
		fail("%s", err)
	}
	defer s.close()

	switch args[0] {
	case "ops":
		for _, op := range s.table.Operations() {
			fmt.Printf("%s\n", bold(op))
			for _, label := range s.table.Candidates(op) {
				fmt.Printf("  %s\n", label)
			}
		}
	case "types":
		for _, t := range s.universe.Types() {
			fmt.Println(t)
		}
	case "funcs":
		for _, name := range builtins.NumericFuncNames() {
			fmt.Println(name)
		}
		for _, name := range builtins.ListFuncNames() {
			fmt.Println(name)
		}
	default:
		fail("unknown list target %q (want ops, types or funcs)", args[0])
	}
}

// runPurgeCache drops recorded selections after a table change made them
// stale (the resolver reports the mismatch as an error otherwise).
func runPurgeCache(opts options) {
	s, err := newSession(opts)
	if err != nil {
		fail("%s", err)
	}
	defer s.close()

	if s.store == nil {
		fail("no selection cache configured (use -cache or funsel.yaml)")
	}
	if err := s.store.Purge(); err != nil {
		fail("%s", err)
	}
	fmt.Println("selection cache purged")
}

func runInspect(args []string) {
	if len(args) < 1 {
		fail("usage: funsel inspect <dir> [patterns...]")
	}
	dir := args[0]
	patterns := args[1:]
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	u, err := inspect.NewInspector(dir).LoadUniverse(patterns...)
	if err != nil {
		fail("%s", err)
	}
	for _, name := range u.Names() {
		t, _ := u.Lookup(name)
		shape, _ := u.Shape(t)
		fmt.Printf("%s", bold(name))
		if shape.Class == typesystem.ClassIntegral {
			fmt.Printf(" %s", dim("integral"))
		}
		if shape.Class == typesystem.ClassFloating {
			fmt.Printf(" %s", dim("floating"))
		}
		fmt.Println()
		for _, m := range shape.Methods {
			params := make([]string, 0, len(m.Params))
			for _, p := range m.Params {
				params = append(params, p.String())
			}
			if m.Result != nil {
				fmt.Printf("  %s(%s) %s\n", m.Name, strings.Join(params, ", "), m.Result)
			} else {
				fmt.Printf("  %s(%s)\n", m.Name, strings.Join(params, ", "))
			}
		}
	}
}
