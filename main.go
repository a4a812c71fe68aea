package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/mcncl/accio/internal/config"
	"github.com/mcncl/accio/internal/errors"
	"github.com/mcncl/accio/internal/executor"
	"github.com/mcncl/accio/internal/formatter"
	"github.com/mcncl/accio/internal/models"
	"github.com/mcncl/accio/internal/parser"
	"github.com/mcncl/accio/value"
)

// CLI defines the command-line interface
var CLI struct {
	Input       string   `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output      string   `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Query       string   `help:"Name of a query stored in the config file." short:"q"`
	QueryFile   string   `help:"Path to a YAML file holding a single query." type:"path"`
	Path        string   `help:"Dotted navigation path, e.g. users.0.address. Integers index arrays." short:"p"`
	Select      []string `help:"Navigation step, repeatable. Integers index arrays, a leading '.' forces a field." short:"s" sep:"none"`
	Where       []string `help:"Condition: field=value, field=:type1,type2 (any) or field=:all:type1,type2." short:"w" sep:"none"`
	Mode        string   `help:"What to do after navigating: get, find, find-one or search." short:"m"`
	Project     []string `help:"Keep only these keys of each result." short:"P"`
	Flatten     bool     `help:"Return bare search values and drop empty ones."`
	Transform   string   `help:"Rewrite result keys: none, camel, lower-camel, snake, kebab or lower." short:"t"`
	MaxResults  int      `help:"Stop searching after this many matches." short:"n"`
	Format      string   `help:"Output format: json, pretty or yaml." short:"F"`
	Config      string   `help:"Path to config file. If not specified, searches for .accio.yml in current and parent directories." short:"c" type:"path"`
	ListQueries bool     `help:"List the queries stored in the config file and exit."`
	Debug       bool     `help:"Enable debug logging." short:"d"`
	Version     bool     `help:"Show version information." short:"v"`
	Interactive bool     `help:"Run in interactive mode, allowing direct JSON input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
	Logger *slog.Logger
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("accio"),
		kong.Description("Query schema-less JSON by field values and field types"),
		kong.UsageOnError(),
	)

	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	if _, err := parser.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("accio version %s\n", Version)
		return
	}

	level := &slog.LevelVar{}
	logger := newLogger(level)
	slog.SetDefault(logger)

	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}
	cfg, err := config.LoadConfigWithCLI(configPath, config.Overrides{
		Format:     CLI.Format,
		Transform:  CLI.Transform,
		Projection: CLI.Project,
		Flatten:    CLI.Flatten,
		Debug:      CLI.Debug,
	})
	if err != nil {
		fail(err)
	}
	if cfg.Dev.Debug {
		level.Set(slog.LevelDebug)
	}
	if configPath != "" {
		logger.Debug("loaded config", "path", configPath)
	}

	if CLI.ListQueries {
		for _, name := range cfg.QueryNames() {
			fmt.Println(name)
		}
		return
	}

	if err := run(&Context{Debug: cfg.Dev.Debug, Config: cfg, Logger: logger}); err != nil {
		fail(err)
	}
}

func newLogger(level *slog.LevelVar) *slog.Logger {
	level.Set(slog.LevelWarn)
	return slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}))
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
	fmt.Fprintf(os.Stderr, "\nFor help, run: accio --help\n")
	os.Exit(1)
}

// run executes the main program logic
func run(ctx *Context) error {
	if ctx.Config == nil {
		ctx.Config = config.NewConfig()
	}
	if ctx.Logger == nil {
		ctx.Logger = slog.Default()
	}

	// 1. Resolve the request
	req, err := buildRequest(ctx.Config)
	if err != nil {
		return err
	}

	// 2. Parse JSON input
	root, err := parseInput()
	if err != nil {
		return err
	}

	// 3. Execute the request
	result, err := executor.NewExecutorWithLogger(ctx.Logger).Execute(root, req)
	if err != nil {
		return err
	}

	// 4. Render the result
	f, err := formatter.NewFormatterWithOptions(ctx.Config.Output.Format, ctx.Config.Output.Indent)
	if err != nil {
		return errors.NewOutputError("invalid output settings", err)
	}
	text, err := f.Format(result)
	if err != nil {
		return errors.NewOutputError("failed to render result", err)
	}

	// 5. Output the result
	return writeOutput(text)
}

// buildRequest starts from a stored query, a query file or the config
// defaults, then applies the command-line flags on top.
func buildRequest(cfg *config.Config) (models.Request, error) {
	var (
		req models.Request
		err error
	)
	switch {
	case CLI.Query != "" && CLI.QueryFile != "":
		return models.Request{}, errors.NewQueryError("use either --query or --query-file, not both", nil)
	case CLI.Query != "":
		req, err = cfg.Request(CLI.Query)
	case CLI.QueryFile != "":
		req, err = cfg.LoadQueryFile(CLI.QueryFile)
	default:
		req = cfg.DefaultRequest()
	}
	if err != nil {
		return models.Request{}, err
	}

	req.Steps = append(req.Steps, models.ParseSteps(CLI.Path)...)
	for _, s := range CLI.Select {
		req.Steps = append(req.Steps, models.ParseStep(s))
	}

	where, err := config.ParseWheres(CLI.Where)
	if err != nil {
		return models.Request{}, err
	}
	if len(where) > 0 {
		if req.Where == nil {
			req.Where = where
		} else {
			for field, cond := range where {
				req.Where[field] = cond
			}
		}
		if req.Mode == models.ModeGet {
			req.Mode = models.ModeFind
		}
	}

	if CLI.Mode != "" {
		req.Mode = models.Mode(CLI.Mode)
	}
	if len(CLI.Project) > 0 {
		req.Projection = CLI.Project
	}
	if CLI.Flatten {
		req.Flatten = true
	}
	if CLI.Transform != "" {
		req.Transform = CLI.Transform
	}
	if CLI.MaxResults > 0 {
		req.MaxResults = CLI.MaxResults
	}
	return req, nil
}

// parseInput reads JSON from file or stdin
func parseInput() (value.Value, error) {
	if CLI.Input != "" {
		return parser.ParseFile(CLI.Input)
	}

	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return value.Value{}, errors.NewInputError("failed to access stdin", err)
	}

	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		if CLI.Interactive {
			return readInteractiveInput()
		}
		return value.Value{}, errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	jsonData, err := io.ReadAll(os.Stdin)
	if err != nil {
		return value.Value{}, errors.NewInputError("failed to read from stdin", err)
	}

	if len(jsonData) == 0 {
		return value.Value{}, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	return parser.ParseString(string(jsonData))
}

// writeOutput writes the rendered result to file or stdout
func writeOutput(text string) error {
	if CLI.Output != "" {
		err := os.WriteFile(CLI.Output, []byte(text+"\n"), 0o644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		slog.Info("result written", "path", CLI.Output)
		return nil
	}

	if text == "" {
		return nil
	}
	_, err := fmt.Println(strings.TrimSpace(text))
	if err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput lets users paste JSON and signal completion with
// Ctrl+D (EOF)
func readInteractiveInput() (value.Value, error) {
	fmt.Fprintln(os.Stderr, "accio interactive mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(os.Stdin)
	var jsonBuilder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		jsonBuilder.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return value.Value{}, errors.NewInputError("error reading input", err)
		}
	}

	jsonData := jsonBuilder.String()
	if strings.TrimSpace(jsonData) == "" {
		return value.Value{}, errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nRunning query...")
	return parser.ParseString(jsonData)
}
