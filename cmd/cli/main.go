package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/nickyhof/MiniDB"
	"github.com/nickyhof/MiniDB/core"
	"github.com/nickyhof/MiniDB/db"
	"github.com/nickyhof/MiniDB/logging"
	"github.com/nickyhof/MiniDB/ps"
)

const (
	PromptColor  = "\033[36m" // Cyan
	ErrorColor   = "\033[31m" // Red
	SuccessColor = "\033[32m" // Green
	ResetColor   = "\033[0m"
	BoldColor    = "\033[1m"
)

// Version is set at build time via -ldflags
var Version = "dev"

// Flags defines the command-line interface using Kong
type Flags struct {
	Store   string `name:"store" short:"s" default:"mem://" help:"Snapshot store: mem://, git://<dir>, s3://<bucket>/<key>, sqlite://<path>, file://<path> or a plain path"`
	SQLFile string `name:"sql-file" short:"f" help:"Execute statements from a file, one per line, and exit"`

	Name  string `name:"name" default:"MiniDB" help:"Author name for Git commits"`
	Email string `name:"email" default:"cli@minidb.local" help:"Author email for Git commits"`

	S3Region    string `name:"s3-region" env:"AWS_REGION" help:"S3 region"`
	S3Endpoint  string `name:"s3-endpoint" help:"Custom S3-compatible endpoint"`
	S3AccessKey string `name:"s3-access-key" env:"AWS_ACCESS_KEY_ID" help:"S3 access key"`
	S3SecretKey string `name:"s3-secret-key" env:"AWS_SECRET_ACCESS_KEY" help:"S3 secret key"`

	SeqURL   string `name:"seq-url" help:"Also send logs to this Seq server"`
	LogLevel string `name:"log-level" default:"warn" enum:"debug,info,warn,error" help:"Log level"`

	SkipUnchanged  bool `name:"skip-unchanged" help:"Do not save when a statement leaves the snapshot unchanged"`
	RebuildIndexes bool `name:"rebuild-indexes" help:"Rebuild indexes after UPDATE and DELETE instead of leaving them stale"`

	Version kong.VersionFlag `name:"version" help:"Print version information"`
}

// CLI holds the CLI state
type CLI struct {
	engine      *db.Engine // the engine statements run against
	live        *db.Engine
	store       ps.Store
	opts        []db.Option
	out         io.Writer
	history     []string
	historyFile string

	// set while .at pins an older snapshot
	view    *ps.ReadOnlyStore
	viewTxn ps.Transaction
}

func main() {
	var flags Flags
	kong.Parse(&flags,
		kong.Name("minidb"),
		kong.Description("A tiny relational engine that snapshots every statement"),
		kong.UsageOnError(),
		kong.Vars{"version": Version},
	)

	level, err := logging.ParseLevel(flags.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%sError: %v%s\n", ErrorColor, err, ResetColor)
		os.Exit(2)
	}
	logger, closeLogger := logging.SetupLogger(logging.Options{Level: level, SeqURL: flags.SeqURL})
	defer closeLogger()

	ctx := context.Background()
	cli, err := newCLI(ctx, flags, logger, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%sError: %v%s\n", ErrorColor, err, ResetColor)
		closeLogger()
		os.Exit(1)
	}
	defer cli.Close()

	if flags.SQLFile != "" {
		failed, err := cli.importFile(flags.SQLFile)
		if err != nil || failed > 0 {
			if err != nil {
				fmt.Fprintf(os.Stderr, "%sError importing file: %v%s\n", ErrorColor, err, ResetColor)
			}
			cli.Close()
			closeLogger()
			os.Exit(1)
		}
		return
	}

	cli.printBanner(flags.Store)
	cli.historyFile = getHistoryPath()
	cli.loadHistory()
	cli.run(os.Stdin)
	cli.saveHistory()
}

func newCLI(ctx context.Context, flags Flags, logger *slog.Logger, out io.Writer) (*CLI, error) {
	instance, err := MiniDB.OpenLocation(ctx, flags.Store, ps.Options{
		Identity: core.Identity{Name: flags.Name, Email: flags.Email},
		S3: ps.S3Config{
			AccessKey: flags.S3AccessKey,
			SecretKey: flags.S3SecretKey,
			Region:    flags.S3Region,
			Endpoint:  flags.S3Endpoint,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	opts := []db.Option{
		db.WithLogger(logger),
		db.WithSkipUnchanged(flags.SkipUnchanged),
	}
	if flags.RebuildIndexes {
		opts = append(opts, db.WithIndexPolicy(db.RebuildIndexes{}))
	}

	engine, err := instance.Engine(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &CLI{
		engine:  engine,
		live:    engine,
		store:   instance.Store,
		opts:    opts,
		out:     out,
		history: make([]string, 0),
	}, nil
}

// Close releases the store behind the live engine.
func (cli *CLI) Close() error {
	return cli.live.Close()
}

func (cli *CLI) printBanner(location string) {
	if location == "" {
		location = "mem://"
	}

	fmt.Fprintln(cli.out)
	fmt.Fprintf(cli.out, "%s%sMiniDB v%s%s\n", BoldColor, PromptColor, Version, ResetColor)
	fmt.Fprintf(cli.out, "%sStore: %s%s\n", SuccessColor, location, ResetColor)
	fmt.Fprintln(cli.out, "Type .help for commands, .quit to exit")
	fmt.Fprintln(cli.out)
}

// run reads one statement per line until EOF or .quit.
func (cli *CLI) run(in io.Reader) {
	scanner := bufio.NewScanner(in)

	for {
		if cli.view != nil {
			fmt.Fprintf(cli.out, "%sminidb@%s>%s ", PromptColor, shortId(cli.viewTxn.Id), ResetColor)
		} else {
			fmt.Fprintf(cli.out, "%sminidb>%s ", PromptColor, ResetColor)
		}

		if !scanner.Scan() {
			fmt.Fprintf(cli.out, "\n%sGoodbye!%s\n", SuccessColor, ResetColor)
			return
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, ".") {
			if quit := cli.handleCommand(input); quit {
				return
			}
			continue
		}

		cli.addToHistory(input)
		cli.execute(input)
	}
}

func (cli *CLI) execute(statement string) bool {
	result, err := cli.engine.Execute(statement)
	if err != nil {
		fmt.Fprintf(cli.out, "%s✗ Error: %v%s\n", ErrorColor, err, ResetColor)
		if cli.view != nil && errors.Is(err, ps.ErrReadOnly) {
			cli.resetView()
		}
		return false
	}
	result.Display(cli.out)
	return true
}

// handleCommand runs a dot command and reports whether the REPL should stop.
func (cli *CLI) handleCommand(input string) bool {
	parts := strings.Fields(strings.ToLower(input))

	switch parts[0] {
	case ".quit", ".exit", ".q":
		fmt.Fprintf(cli.out, "%sGoodbye!%s\n", SuccessColor, ResetColor)
		return true

	case ".help", ".h", ".?":
		cli.printHelp()

	case ".tables":
		cli.showTables()

	case ".history":
		cli.printHistory()

	case ".at":
		if len(parts) > 1 {
			cli.openAt(parts[1])
		} else {
			cli.closeAt()
		}

	case ".version":
		fmt.Fprintf(cli.out, "MiniDB version %s\n", Version)

	default:
		fmt.Fprintf(cli.out, "%s✗ Unknown command: %s (type .help for commands)%s\n", ErrorColor, parts[0], ResetColor)
	}

	return false
}

func (cli *CLI) printHelp() {
	fmt.Fprintln(cli.out)
	fmt.Fprintf(cli.out, "%s%sSpecial Commands:%s\n", BoldColor, PromptColor, ResetColor)
	fmt.Fprintln(cli.out, "  .help, .h        Show this help message")
	fmt.Fprintln(cli.out, "  .quit, .exit     Exit the CLI")
	fmt.Fprintln(cli.out, "  .tables          List tables")
	fmt.Fprintln(cli.out, "  .history         Show saved snapshots")
	fmt.Fprintln(cli.out, "  .at <id>         Query a saved snapshot read-only")
	fmt.Fprintln(cli.out, "  .at              Return to the latest snapshot")
	fmt.Fprintln(cli.out, "  .version         Show version info")
	fmt.Fprintln(cli.out)
	fmt.Fprintf(cli.out, "%s%sSQL Commands:%s\n", BoldColor, PromptColor, ResetColor)
	fmt.Fprintln(cli.out, "  CREATE TABLE <table> (<column> <type> [PRIMARY] [UNIQUE], ...)")
	fmt.Fprintln(cli.out, "  INSERT INTO <table> (<value>, ...)")
	fmt.Fprintln(cli.out, "  SELECT * FROM <table> [JOIN <t2> ON <table>.<col> = <t2>.<col>] [WHERE <col> = <value>]")
	fmt.Fprintln(cli.out, "  UPDATE <table> SET <col> = <value> [WHERE <col> = <value>]")
	fmt.Fprintln(cli.out, "  DELETE FROM <table> [WHERE <col> = <value>]")
	fmt.Fprintln(cli.out, "  SHOW INDEX FROM <table>")
	fmt.Fprintln(cli.out)
}

func (cli *CLI) showTables() {
	names := cli.engine.TableNames()
	if len(names) == 0 {
		fmt.Fprintln(cli.out, "No tables")
		return
	}

	data := db.NewSimpleTable(cli.out)
	data.Header([]string{"table", "rows"})
	for _, name := range names {
		table, err := cli.engine.Table(name)
		if err != nil {
			continue
		}
		data.Row([]string{name, fmt.Sprint(table.Len())})
	}
	data.Render()
}

// printHistory lists the snapshots kept by stores that have a history.
func (cli *CLI) printHistory() {
	historian, ok := cli.store.(ps.Historian)
	if !ok {
		fmt.Fprintf(cli.out, "%s✗ This store keeps only the latest snapshot%s\n", ErrorColor, ResetColor)
		return
	}

	transactions, err := historian.History(context.Background())
	if err != nil {
		fmt.Fprintf(cli.out, "%s✗ Error: %v%s\n", ErrorColor, err, ResetColor)
		return
	}
	if len(transactions) == 0 {
		fmt.Fprintln(cli.out, "No snapshots saved")
		return
	}

	for _, txn := range transactions {
		fmt.Fprintf(cli.out, "  %s  %s  %s\n", shortId(txn.Id), txn.When.Format("2006-01-02 15:04:05"), txn.Author)
	}
}

// openAt pins the snapshot saved by transaction id. Statements then run
// against it and anything that would change it is refused.
func (cli *CLI) openAt(id string) {
	ctx := context.Background()

	view, txn, err := ps.At(ctx, cli.store, id)
	if err != nil {
		fmt.Fprintf(cli.out, "%s✗ Error: %v%s\n", ErrorColor, err, ResetColor)
		return
	}

	engine, err := db.NewEngine(ctx, view, cli.opts...)
	if err != nil {
		fmt.Fprintf(cli.out, "%s✗ Error: %v%s\n", ErrorColor, err, ResetColor)
		return
	}

	cli.engine, cli.view, cli.viewTxn = engine, view, txn
	fmt.Fprintf(cli.out, "%s✓ Viewing snapshot %s from %s (read-only, .at to return)%s\n",
		SuccessColor, shortId(txn.Id), txn.When.Format("2006-01-02 15:04:05"), ResetColor)
}

// resetView reloads the pinned snapshot, dropping in-memory changes of a
// refused statement.
func (cli *CLI) resetView() {
	engine, err := db.NewEngine(context.Background(), cli.view, cli.opts...)
	if err != nil {
		fmt.Fprintf(cli.out, "%s✗ Error: %v%s\n", ErrorColor, err, ResetColor)
		cli.closeAt()
		return
	}
	cli.engine = engine
}

// latestReporter is implemented by stores that can name their newest snapshot
// without listing the whole history.
type latestReporter interface {
	LatestTransaction() ps.Transaction
}

func (cli *CLI) closeAt() {
	cli.engine, cli.view, cli.viewTxn = cli.live, nil, ps.Transaction{}

	if reporter, ok := cli.store.(latestReporter); ok {
		if txn := reporter.LatestTransaction(); txn.Id != "" {
			fmt.Fprintf(cli.out, "%s✓ Back at latest snapshot %s%s\n", SuccessColor, shortId(txn.Id), ResetColor)
			return
		}
	}
	fmt.Fprintf(cli.out, "%s✓ Back at latest snapshot%s\n", SuccessColor, ResetColor)
}

func shortId(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

func (cli *CLI) addToHistory(cmd string) {
	// Don't add duplicates of the last command
	if len(cli.history) > 0 && cli.history[len(cli.history)-1] == cmd {
		return
	}
	cli.history = append(cli.history, cmd)

	if len(cli.history) > 1000 {
		cli.history = cli.history[len(cli.history)-1000:]
	}
}

func getHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".minidb_history")
}

func (cli *CLI) loadHistory() {
	if cli.historyFile == "" {
		return
	}

	file, err := os.Open(cli.historyFile)
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		cli.history = append(cli.history, scanner.Text())
	}
}

func (cli *CLI) saveHistory() {
	if cli.historyFile == "" {
		return
	}

	file, err := os.Create(cli.historyFile)
	if err != nil {
		return
	}
	defer file.Close()

	for _, cmd := range cli.history {
		_, _ = file.WriteString(cmd + "\n")
	}
}

// importFile executes each non-empty line of a file as one statement and
// returns how many failed. Lines starting with -- are comments.
func (cli *CLI) importFile(filename string) (int, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return 0, fmt.Errorf("failed to read file: %w", err)
	}

	succeeded, failed := 0, 0
	for i, line := range strings.Split(string(data), "\n") {
		stmt := strings.TrimSpace(line)
		if stmt == "" || strings.HasPrefix(stmt, "--") {
			continue
		}

		result, err := cli.engine.Execute(stmt)
		if err != nil {
			fmt.Fprintf(cli.out, "%s[%d] ✗ %s%s\n", ErrorColor, i+1, truncate(stmt, 50), ResetColor)
			fmt.Fprintf(cli.out, "      Error: %v\n", err)
			failed++
			continue
		}

		succeeded++
		switch r := result.(type) {
		case db.QueryResult:
			fmt.Fprintf(cli.out, "%s[%d] ✓ %s (%d rows)%s\n", SuccessColor, i+1, truncate(stmt, 50), len(r.Rows), ResetColor)
		default:
			fmt.Fprintf(cli.out, "%s[%d] ✓ %s%s\n", SuccessColor, i+1, truncate(stmt, 50), ResetColor)
		}
	}

	fmt.Fprintf(cli.out, "\n%s✓ Import complete: %d succeeded, %d failed%s\n",
		SuccessColor, succeeded, failed, ResetColor)

	return failed, nil
}

// truncate shortens a string to max runes with ellipsis
func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\t", " ")
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
