package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/chzyer/readline"
	"github.com/fsnotify/fsnotify"
	"github.com/leapstack-labs/rowql/internal/cli/config"
	"github.com/leapstack-labs/rowql/internal/cli/output"
	"github.com/leapstack-labs/rowql/internal/loader"
	"github.com/leapstack-labs/rowql/pkg/core"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const (
	promptMain         = "rowql> "
	promptContinuation = "   ...> "
)

// lineReader is the part of *readline.Instance the loop uses.
type lineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Query the table interactively",
		Long: `Start an interactive session against the loaded table.

Statements may span several lines and run when a line ends with ";".
Type .help for the dot-commands. With --watch the table file is reloaded
when it changes on disk.`,
		Example: `  rowql repl --table states.json
  rowql repl -t states.csv --watch --mode permissive`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd)
		},
	}
}

func runREPL(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cc := NewCommandContext(cmd)

	session := NewSession(cc)
	if err := session.Reload(ctx); err != nil {
		return err
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cc.Renderer.Styles().Prompt.Render(promptMain),
		HistoryFile:     historyFile(cc.Cfg),
		AutoComplete:    session.completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	cc.Renderer.Println(cc.Renderer.Styles().Header.Render(
		fmt.Sprintf("rowql (table: %s, %d rows)", cc.Cfg.Table, session.Len())))
	cc.Renderer.Println(cc.Renderer.Styles().Muted.Render("Type .help for commands, .quit to exit"))
	cc.Renderer.Println()

	return session.Run(ctx, rl)
}

func historyFile(cfg *config.Config) string {
	if cfg.HistoryFile != "" {
		return cfg.HistoryFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, config.DefaultHistoryFile)
}

// Session is one interactive run: the loaded table plus the command
// context. The table is swapped by .reload and by the file watcher.
type Session struct {
	cc *CommandContext

	mu    sync.RWMutex
	table core.Table
}

// NewSession creates a session with an empty table.
func NewSession(cc *CommandContext) *Session {
	return &Session{cc: cc, table: core.Table{}}
}

// Table returns the current table.
func (s *Session) Table() core.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table
}

// Len returns the current row count.
func (s *Session) Len() int {
	return len(s.Table())
}

// Reload reads the table source again.
func (s *Session) Reload(ctx context.Context) error {
	table, err := s.cc.LoadTable(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.table = table
	s.mu.Unlock()
	return nil
}

// Run reads statements and dot-commands until .quit or end of input.
// With watch enabled the table file is watched for the same duration.
func (s *Session) Run(ctx context.Context, rl lineReader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	if path, ok := s.watchPath(); ok {
		g.Go(func() error {
			return s.watch(gctx, path)
		})
	}
	g.Go(func() error {
		defer cancel()
		return s.loop(gctx, rl)
	})
	return g.Wait()
}

func (s *Session) loop(ctx context.Context, rl lineReader) error {
	r := s.cc.Renderer
	prompt := func(p string) { rl.SetPrompt(r.Styles().Prompt.Render(p)) }

	var buf strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			buf.Reset()
			prompt(promptMain)
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if buf.Len() == 0 && strings.HasPrefix(line, ".") {
			if quit := s.handleDotCommand(ctx, line); quit {
				return nil
			}
			continue
		}

		// Accumulate multi-line statements until a semicolon
		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(line)
		if !strings.HasSuffix(line, ";") {
			prompt(promptContinuation)
			continue
		}
		prompt(promptMain)

		text := buf.String()
		buf.Reset()
		if err := s.Execute(ctx, text); err != nil {
			r.Error(err)
		}
		r.Println()
	}
}

// Execute runs one statement against the current table and renders it.
func (s *Session) Execute(ctx context.Context, text string) error {
	s.mu.RLock()
	table, eng := s.table, s.cc.Engine
	s.mu.RUnlock()

	result, err := eng.Query(ctx, table, text)
	if err != nil {
		return err
	}
	return s.cc.Renderer.Result(result)
}

// handleDotCommand runs a dot-command and reports whether to quit.
func (s *Session) handleDotCommand(ctx context.Context, line string) bool {
	r := s.cc.Renderer
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])
	arg := ""
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		r.Printf("%s\n", replHelp)

	case ".columns":
		if err := renderColumns(r, s.Table()); err != nil {
			r.Error(err)
		}

	case ".count":
		r.Printf("%d rows\n", s.Len())

	case ".mode":
		s.setOption(arg, "mode", func(o *core.Options) (string, error) {
			if arg == "" {
				return string(o.Mode), nil
			}
			m, err := core.ParseMode(arg)
			o.Mode = m
			return string(m), err
		})

	case ".precedence":
		s.setOption(arg, "precedence", func(o *core.Options) (string, error) {
			if arg == "" {
				return string(o.Precedence), nil
			}
			p, err := core.ParsePrecedence(arg)
			o.Precedence = p
			return string(p), err
		})

	case ".output":
		if arg == "" {
			r.Printf("output: %s\n", r.Format())
			break
		}
		f, err := output.ParseFormat(arg)
		if err != nil {
			r.Error(err)
			break
		}
		r.SetFormat(f)
		r.Printf("output: %s\n", f)

	case ".reload":
		if err := s.Reload(ctx); err != nil {
			r.Error(err)
			break
		}
		r.Printf("reloaded %d rows\n", s.Len())

	default:
		r.Error(fmt.Errorf("unknown command %s (type .help for commands)", command))
	}
	return false
}

// setOption applies change to a copy of the engine options and swaps in
// a new engine when arg is set.
func (s *Session) setOption(arg, name string, change func(o *core.Options) (string, error)) {
	r := s.cc.Renderer

	s.mu.Lock()
	opts := s.cc.Engine.Options()
	value, err := change(&opts)
	if err == nil && arg != "" {
		s.cc.SetOptions(opts)
	}
	s.mu.Unlock()

	if err != nil {
		r.Error(err)
		return
	}
	r.Printf("%s: %s\n", name, value)
}

func (s *Session) watchPath() (string, bool) {
	cfg := s.cc.Cfg
	if !cfg.Watch {
		return "", false
	}
	format, err := loader.DetectFormat(cfg.Table)
	if err != nil || !format.IsFile() {
		return "", false
	}
	abs, err := filepath.Abs(cfg.Table)
	if err != nil {
		return "", false
	}
	return abs, true
}

// watch reloads the table when its file changes. The parent directory is
// watched so that editors which replace the file are seen too.
func (s *Session) watch(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		s.cc.Logger.Error("failed to watch table file", "path", path, "error", err)
		return nil
	}

	debounce := s.cc.Cfg.WatchDebounce
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != path || event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounce, func() {
				s.cc.Logger.Debug("table file changed, reloading", "path", path)
				if err := s.Reload(ctx); err != nil {
					s.cc.Renderer.Error(err)
					return
				}
				s.cc.Renderer.Warn("table reloaded (%d rows)", s.Len())
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.cc.Logger.Error("watcher error", "error", err)
		}
	}
}

func (s *Session) completer() *readline.PrefixCompleter {
	columns := readline.PcItemDynamic(func(string) []string {
		return s.Table().Columns()
	})

	return readline.NewPrefixCompleter(
		readline.PcItem("SELECT", columns),
		readline.PcItem(".help"),
		readline.PcItem(".columns"),
		readline.PcItem(".count"),
		readline.PcItem(".mode", readline.PcItem(string(core.ModeStrict)), readline.PcItem(string(core.ModePermissive))),
		readline.PcItem(".precedence", readline.PcItem(string(core.PrecedenceLegacy)), readline.PcItem(string(core.PrecedenceStandard))),
		readline.PcItem(".output",
			readline.PcItem(string(output.FormatTable)),
			readline.PcItem(string(output.FormatJSON)),
			readline.PcItem(string(output.FormatCSV)),
			readline.PcItem(string(output.FormatMarkdown)),
		),
		readline.PcItem(".reload"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}

const replHelp = `
Commands:
  .help                        Show this help message
  .columns                     List the columns of the first row
  .count                       Show the number of rows
  .mode [strict|permissive]    Show or set condition handling
  .precedence [legacy|standard] Show or set AND/OR precedence
  .output [table|json|csv|md]  Show or set the output format
  .reload                      Read the table source again
  .quit / .exit                Exit

Statements:
  SELECT <*|col, ...> FROM TABLE [WHERE <condition>] [LIMIT <n>];
  Conditions compare with = != < > and combine with AND, OR and parentheses.
`
