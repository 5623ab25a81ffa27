package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/baxromumarov/ammo"
	"github.com/baxromumarov/ammo/dom"
	"github.com/baxromumarov/ammo/value"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/net/html"
)

type cli struct {
	verbose bool
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "ammo",
		Short: "Select, edit and inspect HTML documents from the command line",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if c.verbose {
				config = zap.NewDevelopmentConfig()
			}
			logger, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			c.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.logger.Sync()
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(c.queryCmd(), c.parseCmd(), c.waitCmd())
	return root
}

type queryFlags struct {
	filter string
	attrs  []string
	styles []string
	text   string
	index  string
}

func (f queryFlags) mutates() bool {
	return len(f.attrs) > 0 || len(f.styles) > 0 || f.text != ""
}

func (c *cli) queryCmd() *cobra.Command {
	var f queryFlags
	cmd := &cobra.Command{
		Use:   "query FILE SELECTOR",
		Short: "Print or modify the nodes matching a CSS selector",
		Long: `Selects every node matching SELECTOR in the HTML file FILE ("-" for stdin).

Without modification flags the outer HTML of each selected node is printed,
one per line. With --attr, --style or --text the selected nodes are changed
and the whole document is printed.

--filter keeps the nodes carrying a class, or, when the value contains a
colon, the nodes matching SELECTOR followed by that pseudo-class:

  ammo query page.html li --filter :first-child
  ammo query page.html li --filter active --attr data-seen=1`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := c.load(cmd, args[0])
			if err != nil {
				return err
			}
			return c.query(cmd.OutOrStdout(), doc, args[1], f)
		},
	}
	cmd.Flags().StringVar(&f.filter, "filter", "", "class name or pseudo-class to filter by")
	cmd.Flags().StringArrayVar(&f.attrs, "attr", nil, "set attribute name=value (repeatable)")
	cmd.Flags().StringArrayVar(&f.styles, "style", nil, "set style property=value (repeatable)")
	cmd.Flags().StringVar(&f.text, "text", "", "replace inner content")
	cmd.Flags().StringVar(&f.index, "index", "", "print the index of the first node with this class")
	return cmd
}

func (c *cli) query(w io.Writer, doc *dom.Document, selector string, f queryFlags) error {
	items := dom.SelectAll(doc, selector)
	if f.filter != "" {
		items.FilterString(f.filter)
	}

	if f.index != "" {
		if err := items.Err(); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w, items.Index(f.index))
		return err
	}

	for _, kv := range f.attrs {
		name, val, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("--attr %q: want name=value", kv)
		}
		items.Attr(name, val)
	}
	for _, kv := range f.styles {
		prop, val, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("--style %q: want property=value", kv)
		}
		items.Style(prop, val)
	}
	if f.text != "" {
		items.Text(f.text)
	}
	if err := items.Err(); err != nil {
		return err
	}

	c.logger.Debug("query", zap.String("selector", selector), zap.Int("matches", items.Len()))

	if f.mutates() {
		if err := doc.Render(w); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w)
		return err
	}

	var werr error
	items.Each(func(n *html.Node, _ int) {
		if werr == nil {
			_, werr = fmt.Fprintln(w, dom.OuterHTML(n))
		}
	})
	return werr
}

func (c *cli) parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse VALUE...",
		Short: "Show how each argument is coerced to a typed value",
		Long: `Prints the kind and value each argument coerces to, one per line.

Arguments are never read as flags, so negative numbers such as -5 work
as is. -h or --help as the only argument prints this help.`,
		// Values like "-5" would otherwise be taken for shorthand flags.
		DisableFlagParsing: true,
		Args:               cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && (args[0] == "-h" || args[0] == "--help") {
				return cmd.Help()
			}
			w := cmd.OutOrStdout()
			value.Each(args, func(arg string, _ int) {
				v := value.ParseToType(arg)
				fmt.Fprintf(w, "%s\t%s\n", value.KindOf(v), formatValue(v))
			})
			return nil
		},
	}
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case float64:
		return value.FormatNumber(x)
	case string:
		return fmt.Sprintf("%q", x)
	default:
		return fmt.Sprint(x)
	}
}

func (c *cli) waitCmd() *cobra.Command {
	var (
		interval time.Duration
		timeout  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "wait FILE SELECTOR",
		Short: "Re-read FILE until SELECTOR matches, then print the match",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			n, err := c.wait(ctx, args[0], args[1], interval)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), dom.OuterHTML(n))
			return err
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", 250*time.Millisecond, "time between reads")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "give up after this long")
	return cmd
}

func (c *cli) wait(ctx context.Context, path, selector string, interval time.Duration) (*html.Node, error) {
	var (
		mu      sync.Mutex
		found   *html.Node
		lastErr error
	)
	done := ammo.Poll(ammo.PollOptions{Interval: interval},
		ammo.WithLogger(c.logger), ammo.WithName("wait"),
	)(ctx, func(resolve func(bool)) {
		// A missing or unreadable file may appear later; keep polling.
		doc, err := c.parseFile(path)
		if err != nil {
			mu.Lock()
			lastErr = err
			mu.Unlock()
			resolve(true)
			return
		}
		n, err := doc.QuerySelector(selector, nil)
		mu.Lock()
		defer mu.Unlock()
		switch {
		case err == nil:
			found = n
			resolve(false)
		case errors.Is(err, dom.ErrNoNode):
			resolve(true)
		default:
			lastErr = err
			found = nil
			resolve(false)
		}
	})
	<-done

	mu.Lock()
	defer mu.Unlock()
	if found != nil {
		return found, nil
	}
	if lastErr != nil && ctx.Err() == nil {
		return nil, lastErr
	}
	if lastErr != nil {
		return nil, fmt.Errorf("%q did not match: %w (last error: %v)", selector, ctx.Err(), lastErr)
	}
	return nil, fmt.Errorf("%q did not match: %w", selector, ctx.Err())
}

func (c *cli) load(cmd *cobra.Command, path string) (*dom.Document, error) {
	if path == "-" {
		return dom.Parse(cmd.InOrStdin(), dom.WithLogger(c.logger))
	}
	return c.parseFile(path)
}

func (c *cli) parseFile(path string) (*dom.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return dom.Parse(f, dom.WithLogger(c.logger))
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
