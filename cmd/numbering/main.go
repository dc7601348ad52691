package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/coolbeans/numbering/pkg/numbering"
	"github.com/coolbeans/numbering/pkg/outline"
	"github.com/coolbeans/numbering/pkg/profile"
	"github.com/coolbeans/numbering/pkg/server"
	"github.com/coolbeans/numbering/pkg/token"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "numbering",
		Short: "Structural numbering recognizer",
		Long: `Numbering recognizes and orders the structural numbers of legal and
postal text: "5.2.1", "IV", "а)", "(б)", "12-3", "1.2.a".

It can:
  - Parse numbers with all of their readings (digit, Roman, letter)
  - Compare two numbers and rank the interpretation
  - Extract a document outline and report gaps and out-of-order items
  - Serve the same operations over HTTP`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			setupLogger(cmd.ErrOrStderr(), verbose)
		},
	}

	rootCmd.PersistentFlags().String("profile-dir", "", "Directory of YAML calibration profiles")
	rootCmd.PersistentFlags().StringP("profile", "p", profile.DefaultName, "Calibration profile to use")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(parseCmd())
	rootCmd.AddCommand(compareCmd())
	rootCmd.AddCommand(outlineCmd())
	rootCmd.AddCommand(profilesCmd())
	rootCmd.AddCommand(serveCmd())
	return rootCmd
}

func setupLogger(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func parseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [text]",
		Short: "Find structural numbers at line starts",
		Long: `Parse the structural numbers that open the lines of a text and print
every reading of every level.

Text is taken from the arguments, --file, or standard input.

Example:
  numbering parse "5.2.1. Общие положения"
  numbering parse --file contract.txt --disambiguate
  numbering parse --force "9(2)" --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			force, _ := cmd.Flags().GetBool("force")
			disambiguate, _ := cmd.Flags().GetBool("disambiguate")
			asJSON, _ := cmd.Flags().GetBool("json")

			rec, err := loadRecognizer(cmd)
			if err != nil {
				return err
			}
			text, err := readInput(cmd, args, file)
			if err != nil {
				return err
			}

			ts := token.Tokenize(text)
			found := outline.Scan(ts, rec, force)
			if disambiguate {
				pruned := rec.Disambiguate(found)
				slog.Debug("disambiguated", "numbers", len(found), "pruned", pruned)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, found)
			}
			if len(found) == 0 {
				fmt.Fprintln(out, "No structural numbers found.")
				return nil
			}
			for _, n := range found {
				fmt.Fprintf(out, "%4d  %-12s %-10s %s\n", ts[n.BeginToken()].Line+1, n.String(), n.NormalizedText(), readings(n))
			}
			return nil
		},
	}

	cmd.Flags().StringP("file", "f", "", "Read text from a file")
	cmd.Flags().Bool("force", false, "Accept bare letters, spelled numerals and bracket continuation")
	cmd.Flags().Bool("disambiguate", false, "Prune readings using the whole run")
	cmd.Flags().Bool("json", false, "Output JSON")
	return cmd
}

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <left> <right>",
		Short: "Compare two structural numbers",
		Long: `Compare two structural numbers and report whether the right one
follows, precedes or equals the left one, with the confidence of the
chosen interpretation.

Example:
  numbering compare 5 5.1
  numbering compare "а)" "б)"
  numbering compare 5.1.3 5.2.1 --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")

			rec, err := loadRecognizer(cmd)
			if err != nil {
				return err
			}
			left, err := outline.ParseNumber(args[0], rec)
			if err != nil {
				return err
			}
			right, err := outline.ParseNumber(args[1], rec)
			if err != nil {
				return err
			}

			o := rec.CompareComposites(left, right)
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, o)
			}
			fmt.Fprintf(out, "%s %s %s\n", left.NormalizedText(), symbol(o.Relation), right.NormalizedText())
			fmt.Fprintf(out, "  relation:   %s\n", o.Relation)
			fmt.Fprintf(out, "  rank:       %.4f\n", o.Rank)
			fmt.Fprintf(out, "  delta:      %d\n", o.Delta)
			if o.CanFollow {
				fmt.Fprintln(out, "  sub-item:   right is the first sub-item of left")
			}
			return nil
		},
	}

	cmd.Flags().Bool("json", false, "Output JSON")
	return cmd
}

func outlineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outline [text]",
		Short: "Extract a document outline and check its order",
		Long: `Extract the numbered lines of a document, disambiguate them and
classify every item against its predecessor: first, next, child, up,
gap, out_of_order or unrelated.

Example:
  numbering outline --file contract.txt
  numbering outline --file contract.txt --issues --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			asJSON, _ := cmd.Flags().GetBool("json")
			issuesOnly, _ := cmd.Flags().GetBool("issues")
			strict, _ := cmd.Flags().GetBool("strict")

			rec, err := loadRecognizer(cmd)
			if err != nil {
				return err
			}
			text, err := readInput(cmd, args, file)
			if err != nil {
				return err
			}

			o := outline.Extract(text, rec)
			items := o.Items
			if issuesOnly {
				items = o.Issues()
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if err := writeJSON(out, items); err != nil {
					return err
				}
			} else {
				for _, it := range items {
					indent := strings.Repeat("  ", it.Depth-1)
					fmt.Fprintf(out, "%4d  %s%-12s %s\n", it.Line, indent, it.Raw, it.Kind)
				}
				fmt.Fprintf(out, "\n%d items, %d issues, %d readings pruned\n", len(o.Items), len(o.Issues()), o.Pruned)
			}

			if strict && len(o.Issues()) > 0 {
				return fmt.Errorf("outline has %d issues", len(o.Issues()))
			}
			return nil
		},
	}

	cmd.Flags().StringP("file", "f", "", "Read text from a file")
	cmd.Flags().Bool("issues", false, "Only print items that break the order")
	cmd.Flags().Bool("strict", false, "Exit with an error when issues are found")
	cmd.Flags().Bool("json", false, "Output JSON")
	return cmd
}

func profilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List calibration profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")

			reg, err := loadRegistry(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, reg.List())
			}
			for _, p := range reg.List() {
				fmt.Fprintf(out, "%-20s %-8s %s\n", p.Name, p.Version, p.Description)
			}
			return nil
		},
	}

	cmd.Flags().Bool("json", false, "Output JSON")
	return cmd
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve parse, compare and outline over HTTP.

Endpoints:
  GET  /healthz
  GET  /v1/profiles
  POST /v1/parse     {"text": "...", "force": false, "disambiguate": true}
  POST /v1/compare   {"left": "5", "right": "5.1"}
  POST /v1/outline   {"text": "..."}

Example:
  numbering serve --addr :8080 --profile-dir profiles --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := server.DefaultConfig()
			cfg.Addr, _ = cmd.Flags().GetString("addr")
			cfg.RatePerSecond, _ = cmd.Flags().GetFloat64("rate")
			cfg.Burst, _ = cmd.Flags().GetInt("burst")
			watch, _ := cmd.Flags().GetBool("watch")

			reg, err := loadRegistry(cmd)
			if err != nil {
				return err
			}
			if watch {
				if err := reg.Watch(); err != nil {
					return fmt.Errorf("watching profiles: %w", err)
				}
				defer reg.StopWatch()
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.New(cfg, reg, slog.Default()).Run(ctx)
		},
	}

	cmd.Flags().String("addr", ":8080", "Listen address")
	cmd.Flags().Float64("rate", 50, "Requests per second (0 disables limiting)")
	cmd.Flags().Int("burst", 100, "Request burst size")
	cmd.Flags().Bool("watch", false, "Reload profiles when the profile directory changes")
	return cmd
}

func loadRegistry(cmd *cobra.Command) (*profile.DefaultRegistry, error) {
	dir, _ := cmd.Flags().GetString("profile-dir")
	if dir == "" {
		return profile.NewRegistry(), nil
	}
	reg, err := profile.NewRegistryWithDirectory(dir)
	if err != nil {
		return nil, fmt.Errorf("loading profiles: %w", err)
	}
	reg.SetLogger(slog.Default())
	return reg, nil
}

func loadRecognizer(cmd *cobra.Command) (*numbering.Recognizer, error) {
	reg, err := loadRegistry(cmd)
	if err != nil {
		return nil, err
	}
	name, _ := cmd.Flags().GetString("profile")
	return reg.Recognizer(name)
}

func readInput(cmd *cobra.Command, args []string, file string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", file, err)
		}
		return string(data), nil
	}
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

func readings(n *numbering.Composite) string {
	parts := make([]string, len(n.Levels))
	for i := range n.Levels {
		cands := make([]string, len(n.Levels[i].Candidates))
		for j, c := range n.Levels[i].Candidates {
			cands[j] = fmt.Sprintf("%s:%s", c.Kind, c)
		}
		parts[i] = "[" + strings.Join(cands, " ") + "]"
	}
	return strings.Join(parts, " ")
}

func symbol(r numbering.Relation) string {
	switch r {
	case numbering.Less:
		return "<"
	case numbering.Greater:
		return ">"
	case numbering.Equal:
		return "="
	default:
		return "?"
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}
