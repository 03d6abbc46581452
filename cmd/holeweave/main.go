// Command holeweave infers missing type annotations in a source file by
// decomposing it into a tree of code blocks, completing each one
// bottom-up against a completion engine, and weaving the results back
// together.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oxhq/holeweave/cache"
	"github.com/oxhq/holeweave/completion"
	"github.com/oxhq/holeweave/db"
	"github.com/oxhq/holeweave/engine"
	"github.com/oxhq/holeweave/hparams"
	"github.com/oxhq/holeweave/internal/config"
	"github.com/oxhq/holeweave/internal/goanalyzer"
	"github.com/oxhq/holeweave/internal/logx"
	"github.com/oxhq/holeweave/langserver"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
)

func main() {
	root := &cobra.Command{
		Use:   "holeweave",
		Short: "Infer missing type annotations in source files",
	}

	root.AddCommand(inferCmd(), cacheStatsCmd(), serveGoAnalyzerCmd())

	if err := root.Execute(); err != nil {
		fmt.Printf("%s %v\n", red("Error:"), err)
		os.Exit(1)
	}
}

func inferCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "infer <file>",
		Short: "Complete every missing type annotation in a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// config.Load owns its own FlagSet and resolves env/.env/default
			// values only; CLI overrides are read back from cmd's own flags
			// below, since cobra has already parsed those by the time RunE
			// runs and registering more flags on fs here would be too late
			// for cobra's pre-RunE parse to see them.
			cfg, err := config.Load(pflag.NewFlagSet("holeweave", pflag.ContinueOnError), nil)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("num-comps") {
				cfg.NumComps, _ = cmd.Flags().GetInt("num-comps")
			}
			if cmd.Flags().Changed("retries") {
				cfg.Retries, _ = cmd.Flags().GetInt("retries")
			}
			if cmd.Flags().Changed("stop-at") {
				cfg.StopAt, _ = cmd.Flags().GetInt("stop-at")
			}
			if cmd.Flags().Changed("completion-endpoint") {
				cfg.CompletionEndpoint, _ = cmd.Flags().GetString("completion-endpoint")
			}
			if cmd.Flags().Changed("debug") {
				cfg.Debug, _ = cmd.Flags().GetBool("debug")
			}
			return runInfer(cmd.Context(), cfg, args[0])
		},
	}
	cmd.Flags().Int("num-comps", 0, "override: candidates requested per completion query")
	cmd.Flags().Int("retries", 0, "override: retry budget per prompt")
	cmd.Flags().Int("stop-at", 0, "override: candidate variants retained per node")
	cmd.Flags().String("completion-endpoint", "", "override: completion engine HTTP endpoint")
	cmd.Flags().BoolP("debug", "v", false, "override: enable debug logging")
	return cmd
}

func runInfer(ctx context.Context, cfg *config.Config, path string) error {
	log := logx.New(cfg.Debug, os.Stderr)

	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	facade := langserver.Facade(goanalyzer.New())

	gormDB, err := db.Connect(cfg.DatabaseURL, cfg.Debug)
	if err != nil {
		return fmt.Errorf("connect cache db: %w", err)
	}
	qcache := cache.NewGORMCache(gormDB)

	eng := completion.NewHTTPEngine(cfg.CompletionEndpoint)

	blockTree, err := facade.ToTree(string(source))
	if err != nil {
		return fmt.Errorf("decompose %s: %w", path, err)
	}

	hp := hparams.Default()
	hp.NumComps = cfg.NumComps
	hp.Retries = cfg.Retries
	hp.StopAt = cfg.StopAt
	hp.Fallback = cfg.Fallback
	hp.Usages = cfg.Usages
	hp.Stub = cfg.Stub

	stats := engine.NewStats()
	prepared, err := engine.NewPipeline(blockTree).Prepare(facade, hp, stats)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}

	completed, err := prepared.TreeComplete(ctx, eng, qcache, facade, log)
	if err != nil {
		return fmt.Errorf("complete: %w", err)
	}

	fmt.Println(completed.Disassemble())

	numNodes, _, _ := stats.Snapshot()
	fmt.Fprintf(os.Stderr, "%s completed %d nodes\n", green("done:"), numNodes)
	return nil
}

func cacheStatsCmd() *cobra.Command {
	var dbURL string
	cmd := &cobra.Command{
		Use:   "cache-stats",
		Short: "Show query cache row count",
		RunE: func(cmd *cobra.Command, args []string) error {
			gormDB, err := db.Connect(dbURL, false)
			if err != nil {
				return err
			}
			var count int64
			if err := gormDB.Table("cached_queries").Count(&count).Error; err != nil {
				return err
			}
			fmt.Printf("cached queries: %d\n", count)
			return nil
		},
	}
	cmd.Flags().StringVar(&dbURL, "db", "holeweave.db", "query cache database DSN")
	return cmd
}

func serveGoAnalyzerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve-goanalyzer",
		Short: "Serve the reference Go analyzer over stdin/stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := langserver.NewServer(goanalyzer.New())
			return srv.Serve(os.Stdin, os.Stdout)
		},
	}
}
