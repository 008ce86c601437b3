package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/kdimtricp/auteur/internal/config"
	"github.com/kdimtricp/auteur/internal/logging"
)

var (
	blue   = color.New(color.FgBlue).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

type cli struct {
	cfg       *config.Config
	questions int
	options   int
	count     int
	poolPath  string
	verbose   bool
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, red("error: "+err.Error()))
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "quiz",
		Short: "🎬 Find your next film from a few questions about taste",
		Long: fmt.Sprintf(`%s

Answers build a preference profile that is scored against TMDb's top rated
movies, or against a local pool file.

%s
  quiz play                        # Interactive quiz against TMDb
  quiz play --pool movies.json     # Offline, score a saved pool
  quiz questions -n 3              # Print a question set as JSON`,
			bold("auteur quiz"), bold("Examples:")),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logCfg := cfg.Logging.LoggerConfig()
			logCfg.Format = "console"
			if c.verbose {
				logCfg.Level = "debug"
			} else {
				logCfg.Level = "warn"
			}
			logging.Init(logCfg)
			c.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Debug logging")
	root.PersistentFlags().IntVarP(&c.questions, "questions", "n", 0, "Number of questions (default from config)")
	root.PersistentFlags().IntVarP(&c.options, "options", "o", 0, "Options per question (default from config)")

	play := &cobra.Command{
		Use:   "play",
		Short: "Take the quiz and get recommendations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.play(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	play.Flags().IntVarP(&c.count, "count", "c", 0, "Number of recommendations (default from config)")
	play.Flags().StringVarP(&c.poolPath, "pool", "p", "", "JSON file with a movie array to score instead of TMDb")

	questions := &cobra.Command{
		Use:   "questions",
		Short: "Print a generated question set as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.printQuestions(cmd.OutOrStdout())
		},
	}

	root.AddCommand(play, questions)
	return root
}
