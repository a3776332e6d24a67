package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gabble/internal/config"
	"gabble/internal/feed"
	"gabble/internal/state"
)

var (
	cfgPath string
	verbose bool
	watch   bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "gabble",
	Short: "gabble - a markov-trie chat brain",
	Long: `gabble learns word-sequence statistics from text and generates replies
from them. Training text comes from the line-oriented corpus file, the learn
command, or RSS feeds.

Run without arguments to chat interactively.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		_ = os.MkdirAll(filepath.Dir(cfg.Paths.CorpusPath), 0o755)
		_ = os.MkdirAll(filepath.Dir(cfg.Paths.StatePath), 0o755)
		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat()
	},
}

var learnCmd = &cobra.Command{
	Use:   "learn [files...]",
	Short: "Append training text files to the corpus",
	Long: `Reads each file line by line and appends the lines to the corpus file.
The brain is rebuilt from the corpus the next time it starts.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLearn,
}

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Ingest the configured RSS/Atom feeds",
	Long: `Fetches every configured feed, converts unseen items to plain text,
learns each sentence and appends it to the corpus. With --watch, keeps
polling at the configured interval.`,
	RunE: runFeed,
}

var speakCmd = &cobra.Command{
	Use:   "speak",
	Short: "Print one unprompted utterance and exit",
	RunE:  runSpeak,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", getenv("GABBLE_CONFIG", ""), "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	feedCmd.Flags().BoolVar(&watch, "watch", false, "keep polling instead of a single pass")
	rootCmd.AddCommand(learnCmd, feedCmd, speakCmd)
}

func runLearn(cmd *cobra.Command, args []string) error {
	corpus := state.NewCorpus(cfg.Paths.CorpusPath)
	total := 0
	for _, path := range args {
		n, err := appendFile(corpus, path)
		if err != nil {
			return err
		}
		logger.Info("file appended", zap.String("path", path), zap.Int("lines", n))
		total += n
	}
	fmt.Printf("appended %d lines to %s\n", total, cfg.Paths.CorpusPath)
	return nil
}

func runFeed(cmd *cobra.Command, args []string) error {
	if len(cfg.Feeds.URLs) == 0 {
		return fmt.Errorf("no feeds configured")
	}
	b, _, err := buildBrain()
	if err != nil {
		return err
	}
	db, err := state.Open(cfg.Paths.StatePath)
	if err != nil {
		return err
	}
	defer db.Close()

	in := &feed.Ingester{
		DB:              db,
		Corpus:          state.NewCorpus(cfg.Paths.CorpusPath),
		Brain:           b,
		Log:             logger,
		CorrectSpelling: cfg.Brain.CorrectSpelling,
	}
	if !watch {
		in.IngestAll(cfg.Feeds.URLs)
		return nil
	}
	interval, _ := cfg.FeedInterval()
	stop := in.Start(cfg.Feeds.URLs, interval)
	defer stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	return nil
}

func runSpeak(cmd *cobra.Command, args []string) error {
	b, _, err := buildBrain()
	if err != nil {
		return err
	}
	text, ok := b.GetRandomUtterance(false)
	if !ok {
		return fmt.Errorf("nothing to say yet; feed me a corpus first")
	}
	fmt.Println(text)
	return nil
}

func appendFile(corpus *state.Corpus, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	n := 0
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := corpus.Append(line); err != nil {
			return n, err
		}
		n++
	}
	return n, sc.Err()
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
