package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/deusflow/noticias/internal/app"
	"github.com/deusflow/noticias/internal/config"
	"github.com/deusflow/noticias/internal/logger"
)

// flagValues hold command line overrides. Empty or zero values leave the
// environment settings alone.
type flagValues struct {
	catalogPath string
	postsDir    string
	seenFile    string
	maxPosts    int
	debug       bool
}

func (f *flagValues) load() (*config.Config, *config.Catalog, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if f.catalogPath != "" {
		cfg.FeedsConfigPath = f.catalogPath
	}
	if f.postsDir != "" {
		cfg.PostsDir = f.postsDir
	}
	if f.seenFile != "" {
		cfg.SeenFilePath = f.seenFile
	}
	if f.maxPosts != 0 {
		cfg.MaxPostsPerRun = f.maxPosts
	}
	if f.debug {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log := logger.Init(cfg.Debug)

	catalog, err := config.LoadCatalog(cfg.FeedsConfigPath)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, catalog, log, nil
}

func newRootCommand() *cobra.Command {
	flags := &flagValues{}
	var requireOutput bool

	rootCmd := &cobra.Command{
		Use:           "noticias",
		Short:         "Publish Spanish developer news from RSS feeds as MDX posts",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, catalog, log, err := flags.load()
			if err != nil {
				return err
			}

			lock, err := acquireRunLock(cfg.LockPath())
			if err != nil {
				return err
			}
			defer lock.Unlock() //nolint:errcheck

			pipeline, release, err := app.Build(cmd.Context(), cfg, catalog, log)
			if err != nil {
				return err
			}
			defer release()

			result, err := pipeline.Run(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d new posts written\n", result.Written)
			if requireOutput && !result.Success() {
				return &exitError{code: 2}
			}
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.catalogPath, "config", "c", "", "Feed catalog YAML path (overrides FEEDS_CONFIG_PATH)")
	pf.StringVar(&flags.postsDir, "posts-dir", "", "Output directory for posts (overrides NEWS_POSTS_DIR)")
	pf.StringVar(&flags.seenFile, "seen-file", "", "Seen set JSON file (overrides NEWS_SEEN_FILE)")
	pf.IntVar(&flags.maxPosts, "max-posts", 0, "Posts written per run at most (overrides MAX_POSTS_PER_RUN)")
	pf.BoolVar(&flags.debug, "debug", false, "Enable debug logging")
	rootCmd.Flags().BoolVar(&requireOutput, "require-output", false, "Exit with status 2 when no post was written")

	rootCmd.AddCommand(newPreviewCommand(flags))
	rootCmd.AddCommand(newSeenCommand(flags))

	return rootCmd
}

// acquireRunLock takes the advisory lock that keeps two runs from sharing
// the seen set and the posts directory.
func acquireRunLock(path string) (*flock.Flock, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create lock directory: %w", err)
		}
	}

	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, errors.New("another noticias run is already in progress")
	}
	return lock, nil
}
