package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	mtp "github.com/modeltoolsprotocol/go-sdk"
	"github.com/rogersnm/arcedit/internal/backup"
	"github.com/rogersnm/arcedit/internal/config"
	"github.com/rogersnm/arcedit/internal/repofile"
	"github.com/rogersnm/arcedit/internal/store"
	"github.com/spf13/cobra"
)

var (
	version    = "dev"
	dataDir    string
	backupFile string
	logLevel   string
	cfg        *config.Config
	logger     *slog.Logger
)

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".arcedit")
	}
	return filepath.Join(home, ".arcedit")
}

var rootCmd = &cobra.Command{
	Use:     "arcedit",
	Short:   "Search, edit and export archive backup files",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}

		var err error
		cfg, err = config.Load(dataDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		level, err := cfg.Level()
		if logLevel != "" {
			level, err = config.ParseLevel(logLevel)
		}
		if err != nil {
			return err
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", defaultDataDir(), "data directory path")
	rootCmd.PersistentFlags().StringVarP(&backupFile, "file", "f", "", "backup file to open")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	mtpOpts := &mtp.DescribeOptions{
		Commands: map[string]*mtp.CommandAnnotation{
			"list": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "Table of archive IDs and filenames followed by a count line",
				},
				Examples: []mtp.Example{
					{Description: "List all archives sorted by filename", Command: "arcedit list --file backup.json"},
					{Description: "Untagged archives whose filename contains 'vol'", Command: "arcedit list -s vol --empty-tags"},
					{Description: "Keep the backup's own order", Command: "arcedit list --sort=false"},
				},
			},
			"show": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "Archive header followed by its tags, or the edit form with --form",
				},
				Examples: []mtp.Example{
					{Description: "Show one archive", Command: "arcedit show 3f2a9c"},
				},
			},
			"edit": {
				Examples: []mtp.Example{
					{Description: "Rename an archive and write backup-new.json", Command: "arcedit edit 3f2a9c --filename \"Book.zip\""},
					{Description: "Replace tags (newlines or commas)", Command: "arcedit edit 3f2a9c --tags \"artist:foo,language:english\""},
					{Description: "Edit all fields in $EDITOR", Command: "arcedit edit 3f2a9c --editor"},
				},
			},
			"export": {
				Stdout: &mtp.IODescriptor{
					ContentType: backup.MediaType,
					Description: "The backup as compact JSON when run with --output -",
				},
				Examples: []mtp.Example{
					{Description: "Re-export the backup next to the original", Command: "arcedit export"},
					{Description: "Print the backup", Command: "arcedit export -o -"},
				},
			},
			"browse": {
				Examples: []mtp.Example{
					{Description: "Search, pick and edit archives interactively", Command: "arcedit browse --file backup.json"},
				},
			},
			"repo init": {
				Examples: []mtp.Example{
					{Description: "Use a backup by default below the current directory", Command: "arcedit repo init backup.json"},
				},
			},
			"config set": {
				Examples: []mtp.Example{
					{Description: "Read ids from the arcid key", Command: "arcedit config set id_key arcid"},
					{Description: "Sort with French collation", Command: "arcedit config set locale fr"},
				},
			},
		},
	}

	mtp.WithDescribe(rootCmd, mtpOpts)
}

func Execute() error {
	return rootCmd.Execute()
}

// resolveBackupFile returns the backup path from the flag, the repo-local
// link file, or the configured default.
func resolveBackupFile() (string, error) {
	if backupFile != "" {
		return backupFile, nil
	}
	if cwd, err := os.Getwd(); err == nil {
		if p, _, _ := repofile.Find(cwd); p != "" {
			return p, nil
		}
	}
	if cfg != nil && cfg.DefaultFile != "" {
		return cfg.DefaultFile, nil
	}
	return "", fmt.Errorf("%w (pass --file, link one with: arcedit repo init <file>, or run: arcedit config set default_file <file>)", backup.ErrNoFileSelected)
}

func newStore() (*store.Store, error) {
	opts := []store.Option{store.WithLogger(logger)}
	if cfg != nil {
		opts = append(opts, store.WithIDKey(cfg.IDKey))
		tag, ok, err := cfg.Tag()
		if err != nil {
			return nil, err
		}
		if ok {
			opts = append(opts, store.WithLocale(tag))
		}
	}
	return store.New(opts...), nil
}

// openBackup reads the resolved backup file into a new store.
func openBackup() (*store.Store, *backup.File, error) {
	path, err := resolveBackupFile()
	if err != nil {
		return nil, nil, err
	}
	f, err := backup.Import(path)
	if err != nil {
		return nil, nil, err
	}
	s, err := newStore()
	if err != nil {
		return nil, nil, err
	}
	if err := s.Load(f.Doc); err != nil {
		return nil, nil, fmt.Errorf("loading %s: %w", path, err)
	}
	logger.Info("loaded backup", "path", path, "archives", s.Len())
	return s, f, nil
}

// outputPath returns the export destination: the --output flag, else the
// configured output name next to the source file.
func outputPath(cmd *cobra.Command, src string) string {
	if o, _ := cmd.Flags().GetString("output"); o != "" {
		return o
	}
	name := ""
	if cfg != nil {
		name = cfg.Output
	}
	return backup.OutputPath(src, name)
}

// writeExport saves the store's document to dest, or prints it when dest is
// "-". Nothing is written when no document is loaded.
func writeExport(cmd *cobra.Command, s *store.Store, dest string, force bool) error {
	data, ok := s.Export()
	if !ok {
		return nil
	}
	if dest == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if !force {
		if _, err := os.Stat(dest); err == nil {
			var confirm bool
			msg := fmt.Sprintf("%s already exists. Overwrite?", dest)
			if err := huh.NewConfirm().Title(msg).Value(&confirm).Run(); err != nil || !confirm {
				return fmt.Errorf("export cancelled")
			}
		}
	}
	if err := backup.Write(dest, data); err != nil {
		return fmt.Errorf("exporting: %w", err)
	}
	logger.Info("exported backup", "path", dest, "bytes", len(data))
	return nil
}
