package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rogersnm/arcedit/internal/backup"
	"github.com/rogersnm/arcedit/internal/repofile"
	"github.com/spf13/cobra"
)

var repoCmd = &cobra.Command{
	Use:   "repo",
	Short: "Manage the directory-local default backup file",
}

var repoInitCmd = &cobra.Command{
	Use:   "init <file>",
	Short: "Use a backup file by default in the current directory and below",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		target := args[0]
		check := target
		if !filepath.IsAbs(check) {
			check = filepath.Join(cwd, check)
		}
		if _, err := backup.Import(check); err != nil {
			return err
		}
		if err := repofile.Write(cwd, target); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Linked %s to %s\n", repofile.FileName, target)
		return nil
	},
}

var repoShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the directory-local backup link",
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		path, dir, err := repofile.Find(cwd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if path == "" {
			fmt.Fprintln(out, "No backup linked. Run: arcedit repo init <file>")
			return nil
		}
		fmt.Fprintf(out, "%s (from %s)\n", path, filepath.Join(dir, repofile.FileName))
		return nil
	},
}

var repoUnlinkCmd = &cobra.Command{
	Use:   "unlink",
	Short: "Remove the directory-local backup link",
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		if err := repofile.Remove(cwd); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Unlinked backup.")
		return nil
	},
}

func init() {
	repoCmd.AddCommand(repoInitCmd)
	repoCmd.AddCommand(repoShowCmd)
	repoCmd.AddCommand(repoUnlinkCmd)
	rootCmd.AddCommand(repoCmd)
}
