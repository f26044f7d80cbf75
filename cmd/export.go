package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the backup as compact JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, f, err := openBackup()
		if err != nil {
			return err
		}
		dest := outputPath(cmd, f.Path)
		force, _ := cmd.Flags().GetBool("force")
		if err := writeExport(cmd, s, dest, force); err != nil {
			return err
		}
		if dest != "-" {
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d archives to %s\n", s.Len(), dest)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "destination (default: backup-new.json next to the backup, - for stdout)")
	exportCmd.Flags().Bool("force", false, "overwrite the destination without asking")
	rootCmd.AddCommand(exportCmd)
}
