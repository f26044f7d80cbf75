package cmd

import (
	"fmt"

	"github.com/rogersnm/arcedit/internal/markdown"
	"github.com/rogersnm/arcedit/internal/store"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show an archive's fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openBackup()
		if err != nil {
			return err
		}
		a, ok := s.Select(args[0])
		if !ok {
			return fmt.Errorf("archive %s not found", args[0])
		}

		out := cmd.OutOrStdout()
		if form, _ := cmd.Flags().GetBool("form"); form {
			data, err := markdown.EncodeForm(store.FormValues(a))
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		}

		fmt.Fprint(out, markdown.RenderArchive(a))
		if md := markdown.TagsMarkdown(a.Tags); md != "" {
			rendered, err := markdown.RenderMarkdown(md)
			if err != nil {
				return err
			}
			fmt.Fprint(out, rendered)
		}
		return nil
	},
}

func init() {
	showCmd.Flags().Bool("form", false, "print the edit form instead")
	rootCmd.AddCommand(showCmd)
}
