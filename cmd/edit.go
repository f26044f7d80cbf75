package cmd

import (
	"bytes"
	"fmt"

	"github.com/rogersnm/arcedit/internal/editor"
	"github.com/rogersnm/arcedit/internal/markdown"
	"github.com/rogersnm/arcedit/internal/model"
	"github.com/rogersnm/arcedit/internal/store"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change an archive's filename, title or tags and export the backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		useEditor, _ := cmd.Flags().GetBool("editor")
		if !useEditor && !anyChanged(cmd, "filename", "title", "tags") {
			return fmt.Errorf("nothing to change: pass --filename, --title, --tags or --editor")
		}

		s, f, err := openBackup()
		if err != nil {
			return err
		}
		a, ok := s.Select(args[0])
		if !ok {
			return fmt.Errorf("archive %s not found", args[0])
		}

		form := store.FormValues(a)
		if cmd.Flags().Changed("filename") {
			form.Filename, _ = cmd.Flags().GetString("filename")
		}
		if cmd.Flags().Changed("title") {
			form.Title, _ = cmd.Flags().GetString("title")
		}
		if cmd.Flags().Changed("tags") {
			form.Tags, _ = cmd.Flags().GetString("tags")
		}
		if useEditor {
			form, err = editForm(form)
			if err != nil {
				return err
			}
		}

		stored, ok := s.Apply(form)
		if !ok {
			return fmt.Errorf("archive %s not found", args[0])
		}

		dest := outputPath(cmd, f.Path)
		force, _ := cmd.Flags().GetBool("force")
		if err := writeExport(cmd, s, dest, force); err != nil {
			return err
		}
		if dest != "-" {
			fmt.Fprintf(cmd.OutOrStdout(), "Updated archive %s (%s), saved to %s\n", stored.Filename, stored.ID, dest)
		}
		return nil
	},
}

func editForm(form model.Fields) (model.Fields, error) {
	data, err := markdown.EncodeForm(form)
	if err != nil {
		return form, err
	}
	edited, err := editor.Edit(data, "arcedit-*.md")
	if err != nil {
		return form, err
	}
	return markdown.DecodeForm(bytes.NewReader(edited))
}

func anyChanged(cmd *cobra.Command, names ...string) bool {
	for _, n := range names {
		if cmd.Flags().Changed(n) {
			return true
		}
	}
	return false
}

func init() {
	editCmd.Flags().String("filename", "", "new filename (line breaks are removed)")
	editCmd.Flags().String("title", "", "new title (line breaks are removed)")
	editCmd.Flags().String("tags", "", "new tags, comma or newline separated")
	editCmd.Flags().BoolP("editor", "e", false, "edit the form in $EDITOR")
	editCmd.Flags().StringP("output", "o", "", "export destination (default: backup-new.json next to the backup, - for stdout)")
	editCmd.Flags().Bool("force", false, "overwrite the destination without asking")
	rootCmd.AddCommand(editCmd)
}
