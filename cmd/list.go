package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/rogersnm/arcedit/internal/markdown"
	"github.com/rogersnm/arcedit/internal/store"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List archives, optionally filtered and sorted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, f, err := openBackup()
		if err != nil {
			return err
		}

		entries := s.Query(criteriaFromFlags(cmd))

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, markdown.RenderArchiveTable(entries))
		fmt.Fprintf(out, "%s of %s archives in %s (%s)\n",
			humanize.Comma(int64(len(entries))),
			humanize.Comma(int64(s.Len())),
			filepath.Base(f.Path),
			humanize.Bytes(uint64(f.Size)),
		)
		return nil
	},
}

func criteriaFromFlags(cmd *cobra.Command) store.Criteria {
	search, _ := cmd.Flags().GetString("search")
	emptyTags, _ := cmd.Flags().GetBool("empty-tags")
	fuzzy, _ := cmd.Flags().GetBool("fuzzy")

	c := store.Criteria{SearchText: search, EmptyTagsOnly: emptyTags, Fuzzy: fuzzy}
	if cmd.Flags().Changed("sort") {
		sorted, _ := cmd.Flags().GetBool("sort")
		c.SortByFilename = &sorted
	} else if cfg != nil {
		c.SortByFilename = cfg.SortByFilename
	}
	return c
}

func init() {
	listCmd.Flags().StringP("search", "s", "", "only filenames containing this text (case-insensitive)")
	listCmd.Flags().Bool("empty-tags", false, "only archives without tags")
	listCmd.Flags().Bool("sort", true, "sort by filename instead of backup order")
	listCmd.Flags().Bool("fuzzy", false, "match --search as a fuzzy subsequence")
	rootCmd.AddCommand(listCmd)
}
