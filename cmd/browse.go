package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/rogersnm/arcedit/internal/model"
	"github.com/rogersnm/arcedit/internal/store"
	"github.com/spf13/cobra"
)

// Sentinel choices in the archive picker. Archive ids never contain NUL.
const (
	choiceSearch = "\x00search"
	choiceQuit   = "\x00quit"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Search, pick and edit archives interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, f, err := openBackup()
		if err != nil {
			return err
		}
		if cfg != nil {
			s.SetCriteria(store.Criteria{SortByFilename: cfg.SortByFilename})
		}

		out := cmd.OutOrStdout()
		changed := 0
		askCriteria := true
	loop:
		for {
			if askCriteria {
				if err := promptCriteria(s); err != nil {
					break loop
				}
				askCriteria = false
			}

			choice, err := promptArchive(s.Query(s.Criteria()), s.Len())
			if err != nil {
				break loop
			}
			switch choice {
			case choiceSearch:
				askCriteria = true
				continue
			case choiceQuit:
				break loop
			}

			a, ok := s.Select(choice)
			if !ok {
				continue
			}
			form := store.FormValues(a)
			if err := promptFields(&form); err != nil {
				if !errors.Is(err, huh.ErrUserAborted) {
					return err
				}
				continue
			}
			stored, _ := s.Apply(form)
			changed++
			fmt.Fprintf(out, "Updated %s (%s)\n", stored.Filename, stored.ID)
		}

		if changed == 0 {
			fmt.Fprintln(out, "No changes.")
			return nil
		}

		dest := outputPath(cmd, f.Path)
		save := true
		msg := fmt.Sprintf("Save %d change(s) to %s?", changed, dest)
		if err := huh.NewConfirm().Title(msg).Value(&save).Run(); err != nil || !save {
			fmt.Fprintln(out, "Changes discarded.")
			return nil
		}
		if err := writeExport(cmd, s, dest, true); err != nil {
			return err
		}
		if dest != "-" {
			fmt.Fprintf(out, "Saved to %s\n", dest)
		}
		return nil
	},
}

func promptCriteria(s *store.Store) error {
	c := s.Criteria()
	sorted := c.Sorted()
	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Search filenames").Value(&c.SearchText),
		huh.NewConfirm().Title("Only archives without tags?").Value(&c.EmptyTagsOnly),
		huh.NewConfirm().Title("Sort by filename?").Value(&sorted),
		huh.NewConfirm().Title("Fuzzy search?").Value(&c.Fuzzy),
	)).Run()
	if err != nil {
		return err
	}
	c.SortByFilename = &sorted
	s.SetCriteria(c)
	return nil
}

func promptArchive(entries []model.Entry, total int) (string, error) {
	opts := make([]huh.Option[string], 0, len(entries)+2)
	opts = append(opts, huh.NewOption("« change search", choiceSearch))
	for _, e := range entries {
		opts = append(opts, huh.NewOption(e.Filename, e.ID))
	}
	opts = append(opts, huh.NewOption("» done", choiceQuit))

	var choice string
	err := huh.NewSelect[string]().
		Title(fmt.Sprintf("Archives (%d of %d)", len(entries), total)).
		Options(opts...).
		Height(20).
		Value(&choice).
		Run()
	return choice, err
}

func promptFields(f *model.Fields) error {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Filename").Value(&f.Filename),
		huh.NewInput().Title("Title").Value(&f.Title),
		huh.NewText().Title("Tags").Description("One tag per line").Lines(8).Value(&f.Tags),
	)).Run()
}

func init() {
	browseCmd.Flags().StringP("output", "o", "", "export destination (default: backup-new.json next to the backup)")
	rootCmd.AddCommand(browseCmd)
}
