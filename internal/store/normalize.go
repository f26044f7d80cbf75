package store

import (
	"regexp"
	"strings"

	"github.com/rogersnm/arcedit/internal/model"
)

var newlineRun = regexp.MustCompile(`(\r?\n)+`)

// Normalize turns raw form input into stored values: line breaks are dropped
// from filename and title, and each run of line breaks in tags becomes a
// single comma.
func Normalize(f model.Fields) model.Fields {
	return model.Fields{
		Filename: newlineRun.ReplaceAllString(f.Filename, ""),
		Title:    newlineRun.ReplaceAllString(f.Title, ""),
		Tags:     newlineRun.ReplaceAllString(f.Tags, ","),
	}
}

// FormValues prepares a stored archive for the edit form, one tag per line.
// A tag that itself contains a comma does not survive the round trip.
func FormValues(a model.Archive) model.Fields {
	return model.Fields{
		Filename: a.Filename,
		Title:    a.Title,
		Tags:     strings.ReplaceAll(a.Tags, ",", "\n"),
	}
}
