package model

import "fmt"

// Archive is the editable view of one record in a backup's archives list.
type Archive struct {
	ID       string
	Filename string
	Title    string
	Tags     string
}

func (a *Archive) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("archive id is required")
	}
	if a.Filename == "" {
		return fmt.Errorf("archive filename is required")
	}
	return nil
}

// Entry is one row of a filtered archive list.
type Entry struct {
	ID       string
	Filename string
}

// Fields holds the raw values of the edit form.
type Fields struct {
	Filename string
	Title    string
	Tags     string
}
