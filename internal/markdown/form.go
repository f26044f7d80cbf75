package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/rogersnm/arcedit/internal/model"
	"gopkg.in/yaml.v3"
)

type formMeta struct {
	Filename string `yaml:"filename"`
	Title    string `yaml:"title"`
}

// EncodeForm renders edit form values as YAML frontmatter holding filename
// and title, followed by the tags one per line.
func EncodeForm(f model.Fields) ([]byte, error) {
	yamlBytes, err := yaml.Marshal(formMeta{Filename: f.Filename, Title: f.Title})
	if err != nil {
		return nil, fmt.Errorf("marshaling form: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(yamlBytes)
	buf.WriteString("---\n")
	if f.Tags != "" {
		buf.WriteString("\n")
		buf.WriteString(f.Tags)
		if !strings.HasSuffix(f.Tags, "\n") {
			buf.WriteString("\n")
		}
	}
	return buf.Bytes(), nil
}

// DecodeForm reads a form written by EncodeForm. The tags keep their line
// breaks; storing them is the store's job.
func DecodeForm(r io.Reader) (model.Fields, error) {
	var meta formMeta
	body, err := frontmatter.MustParse(r, &meta)
	if err != nil {
		if errors.Is(err, frontmatter.ErrNotFound) {
			return model.Fields{}, fmt.Errorf("form header is missing")
		}
		return model.Fields{}, fmt.Errorf("parsing form: %w", err)
	}
	return model.Fields{
		Filename: meta.Filename,
		Title:    meta.Title,
		Tags:     strings.TrimSpace(string(body)),
	}, nil
}
