package store

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/rogersnm/arcedit/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultIDKey is the JSON key holding an archive's primary key.
const DefaultIDKey = "id"

// ErrFormat is returned by Load when the document has no archives list.
var ErrFormat = errors.New("incorrect json format")

// Store holds one loaded backup document, the current selection and the
// list criteria last set by the caller. It is not safe for concurrent use.
type Store struct {
	doc      *model.Node
	archives *model.Node
	current  string
	criteria Criteria

	idKey    string
	log      *slog.Logger
	fold     cases.Caser
	collator *collate.Collator
}

type Option func(*Store)

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithIDKey reads archive ids from key instead of DefaultIDKey.
func WithIDKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.idKey = key
		}
	}
}

// WithLocale sorts filenames with a case-insensitive collator for tag.
func WithLocale(tag language.Tag) Option {
	return func(s *Store) {
		s.collator = collate.New(tag, collate.IgnoreCase)
	}
}

func New(opts ...Option) *Store {
	s := &Store{
		idKey: DefaultIDKey,
		log:   slog.Default(),
		fold:  cases.Fold(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load replaces the held document. On failure the previous document,
// selection and criteria stay as they were.
func (s *Store) Load(doc *model.Node) error {
	if doc == nil || doc.Kind != model.Object {
		return fmt.Errorf("%w: document is not an object", ErrFormat)
	}
	archives := doc.Get("archives")
	if archives == nil || archives.Kind != model.Array {
		return fmt.Errorf("%w: missing archives list", ErrFormat)
	}
	s.doc = doc
	s.archives = archives
	s.current = ""
	s.criteria = Criteria{}
	return nil
}

func (s *Store) Loaded() bool {
	return s.doc != nil
}

// Len returns the number of records in the archives list, valid or not.
func (s *Store) Len() int {
	if s.archives == nil {
		return 0
	}
	return len(s.archives.Items)
}

func (s *Store) Criteria() Criteria {
	return s.criteria
}

func (s *Store) SetCriteria(c Criteria) {
	s.criteria = c
}

// Select makes the archive with the given id current and returns it. An empty
// or unknown id leaves the selection unchanged.
func (s *Store) Select(id string) (model.Archive, bool) {
	if id == "" {
		return model.Archive{}, false
	}
	rec := s.lookup(id)
	if rec == nil {
		return model.Archive{}, false
	}
	s.current = id
	return s.archive(rec), true
}

// Current returns the selected archive, if it still resolves.
func (s *Store) Current() (model.Archive, bool) {
	rec := s.lookup(s.current)
	if rec == nil {
		return model.Archive{}, false
	}
	return s.archive(rec), true
}

// Apply normalizes f and writes it onto the selected archive. Without a
// selection it does nothing.
func (s *Store) Apply(f model.Fields) (model.Archive, bool) {
	rec := s.lookup(s.current)
	if rec == nil {
		return model.Archive{}, false
	}
	f = Normalize(f)
	rec.Set("filename", model.NewString(f.Filename))
	rec.Set("title", model.NewString(f.Title))
	rec.Set("tags", model.NewString(f.Tags))
	return s.archive(rec), true
}

// Export serializes the document with all applied edits. It reports false
// when nothing is loaded.
func (s *Store) Export() ([]byte, bool) {
	if s.doc == nil {
		return nil, false
	}
	return s.doc.Marshal(), true
}

func (s *Store) lookup(id string) *model.Node {
	if id == "" || s.archives == nil {
		return nil
	}
	for _, rec := range s.archives.Items {
		if v, ok := rec.Get(s.idKey).Text(); ok && v == id {
			return rec
		}
	}
	return nil
}

func (s *Store) archive(rec *model.Node) model.Archive {
	id, _ := rec.Get(s.idKey).Text()
	filename, _ := rec.Get("filename").Text()
	title, _ := rec.Get("title").Text()
	tags, _ := rec.Get("tags").Text()
	return model.Archive{ID: id, Filename: filename, Title: title, Tags: tags}
}
