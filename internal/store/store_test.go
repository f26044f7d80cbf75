package store

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/rogersnm/arcedit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

const sampleDoc = `{"version":3,"archives":[` +
	`{"id":"1","filename":"Alpha","title":"First","tags":""},` +
	`{"id":"2","filename":"beta","title":"Second","tags":"x"},` +
	`{"id":"3","filename":"gamma","tags":""}` +
	`],"categories":[{"name":"c"}]}`

func newTestStore(t *testing.T, doc string, opts ...Option) *Store {
	t.Helper()
	s := New(opts...)
	require.NoError(t, s.Load(parse(t, doc)))
	return s
}

func parse(t *testing.T, doc string) *model.Node {
	t.Helper()
	n, err := model.Parse([]byte(doc))
	require.NoError(t, err)
	return n
}

func ids(entries []model.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func boolPtr(b bool) *bool { return &b }

// --- Load ---

func TestLoad_MissingArchives(t *testing.T) {
	s := New()
	err := s.Load(parse(t, `{}`))
	assert.ErrorIs(t, err, ErrFormat)
	assert.False(t, s.Loaded())
}

func TestLoad_ArchivesNotArray(t *testing.T) {
	s := New()
	assert.ErrorIs(t, s.Load(parse(t, `{"archives":{"id":"1"}}`)), ErrFormat)
	assert.ErrorIs(t, s.Load(parse(t, `{"archives":null}`)), ErrFormat)
	assert.ErrorIs(t, s.Load(parse(t, `[1,2]`)), ErrFormat)
	assert.ErrorIs(t, s.Load(nil), ErrFormat)
}

func TestLoad_FailureKeepsState(t *testing.T) {
	s := newTestStore(t, sampleDoc)
	_, ok := s.Select("2")
	require.True(t, ok)
	s.SetCriteria(Criteria{SearchText: "a"})
	before := s.Query(Criteria{})

	err := s.Load(parse(t, `{}`))
	require.ErrorIs(t, err, ErrFormat)

	assert.Equal(t, before, s.Query(Criteria{}))
	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "2", cur.ID)
	assert.Equal(t, "a", s.Criteria().SearchText)
}

func TestLoad_ResetsSelectionAndCriteria(t *testing.T) {
	s := newTestStore(t, sampleDoc)
	s.Select("1")
	s.SetCriteria(Criteria{SearchText: "x", EmptyTagsOnly: true})

	require.NoError(t, s.Load(parse(t, sampleDoc)))

	_, ok := s.Current()
	assert.False(t, ok)
	assert.Equal(t, Criteria{}, s.Criteria())
}

func TestLoad_EmptyArchives(t *testing.T) {
	s := newTestStore(t, `{"archives":[]}`)
	assert.True(t, s.Loaded())
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Query(Criteria{}))
}

// --- Query ---

func TestQuery_NothingLoaded(t *testing.T) {
	assert.Empty(t, New().Query(Criteria{}))
}

func TestQuery_FilterConjunction(t *testing.T) {
	s := newTestStore(t, sampleDoc)
	got := s.Query(Criteria{EmptyTagsOnly: true, SearchText: "a"})
	assert.Equal(t, []string{"1", "3"}, ids(got))
}

func TestQuery_CaseInsensitiveSearch(t *testing.T) {
	s := newTestStore(t, `{"archives":[{"id":"1","filename":"alpha_2024"},{"id":"2","filename":"other"}]}`)
	got := s.Query(Criteria{SearchText: "ALPHA"})
	require.Len(t, got, 1)
	assert.Equal(t, model.Entry{ID: "1", Filename: "alpha_2024"}, got[0])
}

func TestQuery_SortedByDefault(t *testing.T) {
	s := newTestStore(t, `{"archives":[{"id":"1","filename":"charlie"},{"id":"2","filename":"Bravo"},{"id":"3","filename":"alpha"}]}`)
	assert.Equal(t, []string{"3", "2", "1"}, ids(s.Query(Criteria{})))
}

func TestQuery_UnsortedKeepsDocumentOrder(t *testing.T) {
	s := newTestStore(t, `{"archives":[{"id":"1","filename":"charlie"},{"id":"2","filename":"Bravo"},{"id":"3","filename":"alpha"}]}`)
	got := s.Query(Criteria{SortByFilename: boolPtr(false)})
	assert.Equal(t, []string{"1", "2", "3"}, ids(got))
}

func TestQuery_StableSort(t *testing.T) {
	s := newTestStore(t, `{"archives":[{"id":"docB","filename":"Doc"},{"id":"docA","filename":"doc"},{"id":"z","filename":"a"}]}`)
	got := s.Query(Criteria{SortByFilename: boolPtr(true)})
	assert.Equal(t, []string{"z", "docB", "docA"}, ids(got))
}

func TestQuery_LocaleCollation(t *testing.T) {
	s := newTestStore(t,
		`{"archives":[{"id":"1","filename":"Zebra"},{"id":"2","filename":"éclair"},{"id":"3","filename":"apple"}]}`,
		WithLocale(language.French))
	assert.Equal(t, []string{"3", "2", "1"}, ids(s.Query(Criteria{})))
}

func TestQuery_Fuzzy(t *testing.T) {
	s := newTestStore(t, `{"archives":[{"id":"1","filename":"my_great_book.zip"},{"id":"2","filename":"other.zip"}]}`)

	assert.Empty(t, s.Query(Criteria{SearchText: "mgb"}))
	assert.Equal(t, []string{"1"}, ids(s.Query(Criteria{SearchText: "mgb", Fuzzy: true})))
}

func TestQuery_InvalidRecordSkippedWithWarning(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	s := newTestStore(t,
		`{"archives":[{"id":"1","filename":"ok"},{"id":"2"},{"filename":"no-id"},"junk",{"id":7,"filename":"numeric"}]}`,
		WithLogger(logger))

	got := s.Query(Criteria{})
	assert.Equal(t, []string{"1"}, ids(got))
	assert.Contains(t, logs.String(), "skipping archive")
	assert.Contains(t, logs.String(), "index=1")
}

func TestQuery_InvalidRecordPreservedOnExport(t *testing.T) {
	doc := `{"archives":[{"id":"1","filename":"ok"},{"id":"2","title":"no filename","extra":[1,{"k":"v"}]}]}`
	s := newTestStore(t, doc)
	assert.Equal(t, []string{"1"}, ids(s.Query(Criteria{})))

	out, ok := s.Export()
	require.True(t, ok)
	assert.Equal(t, doc, string(out))
}

func TestQuery_DoesNotTouchSelection(t *testing.T) {
	s := newTestStore(t, sampleDoc)
	_, ok := s.Select("2")
	require.True(t, ok)

	s.Query(Criteria{SearchText: "gamma"})
	s.Query(Criteria{EmptyTagsOnly: true})

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "2", cur.ID)
}

func TestQuery_Idempotent(t *testing.T) {
	s := newTestStore(t, sampleDoc)
	c := Criteria{SearchText: "a"}
	first := s.Query(c)
	second := s.Query(c)
	assert.Equal(t, first, second)

	out, _ := s.Export()
	assert.Equal(t, sampleDoc, string(out))
}

func TestQuery_CustomIDKey(t *testing.T) {
	s := newTestStore(t, `{"archives":[{"arcid":"abc","filename":"f"}]}`, WithIDKey("arcid"))
	assert.Equal(t, []string{"abc"}, ids(s.Query(Criteria{})))

	a, ok := s.Select("abc")
	require.True(t, ok)
	assert.Equal(t, "f", a.Filename)
}

// --- Select ---

func TestSelect_Found(t *testing.T) {
	s := newTestStore(t, sampleDoc)
	a, ok := s.Select("2")
	require.True(t, ok)
	assert.Equal(t, model.Archive{ID: "2", Filename: "beta", Title: "Second", Tags: "x"}, a)
}

func TestSelect_EmptyIDKeepsSelection(t *testing.T) {
	s := newTestStore(t, sampleDoc)
	s.Select("1")

	_, ok := s.Select("")
	assert.False(t, ok)

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "1", cur.ID)
}

func TestSelect_MissKeepsSelection(t *testing.T) {
	s := newTestStore(t, sampleDoc)
	s.Select("1")

	_, ok := s.Select("nope")
	assert.False(t, ok)

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "1", cur.ID)
}

func TestSelect_NothingLoaded(t *testing.T) {
	_, ok := New().Select("1")
	assert.False(t, ok)
}

func TestSelect_StaleAfterReload(t *testing.T) {
	s := newTestStore(t, sampleDoc)
	s.Select("2")
	require.NoError(t, s.Load(parse(t, `{"archives":[{"id":"9","filename":"nine"}]}`)))

	_, ok := s.Current()
	assert.False(t, ok)
	_, ok = s.Apply(model.Fields{Filename: "x"})
	assert.False(t, ok)
}

// --- Apply ---

func TestApply_NoSelection(t *testing.T) {
	s := newTestStore(t, sampleDoc)
	_, ok := s.Apply(model.Fields{Filename: "changed", Title: "t", Tags: "a"})
	assert.False(t, ok)

	out, _ := s.Export()
	assert.Equal(t, sampleDoc, string(out))
}

func TestApply_NormalizesAndStores(t *testing.T) {
	s := newTestStore(t, sampleDoc)
	_, ok := s.Select("1")
	require.True(t, ok)

	a, ok := s.Apply(model.Fields{Filename: "a\nb", Title: "multi\r\nline", Tags: "x\ny"})
	require.True(t, ok)
	assert.Equal(t, "ab", a.Filename)
	assert.Equal(t, "multiline", a.Title)
	assert.Equal(t, "x,y", a.Tags)
	assert.Equal(t, "x\ny", FormValues(a).Tags)

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, a, cur)
}

func TestApply_EditsInPlaceAndAppendsNewKeys(t *testing.T) {
	s := newTestStore(t, `{"archives":[{"id":"1","tags":"old","filename":"f","pages":12}],"tail":true}`)
	s.Select("1")
	_, ok := s.Apply(model.Fields{Filename: "g", Title: "New", Tags: "a\n\nb"})
	require.True(t, ok)

	out, ok := s.Export()
	require.True(t, ok)
	assert.Equal(t, `{"archives":[{"id":"1","tags":"a,b","filename":"g","pages":12,"title":"New"}],"tail":true}`, string(out))
}

func TestApply_KeepsSelection(t *testing.T) {
	s := newTestStore(t, sampleDoc)
	s.Select("3")
	s.Apply(model.Fields{Filename: "renamed"})

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "3", cur.ID)
	assert.Equal(t, []string{"3"}, ids(s.Query(Criteria{SearchText: "renamed"})))
}

func TestApply_ChangesFilter(t *testing.T) {
	s := newTestStore(t, sampleDoc)
	s.Select("1")
	s.Apply(model.Fields{Filename: "Alpha", Tags: "now\ntagged"})

	assert.Equal(t, []string{"3"}, ids(s.Query(Criteria{EmptyTagsOnly: true})))
}

// --- Export ---

func TestExport_NothingLoaded(t *testing.T) {
	_, ok := New().Export()
	assert.False(t, ok)
}
