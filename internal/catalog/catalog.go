package catalog

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/handiism/jacketvid/internal/model"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

var (
	// ErrNotFound is returned when the catalog has no usable record for an ID.
	ErrNotFound = errors.New("song not found in catalog")

	// ErrLookupFailed is returned when the catalog document cannot be read
	// or parsed.
	ErrLookupFailed = errors.New("catalog lookup failed")
)

// DefaultDifficultyVersion is used when a record has no usable inf_ver.
const DefaultDifficultyVersion = 1

type xmlDB struct {
	Music []xmlMusic `xml:"music"`
}

type xmlMusic struct {
	ID   string  `xml:"id,attr"`
	Info xmlInfo `xml:"info"`
}

type xmlInfo struct {
	TitleName  string `xml:"title_name"`
	ArtistName string `xml:"artist_name"`
	InfVer     string `xml:"inf_ver"`
}

// Catalog is a lazily parsed music database.
//
// Catalog is safe for concurrent use.
type Catalog struct {
	path string

	once    sync.Once
	records map[int]*model.Metadata
	err     error
}

// Open returns a Catalog backed by the document at path.
//
// The file is not read until the first Lookup.
func Open(path string) *Catalog {
	return &Catalog{path: path}
}

// Parse reads a Shift-JIS encoded catalog document from r.
func Parse(r io.Reader) (*Catalog, error) {
	c := &Catalog{}
	c.once.Do(func() {
		c.records, c.err = parse(r)
	})
	return c, c.err
}

// Lookup returns the metadata of the song with the given ID.
//
// Returns an error wrapping ErrLookupFailed if the document is unreadable,
// or ErrNotFound if the ID is missing or its record has no title or artist.
func (c *Catalog) Lookup(id int) (*model.Metadata, error) {
	c.once.Do(c.load)
	if c.err != nil {
		return nil, c.err
	}

	meta, ok := c.records[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if meta.Title == "" || meta.Artist == "" {
		return nil, fmt.Errorf("%w: %d has no title or artist", ErrNotFound, id)
	}

	copied := *meta
	return &copied, nil
}

// Len returns the number of records, or 0 if the document failed to parse.
func (c *Catalog) Len() int {
	c.once.Do(c.load)
	return len(c.records)
}

func (c *Catalog) load() {
	f, err := os.Open(c.path)
	if err != nil {
		c.err = fmt.Errorf("%w: %v", ErrLookupFailed, err)
		return
	}
	defer f.Close()

	c.records, c.err = parse(f)
}

// parse decodes the whole document as Shift-JIS, replacing invalid byte
// sequences with U+FFFD, and indexes the records by ID. The first record
// wins when an ID appears twice.
func parse(r io.Reader) (map[int]*model.Metadata, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}

	decoded, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), raw)
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrLookupFailed, err)
	}

	dec := xml.NewDecoder(bytes.NewReader(decoded))
	// The content is already UTF-8; ignore the declared encoding.
	dec.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	var db xmlDB
	if err := dec.Decode(&db); err != nil {
		return nil, fmt.Errorf("%w: parse: %v", ErrLookupFailed, err)
	}

	records := make(map[int]*model.Metadata, len(db.Music))
	for _, m := range db.Music {
		id, err := strconv.Atoi(strings.TrimSpace(m.ID))
		if err != nil {
			continue
		}
		if _, dup := records[id]; dup {
			continue
		}
		records[id] = &model.Metadata{
			ID:                id,
			Title:             m.Info.TitleName,
			Artist:            m.Info.ArtistName,
			DifficultyVersion: parseVersion(m.Info.InfVer),
		}
	}

	return records, nil
}

func parseVersion(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < DefaultDifficultyVersion {
		return DefaultDifficultyVersion
	}
	return v
}
