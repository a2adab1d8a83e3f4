package model

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// IDLength is the number of leading characters of a song folder name that
// hold the numeric song ID.
const IDLength = 4

// SongFolder is one per-song asset folder.
//
// A folder is named after its song ID, e.g. "1234_song_title", and holds a
// flat list of audio tracks (*.s3v) and jacket images (*_b.png):
//
//	1234_song_title/
//	    1234_song_title.s3v
//	    1234_song_title_pre.s3v
//	    1234_song_title_5m.s3v
//	    jk_1234_1_b.png
//	    jk_1234_5_b.png
type SongFolder struct {
	// ID is the four character song ID prefix of the folder name.
	ID string

	// Path is the folder path on disk.
	Path string

	// Files lists the regular file names in the folder, sorted
	// lexicographically so that matching is deterministic across
	// filesystems.
	Files []string
}

// NewSongFolder reads the listing of the folder at path.
//
// Subdirectories are ignored. Returns an error if the folder name is shorter
// than IDLength or the directory cannot be read.
func NewSongFolder(path string) (*SongFolder, error) {
	name := filepath.Base(path)
	if len(name) < IDLength {
		return nil, fmt.Errorf("folder name %q has no song ID prefix", name)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)

	return &SongFolder{
		ID:    name[:IDLength],
		Path:  path,
		Files: files,
	}, nil
}

// NumericID parses the folder's song ID.
func (f *SongFolder) NumericID() (int, error) {
	return strconv.Atoi(f.ID)
}

// FilePath returns the full path of a file in this folder.
func (f *SongFolder) FilePath(name string) string {
	return filepath.Join(f.Path, name)
}

// Metadata is the catalog record of a song.
type Metadata struct {
	// ID is the numeric song ID.
	ID int

	// Title is the song title.
	Title string

	// Artist is the artist name.
	Artist string

	// DifficultyVersion is the game version that introduced the song's
	// infinite-class chart. 1 means the song has none.
	DifficultyVersion int
}
