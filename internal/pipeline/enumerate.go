package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/handiism/jacketvid/internal/model"
)

// MaxSongID is the first song ID that is not rendered. Folders from this ID
// up hold system sounds rather than songs.
const MaxSongID = 9000

// Enumerate lists the song folders directly under root, sorted by name.
//
// A song folder is a directory whose name starts with IDLength ASCII digits
// forming a number below MaxSongID. Everything else is ignored.
func Enumerate(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", root, err)
	}

	var folders []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, ok := SongID(e.Name()); ok {
			folders = append(folders, filepath.Join(root, e.Name()))
		}
	}

	return folders, nil
}

// SongID parses the song ID prefix of a folder name.
func SongID(name string) (int, bool) {
	if len(name) < model.IDLength {
		return 0, false
	}

	prefix := name[:model.IDLength]
	for i := 0; i < len(prefix); i++ {
		if prefix[i] < '0' || prefix[i] > '9' {
			return 0, false
		}
	}

	id, err := strconv.Atoi(prefix)
	if err != nil || id >= MaxSongID {
		return 0, false
	}
	return id, true
}
