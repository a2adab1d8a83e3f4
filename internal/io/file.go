// Package ioutils provides file system utilities for jacketvid.
//
// This package contains functions for:
//   - File writing
//   - Filename sanitization
//   - Directory creation
//   - Scoped temporary files
package ioutils

import (
	"context"
	"os"
	"strings"
)

// encodingRepairs maps glyphs produced by decoding the game's catalog as plain
// Shift-JIS back to the characters the game actually displays. The catalog
// reuses rarely used kanji code points for accented Latin letters and symbols.
//
// The table is best-effort: it covers the substitutions seen in practice and
// is not guaranteed to be complete or idempotent on arbitrary input.
var encodingRepairs = [][2]string{
	{"驩", "Ø"},
	{"齲", "♥"},
	{"齶", "♡"},
	{"趁", "Ǣ"},
	{"騫", "á"},
	{"曦", "à"},
	{"驫", "ā"},
	{"齷", "é"},
	{"骭", "ü"},
	{"隍", "Ü"},
	{"雋", "Ǜ"},
	{"鬻", "♃"},
	{"鬥", "Ã"},
	{"鬆", "Ý"},
	{"頽", "ä"},
	{"罇", "ê"},
	{"蹇", "ǎ"},
	{"盥", "⚙"},
	{"闃", "Ā"},
	{"餮", "Ƶ"},
	{"鑈", "♦"},
	{"黷", "ē"},
	{"瀑", "À"},
	{"鑷", "ゔ"},
	{"霻", "♠"},
	{"鹹", "Ĥ"},
	{"彜", "ū"},
	{"疉", "Ö"},
	{"鬮", "¡"},
	{"鬯", "ī"},
	{"蔕", "ũ"},
	{"賚", "Ṙ"},
	{"煢", "ø"},
	{"璧", "ʄ"},
	{"齪", "♣"},
	{"躔", "★"},
}

// reservedHomoglyphs maps characters that are invalid in Windows file names
// to visually similar Unicode characters.
var reservedHomoglyphs = [][2]string{
	{`\`, "＼"},
	{"/", "⁄"},
	{":", "։"},
	{"*", "⁎"},
	{"?", "？"},
	{`"`, "”"},
	{"<", "‹"},
	{">", "›"},
	{"|", "ǀ"},
}

// SanitizeFileName makes name safe to use as a single path component.
//
// The encoding repair table is applied first, then reserved characters
// (\/:*?"<>|) are replaced with homoglyphs. Each entry replaces every
// non-overlapping occurrence, in table order.
//
// Unlike an underscore substitution, the result keeps the title readable:
//
//	SanitizeFileName("Song: Part 1/2") // Returns "Song։ Part 1⁄2"
//
// Sanitizing an already sanitized name returns it unchanged.
func SanitizeFileName(name string) string {
	for _, r := range encodingRepairs {
		name = strings.ReplaceAll(name, r[0], r[1])
	}
	return ReplaceReserved(name)
}

// ReplaceReserved applies only the reserved character table.
func ReplaceReserved(name string) string {
	for _, r := range reservedHomoglyphs {
		name = strings.ReplaceAll(name, r[0], r[1])
	}
	return name
}

// WriteFile writes data to a file, creating it if necessary.
//
// The file is created with mode 0644. If the file already exists,
// it is truncated before writing.
func WriteFile(ctx context.Context, path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// TempFile reserves a uniquely named empty file in the system temp directory
// and returns its path together with a release function that removes it.
//
// The pattern follows os.CreateTemp, so "jacketvid-*.wav" yields names like
// "jacketvid-123456.wav". Release is safe to call more than once.
//
// Example:
//
//	path, release, err := TempFile("jacketvid-*.wav")
//	if err != nil {
//	    return err
//	}
//	defer release()
func TempFile(pattern string) (string, func(), error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", func() {}, err
	}
	path := f.Name()
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", func() {}, err
	}
	return path, func() { os.Remove(path) }, nil
}
