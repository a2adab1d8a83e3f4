// Package ioutils provides file system and image processing utilities.
//
// This package contains functions for:
//   - File writing and directory creation
//   - Filename sanitization with readable homoglyphs
//   - Scoped temporary files
//   - Jacket loading, resizing and format conversion
//
// # Filename Sanitization
//
// Use SanitizeFileName to turn a video title into a safe file name:
//
//	safe := ioutils.SanitizeFileName("Bar - Foo: Re/Mix") // "Bar - Foo։ Re⁄Mix"
//
// Catalog glyphs mis-decoded from the game's Shift-JIS variant are repaired
// first (for example "驩" becomes "Ø").
//
// # Temporary Files
//
//	path, release, err := ioutils.TempFile("jacketvid-*.wav")
//	defer release()
//
// # Image Processing
//
//	svc := ioutils.NewImageService()
//
//	// Scale a jacket to the 1080x1080 video frame
//	frame, _ := svc.LoadSquare(ctx, jacketPath, 1080)
//
//	// Prepare cover art for ID3 tags
//	jpeg, _ := svc.ResizeImage(ctx, pngData, 500, 500)
package ioutils
