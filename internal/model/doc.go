// Package model defines the core data structures used throughout
// jacketvid.
//
// # SongFolder
//
// SongFolder is one per-song asset folder with its sorted file listing:
//
//	folder, err := model.NewSongFolder("/songs/1234_song")
//	fmt.Println(folder.ID)    // "1234"
//	fmt.Println(folder.Files) // ["1234_5_b.png", "1234_5m.s3v"]
//
// # Metadata
//
// Metadata is the catalog record (title, artist, difficulty version) of a
// song, resolved by package catalog.
//
// # RenderJob
//
// RenderJob pairs one audio track with one jacket and carries the sanitized
// video title:
//
//	job := model.NewRenderJob(folder, meta, "1234_5m.s3v", "1234_5_b.png", "MXM")
//	fmt.Println(job.VideoTitle)                   // "Bar - Foo [MXM]"
//	fmt.Println(job.OutputPath("/videos", ".mp4")) // "/videos/Bar - Foo [MXM].mp4"
package model
