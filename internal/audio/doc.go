// Package audio provides services for the audio side of rendered videos:
// ID3 tagging of exported MP3s and playlist generation.
//
// # ID3 Tagging
//
//	tagger := audio.NewTagger(audio.DefaultTagConfig("SOUND VOLTEX"))
//	err := tagger.SaveTags(mp3Path, job, jacketJPEG)
//
// The tagger writes artist, album artist, album, title (with the job's
// difficulty label) and the jacket as front cover.
//
// # Playlist Generation
//
//	creator := audio.NewPlaylistCreator(audio.FormatM3U, true)
//	content := creator.CreatePlaylist(entries)
//
// Supported formats: M3U (with optional extended info) and PLS.
package audio
