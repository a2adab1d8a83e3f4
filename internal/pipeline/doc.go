// Package pipeline drives a batch conversion of song folders into videos.
//
// # Enumeration
//
// Enumerate lists the song folders of a root directory:
//
//	folders, err := pipeline.Enumerate("/data/music")
//	// ["/data/music/0001_yomigaeri", "/data/music/1234_song", ...]
//
// Only directories named with a four digit song ID below 9000 are returned.
//
// # Manager
//
// Manager processes the folders one at a time:
//
//  1. Resolve the song's title, artist and difficulty version.
//  2. Plan the render jobs with the matcher.
//  3. Render each job to "<output>/<artist> - <title> [label].mp4".
//  4. Optionally export a tagged MP3 and upload the video.
//
// Finally an optional playlist of all rendered videos is written.
//
//	m := pipeline.NewManager(settings, catalog.Open(dbPath), render.NewRenderer(opts), nil,
//	    func(e pipeline.ProgressEvent) {
//	        fmt.Println(e.Message)
//	    })
//	if err := m.Run(ctx, folders); err != nil {
//	    // canceled or aborted on an unreadable jacket
//	}
//
// # Error Containment
//
// A folder whose song is missing from the catalog, a folder without audio,
// an audio track without a jacket, or a failed render are reported as
// progress events and the batch continues. Only cancellation and, with
// AbortOnImageError, an undecodable jacket stop the run.
//
// # Progress Levels
//
//   - LevelInfo: General information
//   - LevelVerbose: Detailed debug information
//   - LevelWarning: Non-fatal issues
//   - LevelError: Failures
//   - LevelSuccess: Successful completions
package pipeline
