// Package tui provides a Bubble Tea terminal user interface for jacketvid.
//
// The user enters the root folder of the song data, picks the optional
// stages and watches the batch progress folder by folder:
//
//	settings, _ := config.Load("jacketvid.json")
//	if err := tui.Run(settings); err != nil {
//	    log.Fatal(err)
//	}
//
// Keys on the input screen:
//   - tab: switch between the folder field and the options
//   - u, a, p, s, v: toggle upload, MP3 export, playlist, strict images and
//     verbose output while the options are focused
//   - enter: start
//
// Uploading from the TUI needs a cached token; run the CLI with -upload once
// to authorize.
package tui
