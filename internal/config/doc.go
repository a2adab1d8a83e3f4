// Package config provides configuration management for jacketvid.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Conversion to render options and upload policy for other packages
//
// # Default Settings
//
//	settings := config.DefaultSettings()
//	// Reads music_db.xml from the working directory
//	// Writes videos to the working directory
//	// 1080x1080 frames, 44.1 kHz audio, 0.5 s tail trim
//	// Upload, MP3 export and playlist disabled
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/jacketvid.json")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// Fields missing from the file keep their default values. Command-line
// flags are applied on top of the loaded settings by the front ends.
//
// # Saving Settings
//
//	settings.OutputPath = "/videos"
//	err := settings.Save("/path/to/jacketvid.json")
package config
