// Package render turns a render job into a still-image video with ffmpeg.
//
// A render runs in three stages:
//
//  1. ffprobe reads the audio duration.
//  2. Two independent tasks run together: ffmpeg resamples the audio to a
//     temporary WAV (dropping a short tail), and the jacket is scaled to the
//     square frame and written to a temporary PNG.
//  3. ffmpeg loops the frame at a low frame rate for the length of the audio
//     and muxes H.264/AAC into an MP4.
//
// Temporary files are unique per job and removed on every exit path.
//
// Argument slices are built by pure functions (ResampleArgs, MuxArgs,
// ExportArgs) so they can be tested without ffmpeg installed.
//
// # Errors
//
// Failures wrap ErrImageDecode when the jacket cannot be read and ErrEncode
// when ffprobe or ffmpeg fail. Callers decide which of them is fatal.
package render
