// Package upload publishes rendered videos to YouTube through the YouTube
// Data API v3.
//
// Authorization uses an OAuth2 installed-application client. The client
// secret is read from a credentials JSON file downloaded from the Google
// Cloud console; the token obtained on first use is cached in a token file
// and reused on later runs.
//
// # Usage
//
//	u, err := upload.NewUploader(ctx, "client_secret.json", "token.json", prompt)
//	if err != nil {
//	    return err
//	}
//	id, err := u.Upload(ctx, videoPath, upload.NewVideo(job, upload.DefaultPolicy()))
//
// # Policy
//
// Every video is uploaded in the Music category (10) with tags built from
// the song's artist, title and label plus the fixed tags of the policy.
// Visibility defaults to "unlisted".
package upload
