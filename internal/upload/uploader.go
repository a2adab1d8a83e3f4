package upload

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

var (
	// ErrCredentials is returned when the client secret file cannot be used.
	ErrCredentials = errors.New("invalid upload credentials")

	// ErrAuthorization is returned when no token could be obtained.
	ErrAuthorization = errors.New("upload authorization failed")

	// ErrUpload is returned when the API rejects an upload.
	ErrUpload = errors.New("upload failed")
)

// uploadParts are the resource parts sent with every insert.
var uploadParts = []string{"snippet", "status"}

// PromptFunc shows the authorization URL to the user and returns the code
// they pasted back.
type PromptFunc func(authURL string) (string, error)

// Uploader uploads videos to one YouTube channel.
type Uploader struct {
	service *youtube.Service
}

// NewUploader authorizes with the client secret at credentialsPath.
//
// A cached token is read from tokenPath. When there is none, prompt is used
// to run the authorization code flow and the new token is saved to
// tokenPath.
func NewUploader(ctx context.Context, credentialsPath, tokenPath string, prompt PromptFunc) (*Uploader, error) {
	secret, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCredentials, err)
	}

	cfg, err := google.ConfigFromJSON(secret, youtube.YoutubeUploadScope)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCredentials, err)
	}

	tok, err := LoadToken(tokenPath)
	if err != nil {
		if prompt == nil {
			return nil, fmt.Errorf("%w: no cached token at %s", ErrAuthorization, tokenPath)
		}
		tok, err = exchange(ctx, cfg, prompt)
		if err != nil {
			return nil, err
		}
		if err := SaveToken(tokenPath, tok); err != nil {
			return nil, fmt.Errorf("saving token: %w", err)
		}
	}

	service, err := youtube.NewService(ctx, option.WithHTTPClient(cfg.Client(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthorization, err)
	}

	return &Uploader{service: service}, nil
}

// Upload sends the video file at videoPath and returns the new video ID.
func (u *Uploader) Upload(ctx context.Context, videoPath string, v *Video) (string, error) {
	f, err := os.Open(videoPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	defer f.Close()

	res, err := u.service.Videos.Insert(uploadParts, v.resource()).Media(f).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrUpload, filepath.Base(videoPath), err)
	}
	return res.Id, nil
}

func exchange(ctx context.Context, cfg *oauth2.Config, prompt PromptFunc) (*oauth2.Token, error) {
	authURL := cfg.AuthCodeURL("jacketvid", oauth2.AccessTypeOffline)

	code, err := prompt(authURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthorization, err)
	}

	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthorization, err)
	}
	return tok, nil
}

// LoadToken reads a cached OAuth2 token.
func LoadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	tok := &oauth2.Token{}
	if err := json.Unmarshal(data, tok); err != nil {
		return nil, err
	}
	return tok, nil
}

// SaveToken caches an OAuth2 token. The file is only readable by the owner.
func SaveToken(path string, tok *oauth2.Token) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return err
		}
	}

	data, err := json.Marshal(tok)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
