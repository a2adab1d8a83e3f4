package upload

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/handiism/jacketvid/internal/model"
	"golang.org/x/oauth2"
)

func testJob(label string, version int) *model.RenderJob {
	folder := &model.SongFolder{ID: "1234", Path: "/songs/1234_song"}
	meta := &model.Metadata{ID: 1234, Title: "Foo", Artist: "Bar", DifficultyVersion: version}
	return model.NewRenderJob(folder, meta, "1234_5m.s3v", "1234_5_b.png", label)
}

func TestNewVideo(t *testing.T) {
	v := NewVideo(testJob("MXM", 1), DefaultPolicy())

	if v.Title != "Bar - Foo [MXM]" {
		t.Errorf("Title = %q", v.Title)
	}
	if v.CategoryID != CategoryMusic {
		t.Errorf("CategoryID = %q, want %q", v.CategoryID, CategoryMusic)
	}
	if v.Visibility != VisibilityUnlisted {
		t.Errorf("Visibility = %q, want %q", v.Visibility, VisibilityUnlisted)
	}

	res := v.resource()
	if res.Snippet.Title != v.Title || res.Status.PrivacyStatus != v.Visibility {
		t.Errorf("resource() does not carry title and visibility: %+v", res)
	}
}

func TestNewVideo_InvalidVisibility(t *testing.T) {
	p := DefaultPolicy()
	p.Visibility = "everyone"

	if v := NewVideo(testJob("", 1), p); v.Visibility != VisibilityUnlisted {
		t.Errorf("Visibility = %q, want fallback %q", v.Visibility, VisibilityUnlisted)
	}
}

func TestDescription(t *testing.T) {
	tests := []struct {
		name    string
		job     *model.RenderJob
		want    []string
		notWant []string
	}{
		{
			name:    "normal v1",
			job:     testJob("", 1),
			want:    []string{"Bar - Foo\n", "Artist: Bar\n", "Title: Foo\n"},
			notWant: []string{"Difficulty:", "Version:"},
		},
		{
			name: "infinite v3",
			job:  testJob("GRV", 3),
			want: []string{"Bar - Foo [GRV]\n", "Difficulty: GRV\n", "Version: GRAVITY WARS\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Description(tt.job)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("Description() missing %q:\n%s", w, got)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(got, w) {
					t.Errorf("Description() should not contain %q:\n%s", w, got)
				}
			}
		})
	}
}

func TestDescription_NoAngleBrackets(t *testing.T) {
	job := testJob("", 1)
	job.Metadata.Title = "<Foo>"

	if got := Description(job); strings.ContainsAny(got, "<>") {
		t.Errorf("Description() = %q contains angle brackets", got)
	}
}

func TestTags(t *testing.T) {
	got := Tags(testJob("MXM", 1), []string{"SOUND VOLTEX", "bar", ""})
	want := []string{"Bar", "Foo", "MXM", "SOUND VOLTEX"}

	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Tags() = %q, want %q", got, want)
	}
}

func TestTags_LengthLimit(t *testing.T) {
	var fixed []string
	for i := 0; i < 100; i++ {
		fixed = append(fixed, strings.Repeat(string(rune('a'+i%26)), 10)+string(rune('A'+i/26)))
	}

	total := 0
	for _, tag := range Tags(testJob("", 1), fixed) {
		total += len(tag)
	}
	if total > maxTagsLength {
		t.Errorf("combined tag length %d exceeds %d", total, maxTagsLength)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth", "token.json")
	tok := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	if err := SaveToken(path, tok); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("token mode = %v, want 0600", info.Mode().Perm())
	}

	got, err := LoadToken(path)
	if err != nil {
		t.Fatalf("LoadToken: %v", err)
	}
	if got.RefreshToken != tok.RefreshToken || !got.Expiry.Equal(tok.Expiry) {
		t.Errorf("LoadToken() = %+v, want %+v", got, tok)
	}
}

func TestNewUploader_MissingCredentials(t *testing.T) {
	dir := t.TempDir()
	_, err := NewUploader(context.Background(), filepath.Join(dir, "missing.json"), filepath.Join(dir, "token.json"), nil)
	if !errors.Is(err, ErrCredentials) {
		t.Errorf("NewUploader error = %v, want ErrCredentials", err)
	}
}

func TestNewUploader_NoTokenNoPrompt(t *testing.T) {
	dir := t.TempDir()
	creds := filepath.Join(dir, "client_secret.json")
	secret := `{"installed":{"client_id":"id","client_secret":"secret","auth_uri":"https://accounts.google.com/o/oauth2/auth","token_uri":"https://oauth2.googleapis.com/token","redirect_uris":["http://localhost"]}}`
	if err := os.WriteFile(creds, []byte(secret), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := NewUploader(context.Background(), creds, filepath.Join(dir, "token.json"), nil)
	if !errors.Is(err, ErrAuthorization) {
		t.Errorf("NewUploader error = %v, want ErrAuthorization", err)
	}
}
