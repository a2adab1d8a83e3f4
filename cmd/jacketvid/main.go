package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/handiism/jacketvid/internal/catalog"
	"github.com/handiism/jacketvid/internal/config"
	"github.com/handiism/jacketvid/internal/pipeline"
	"github.com/handiism/jacketvid/internal/render"
	"github.com/handiism/jacketvid/internal/upload"
)

func main() {
	// Command line flags
	var (
		rootFlag        = flag.String("root", "", "Root folder containing all song folders (replaces folder arguments)")
		musicDBFlag     = flag.String("musicdb", "", "Path to the music database (default music_db.xml)")
		outputFlag      = flag.String("output", "", "Output directory (overrides config)")
		configFlag      = flag.String("config", "", "Path to config file")
		uploadFlag      = flag.Bool("upload", false, "Upload rendered videos to YouTube")
		credentialsFlag = flag.String("credentials", "", "OAuth client secret JSON for uploads")
		tokenFlag       = flag.String("token", "", "Cached OAuth token file for uploads")
		visibilityFlag  = flag.String("visibility", "", "Upload visibility: public, unlisted or private")
		exportFlag      = flag.Bool("export-audio", false, "Also export a tagged MP3 of every video")
		playlistFlag    = flag.Bool("playlist", false, "Create a playlist of the rendered videos")
		strictFlag      = flag.Bool("strict-images", false, "Stop the batch when a jacket cannot be decoded")
		verboseFlag     = flag.Bool("verbose", false, "Show verbose output")
		dryRunFlag      = flag.Bool("dry-run", false, "Plan the videos without rendering")
	)

	flag.Parse()

	if *rootFlag == "" && flag.NArg() == 0 {
		fmt.Println("jacketvid - Render song jackets and audio into videos")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  jacketvid -root <folder> [options]")
		fmt.Println("  jacketvid [options] <song folder>...")
		fmt.Println()
		fmt.Println("For interactive mode, use: jacketvid-tui")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// Apply flags
	if *musicDBFlag != "" {
		settings.MusicDBPath = *musicDBFlag
	}
	if *outputFlag != "" {
		settings.OutputPath = *outputFlag
	}
	if *uploadFlag {
		settings.Upload = true
	}
	if *credentialsFlag != "" {
		settings.CredentialsPath = *credentialsFlag
	}
	if *tokenFlag != "" {
		settings.TokenPath = *tokenFlag
	}
	if *visibilityFlag != "" {
		if !upload.ValidVisibility(*visibilityFlag) {
			fmt.Fprintf(os.Stderr, "Invalid visibility %q: use public, unlisted or private\n", *visibilityFlag)
			os.Exit(1)
		}
		settings.Visibility = *visibilityFlag
	}
	if *exportFlag {
		settings.ExportAudio = true
	}
	if *playlistFlag {
		settings.CreatePlaylist = true
	}
	if *strictFlag {
		settings.AbortOnImageError = true
	}
	if *verboseFlag {
		settings.Verbose = true
	}
	if *dryRunFlag {
		settings.DryRun = true
	}

	// Get folders
	folders := flag.Args()
	if *rootFlag != "" {
		var err error
		folders, err = pipeline.Enumerate(*rootFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing song folders: %v\n", err)
			os.Exit(1)
		}
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	var uploader pipeline.Uploader
	if settings.Upload && !settings.DryRun {
		u, err := upload.NewUploader(ctx, settings.CredentialsPath, settings.TokenPath, promptCode)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error authorizing upload: %v\n", err)
			os.Exit(1)
		}
		uploader = u
	}

	manager := pipeline.NewManager(
		settings,
		catalog.Open(settings.MusicDBPath),
		render.NewRenderer(settings.ToRenderOptions()),
		uploader,
		printEvent(settings.Verbose),
	)

	fmt.Println("♪ jacketvid")
	fmt.Println(strings.Repeat("━", 40))
	fmt.Println()

	if settings.DryRun {
		fmt.Println("[Dry run - not rendering]")
		fmt.Println()
	}

	if err := manager.Run(ctx, folders); err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nBatch cancelled.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	s := manager.Stats()
	fmt.Println()
	fmt.Println(strings.Repeat("━", 40))
	fmt.Printf("✨ Complete! Rendered %d videos from %d folders\n", s.Rendered, s.Folders)
	if s.Failed > 0 || s.Missing > 0 {
		fmt.Printf("   (%d failed, %d without jacket)\n", s.Failed, s.Missing)
	}
	if s.Uploaded > 0 {
		fmt.Printf("   Uploaded %d videos\n", s.Uploaded)
	}
}

// printEvent prints progress events with a level prefix.
func printEvent(verbose bool) func(pipeline.ProgressEvent) {
	return func(event pipeline.ProgressEvent) {
		if event.Level == pipeline.LevelVerbose && !verbose {
			return
		}

		prefix := ""
		switch event.Level {
		case pipeline.LevelError:
			prefix = "❌ "
		case pipeline.LevelWarning:
			prefix = "⚠️  "
		case pipeline.LevelSuccess:
			prefix = "✅ "
		case pipeline.LevelInfo:
			prefix = "ℹ️  "
		default:
			prefix = "   "
		}

		fmt.Println(prefix + event.Message)
	}
}

// promptCode runs the interactive part of the OAuth flow on the terminal.
func promptCode(authURL string) (string, error) {
	fmt.Println("Open this URL in a browser and authorize jacketvid:")
	fmt.Println()
	fmt.Println("  " + authURL)
	fmt.Println()
	fmt.Print("Authorization code: ")

	code, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(code), nil
}
