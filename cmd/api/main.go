package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/moodmatch-labs/moodmatch/backend/internal/adapters/openai"
	"github.com/moodmatch-labs/moodmatch/backend/internal/adapters/playback"
	"github.com/moodmatch-labs/moodmatch/backend/internal/adapters/rest"
	"github.com/moodmatch-labs/moodmatch/backend/internal/adapters/spotify"
	"github.com/moodmatch-labs/moodmatch/backend/internal/adapters/sqlite"
	"github.com/moodmatch-labs/moodmatch/backend/internal/config"
	"github.com/moodmatch-labs/moodmatch/backend/internal/core/domain"
	"github.com/moodmatch-labs/moodmatch/backend/internal/core/ports"
	"github.com/moodmatch-labs/moodmatch/backend/internal/core/services"
	"github.com/moodmatch-labs/moodmatch/backend/internal/parse"
	"github.com/moodmatch-labs/moodmatch/backend/internal/worker"
)

func main() {
	configPath := flag.String("config", "moodmatch.toml", "path to TOML config file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Secrets come from the environment; crash early if they are missing.
	apiKey := os.Getenv("OPENAI_API_KEY")
	clientID := os.Getenv("SPOTIFY_CLIENT_ID")
	clientSecret := os.Getenv("SPOTIFY_CLIENT_SECRET")
	if apiKey == "" {
		log.Fatal().Msg("OPENAI_API_KEY environment variable is required")
	}
	if clientID == "" || clientSecret == "" {
		log.Fatal().Msg("SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET environment variables are required")
	}

	// Persistence adapter and background saver.
	store, err := sqlite.NewAdapter(cfg.StoragePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer store.Close()

	saver := worker.NewSaver(store, 100)
	saver.Start(1)
	defer saver.Stop()

	// Library and history, restored from the last snapshot.
	library := services.NewLibrary()
	history := services.NewSearchHistory(cfg.HistorySize)

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 10*time.Second)
	snap, err := store.Load(loadCtx)
	cancelLoad()
	if err != nil {
		log.Warn().Err(err).Msg("could not restore library snapshot, starting empty")
	} else if len(snap.Playlists) > 0 {
		library.Import(snap)
		history.Replace(snap.History)
		log.Info().Int("playlists", len(snap.Playlists)).Int("history", len(snap.History)).Msg("library restored")
	}

	library.OnChange(func(s ports.LibrarySnapshot) {
		s.History = history.List()
		saver.Submit(s)
	})
	history.OnChange(func(entries []domain.CatalogEntry) {
		s := library.Export()
		s.History = entries
		saver.Submit(s)
	})

	// Driven adapters.
	analyzer := openai.NewClient(openai.Config{
		BaseURL: cfg.OpenAI.BaseURL,
		APIKey:  apiKey,
		Model:   cfg.OpenAI.Model,
		Timeout: cfg.OpenAITimeout(),
	}, parse.New())

	catalog := spotify.NewAuthenticatedClient(context.Background(), clientID, clientSecret, cfg.Spotify.BaseURL)
	player := playback.NewClient(cfg.Playback.BaseURL)

	matcher := services.NewMatcher(analyzer, catalog, player)

	handler := rest.NewHandler(matcher, library, history, catalog)

	log.Info().Str("addr", cfg.Addr).Msg("MoodMatch API listening")

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Fatal().Err(err).Msg("server error")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown error")
		}
	}
}
