// cmd/discord/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"aiko-bot/internal/ai"
	"aiko-bot/internal/config"
	"aiko-bot/internal/discord"
	"aiko-bot/internal/engine"
	"aiko-bot/internal/logging"
	"aiko-bot/internal/votes"
)

func main() {
	cfg := config.New()
	logging.Setup(cfg.LogLevel, cfg.LogPath)
	log.Info().Msg("starting Aiko...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := engine.NewUserStore(cfg.StoragePath, logging.Component("store"))
	if err != nil {
		log.Fatal().Err(err).Msg("store init failed")
	}
	defer store.Close()

	provider, err := ai.NewProvider(cfg.AIProvider, cfg.AIModel)
	if err != nil {
		log.Fatal().Err(err).Msg("ai provider init failed")
	}

	voteClient := votes.New("", cfg.TopGGToken)

	eng := engine.New(store, provider, voteClient, engine.Config{
		QuotaWindow:      cfg.QuotaWindow,
		QuotaLimit:       cfg.QuotaLimit,
		MemoryCap:        cfg.MemoryCap,
		VoteRewardPoints: cfg.VoteRewardPoints,
	}, logging.Component("engine"))

	go eng.RunMaintenance(ctx)

	errCh := make(chan error, 1)
	go func() {
		if err := discord.StartBot(ctx, cfg, eng, voteClient); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Info().Str("signal", s.String()).Msg("shutting down")
		cancel()
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("discord bot error")
		}
		cancel()
	}

	if err := store.Flush(); err != nil {
		log.Error().Err(err).Msg("final flush failed")
	}
	log.Info().Msg("exited cleanly")
}
