package discord

import (
	"context"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"aiko-bot/internal/config"
	"aiko-bot/internal/engine"
	"aiko-bot/internal/logging"
	"aiko-bot/internal/votes"
)

// Bot owns the Discord session and routes qualifying traffic into the engine.
type Bot struct {
	dg    *discordgo.Session
	cfg   *config.Config
	eng   *engine.Engine
	votes *votes.Client
	log   zerolog.Logger

	mu        sync.RWMutex
	slashCmds []*discordgo.ApplicationCommand
}

// StartBot connects and blocks until ctx is cancelled.
func StartBot(ctx context.Context, cfg *config.Config, eng *engine.Engine, voteClient *votes.Client) error {
	b := &Bot{
		cfg:   cfg,
		eng:   eng,
		votes: voteClient,
		log:   logging.Component("discord"),
	}
	if err := b.run(ctx, cfg.DiscordToken); err != nil {
		return fmt.Errorf("bot run error: %w", err)
	}
	return nil
}

func (b *Bot) run(ctx context.Context, token string) error {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	b.dg = dg

	b.configureIntents()
	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onMessageCreate)
	dg.AddHandler(b.onInteractionCreate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	go b.presenceLoop(ctx)

	<-ctx.Done()
	b.log.Info().Msg("shutdown signal received, closing session")
	return nil
}

func (b *Bot) configureIntents() {
	b.dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.log.Info().Str("bot", r.User.Username).Int("guilds", len(r.Guilds)).Msg("connected")

	if b.votes != nil {
		b.votes.SetBotID(r.User.ID)
	}

	if b.cfg.InitSlashCommands {
		if err := b.registerCommands(s); err != nil {
			b.log.Error().Err(err).Msg("slash command registration failed")
		}
	} else {
		b.log.Info().Msg("slash command registration skipped")
	}
}
