package discord

import (
	"github.com/bwmarrin/discordgo"

	"aiko-bot/internal/command"

	_ "aiko-bot/internal/command/bond"
	_ "aiko-bot/internal/command/help"
	_ "aiko-bot/internal/command/memory"
	_ "aiko-bot/internal/command/personality"
	_ "aiko-bot/internal/command/premium"
	_ "aiko-bot/internal/command/profile"
	_ "aiko-bot/internal/command/reset"
)

// registerCommands pushes every registered slash definition to Discord
// globally and remembers them for cleanup.
func (b *Bot) registerCommands(s *discordgo.Session) error {
	var defs []*discordgo.ApplicationCommand
	for _, cmd := range command.All() {
		if sp, ok := cmd.(command.SlashProvider); ok {
			if def := sp.SlashDefinition(); def != nil {
				defs = append(defs, def)
			}
		}
	}

	created, err := s.ApplicationCommandBulkOverwrite(s.State.User.ID, "", defs)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.slashCmds = created
	b.mu.Unlock()

	b.log.Info().Int("count", len(created)).Msg("slash commands registered")
	return nil
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	cmd, ok := command.Get(name)
	if !ok {
		b.log.Warn().Str("command", name).Msg("unknown interaction")
		return
	}

	ctx := &command.SlashInteractionContext{
		Session: s,
		Event:   i,
		Engine:  b.eng,
		Config:  b.cfg,
	}
	if err := cmd.Run(ctx); err != nil {
		b.log.Error().Err(err).Str("command", name).Msg("command failed")
		_ = command.RespondEphemeral(s, i, "Something went wrong on my side... please try again in a bit.")
	}
}
