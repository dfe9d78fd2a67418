package command

import (
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

type Middleware func(Command) Command

type wrappedCommand struct {
	Command
	wrap func(ctx interface{}) error
}

func (w *wrappedCommand) Run(ctx interface{}) error {
	return w.wrap(ctx)
}

// SlashDefinition delegates through the wrapper chain so a wrapped command
// still registers with Discord.
func (w *wrappedCommand) SlashDefinition() *discordgo.ApplicationCommand {
	if sp, ok := w.Command.(SlashProvider); ok {
		return sp.SlashDefinition()
	}
	return nil
}

// WithCommandLogger logs every invocation with the calling user.
func WithCommandLogger() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				if v, ok := ctx.(*SlashInteractionContext); ok {
					user := v.EventUser()
					log.Info().
						Str("command", cmd.Name()).
						Str("user", user.ID).
						Str("username", user.Username).
						Msg("command invoked")
				}
				return cmd.Run(ctx)
			},
		}
	}
}

// WithGuildOnly rejects DM invocations.
func WithGuildOnly() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				if v, ok := ctx.(*SlashInteractionContext); ok && v.Event.GuildID == "" {
					return RespondEphemeral(v.Session, v.Event, "This command only works inside a server.")
				}
				return cmd.Run(ctx)
			},
		}
	}
}

// WithOwnerOnly restricts a command to the configured bot owner.
func WithOwnerOnly() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				if v, ok := ctx.(*SlashInteractionContext); ok {
					if v.Config == nil || v.Config.OwnerID == "" || v.EventUser().ID != v.Config.OwnerID {
						return RespondEphemeral(v.Session, v.Event, "Only my owner can do that. Nice try though. 😏")
					}
				}
				return cmd.Run(ctx)
			},
		}
	}
}
