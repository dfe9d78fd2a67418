package command

import (
	"strconv"

	"github.com/bwmarrin/discordgo"

	"aiko-bot/internal/config"
	"aiko-bot/internal/engine"
)

type Command interface {
	Name() string
	Description() string
	Category() string
	Run(ctx interface{}) error
}

type SlashProvider interface {
	SlashDefinition() *discordgo.ApplicationCommand
}

type SlashInteractionContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Engine  *engine.Engine
	Config  *config.Config
}

// EventUser resolves the invoking user for guild and DM interactions alike.
func (c *SlashInteractionContext) EventUser() *discordgo.User {
	if c.Event.Member != nil && c.Event.Member.User != nil {
		return c.Event.Member.User
	}
	if c.Event.User != nil {
		return c.Event.User
	}
	return &discordgo.User{ID: "unknown", Username: "Unknown"}
}

// Options flattens the interaction's options into a string map, the shape the
// engine dispatcher expects.
func (c *SlashInteractionContext) Options() map[string]string {
	args := map[string]string{}
	for _, opt := range c.Event.ApplicationCommandData().Options {
		switch opt.Type {
		case discordgo.ApplicationCommandOptionString:
			args[opt.Name] = opt.StringValue()
		case discordgo.ApplicationCommandOptionInteger:
			args[opt.Name] = strconv.FormatInt(opt.IntValue(), 10)
		}
	}
	return args
}
