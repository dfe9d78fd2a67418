package memory

import (
	goctx "context"

	"github.com/bwmarrin/discordgo"

	"aiko-bot/internal/command"
)

type ClearMemoryCommand struct{}

func (c *ClearMemoryCommand) Name() string        { return "clear-memory" }
func (c *ClearMemoryCommand) Description() string { return "Make Aiko forget your conversations" }
func (c *ClearMemoryCommand) Category() string    { return "🧠 Memory" }

func (c *ClearMemoryCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *ClearMemoryCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	user := context.EventUser()
	result, err := context.Engine.HandleCommand(goctx.Background(), "clear-memory", user.ID, nil)
	if err != nil {
		return command.RespondEphemeral(context.Session, context.Event, command.UserFacingError(err))
	}

	return command.RespondEphemeral(context.Session, context.Event, result.Text)
}

func init() {
	command.Register(
		&ClearMemoryCommand{},
		command.WithCommandLogger(),
	)
}
