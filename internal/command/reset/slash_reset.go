package reset

import (
	goctx "context"

	"github.com/bwmarrin/discordgo"

	"aiko-bot/internal/command"
)

type ResetCommand struct{}

func (c *ResetCommand) Name() string        { return "reset-me" }
func (c *ResetCommand) Description() string { return "Erase everything Aiko knows about you" }
func (c *ResetCommand) Category() string    { return "🧠 Memory" }

func (c *ResetCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *ResetCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	user := context.EventUser()
	result, err := context.Engine.HandleCommand(goctx.Background(), "reset-all-data", user.ID, nil)
	if err != nil {
		return command.RespondEphemeral(context.Session, context.Event, command.UserFacingError(err))
	}

	return command.RespondEphemeral(context.Session, context.Event, result.Text)
}

func init() {
	command.Register(
		&ResetCommand{},
		command.WithCommandLogger(),
	)
}
