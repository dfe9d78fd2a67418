package bond

import (
	goctx "context"

	"github.com/bwmarrin/discordgo"

	"aiko-bot/internal/command"
)

type RestoreStreakCommand struct{}

func (c *RestoreStreakCommand) Name() string        { return "restore-streak" }
func (c *RestoreStreakCommand) Description() string { return "Bring back a broken daily streak" }
func (c *RestoreStreakCommand) Category() string    { return "💞 Bond" }

func (c *RestoreStreakCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *RestoreStreakCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	user := context.EventUser()
	result, err := context.Engine.HandleCommand(goctx.Background(), "restore-streak", user.ID, nil)
	if err != nil {
		return command.RespondEphemeral(context.Session, context.Event, command.UserFacingError(err))
	}

	return command.Respond(context.Session, context.Event, result.Text)
}

func init() {
	command.Register(
		&RestoreStreakCommand{},
		command.WithCommandLogger(),
	)
}
