package profile

import (
	goctx "context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"aiko-bot/internal/command"
)

type ProfileCommand struct{}

func (c *ProfileCommand) Name() string        { return "profile" }
func (c *ProfileCommand) Description() string { return "See your bond, points, streak and memory" }
func (c *ProfileCommand) Category() string    { return "💞 Bond" }

func (c *ProfileCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *ProfileCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	user := context.EventUser()
	result, err := context.Engine.HandleCommand(goctx.Background(), "view-profile", user.ID, nil)
	if err != nil {
		return command.RespondEphemeral(context.Session, context.Event, command.UserFacingError(err))
	}

	return command.RespondEmbedEphemeral(context.Session, context.Event, &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s and Aiko", user.Username),
		Description: result.Text,
	})
}

func init() {
	command.Register(
		&ProfileCommand{},
		command.WithCommandLogger(),
	)
}
