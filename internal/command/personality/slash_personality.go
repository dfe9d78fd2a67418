package personality

import (
	goctx "context"

	"github.com/bwmarrin/discordgo"

	"aiko-bot/internal/command"
	"aiko-bot/internal/engine"
)

type PersonalityCommand struct{}

func (c *PersonalityCommand) Name() string        { return "personality" }
func (c *PersonalityCommand) Description() string { return "Pick how Aiko behaves with you" }
func (c *PersonalityCommand) Category() string    { return "🎭 Personality" }

func (c *PersonalityCommand) SlashDefinition() *discordgo.ApplicationCommand {
	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, style := range engine.Styles() {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  style,
			Value: style,
		})
	}
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "style",
				Description: "Personality family",
				Required:    true,
				Choices:     choices,
			},
		},
	}
}

func (c *PersonalityCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	user := context.EventUser()
	result, err := context.Engine.HandleCommand(goctx.Background(), "set-personality", user.ID, context.Options())
	if err != nil {
		return command.RespondEphemeral(context.Session, context.Event, command.UserFacingError(err))
	}

	return command.RespondEphemeral(context.Session, context.Event, result.Text)
}

func init() {
	command.Register(
		&PersonalityCommand{},
		command.WithCommandLogger(),
	)
}
