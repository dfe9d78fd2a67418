package premium

import (
	goctx "context"

	"github.com/bwmarrin/discordgo"

	"aiko-bot/internal/command"
)

type ClaimPremiumCommand struct{}

func (c *ClaimPremiumCommand) Name() string        { return "claim-premium" }
func (c *ClaimPremiumCommand) Description() string { return "Activate premium with your payment email" }
func (c *ClaimPremiumCommand) Category() string    { return "💎 Premium" }

func (c *ClaimPremiumCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "email",
				Description: "The email you paid with",
				Required:    true,
			},
		},
	}
}

func (c *ClaimPremiumCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	user := context.EventUser()
	result, err := context.Engine.HandleCommand(goctx.Background(), "claim-premium", user.ID, context.Options())
	if err != nil {
		return command.RespondEphemeral(context.Session, context.Event, command.UserFacingError(err))
	}

	return command.RespondEphemeral(context.Session, context.Event, result.Text)
}

func init() {
	command.Register(
		&ClaimPremiumCommand{},
		command.WithCommandLogger(),
	)
}
