package bond

import (
	goctx "context"

	"github.com/bwmarrin/discordgo"

	"aiko-bot/internal/command"
)

type GiftCommand struct{}

func (c *GiftCommand) Name() string        { return "gift" }
func (c *GiftCommand) Description() string { return "Spend points to deepen your bond with Aiko" }
func (c *GiftCommand) Category() string    { return "💞 Bond" }

func (c *GiftCommand) SlashDefinition() *discordgo.ApplicationCommand {
	minAmount := float64(1)
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "amount",
				Description: "Points to spend (5 points = 1% bond). Omit to spend as much as possible.",
				Required:    false,
				MinValue:    &minAmount,
			},
		},
	}
}

func (c *GiftCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	user := context.EventUser()
	result, err := context.Engine.HandleCommand(goctx.Background(), "gift-points-for-bond", user.ID, context.Options())
	if err != nil {
		return command.RespondEphemeral(context.Session, context.Event, command.UserFacingError(err))
	}

	return command.Respond(context.Session, context.Event, result.Text)
}

func init() {
	command.Register(
		&GiftCommand{},
		command.WithCommandLogger(),
	)
}
