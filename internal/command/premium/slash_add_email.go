package premium

import (
	"github.com/bwmarrin/discordgo"

	"aiko-bot/internal/command"
)

type AddEmailCommand struct{}

func (c *AddEmailCommand) Name() string        { return "add-premium-email" }
func (c *AddEmailCommand) Description() string { return "Add a confirmed payment email to the allowlist" }
func (c *AddEmailCommand) Category() string    { return "💎 Premium" }

func (c *AddEmailCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "email",
				Description: "Payment email to allow",
				Required:    true,
			},
		},
	}
}

func (c *AddEmailCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	email := context.Options()["email"]
	if err := context.Engine.AddPremiumEmail(email); err != nil {
		return command.RespondEphemeral(context.Session, context.Event, command.UserFacingError(err))
	}

	return command.RespondEphemeral(context.Session, context.Event, "Email added. The buyer can now `/claim-premium`.")
}

func init() {
	command.Register(
		&AddEmailCommand{},
		command.WithOwnerOnly(),
		command.WithCommandLogger(),
	)
}
