package profile

import (
	goctx "context"

	"github.com/bwmarrin/discordgo"

	"aiko-bot/internal/command"
)

type LeaderboardCommand struct{}

func (c *LeaderboardCommand) Name() string        { return "leaderboard" }
func (c *LeaderboardCommand) Description() string { return "Who is Aiko closest to?" }
func (c *LeaderboardCommand) Category() string    { return "💞 Bond" }

func (c *LeaderboardCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *LeaderboardCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	user := context.EventUser()
	result, err := context.Engine.HandleCommand(goctx.Background(), "view-leaderboard", user.ID, nil)
	if err != nil {
		return command.RespondEphemeral(context.Session, context.Event, command.UserFacingError(err))
	}

	return command.RespondEmbed(context.Session, context.Event, &discordgo.MessageEmbed{
		Title:       "💖 Closest to Aiko",
		Description: result.Text,
	})
}

func init() {
	command.Register(
		&LeaderboardCommand{},
		command.WithGuildOnly(),
		command.WithCommandLogger(),
	)
}
