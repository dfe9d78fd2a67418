package help

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"

	"aiko-bot/internal/command"
)

type HelpCommand struct{}

func (c *HelpCommand) Name() string        { return "help" }
func (c *HelpCommand) Description() string { return "List everything Aiko can do" }
func (c *HelpCommand) Category() string    { return "ℹ️ Info" }

func (c *HelpCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *HelpCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	byCategory := map[string][]command.Command{}
	for _, cmd := range command.All() {
		byCategory[cmd.Category()] = append(byCategory[cmd.Category()], cmd)
	}

	categories := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	var b strings.Builder
	b.WriteString("Mention me or DM me to chat. Beyond that:\n\n")
	for _, cat := range categories {
		fmt.Fprintf(&b, "**%s**\n", cat)
		for _, cmd := range byCategory[cat] {
			fmt.Fprintf(&b, "`/%s` · %s\n", cmd.Name(), cmd.Description())
		}
		b.WriteString("\n")
	}

	return command.RespondEmbedEphemeral(context.Session, context.Event, &discordgo.MessageEmbed{
		Title:       "Aiko",
		Description: b.String(),
	})
}

func init() {
	command.Register(
		&HelpCommand{},
		command.WithCommandLogger(),
	)
}
