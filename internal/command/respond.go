package command

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"aiko-bot/internal/engine"
)

const EmbedColor = 0xf06292

// Respond sends a public message response to an interaction.
func Respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
}

// RespondEphemeral sends an ephemeral message response to an interaction.
func RespondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// RespondEmbed sends a public embed response to an interaction.
func RespondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) error {
	if embed.Color == 0 {
		embed.Color = EmbedColor
	}
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}},
	})
}

// RespondEmbedEphemeral sends an ephemeral embed response to an interaction.
func RespondEmbedEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) error {
	if embed.Color == 0 {
		embed.Color = EmbedColor
	}
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags:  discordgo.MessageFlagsEphemeral,
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

// UserFacingError turns an engine validation error into a rejection line.
func UserFacingError(err error) string {
	switch {
	case errors.Is(err, engine.ErrInvalidAmount):
		return "That amount doesn't make sense. Give me a positive number."
	case errors.Is(err, engine.ErrInsufficientPoints):
		return "You don't have enough points for that. Keep our streak going to earn more!"
	case errors.Is(err, engine.ErrBondMaxed):
		return "Our bond is already at 100%. There's nothing left to deepen. 💕"
	case errors.Is(err, engine.ErrUnknownStyle):
		return fmt.Sprintf("I don't know that personality. Pick one of: %v.", engine.Styles())
	case errors.Is(err, engine.ErrInvalidEmail):
		return "That doesn't look like an email address."
	case errors.Is(err, engine.ErrEmailNotFound):
		return "I couldn't find that email among confirmed payments. Double-check it matches your payment receipt."
	case errors.Is(err, engine.ErrAlreadyPremium):
		return "You're already premium, silly. 💎"
	case errors.Is(err, engine.ErrNoStreakToRestore):
		return "There's no broken streak to restore."
	case errors.Is(err, engine.ErrRestoreDenied):
		return "Streak restoration is for premium members or recent voters. Vote for me and try again!"
	default:
		return "Something went wrong on my side... please try again in a bit."
	}
}
