package discord

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"

	"aiko-bot/internal/engine"
)

const maxDiscordMessage = 2000

// onMessageCreate qualifies inbound chat traffic. A message reaches the
// engine when it is a DM, mentions the bot, or replies to one of the bot's
// messages. Everything else is ignored without side effects.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.Author.ID == s.State.User.ID {
		return
	}

	surface, ok := b.qualify(s, m)
	if !ok {
		return
	}

	content := stripMention(m.Content, s.State.User.ID)
	if content == "" {
		content = "hi"
	}

	// Best effort; a failed indicator never blocks the reply.
	_ = s.ChannelTyping(m.ChannelID)

	reply, err := b.eng.HandleInboundMessage(context.Background(), engine.InboundMessage{
		UserID:   m.Author.ID,
		Username: m.Author.Username,
		Content:  content,
		Surface:  surface,
	})
	if err != nil {
		b.log.Error().Err(err).Str("user", m.Author.ID).Msg("message handling failed")
	}
	if reply == "" {
		return
	}

	if surface != engine.SurfaceDM {
		reply = "<@" + m.Author.ID + "> " + reply
	}
	b.sendReply(s, m.ChannelID, reply)
}

// qualify decides whether a message is addressed to the bot and on which
// surface it arrived.
func (b *Bot) qualify(s *discordgo.Session, m *discordgo.MessageCreate) (engine.Surface, bool) {
	if m.GuildID == "" {
		return engine.SurfaceDM, true
	}

	if b.cfg.AutoRespondChannelID != "" && m.ChannelID == b.cfg.AutoRespondChannelID {
		return engine.SurfaceAuto, true
	}

	for _, u := range m.Mentions {
		if u.ID == s.State.User.ID {
			return engine.SurfaceGuild, true
		}
	}

	// Reply to one of the bot's messages counts as addressing it. A failed
	// lookup means we cannot confirm the target, so the message does not
	// qualify.
	if m.MessageReference != nil && m.MessageReference.MessageID != "" {
		ref, err := s.ChannelMessage(m.MessageReference.ChannelID, m.MessageReference.MessageID)
		if err == nil && ref.Author != nil && ref.Author.ID == s.State.User.ID {
			return engine.SurfaceGuild, true
		}
	}

	return "", false
}

// sendReply delivers a reply, splitting it to fit the message length limit.
// Delivery failures are logged and swallowed; the turn is already committed.
func (b *Bot) sendReply(s *discordgo.Session, channelID, reply string) {
	for _, chunk := range splitMessage(reply, maxDiscordMessage) {
		if chunk == "" {
			continue
		}
		if _, err := s.ChannelMessageSend(channelID, chunk); err != nil {
			b.log.Warn().Err(err).Str("channel", channelID).Msg("reply delivery failed")
			return
		}
	}
}

func stripMention(content, botID string) string {
	content = strings.ReplaceAll(content, "<@"+botID+">", "")
	content = strings.ReplaceAll(content, "<@!"+botID+">", "")
	return strings.TrimSpace(content)
}

// splitMessage breaks text into chunks of at most limit runes, preferring
// newline then space boundaries.
func splitMessage(text string, limit int) []string {
	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}

	var chunks []string
	for len(runes) > limit {
		cut := limit
		for i := limit; i > limit/2; i-- {
			if runes[i-1] == '\n' {
				cut = i
				break
			}
		}
		if cut == limit {
			for i := limit; i > limit/2; i-- {
				if runes[i-1] == ' ' {
					cut = i
					break
				}
			}
		}
		chunks = append(chunks, strings.TrimSpace(string(runes[:cut])))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		chunks = append(chunks, strings.TrimSpace(string(runes)))
	}
	return chunks
}
