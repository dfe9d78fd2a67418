package engine

import "aiko-bot/internal/ai"

// MemoryFullNotice is sent instead of an AI reply the first time a
// non-premium user fills their history. The turn is spent on the notice.
const MemoryFullNotice = "Ahh... my head is so full of our memories together that I can't hold any more! 😳 " +
	"From now on I'll slowly let the oldest ones fade to make room. " +
	"Premium keeps every single one forever... just saying. 💕"

// checkMemory applies the non-premium history cap to a record about to take a
// new turn. It returns true when this turn must be spent on the one-shot
// limit notice. Otherwise, an over-cap history is truncated to the most
// recent cap−1 pairs so the new exchange fits.
func (e *Engine) checkMemory(rec *UserRecord) (notice bool) {
	if rec.Premium {
		return false
	}
	if rec.MemoryPairs() < e.cfg.MemoryCap {
		return false
	}
	if !rec.MemoryLimitNotice {
		rec.MemoryLimitNotice = true
		return true
	}
	truncateMemory(rec, e.cfg.MemoryCap-1)
	return false
}

// truncateMemory keeps only the most recent n exchange pairs, oldest first
// eviction.
func truncateMemory(rec *UserRecord, n int) {
	if n < 0 {
		n = 0
	}
	keep := n * 2
	if len(rec.Memory) > keep {
		rec.Memory = append([]MemoryEntry(nil), rec.Memory[len(rec.Memory)-keep:]...)
	}
}

// buildContext composes the completion request: exactly one system message,
// the stored history in chronological order, then the new prompt.
func buildContext(systemPrompt string, rec *UserRecord, prompt string) []ai.Message {
	messages := make([]ai.Message, 0, len(rec.Memory)+2)
	messages = append(messages, ai.Message{Role: "system", Content: systemPrompt})
	for _, m := range rec.Memory {
		messages = append(messages, ai.Message{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, ai.Message{Role: "user", Content: prompt})
	return messages
}

// appendExchange stores one completed turn.
func appendExchange(rec *UserRecord, userMsg, reply string) {
	rec.Memory = append(rec.Memory,
		MemoryEntry{Role: "user", Content: userMsg},
		MemoryEntry{Role: "assistant", Content: reply},
	)
}

// clearMemory wipes history and re-arms the limit notice, so a future re-fill
// warns again.
func clearMemory(rec *UserRecord) {
	rec.Memory = []MemoryEntry{}
	rec.MemoryLimitNotice = false
}
