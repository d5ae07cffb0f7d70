package migration

import (
	"fmt"
	"strings"
	"time"
)

// BackfillField copies From into To on every record where To is missing
type BackfillField struct {
	From string
	To   string
}

// Description returns a human-readable description of the command
func (b *BackfillField) Description() string {
	return fmt.Sprintf("Backfill missing '%s' from '%s'", b.To, b.From)
}

// Validate checks if the backfill can be executed
func (b *BackfillField) Validate(ctx *MigrationContext) []Message {
	var messages []Message

	if strings.TrimSpace(b.From) == "" || strings.TrimSpace(b.To) == "" {
		messages = append(messages, Message{
			Level: LevelError,
			Text:  "Source and target field names cannot be empty",
		})
		return messages
	}

	if b.From == b.To {
		messages = append(messages, Message{
			Level: LevelError,
			Text:  "Source and target fields are the same",
		})
	}

	return messages
}

// Execute performs the backfill
func (b *BackfillField) Execute(ctx *MigrationContext) *Result {
	result := newResult(len(ctx.Records))
	startTime := time.Now()

	if !result.absorbValidation(b.Validate(ctx)) {
		return result
	}

	skipped := 0
	for _, rec := range ctx.Records {
		if rec[b.To] != nil {
			continue
		}
		source, ok := rec[b.From]
		if !ok || source == nil {
			skipped++
			continue
		}
		rec[b.To] = source
		result.recordModified(rec, fmt.Sprintf("backfilled '%s' from '%s'", b.To, b.From))
	}

	if skipped > 0 {
		result.Messages = append(result.Messages, Message{
			Level: LevelWarning,
			Text:  fmt.Sprintf("%d records have neither '%s' nor '%s'", skipped, b.To, b.From),
		})
	}

	result.Stats.Duration = time.Since(startTime)
	return result
}
