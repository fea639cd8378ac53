package discord

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PedroPerillo/dndice/internal/models"
	"github.com/PedroPerillo/dndice/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
)

// maxListedPresets keeps list embeds under Discord's description limit
const maxListedPresets = 25

// renderRoll builds the public embed for a roll. title is the preset name
// for quick rolls and the notation otherwise.
func renderRoll(title string, result *models.RollResult, commentary *messaging.GetRollCommentaryOutput) *discordgo.MessageEmbed {
	if title == "" {
		title = result.Label()
	}

	fields := []*discordgo.MessageEmbedField{
		{
			Name:   "Rolls",
			Value:  formatFaces(result.IndividualRolls),
			Inline: true,
		},
		{
			Name:   "Dice",
			Value:  strconv.Itoa(result.DiceSum),
			Inline: true,
		},
	}

	if result.ModifierApplied != 0 {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Modifier",
			Value:  fmt.Sprintf("%+d", result.ModifierApplied),
			Inline: true,
		})
	}

	if result.Count > 1 {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Highest",
			Value:  strconv.Itoa(result.Highest),
			Inline: true,
		})
	}

	description := fmt.Sprintf("**Total: %d**", result.Total)
	if commentary != nil && commentary.Moment != messaging.MomentNone {
		description += fmt.Sprintf("\n*%s* %s", commentary.Title, commentary.Message)
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🎲 %s", title),
		Description: description,
		Color:       colorRoll,
		Fields:      fields,
		Footer:      &discordgo.MessageEmbedFooter{Text: result.Label()},
	}
}

// renderQuickRolls lists presets newest first with their ids so they can
// be passed back to delete and quick
func renderQuickRolls(presets []*models.QuickRoll) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "Quick rolls",
		Color: colorPreset,
	}

	if len(presets) == 0 {
		embed.Description = "No quick rolls saved yet. Use `/dndice save` to add one."
		return embed
	}

	var b strings.Builder
	for n, q := range presets {
		if n == maxListedPresets {
			fmt.Fprintf(&b, "…and %d more", len(presets)-maxListedPresets)
			break
		}
		fmt.Fprintf(&b, "`%s` **%s**", q.ID, q.DisplayName())
		if q.DisplayName() != q.Label() {
			fmt.Fprintf(&b, " (%s)", q.Label())
		}
		b.WriteString("\n")
	}
	embed.Description = strings.TrimRight(b.String(), "\n")
	return embed
}

func renderSaved(q *models.QuickRoll) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Quick roll saved",
		Description: fmt.Sprintf("**%s** (%s)", q.DisplayName(), q.Label()),
		Color:       colorPreset,
		Footer:      &discordgo.MessageEmbedFooter{Text: "id " + q.ID},
	}
}

func renderDeleted(id string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Quick roll deleted",
		Description: fmt.Sprintf("`%s` is gone.", id),
		Color:       colorPreset,
	}
}

func errorEmbed(message string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Error",
		Description: message,
		Color:       colorError,
	}
}

func formatFaces(faces []int) string {
	if len(faces) == 0 {
		return "none"
	}
	parts := make([]string, len(faces))
	for n, face := range faces {
		parts[n] = strconv.Itoa(face)
	}
	return strings.Join(parts, ", ")
}
