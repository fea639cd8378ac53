package discord

import (
	"fmt"
	"testing"

	"github.com/PedroPerillo/dndice/internal/models"
	"github.com/PedroPerillo/dndice/internal/services/messaging"
	"github.com/stretchr/testify/assert"
)

func TestRenderRoll(t *testing.T) {
	result := &models.RollResult{Count: 3, DieSize: 8, IndividualRolls: []int{2, 8, 5}, DiceSum: 15, ModifierApplied: -2, Total: 13, Highest: 8}

	embed := renderRoll("", result, nil)

	assert.Equal(t, "🎲 3d8-2", embed.Title)
	assert.Equal(t, "**Total: 13**", embed.Description)
	assert.Len(t, embed.Fields, 4)
	assert.Equal(t, "2, 8, 5", embed.Fields[0].Value)
	assert.Equal(t, "15", embed.Fields[1].Value)
	assert.Equal(t, "-2", embed.Fields[2].Value)
	assert.Equal(t, "8", embed.Fields[3].Value)
	assert.Equal(t, "3d8-2", embed.Footer.Text)
}

func TestRenderRollSingleDieNoModifier(t *testing.T) {
	result := &models.RollResult{Count: 1, DieSize: 20, IndividualRolls: []int{20}, DiceSum: 20, Total: 20, Highest: 20}

	embed := renderRoll("Perception", result, nil)

	assert.Equal(t, "🎲 Perception", embed.Title)
	assert.Len(t, embed.Fields, 2)
}

func TestRenderRollCommentary(t *testing.T) {
	result := &models.RollResult{Count: 1, DieSize: 20, IndividualRolls: []int{20}, DiceSum: 20, Total: 20, Highest: 20}

	embed := renderRoll("", result, &messaging.GetRollCommentaryOutput{
		Moment:  messaging.MomentCritical,
		Title:   "Nat 20!",
		Message: "Alice rolled a natural 20! That's 20.",
	})

	assert.Equal(t, "**Total: 20**\n*Nat 20!* Alice rolled a natural 20! That's 20.", embed.Description)

	embed = renderRoll("", result, &messaging.GetRollCommentaryOutput{Moment: messaging.MomentNone})
	assert.Equal(t, "**Total: 20**", embed.Description)
}

func TestRenderQuickRollsEmpty(t *testing.T) {
	embed := renderQuickRolls(nil)

	assert.Contains(t, embed.Description, "No quick rolls saved yet")
}

func TestRenderQuickRollsTruncates(t *testing.T) {
	var presets []*models.QuickRoll
	for n := 0; n < maxListedPresets+3; n++ {
		presets = append(presets, &models.QuickRoll{ID: fmt.Sprint(n), Count: 1, DieSize: 20})
	}

	embed := renderQuickRolls(presets)

	assert.Contains(t, embed.Description, "…and 3 more")
	assert.NotContains(t, embed.Description, fmt.Sprintf("`%d`", maxListedPresets))
}

func TestFormatFaces(t *testing.T) {
	assert.Equal(t, "none", formatFaces(nil))
	assert.Equal(t, "4", formatFaces([]int{4}))
}
