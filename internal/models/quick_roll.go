package models

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Bounds applied to every quick roll before it is stored
const (
	MinCount      = 1
	MaxCount      = 20
	MinModifier   = -50
	MaxModifier   = 50
	MaxNameLength = 30
)

// LocalOwnerID is the owner of presets kept in a client's own storage
const LocalOwnerID = "local"

// DieSizes lists the dice a quick roll may use, smallest first
var DieSizes = []int{4, 6, 8, 10, 12, 20, 100}

// QuickRoll is a named, reusable roll configuration
type QuickRoll struct {
	// ID is unique within the owner's collection
	ID string `json:"id"`

	// OwnerID is the identity the preset belongs to, or LocalOwnerID
	OwnerID string `json:"user_id,omitempty"`

	// Name is an optional display label
	Name string `json:"name,omitempty"`

	// Count is the number of dice
	Count int `json:"count"`

	// DieSize is the number of faces per die
	DieSize int `json:"dice_type"`

	// Modifier is added to the dice sum, 0 means none
	Modifier int `json:"modifier"`

	// CreatedAt orders the owner's collection
	CreatedAt time.Time `json:"created_at"`
}

// Label is derived from the dice fields on every call
func (q *QuickRoll) Label() string {
	return FormatLabel(q.Count, q.DieSize, q.Modifier)
}

// DisplayName is the trimmed name, or the label when the name is blank
func (q *QuickRoll) DisplayName() string {
	if name := strings.TrimSpace(q.Name); name != "" {
		return name
	}
	return q.Label()
}

// FormatLabel renders dice notation such as 2d20, 1d20+5 or 3d8-2
func FormatLabel(count, dieSize, modifier int) string {
	label := strconv.Itoa(count) + "d" + strconv.Itoa(dieSize)
	if modifier > 0 {
		label += "+" + strconv.Itoa(modifier)
	} else if modifier < 0 {
		label += strconv.Itoa(modifier)
	}
	return label
}

// IsValidDieSize reports whether n is one of DieSizes
func IsValidDieSize(n int) bool {
	for _, size := range DieSizes {
		if size == n {
			return true
		}
	}
	return false
}

// ClampCount forces a dice count into [MinCount, MaxCount]
func ClampCount(n int) int {
	return clamp(n, MinCount, MaxCount)
}

// ClampModifier forces a modifier into [MinModifier, MaxModifier]
func ClampModifier(n int) int {
	return clamp(n, MinModifier, MaxModifier)
}

// NormalizeName trims the name and cuts it to MaxNameLength characters
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) <= MaxNameLength {
		return name
	}
	runes := []rune(name)
	return strings.TrimSpace(string(runes[:MaxNameLength]))
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
