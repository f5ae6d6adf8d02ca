package services

import (
	"strconv"
	"strings"

	"github.com/custodia-labs/orderbot/internal/core/domain"
)

var quantityWords = []string{
	"zero", "one", "two", "three", "four", "five",
	"six", "seven", "eight", "nine", "ten",
}

// Composer renders resolved lines as a spoken confirmation.
// It is a pure function of its input and holds no catalog state.
type Composer struct {
	// Greeting opens the confirmation; the customer's name is appended when known.
	Greeting string

	// Closing follows the joined line fragments.
	Closing string

	// Empty is used when there are no lines to confirm.
	Empty string
}

// DefaultComposer returns the standard confirmation template.
func DefaultComposer() Composer {
	return Composer{
		Greeting: domain.DefaultGreeting,
		Closing:  domain.DefaultClosing,
		Empty:    domain.DefaultEmptyMessage,
	}
}

// NewComposer builds a composer from order settings.
// Blank greeting and empty message fall back to the defaults; a blank
// closing is kept so the question can be dropped.
func NewComposer(settings domain.OrderSettings) Composer {
	c := DefaultComposer()
	if g := strings.TrimSpace(settings.Greeting); g != "" {
		c.Greeting = g
	}
	c.Closing = strings.TrimSpace(settings.Closing)
	if e := strings.TrimSpace(settings.Empty); e != "" {
		c.Empty = e
	}
	return c
}

// Compose joins every line fragment into a single confirmation sentence.
func (c Composer) Compose(lines []domain.ResolvedLine, customerName string) string {
	if len(lines) == 0 {
		return c.Empty
	}

	fragments := make([]string, len(lines))
	for i, line := range lines {
		fragments[i] = line.SpokenFragment
		if fragments[i] == "" {
			fragments[i] = LineFragment(line)
		}
	}

	var b strings.Builder
	b.WriteString(c.Greeting)
	if name := strings.TrimSpace(customerName); name != "" {
		b.WriteString(", ")
		b.WriteString(name)
	}
	b.WriteString("! I have ")
	b.WriteString(naturalJoin(fragments))
	b.WriteString(".")
	if c.Closing != "" {
		b.WriteString(" ")
		b.WriteString(c.Closing)
	}
	return b.String()
}

// LineFragment renders one resolved line, e.g. "two regular burger with
// cheese, no onions". Item names are not pluralised.
func LineFragment(line domain.ResolvedLine) string {
	var b strings.Builder
	b.WriteString(quantityWord(line.Quantity))
	b.WriteString(" ")
	b.WriteString(spokenVariation(line.ItemName, line.VariationName))

	if len(line.IncludedNames) > 0 {
		b.WriteString(" with ")
		b.WriteString(naturalJoin(line.IncludedNames))
	}
	if len(line.ExcludedNames) > 0 {
		if len(line.IncludedNames) > 0 {
			b.WriteString(", no ")
		} else {
			b.WriteString(" with no ")
		}
		b.WriteString(naturalJoin(line.ExcludedNames))
	}
	return b.String()
}

func quantityWord(n int) string {
	if n >= 0 && n < len(quantityWords) {
		return quantityWords[n]
	}
	return strconv.Itoa(n)
}

// spokenVariation moves the variation qualifier in front of the item name:
// ("Soda", "Large") -> "large soda". A variation that already names the
// item as whole words is spoken as is.
func spokenVariation(itemName, variationName string) string {
	item := strings.ToLower(strings.TrimSpace(itemName))
	variation := strings.ToLower(strings.TrimSpace(variationName))
	switch {
	case variation == "":
		return item
	case item == "":
		return variation
	case strings.Contains(" "+variation+" ", " "+item+" "):
		return variation
	default:
		return variation + " " + item
	}
}

// naturalJoin joins with commas and a final "and": "a", "a and b", "a, b and c".
func naturalJoin(parts []string) string {
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
	}
}
