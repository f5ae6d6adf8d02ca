package services

import (
	"strings"

	"github.com/custodia-labs/orderbot/internal/core/domain"
)

// ModifierResolution is the outcome of resolving one line's modifier phrases.
type ModifierResolution struct {
	// ModifierIDs are catalog modifiers bound to the line's item, without duplicates.
	ModifierIDs []string

	// NoteFragments are phrases kept as free text: exclusions and unknown modifiers.
	NoteFragments []string

	// IncludedNames are the canonical names behind ModifierIDs.
	IncludedNames []string

	// ExcludedNames are the targets of negated phrases.
	ExcludedNames []string
}

// ResolveModifiers maps free-text modifier phrases to modifiers bound to
// itemID. Negated phrases ("no onions") are exclusions only and never add a
// modifier. Unknown phrases are demoted to note fragments, never errors.
func ResolveModifiers(snap *domain.Snapshot, itemID string, phrases []string) ModifierResolution {
	var res ModifierResolution
	var binding domain.ModifierBinding
	if snap != nil {
		binding = snap.Binding(itemID)
	}
	seen := make(map[string]bool)

	for _, raw := range phrases {
		raw = strings.TrimSpace(raw)
		phrase := Normalize(raw)
		if phrase == "" {
			continue
		}

		if target, ok := negationTarget(phrase); ok {
			if target != "" {
				res.ExcludedNames = append(res.ExcludedNames, target)
			}
			res.NoteFragments = append(res.NoteFragments, raw)
			continue
		}

		id, ok := binding[phrase]
		if !ok {
			id, ok = binding[qualifierBase(phrase)]
		}
		if !ok {
			res.NoteFragments = append(res.NoteFragments, raw)
			continue
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		res.ModifierIDs = append(res.ModifierIDs, id)
		res.IncludedNames = append(res.IncludedNames, strings.ToLower(snap.Modifiers[id].Name))
	}

	return res
}
