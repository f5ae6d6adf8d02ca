package services

import (
	"strings"
	"sync"

	"github.com/custodia-labs/orderbot/internal/core/domain"
	"github.com/custodia-labs/orderbot/internal/logger"
)

// MatchStrategy names the rule that resolved a requested name.
type MatchStrategy string

// Strategies in priority order, most specific first.
const (
	MatchExplicitID   MatchStrategy = "explicit_id"
	MatchHintedLabel  MatchStrategy = "hinted_label"
	MatchLabel        MatchStrategy = "label"
	MatchItemName     MatchStrategy = "item_name"
	MatchHintKeyword  MatchStrategy = "hint_keyword"
	MatchRegularLabel MatchStrategy = "regular_label"
	MatchLabelPrefix  MatchStrategy = "label_prefix"
	MatchContains     MatchStrategy = "contains"
)

// NameMatch is a successful name resolution.
type NameMatch struct {
	Variation domain.Variation
	Strategy  MatchStrategy

	// ImpliedModifiers are the synonym rule's modifier phrases, if any.
	ImpliedModifiers []string
}

// nameQuery is a normalised request after synonym substitution.
type nameQuery struct {
	name    string
	hint    string
	keyword string
}

type nameStrategy struct {
	kind  MatchStrategy
	match func(*domain.Snapshot, nameQuery) (string, bool)
}

// nameStrategies is the fuzzy chain tried after explicit IDs, in order.
var nameStrategies = []nameStrategy{
	{MatchHintedLabel, matchHintedLabel},
	{MatchLabel, matchLabel},
	{MatchItemName, matchItemName},
	{MatchHintKeyword, matchHintKeyword},
	{MatchRegularLabel, matchRegularLabel},
	{MatchLabelPrefix, matchLabelPrefix},
	{MatchContains, matchContains},
}

// NameResolver maps free-text item references to exactly one variation.
// The synonym table can be swapped at runtime; resolution itself is pure.
type NameResolver struct {
	mu       sync.RWMutex
	synonyms map[string]domain.SynonymRule
}

// NewNameResolver creates a resolver with the given synonym table.
func NewNameResolver(rules []domain.SynonymRule) *NameResolver {
	r := &NameResolver{}
	r.SetSynonyms(rules)
	return r
}

// SetSynonyms atomically replaces the synonym table.
// Invalid rules are skipped; later rules override earlier ones with the same pattern.
func (r *NameResolver) SetSynonyms(rules []domain.SynonymRule) {
	table := make(map[string]domain.SynonymRule, len(rules))
	for _, rule := range rules {
		if rule.Validate() != nil {
			continue
		}
		key := Normalize(rule.Pattern)
		if key == "" {
			continue
		}
		table[key] = rule
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.synonyms = table
}

// SynonymCount returns the number of active rules.
func (r *NameResolver) SynonymCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.synonyms)
}

func (r *NameResolver) synonym(name string) (domain.SynonymRule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.synonyms[name]
	return rule, ok
}

// Resolve finds the variation for a requested line.
// An explicit variation ID is looked up directly and never fuzzy-matched.
func (r *NameResolver) Resolve(snap *domain.Snapshot, rawName, rawHint, explicitID string) (NameMatch, bool) {
	if snap == nil {
		return NameMatch{}, false
	}

	if explicitID != "" {
		v, ok := snap.Variation(strings.TrimSpace(explicitID))
		if !ok {
			return NameMatch{}, false
		}
		return NameMatch{Variation: v, Strategy: MatchExplicitID}, true
	}

	q := nameQuery{name: Normalize(rawName), hint: Normalize(rawHint)}
	var implied []string
	if rule, ok := r.synonym(q.name); ok {
		q.name = Normalize(rule.Item)
		q.keyword = Normalize(rule.Hint)
		implied = rule.Modifiers
	}
	if q.name == "" {
		return NameMatch{}, false
	}

	for _, s := range nameStrategies {
		id, ok := s.match(snap, q)
		if !ok {
			continue
		}
		v, ok := snap.Variation(id)
		if !ok {
			continue
		}
		logger.Debug("resolved %q via %s to %s", rawName, s.kind, v.Label)
		return NameMatch{Variation: v, Strategy: s.kind, ImpliedModifiers: implied}, true
	}
	return NameMatch{}, false
}

func matchHintedLabel(snap *domain.Snapshot, q nameQuery) (string, bool) {
	if q.hint == "" {
		return "", false
	}
	id, ok := snap.LabelIndex[q.name+" - "+q.hint]
	return id, ok
}

func matchLabel(snap *domain.Snapshot, q nameQuery) (string, bool) {
	id, ok := snap.LabelIndex[q.name]
	return id, ok
}

// matchItemName picks the first variation in the item's declared order.
func matchItemName(snap *domain.Snapshot, q nameQuery) (string, bool) {
	itemID, ok := snap.NameIndex[q.name]
	if !ok {
		return "", false
	}
	vars := snap.ItemVariations(itemID)
	if len(vars) == 0 {
		return "", false
	}
	return vars[0].ID, true
}

func matchHintKeyword(snap *domain.Snapshot, q nameQuery) (string, bool) {
	if q.keyword == "" {
		return "", false
	}
	for _, id := range snap.Order {
		v := snap.Variations[id]
		if strings.Contains(v.LabelKey, q.keyword) || strings.Contains(v.ItemKey, q.keyword) {
			return id, true
		}
	}
	return "", false
}

func matchRegularLabel(snap *domain.Snapshot, q nameQuery) (string, bool) {
	id, ok := snap.LabelIndex[q.name+" - regular"]
	return id, ok
}

func matchLabelPrefix(snap *domain.Snapshot, q nameQuery) (string, bool) {
	prefix := q.name + " -"
	for _, id := range snap.Order {
		if strings.HasPrefix(snap.Variations[id].LabelKey, prefix) {
			return id, true
		}
	}
	return "", false
}

func matchContains(snap *domain.Snapshot, q nameQuery) (string, bool) {
	for _, id := range snap.Order {
		if strings.Contains(snap.Variations[id].LabelKey, q.name) {
			return id, true
		}
	}
	return "", false
}
