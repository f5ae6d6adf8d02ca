package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/orderbot/internal/core/domain"
	"github.com/custodia-labs/orderbot/internal/core/ports/driven"
	"github.com/custodia-labs/orderbot/internal/logger"
)

// SynonymsFileName is the default synonym table file inside the config dir.
const SynonymsFileName = "synonyms.toml"

// reloadDebounce coalesces the burst of events an editor save produces.
const reloadDebounce = 100 * time.Millisecond

// Ensure SynonymStore implements the interface.
var _ driven.SynonymStore = (*SynonymStore)(nil)

// synonymFile is the on-disk layout:
//
//	[[synonym]]
//	pattern = "cheeseburger"
//	item = "Burger"
//	modifiers = ["add cheese"]
type synonymFile struct {
	Synonyms []domain.SynonymRule `toml:"synonym"`
}

// SynonymStore reads the synonym table from a TOML file.
type SynonymStore struct {
	path string
}

// NewSynonymStore creates a store for the file at path.
// The file does not need to exist; a missing file is an empty table.
func NewSynonymStore(path string) *SynonymStore {
	return &SynonymStore{path: path}
}

// Path returns the synonym file path.
func (s *SynonymStore) Path() string {
	return s.path
}

// List parses the synonym file. Rows without a pattern or item are skipped.
func (s *SynonymStore) List(_ context.Context) ([]domain.SynonymRule, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading synonyms: %w", err)
	}

	var file synonymFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing synonyms %s: %w", s.path, err)
	}

	rules := make([]domain.SynonymRule, 0, len(file.Synonyms))
	for i, rule := range file.Synonyms {
		rule.Pattern = strings.TrimSpace(rule.Pattern)
		rule.Item = strings.TrimSpace(rule.Item)
		if err := rule.Validate(); err != nil {
			logger.Warn("synonyms: skipping row %d: pattern and item are required", i+1)
			continue
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// Watch reloads the table whenever the file is written, created or
// replaced, and passes the result to onChange. Unparsable edits are logged
// and ignored so the last good table stays active.
func (s *SynonymStore) Watch(ctx context.Context, onChange func([]domain.SynonymRule)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often save by rename, so watch the directory, not the file.
	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	name := filepath.Clean(s.path)
	var debounce <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			debounce = time.After(reloadDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("synonyms: watcher error: %v", err)
		case <-debounce:
			debounce = nil
			rules, err := s.List(ctx)
			if err != nil {
				logger.Warn("synonyms: keeping previous table: %v", err)
				continue
			}
			logger.Info("synonyms: reloaded %d rule(s) from %s", len(rules), s.path)
			onChange(rules)
		}
	}
}
