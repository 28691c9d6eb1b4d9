package docs

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// embeddedDocs holds the default knowledge entries shipped with the
// library. Project-level files override entries with the same topic.
//
//go:embed data/*.yaml
var embeddedDocs embed.FS

// Entry is one titled knowledge document.
type Entry struct {
	Topic string   `yaml:"topic"`
	Title string   `yaml:"title"`
	Body  string   `yaml:"body"`
	Tags  []string `yaml:"tags,omitempty"`
}

// file is the on-disk document collection format.
type file struct {
	Topics []Entry `yaml:"topics"`
}

// Store is an immutable topic-keyed lookup table of knowledge entries.
// It is constructed once by Load and safe for concurrent readers.
type Store struct {
	entries map[string]Entry
}

// Load builds a Store from the embedded defaults plus any *.yaml files
// found in the given directories. Directories are read in order and
// later entries override earlier ones with the same topic. Missing
// directories are skipped.
func Load(dirs ...string) (*Store, error) {
	entries := make(map[string]Entry)

	names, err := embeddedDocs.ReadDir("data")
	if err != nil {
		return nil, fmt.Errorf("read embedded docs: %w", err)
	}
	for _, name := range names {
		data, readErr := embeddedDocs.ReadFile("data/" + name.Name())
		if readErr != nil {
			return nil, fmt.Errorf("read embedded doc %s: %w", name.Name(), readErr)
		}
		if addErr := addEntries(entries, data); addErr != nil {
			return nil, fmt.Errorf("parse embedded doc %s: %w", name.Name(), addErr)
		}
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		matches, globErr := filepath.Glob(filepath.Join(dir, "*.yaml"))
		if globErr != nil {
			return nil, fmt.Errorf("scan docs dir %s: %w", dir, globErr)
		}
		sort.Strings(matches)
		for _, path := range matches {
			data, readErr := os.ReadFile(path)
			if readErr != nil {
				return nil, fmt.Errorf("read doc file %s: %w", path, readErr)
			}
			if addErr := addEntries(entries, data); addErr != nil {
				return nil, fmt.Errorf("parse doc file %s: %w", path, addErr)
			}
		}
	}

	return &Store{entries: entries}, nil
}

func addEntries(entries map[string]Entry, data []byte) error {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return err
	}
	for _, e := range f.Topics {
		if e.Topic == "" {
			return fmt.Errorf("entry %q has no topic", e.Title)
		}
		entries[normalize(e.Topic)] = e
	}
	return nil
}

// Lookup returns the entry for a topic. Topic matching is
// case-insensitive.
func (s *Store) Lookup(topic string) (Entry, bool) {
	e, ok := s.entries[normalize(topic)]
	return e, ok
}

// Topics returns all known topics in sorted order.
func (s *Store) Topics() []string {
	topics := make([]string, 0, len(s.entries))
	for t := range s.entries {
		topics = append(topics, t)
	}
	sort.Strings(topics)
	return topics
}

// Search returns entries whose topic, title, or tags contain the query,
// case-insensitively, in topic order.
func (s *Store) Search(query string) []Entry {
	query = normalize(query)
	var found []Entry
	for _, t := range s.Topics() {
		e := s.entries[t]
		if strings.Contains(t, query) || strings.Contains(normalize(e.Title), query) {
			found = append(found, e)
			continue
		}
		for _, tag := range e.Tags {
			if strings.Contains(normalize(tag), query) {
				found = append(found, e)
				break
			}
		}
	}
	return found
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
