package rcscript

import (
	"fmt"
	"maps"
	"strings"
	"sync"
)

const overflowStatKey = "__overflow__"

// Stats counts what happened while scripts were generated from a Build.
type Stats struct {
	// WrittenResources counts rendered resources per language.
	WrittenResources map[string]int
	// SkippedResources counts resources without data for a language, keyed
	// "lang:kind:id".
	SkippedResources map[string]int
	// IgnoredIdentifiers counts meaningful identifiers the script dropped, keyed
	// "lang:kind:id".
	IgnoredIdentifiers map[string]int
}

type buildStats struct {
	mu                 sync.Mutex
	writtenResources   map[string]int
	skippedResources   map[string]int
	ignoredIdentifiers map[string]int
	maxKeys            int
}

func newBuildStats(maxKeys int) *buildStats {
	s := &buildStats{maxKeys: maxKeys}
	s.reset()
	return s
}

// trimStatKey bounds key length; resource names are user supplied.
func trimStatKey(key string) string {
	const maxLen = 120
	if key = strings.TrimSpace(key); len(key) > maxLen {
		return key[:maxLen]
	}
	return key
}

func resourceStatKey(lang Lang, kind Kind, id IDOrName) string {
	return fmt.Sprintf("%04x:%s:%s", lang.LangID(), kind, id)
}

func (s *buildStats) increment(target map[string]int, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if target == nil {
		return
	}
	target[s.capKey(target, trimStatKey(key))]++
}

// capKey folds keys not yet counted into overflowStatKey once target is full.
// The overflow bucket takes one of the maxKeys slots.
func (s *buildStats) capKey(target map[string]int, key string) string {
	if s.maxKeys <= 0 {
		return key
	}
	if _, ok := target[key]; ok {
		return key
	}
	room := s.maxKeys - 1
	if _, ok := target[overflowStatKey]; ok {
		room = s.maxKeys
	}
	if len(target) >= room {
		return overflowStatKey
	}
	return key
}

func (s *buildStats) incrementWritten(lang Lang) {
	s.increment(s.writtenResources, fmt.Sprintf("%04x", lang.LangID()))
}

func (s *buildStats) incrementSkipped(lang Lang, kind Kind, id IDOrName) {
	s.increment(s.skippedResources, resourceStatKey(lang, kind, id))
}

func (s *buildStats) incrementIgnored(lang Lang, kind Kind, id IDOrName) {
	s.increment(s.ignoredIdentifiers, resourceStatKey(lang, kind, id))
}

func (s *buildStats) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writtenResources = map[string]int{}
	s.skippedResources = map[string]int{}
	s.ignoredIdentifiers = map[string]int{}
}

func (s *buildStats) snapshot() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		WrittenResources:   maps.Clone(s.writtenResources),
		SkippedResources:   maps.Clone(s.skippedResources),
		IgnoredIdentifiers: maps.Clone(s.ignoredIdentifiers),
	}
}
