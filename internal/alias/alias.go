package alias

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"whatsapp-media-bridge/internal/resolve"
)

// Manager maps labels to the exact record title they should resolve to, for
// records whose title differs entirely from what senders type.
type Manager struct {
	aliases  sync.Map // normalized label -> Entry
	filePath string
	logger   *zap.Logger
}

// Entry is one alias as written in the alias file.
type Entry struct {
	Label string
	Title string
}

// NewManager creates a Manager backed by filePath. An empty path keeps the
// aliases in memory only.
func NewManager(filePath string, logger *zap.Logger) *Manager {
	m := &Manager{
		filePath: filePath,
		logger:   logger,
	}
	m.loadAliases()
	return m
}

// loadAliases reads "label = title" lines from the alias file.
func (m *Manager) loadAliases() {
	if m.filePath == "" {
		return
	}
	dir := filepath.Dir(m.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		m.logger.Error("Failed to create directory for alias file", zap.String("path", dir), zap.Error(err))
		return
	}

	file, err := os.OpenFile(m.filePath, os.O_RDONLY|os.O_CREATE, 0644)
	if err != nil {
		m.logger.Error("Failed to open alias file", zap.String("path", m.filePath), zap.Error(err))
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entry, ok := ParseEntry(line)
		if !ok {
			m.logger.Warn("Skipping malformed alias line", zap.String("line", line))
			continue
		}
		m.aliases.Store(resolve.Normalize(entry.Label), entry)
	}

	if err := scanner.Err(); err != nil {
		m.logger.Error("Error reading alias file", zap.String("path", m.filePath), zap.Error(err))
	}
	m.logger.Info("Alias list loaded", zap.Int("count", m.Count()))
}

// saveAliases rewrites the alias file from memory.
func (m *Manager) saveAliases() {
	if m.filePath == "" {
		return
	}
	file, err := os.Create(m.filePath)
	if err != nil {
		m.logger.Error("Failed to create alias file for writing", zap.String("path", m.filePath), zap.Error(err))
		return
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, entry := range m.All() {
		if _, err := writer.WriteString(entry.Label + " = " + entry.Title + "\n"); err != nil {
			m.logger.Error("Failed to write alias", zap.String("label", entry.Label), zap.Error(err))
			return
		}
	}
	if err := writer.Flush(); err != nil {
		m.logger.Error("Failed to flush alias file", zap.String("path", m.filePath), zap.Error(err))
		return
	}
	m.logger.Info("Alias list saved", zap.Int("count", m.Count()))
}

// ParseEntry splits "label = title". Both sides must be non-empty.
func ParseEntry(s string) (Entry, bool) {
	label, title, ok := strings.Cut(s, "=")
	if !ok {
		return Entry{}, false
	}
	label = strings.TrimSpace(label)
	title = strings.TrimSpace(title)
	if label == "" || title == "" {
		return Entry{}, false
	}
	return Entry{Label: label, Title: title}, true
}

// Apply returns the aliased title for label, or label unchanged.
func (m *Manager) Apply(label string) string {
	if v, ok := m.aliases.Load(resolve.Normalize(strings.TrimSpace(label))); ok {
		return v.(Entry).Title
	}
	return label
}

// Set adds or replaces an alias.
func (m *Manager) Set(label, title string) {
	entry := Entry{Label: strings.TrimSpace(label), Title: strings.TrimSpace(title)}
	m.aliases.Store(resolve.Normalize(entry.Label), entry)
	m.logger.Info("Alias set", zap.String("label", entry.Label), zap.String("title", entry.Title))
	m.saveAliases()
}

// Remove deletes an alias and reports whether it existed.
func (m *Manager) Remove(label string) bool {
	if _, loaded := m.aliases.LoadAndDelete(resolve.Normalize(strings.TrimSpace(label))); loaded {
		m.logger.Info("Alias removed", zap.String("label", label))
		m.saveAliases()
		return true
	}
	m.logger.Debug("Alias not found", zap.String("label", label))
	return false
}

// Count returns the number of aliases.
func (m *Manager) Count() int {
	count := 0
	m.aliases.Range(func(key, value interface{}) bool {
		count++
		return true
	})
	return count
}

// All returns the aliases sorted by label.
func (m *Manager) All() []Entry {
	var entries []Entry
	m.aliases.Range(func(key, value interface{}) bool {
		entries = append(entries, value.(Entry))
		return true
	})
	sort.Slice(entries, func(i, j int) bool {
		return resolve.Normalize(entries[i].Label) < resolve.Normalize(entries[j].Label)
	})
	return entries
}
