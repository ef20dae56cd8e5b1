package alias

import (
	"fmt"
	"strings"
)

// HandleCommand executes an operator chat command and returns the reply.
// ok is false when text is not an alias command.
//
//	/aliases                  list aliases
//	/alias <label> = <title>  add or replace an alias
//	/unalias <label>          remove an alias
func (m *Manager) HandleCommand(text string) (reply string, ok bool) {
	text = strings.TrimSpace(text)
	switch {
	case text == "/aliases":
		entries := m.All()
		if len(entries) == 0 {
			return "Nenhum apelido cadastrado.", true
		}
		var b strings.Builder
		b.WriteString("Apelidos cadastrados:\n")
		for _, e := range entries {
			fmt.Fprintf(&b, "- %s → %s\n", e.Label, e.Title)
		}
		return b.String(), true
	case text == "/alias":
		return "Uso: /alias <nome> = <título exato>", true
	case strings.HasPrefix(text, "/alias "):
		entry, valid := ParseEntry(strings.TrimPrefix(text, "/alias "))
		if !valid {
			return "Uso: /alias <nome> = <título exato>", true
		}
		m.Set(entry.Label, entry.Title)
		return fmt.Sprintf("Apelido salvo: %s → %s", entry.Label, entry.Title), true
	case text == "/unalias":
		return "Uso: /unalias <nome>", true
	case strings.HasPrefix(text, "/unalias "):
		label := strings.TrimSpace(strings.TrimPrefix(text, "/unalias "))
		if m.Remove(label) {
			return fmt.Sprintf("Apelido removido: %s", label), true
		}
		return fmt.Sprintf("%s não possui apelido.", label), true
	}
	return "", false
}
