package alias

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestManagerLoadsAndApplies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "aliases.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("# comment\nmaya = MAYA NASRALLAH\nbroken line\n"), 0644))

	m := NewManager(path, zaptest.NewLogger(t))
	assert.Equal(t, 1, m.Count())
	assert.Equal(t, "MAYA NASRALLAH", m.Apply("Maya"))
	assert.Equal(t, "MAYA NASRALLAH", m.Apply(" MÁYA "))
	assert.Equal(t, "Joana", m.Apply("Joana"))
}

func TestManagerPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aliases.txt")
	m := NewManager(path, zaptest.NewLogger(t))

	m.Set("zeca", "JOSE CARLOS")
	m.Set("bia", "BEATRIZ LIMA")

	reloaded := NewManager(path, zaptest.NewLogger(t))
	assert.Equal(t, []Entry{
		{Label: "bia", Title: "BEATRIZ LIMA"},
		{Label: "zeca", Title: "JOSE CARLOS"},
	}, reloaded.All())

	assert.True(t, reloaded.Remove("BIA"))
	assert.False(t, reloaded.Remove("bia"))
	assert.Equal(t, 1, NewManager(path, zaptest.NewLogger(t)).Count())
}

func TestManagerInMemory(t *testing.T) {
	m := NewManager("", zaptest.NewLogger(t))
	m.Set("a", "b")
	assert.Equal(t, "b", m.Apply("A"))
}

func TestHandleCommand(t *testing.T) {
	m := NewManager("", zaptest.NewLogger(t))

	reply, ok := m.HandleCommand("/aliases")
	assert.True(t, ok)
	assert.Equal(t, "Nenhum apelido cadastrado.", reply)

	reply, ok = m.HandleCommand("/alias maya = MAYA NASRALLAH")
	assert.True(t, ok)
	assert.Equal(t, "Apelido salvo: maya → MAYA NASRALLAH", reply)
	assert.Equal(t, "MAYA NASRALLAH", m.Apply("maya"))

	reply, ok = m.HandleCommand("/alias maya")
	assert.True(t, ok)
	assert.Contains(t, reply, "Uso:")

	reply, ok = m.HandleCommand("/aliases")
	assert.True(t, ok)
	assert.Equal(t, "Apelidos cadastrados:\n- maya → MAYA NASRALLAH\n", reply)

	reply, ok = m.HandleCommand("/unalias maya")
	assert.True(t, ok)
	assert.Equal(t, "Apelido removido: maya", reply)

	reply, ok = m.HandleCommand("/unalias maya")
	assert.True(t, ok)
	assert.Equal(t, "maya não possui apelido.", reply)

	_, ok = m.HandleCommand("hello")
	assert.False(t, ok)
}
