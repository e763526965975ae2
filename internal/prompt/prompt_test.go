// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prompt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/kkp-generator/internal/markup"
)

func TestAssemble(t *testing.T) {
	findings := "Nama Unit Kerja:Divisi TI\nTemuan: belum membuat SLA {{.X}}"

	got, err := New().Assemble(findings)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, Instruction))
	assert.True(t, strings.HasSuffix(got, "DATA MENTAH USER:\n"+findings))
}

func TestInstructionNamesRequiredSections(t *testing.T) {
	for _, section := range markup.DefaultGrammar().RequiredSections {
		assert.Contains(t, Instruction, "**"+section+"**")
	}
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "instruction.txt")
	require.NoError(t, os.WriteFile(path, []byte("  Tulis KKP singkat.\n"), 0o644))

	a, err := FromFile(path)
	require.NoError(t, err)
	got, err := a.Assemble("temuan")
	require.NoError(t, err)
	assert.Equal(t, "Tulis KKP singkat.\n\nDATA MENTAH USER:\ntemuan", got)

	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte(" \n"), 0o644))
	_, err = FromFile(empty)
	assert.Error(t, err)

	_, err = FromFile(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)

	a, err = FromFile("")
	require.NoError(t, err)
	assert.Equal(t, New(), a)
}
