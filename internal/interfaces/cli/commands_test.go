package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/EatTrue/pkg/errors"
)

func TestSubstancesList(t *testing.T) {
	out, err := runCLI(t, "", []RootOption{WithService(newTestService())}, "substances", "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Greater(t, len(lines), 2)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, out, "Tartrazine")
}

func TestSubstancesShow(t *testing.T) {
	out, err := runCLI(t, "", []RootOption{WithService(newTestService())}, "substances", "show", "E102")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Tartrazine (e102)\n"))
	assert.Contains(t, out, "ADI:")
	assert.Contains(t, out, "Regulatory status:")
}

func TestSubstancesShow_JSON(t *testing.T) {
	out, err := runCLI(t, "", []RootOption{WithService(newTestService())}, "-o", "json", "substances", "show", "e171")
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "e171", got["id"])
	assert.Equal(t, "Titanium Dioxide", got["name"])
}

func TestSubstancesShow_NotFound(t *testing.T) {
	_, err := runCLI(t, "", []RootOption{WithService(newTestService())}, "substances", "show", "e999")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeSubstanceNotFound))
}

func TestCatalogValidate_Builtin(t *testing.T) {
	out, err := runCLI(t, "", nil, "catalog", "validate")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "OK: builtin: "))
	assert.NotContains(t, out, "warning:")
}

const catalogWithDanglingTerm = `
substances:
  - id: e950
    name: Acesulfame K
    severity_score: 40
    detection_names: [acesulfame]
generic_terms:
  - phrase: sweeteners
    substances: [e950, e999]
`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCatalogValidate_ReportsMissingTargets(t *testing.T) {
	path := writeCatalog(t, catalogWithDanglingTerm)

	out, err := runCLI(t, "", nil, "catalog", "validate", "--catalog", path)
	require.NoError(t, err)
	assert.Contains(t, out, "1 substances, 1 generic terms")
	assert.Contains(t, out, "warning: generic term target missing: sweeteners → e999")

	_, err = runCLI(t, "", nil, "catalog", "validate", "--catalog", path, "--strict")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeDataIntegrity))
}

func TestCatalogValidate_DuplicateID(t *testing.T) {
	path := writeCatalog(t, `
substances:
  - id: e950
    name: A
    severity_score: 40
    detection_names: [a]
  - id: E950
    name: B
    severity_score: 40
    detection_names: [b]
`)
	_, err := runCLI(t, "", nil, "catalog", "validate", "--catalog", path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeDataIntegrity))
}

func TestHistory(t *testing.T) {
	svc := newTestService()
	opts := []RootOption{WithService(svc)}

	out, err := runCLI(t, "", opts, "history")
	require.NoError(t, err)
	assert.Equal(t, "No scans recorded.\n", out)

	for i := 0; i < 3; i++ {
		_, err := runCLI(t, "", opts, "barcode", "012345678905")
		require.NoError(t, err)
	}

	out, err = runCLI(t, "", opts, "history", "--limit", "2")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "2026-10-19 00:00  69     Good", lines[2])

	out, err = runCLI(t, "", opts, "-o", "json", "history")
	require.NoError(t, err)
	var entries []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	assert.Len(t, entries, 3)
}

func TestHistory_NegativeLimit(t *testing.T) {
	_, err := runCLI(t, "", []RootOption{WithService(newTestService())}, "history", "--limit", "-1")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeHistoryInvalid))
}

func TestProfileSet(t *testing.T) {
	svc := newTestService()
	opts := []RootOption{WithService(svc)}

	out, err := runCLI(t, "", opts, "profile", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Age:        30")
	assert.Contains(t, out, "Diet:       none")
	assert.Contains(t, out, "Pregnancy:  not_pregnant")

	out, err = runCLI(t, "", opts, "profile", "set", "--age", "8", "--diet", "vegan, diabetic", "--pregnant")
	require.NoError(t, err)
	assert.Contains(t, out, "Age:        8")
	assert.Contains(t, out, "Diet:       vegan, diabetic")
	assert.Contains(t, out, "Pregnancy:  pregnant")

	out, err = runCLI(t, "", opts, "profile", "set", "--pregnant=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Age:        8")
	assert.Contains(t, out, "Pregnancy:  not_pregnant")
}

func TestProfileSet_InvalidAge(t *testing.T) {
	_, err := runCLI(t, "", []RootOption{WithService(newTestService())}, "profile", "set", "--age", "-3")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeProfileInvalid))
}

//Personal.AI order the ending
