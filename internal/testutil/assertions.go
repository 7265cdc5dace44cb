package testutil

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/blockgen/internal/document"
	"github.com/stretchr/testify/require"
)

// AssertDocument checks that the JSON document at path is structurally equal
// to want. Key order is part of the comparison.
func AssertDocument(t *testing.T, path, want string) {
	t.Helper()

	got, err := document.ReadFile(path)
	require.NoError(t, err, "failed to read %s", path)
	wantDoc, err := document.Parse([]byte(want))
	require.NoError(t, err, "invalid expected document")

	if diff := cmp.Diff(string(document.Marshal(wantDoc)), string(document.Marshal(got))); diff != "" {
		t.Errorf("document %s mismatch (-want +got):\n%s", path, diff)
	}
}

// AssertNoFile checks that nothing exists at path.
func AssertNoFile(t *testing.T, path string) {
	t.Helper()
	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err), "%s should not exist", path)
}
