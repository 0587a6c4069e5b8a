package m_workspace

import (
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestData_DecodesRowColumns(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	row, err := spanner.NewRow(
		[]string{WorkspaceID, Name, DefaultFolderID, PinnedScriptIDs, CreatedAt, UpdatedAt},
		[]interface{}{"w-1", "ops", "f-1", []string{"s-1", "s-2"}, now, now},
	)
	require.NoError(t, err)

	var data Data
	require.NoError(t, row.ToStruct(&data))
	assert.Equal(t, "w-1", data.WorkspaceID)
	assert.Equal(t, "ops", data.Name)
	assert.Equal(t, "f-1", data.DefaultFolderID)
	assert.Equal(t, []string{"s-1", "s-2"}, data.PinnedScriptIDs)
}
