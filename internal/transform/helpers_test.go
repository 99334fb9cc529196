package transform

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/TodayDesign/vercel-project-dashboard/internal/vercel"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func loadProject(t *testing.T) *vercel.Project {
	t.Helper()
	data, err := os.ReadFile("testdata/project.json")
	require.NoError(t, err)

	var p vercel.Project
	require.NoError(t, json.Unmarshal(data, &p))
	return &p
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func ptr[T any](v T) *T {
	return &v
}
