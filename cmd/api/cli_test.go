package main

import (
	"bytes"
	"strings"
	"testing"

	"securecheck/models"
	"securecheck/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	table := &models.Table{
		Columns: []string{"driver_gender", "total_stops"},
		Rows:    [][]any{{"female", int64(12)}, {nil, int64(3)}},
	}

	require.NoError(t, printTable(&buf, table))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"driver_gender", "total_stops"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"female", "12"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"3"}, strings.Fields(lines[2]))
}

func TestPrintNotices(t *testing.T) {
	var buf bytes.Buffer
	n := &services.Notices{}
	n.Error("Database Connection Error: refused")
	n.Warn("no rows")

	printNotices(&buf, n)

	assert.Equal(t, "error: Database Connection Error: refused\nwarning: no rows\n", buf.String())
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "queries", "query", "predict", "hash-password"} {
		assert.True(t, names[want], "missing command %q", want)
	}

	gender, err := predictCmd.Flags().GetString("gender")
	require.NoError(t, err)
	assert.Equal(t, "male", gender)
}
