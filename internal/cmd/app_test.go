package cmd

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-dao/internal/domain"
)

func TestParseID(t *testing.T) {
	id, err := parseID("customerID", "42")
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	for _, arg := range []string{"", "abc", "-1", "1.5"} {
		_, err := parseID("customerID", arg)
		require.Error(t, err, "arg %q", arg)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput), "arg %q", arg)
	}
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"customers", "count"},
		{"customers", "find"},
		{"customers", "name"},
		{"customers", "city"},
		{"customers", "total"},
		{"invoices", "count"},
		{"invoices", "show"},
		{"invoices", "create"},
		{"version"},
	} {
		c, _, err := rootCmd.Find(path)
		require.NoError(t, err, "%v", path)
		assert.Equal(t, path[len(path)-1], c.Name())
	}

	for _, name := range []string{"product", "quantity"} {
		assert.NotNil(t, invoicesCreateCmd.Flags().Lookup(name), name)
	}
}
