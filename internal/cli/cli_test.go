package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandTree(t *testing.T) {
	root := RootCommand()

	expected := []string{
		"login", "logout", "whoami", "status",
		"cars", "tyres", "brands", "services", "bookings",
		"users", "settings", "config", "demo", "ask",
	}

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range expected {
		assert.True(t, names[want], "missing command %q", want)
	}
}

func TestCarsUpdateRequiresNumericID(t *testing.T) {
	cmd := carsUpdateCommand()
	cmd.SetArgs([]string{"not-a-number"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid car id")
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"Ceramic Brakes", "Pan Roof"}, splitList("Ceramic Brakes, Pan Roof"))
	assert.Equal(t, []string{"One"}, splitList("One,,  ,"))
	assert.Empty(t, splitList(""))
}
