package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan(t *testing.T) {
	cmd := Plan()

	require.NotNil(t, cmd)
	assert.Equal(t, "plan", cmd.Use)
	assert.Equal(t, "Generate Terraform source and show the plan without applying", cmd.Short)
}

func TestPlan_Flags(t *testing.T) {
	cmd := Plan()

	for _, name := range []string{"config", "out", "refresh-name", "from-git", "plain"} {
		flag := cmd.Flags().Lookup(name)
		require.NotNil(t, flag, "%s flag should exist", name)
	}
}

func TestPlan_RunE(t *testing.T) {
	cmd := Plan()
	assert.NotNil(t, cmd.RunE, "Plan command should have RunE function")
}
