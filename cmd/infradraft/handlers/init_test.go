package handlers

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infradraft/infradraft/internal/config"
	"github.com/infradraft/infradraft/internal/config/wizard"
)

func confirmedResult() *wizard.WizardResult {
	return &wizard.WizardResult{
		Prefix:       "my-bucket",
		SuffixLength: 10,
		Model:        "gpt-4o",
		OutputFile:   "main.tf",
		Commands:     []string{"Create an S3 bucket named {bucket_name}"},
		Confirmed:    true,
	}
}

func TestInit_WritesConfig(t *testing.T) {
	saveAndRestoreFactories(t)

	fileExists = func(_ string) bool { return false }
	runWizard = func(_ context.Context) (*wizard.WizardResult, error) {
		return confirmedResult(), nil
	}

	var savedCfg *config.Config
	var savedPath string
	saveConfigFile = func(c *config.Config, path string) error {
		savedCfg = c
		savedPath = path
		return nil
	}

	err := Init(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, config.DefaultPath, savedPath)
	require.NotNil(t, savedCfg)
	assert.Equal(t, "gpt-4o", savedCfg.Model)
	assert.Equal(t, "main.tf", savedCfg.OutputFile)
	assert.Len(t, savedCfg.Commands, 1)
	assert.Empty(t, savedCfg.BucketName, "no name without GenerateName")
}

func TestInit_GeneratesNameWhenAsked(t *testing.T) {
	saveAndRestoreFactories(t)

	fileExists = func(_ string) bool { return false }
	runWizard = func(_ context.Context) (*wizard.WizardResult, error) {
		result := confirmedResult()
		result.Prefix = "logs"
		result.SuffixLength = 6
		result.GenerateName = true
		return result, nil
	}

	var savedCfg *config.Config
	saveConfigFile = func(c *config.Config, _ string) error {
		savedCfg = c
		return nil
	}

	err := Init(context.Background(), "custom.json")
	require.NoError(t, err)

	require.NotNil(t, savedCfg)
	assert.Regexp(t, regexp.MustCompile(`^logs-[a-z0-9]{6}$`), savedCfg.BucketName)
}

func TestInit_OverwriteDeclined(t *testing.T) {
	saveAndRestoreFactories(t)

	fileExists = func(_ string) bool { return true }
	confirmOverwrite = func(path string) (bool, error) {
		assert.Equal(t, "existing.json", path)
		return false, nil
	}

	runWizard = func(_ context.Context) (*wizard.WizardResult, error) {
		t.Fatal("wizard should not run after a declined overwrite")
		return nil, nil
	}

	saved := false
	saveConfigFile = func(_ *config.Config, _ string) error {
		saved = true
		return nil
	}

	err := Init(context.Background(), "existing.json")
	require.NoError(t, err)
	assert.False(t, saved)
}

func TestInit_OverwriteAccepted(t *testing.T) {
	saveAndRestoreFactories(t)

	fileExists = func(_ string) bool { return true }
	confirmOverwrite = func(_ string) (bool, error) { return true, nil }
	runWizard = func(_ context.Context) (*wizard.WizardResult, error) {
		return confirmedResult(), nil
	}

	saved := false
	saveConfigFile = func(_ *config.Config, _ string) error {
		saved = true
		return nil
	}

	err := Init(context.Background(), "existing.json")
	require.NoError(t, err)
	assert.True(t, saved)
}

func TestInit_NotConfirmed(t *testing.T) {
	saveAndRestoreFactories(t)

	fileExists = func(_ string) bool { return false }
	runWizard = func(_ context.Context) (*wizard.WizardResult, error) {
		result := confirmedResult()
		result.Confirmed = false
		return result, nil
	}

	saved := false
	saveConfigFile = func(_ *config.Config, _ string) error {
		saved = true
		return nil
	}

	err := Init(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, saved)
}

func TestInit_WizardError(t *testing.T) {
	saveAndRestoreFactories(t)

	fileExists = func(_ string) bool { return false }
	runWizard = func(_ context.Context) (*wizard.WizardResult, error) {
		return nil, errors.New("user aborted")
	}

	err := Init(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wizard canceled")
}

func TestInit_SaveError(t *testing.T) {
	saveAndRestoreFactories(t)

	fileExists = func(_ string) bool { return false }
	runWizard = func(_ context.Context) (*wizard.WizardResult, error) {
		return confirmedResult(), nil
	}
	saveConfigFile = func(_ *config.Config, _ string) error {
		return errors.New("disk full")
	}

	err := Init(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write config")
}
