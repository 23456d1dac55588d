package handlers

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/infradraft/infradraft/internal/config"
	"github.com/infradraft/infradraft/internal/naming"
)

// mockProbe implements bucketProbe for testing. Each call consumes one
// answer; an exhausted probe reports every name as taken.
type mockProbe struct {
	answers []bool
	err     error
	probed  []string
}

func (m *mockProbe) BucketExists(_ context.Context, name string) (bool, error) {
	m.probed = append(m.probed, name)
	if m.err != nil {
		return false, m.err
	}
	if len(m.answers) == 0 {
		return true, nil
	}
	taken := m.answers[0]
	m.answers = m.answers[1:]
	return taken, nil
}

func TestName_SavesGeneratedName(t *testing.T) {
	saveAndRestoreFactories(t)

	cfg := &config.Config{Model: "gpt-4", Commands: []string{"Create a bucket"}}
	loadConfigFile = func(_ string) (*config.Config, error) {
		return cfg, nil
	}

	var savedCfg *config.Config
	var savedPath string
	saveConfigFile = func(c *config.Config, path string) error {
		savedCfg = c
		savedPath = path
		return nil
	}

	var gotPrefix string
	var gotLength int
	generateBucketName = func(prefix string, length int) (string, error) {
		gotPrefix = prefix
		gotLength = length
		return "my-bucket-k3x9q2m7ab", nil
	}

	probeCreated := false
	newBucketProbe = func(_ context.Context, _, _ string) (bucketProbe, error) {
		probeCreated = true
		return &mockProbe{}, nil
	}

	err := Name(context.Background(), zap.NewNop(), NameOptions{})
	require.NoError(t, err)

	assert.Equal(t, naming.DefaultPrefix, gotPrefix)
	assert.Equal(t, naming.DefaultSuffixLength, gotLength)
	require.NotNil(t, savedCfg)
	assert.Equal(t, "my-bucket-k3x9q2m7ab", savedCfg.BucketName)
	assert.Equal(t, []string{"Create a bucket"}, savedCfg.Commands, "rest of the record is preserved")
	assert.Equal(t, config.DefaultPath, savedPath)
	assert.False(t, probeCreated, "no probe without --check")
}

func TestName_CustomPrefixAndLength(t *testing.T) {
	saveAndRestoreFactories(t)

	loadConfigFile = func(_ string) (*config.Config, error) {
		return &config.Config{}, nil
	}
	saveConfigFile = func(_ *config.Config, _ string) error {
		return nil
	}

	var gotPrefix string
	var gotLength int
	generateBucketName = func(prefix string, length int) (string, error) {
		gotPrefix = prefix
		gotLength = length
		return "logs-abc123", nil
	}

	err := Name(context.Background(), zap.NewNop(), NameOptions{Prefix: "logs", Length: 6})
	require.NoError(t, err)
	assert.Equal(t, "logs", gotPrefix)
	assert.Equal(t, 6, gotLength)
}

func TestName_InvalidLength(t *testing.T) {
	saveAndRestoreFactories(t)

	loadConfigFile = func(_ string) (*config.Config, error) {
		return &config.Config{}, nil
	}

	saved := false
	saveConfigFile = func(_ *config.Config, _ string) error {
		saved = true
		return nil
	}

	err := Name(context.Background(), zap.NewNop(), NameOptions{Length: -3})
	require.Error(t, err)
	assert.ErrorIs(t, err, naming.ErrInvalidLength)
	assert.False(t, saved)
}

func TestName_CheckRetriesUntilFree(t *testing.T) {
	saveAndRestoreFactories(t)

	loadConfigFile = func(_ string) (*config.Config, error) {
		return &config.Config{}, nil
	}

	var savedCfg *config.Config
	saveConfigFile = func(c *config.Config, _ string) error {
		savedCfg = c
		return nil
	}

	names := []string{"my-bucket-taken00001", "my-bucket-free000001"}
	calls := 0
	generateBucketName = func(_ string, _ int) (string, error) {
		name := names[calls]
		calls++
		return name, nil
	}

	probe := &mockProbe{answers: []bool{true, false}}
	newBucketProbe = func(_ context.Context, region, endpoint string) (bucketProbe, error) {
		assert.Equal(t, "eu-central-1", region)
		assert.Equal(t, "", endpoint)
		return probe, nil
	}

	err := Name(context.Background(), zap.NewNop(), NameOptions{Check: true, Region: "eu-central-1"})
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.Equal(t, names, probe.probed)
	require.NotNil(t, savedCfg)
	assert.Equal(t, "my-bucket-free000001", savedCfg.BucketName)
}

func TestName_CheckExhaustsAttempts(t *testing.T) {
	saveAndRestoreFactories(t)

	loadConfigFile = func(_ string) (*config.Config, error) {
		return &config.Config{}, nil
	}

	saved := false
	saveConfigFile = func(_ *config.Config, _ string) error {
		saved = true
		return nil
	}

	calls := 0
	generateBucketName = func(_ string, _ int) (string, error) {
		calls++
		return "my-bucket-always0000", nil
	}

	newBucketProbe = func(_ context.Context, _, _ string) (bucketProbe, error) {
		return &mockProbe{}, nil
	}

	err := Name(context.Background(), zap.NewNop(), NameOptions{Check: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no free bucket name")
	assert.Equal(t, maxNameAttempts, calls)
	assert.False(t, saved)
}

func TestName_ProbeError(t *testing.T) {
	saveAndRestoreFactories(t)

	loadConfigFile = func(_ string) (*config.Config, error) {
		return &config.Config{}, nil
	}

	generateBucketName = func(_ string, _ int) (string, error) {
		return "my-bucket-abc1234567", nil
	}

	newBucketProbe = func(_ context.Context, _, _ string) (bucketProbe, error) {
		return &mockProbe{err: errors.New("connection refused")}, nil
	}

	err := Name(context.Background(), zap.NewNop(), NameOptions{Check: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestName_ProbeConstructorError(t *testing.T) {
	saveAndRestoreFactories(t)

	loadConfigFile = func(_ string) (*config.Config, error) {
		return &config.Config{}, nil
	}

	newBucketProbe = func(_ context.Context, _, _ string) (bucketProbe, error) {
		return nil, errors.New("failed to load AWS config")
	}

	err := Name(context.Background(), zap.NewNop(), NameOptions{Check: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load AWS config")
}

func TestName_ConfigMissing(t *testing.T) {
	saveAndRestoreFactories(t)

	loadConfigFile = func(path string) (*config.Config, error) {
		return nil, fmt.Errorf("%w: %s", config.ErrNotFound, path)
	}

	err := Name(context.Background(), zap.NewNop(), NameOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrNotFound)
}
