package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/infradraft/infradraft/internal/naming"
	"github.com/infradraft/infradraft/internal/platform/s3"
)

// maxNameAttempts bounds the availability probe loop.
const maxNameAttempts = 5

// bucketProbe checks whether a bucket name is already taken. Implemented
// by s3.Client.
type bucketProbe interface {
	BucketExists(ctx context.Context, name string) (bool, error)
}

// Factory function variables for name - can be replaced in tests.
var (
	// newBucketProbe creates the S3 availability probe.
	newBucketProbe = func(ctx context.Context, region, endpoint string) (bucketProbe, error) {
		return s3.NewClient(ctx, region, endpoint)
	}

	// generateBucketName produces a random bucket name (for testing injection).
	generateBucketName = naming.GenerateBucketName
)

// NameOptions control bucket name generation.
type NameOptions struct {
	// ConfigPath is the configuration file. Empty means the default file
	// in the current directory.
	ConfigPath string

	// Prefix for the generated name. Empty means the default prefix.
	Prefix string

	// Length of the random suffix. Zero means the default length;
	// negative values are rejected.
	Length int

	// Check probes S3 and regenerates until a free name is found.
	Check bool

	// Region for the availability probe.
	Region string

	// Endpoint overrides the S3 endpoint for the probe.
	Endpoint string
}

// Name generates a bucket name, stores it in the configuration file and
// prints it. Only the bucket name field changes; the rest of the record
// is written back as loaded.
func Name(ctx context.Context, log *zap.Logger, opts NameOptions) error {
	configPath, cfg, err := loadRunConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	prefix := opts.Prefix
	if prefix == "" {
		prefix = naming.DefaultPrefix
	}
	length := opts.Length
	if length == 0 {
		length = naming.DefaultSuffixLength
	}

	name, err := resolveName(ctx, opts, prefix, length)
	if err != nil {
		return err
	}

	cfg.BucketName = name
	if err := saveConfigFile(cfg, configPath); err != nil {
		return err
	}

	log.Info("bucket name saved",
		zap.String("name", name),
		zap.String("config", configPath),
	)
	fmt.Println(name)
	return nil
}

// resolveName generates a name, probing S3 for availability when asked.
func resolveName(ctx context.Context, opts NameOptions, prefix string, length int) (string, error) {
	if !opts.Check {
		return generateBucketName(prefix, length)
	}

	probe, err := newBucketProbe(ctx, opts.Region, opts.Endpoint)
	if err != nil {
		return "", err
	}

	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		name, err := generateBucketName(prefix, length)
		if err != nil {
			return "", err
		}

		taken, err := probe.BucketExists(ctx, name)
		if err != nil {
			return "", err
		}
		if !taken {
			return name, nil
		}
	}

	return "", fmt.Errorf("no free bucket name found after %d attempts", maxNameAttempts)
}
