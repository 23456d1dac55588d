package s3

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// DefaultRegion is used when the caller does not specify one. Bucket
// existence can be checked from any region.
const DefaultRegion = "us-east-1"

// Client wraps the S3 client used for bucket availability probes.
type Client struct {
	s3     *s3.Client
	region string
}

// NewClient creates a probe client using the standard AWS credential
// chain. endpoint may be empty; set it to target an S3-compatible
// object store instead of Amazon S3.
func NewClient(ctx context.Context, region, endpoint string) (*Client, error) {
	if region == "" {
		region = DefaultRegion
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return newClient(cfg, region, endpoint), nil
}

// NewClientWithCredentials creates a probe client with static credentials,
// for S3-compatible stores that are not part of the standard credential
// chain.
func NewClientWithCredentials(ctx context.Context, region, endpoint, accessKey, secretKey string) (*Client, error) {
	if region == "" {
		region = DefaultRegion
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
		config.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return newClient(cfg, region, endpoint), nil
}

func newClient(cfg aws.Config, region, endpoint string) *Client {
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true // most S3-compatible stores require path-style addressing
		}
	})

	return &Client{s3: client, region: region}
}

// BucketExists reports whether a bucket with the given name already exists
// somewhere in the global namespace. Buckets owned by another account
// answer HeadBucket with 403, and buckets in another region answer with a
// redirect, so both count as existing.
func (c *Client) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	_, err := c.s3.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucketName),
	})
	if err != nil {
		if isNotFoundError(err) {
			return false, nil
		}
		if isForeignBucketError(err) {
			return true, nil
		}
		return false, fmt.Errorf("failed to check bucket %s: %w", bucketName, err)
	}
	return true, nil
}

// isNotFoundError checks if the error is a not found error.
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	// Check for typed S3 errors first
	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return true
	}

	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}

	// Fall back to API error code checking for S3-compatible services
	// that may not return the exact SDK error types
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		if code == "NotFound" || code == "NoSuchBucket" || code == "404" {
			return true
		}
	}

	// HeadBucket answers have no body, so the deserialized error may carry
	// no code at all. The HTTP status is always present.
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		return respErr.HTTPStatusCode() == http.StatusNotFound
	}

	return false
}

// isForeignBucketError checks if the error indicates the bucket exists but
// belongs to another account or lives in another region.
func isForeignBucketError(err error) bool {
	if err == nil {
		return false
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		if code == "AccessDenied" || code == "Forbidden" || code == "403" ||
			code == "PermanentRedirect" || code == "301" {
			return true
		}
	}

	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		status := respErr.HTTPStatusCode()
		return status == http.StatusForbidden || status == http.StatusMovedPermanently
	}

	return false
}
