// Package secrets resolves the signing secret from AWS SSM Parameter Store,
// so deployments can reference a parameter name instead of embedding the
// secret in their environment.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/smithy-go"
)

// Client defines the SSM operations used by the Resolver. The interface
// keeps the code testable with mock implementations.
type Client interface {
	GetParameter(
		ctx context.Context,
		params *ssm.GetParameterInput,
		optFns ...func(*ssm.Options),
	) (*ssm.GetParameterOutput, error)
}

// ClientAdapter wraps the AWS SDK SSM client to implement Client.
type ClientAdapter struct {
	client *ssm.Client
}

// NewClientAdapter creates a new adapter wrapping the AWS SDK SSM client.
func NewClientAdapter(client *ssm.Client) *ClientAdapter {
	return &ClientAdapter{client: client}
}

// GetParameter wraps the AWS SDK GetParameter operation.
func (a *ClientAdapter) GetParameter(
	ctx context.Context,
	params *ssm.GetParameterInput,
	optFns ...func(*ssm.Options),
) (*ssm.GetParameterOutput, error) {
	result, err := a.client.GetParameter(ctx, params, optFns...)
	if err != nil {
		return nil, fmt.Errorf("failed to get parameter: %w", err)
	}
	return result, nil
}

// Resolver fetches secrets from Parameter Store.
type Resolver struct {
	client Client
	logger *slog.Logger
}

// NewResolver creates a Resolver using the given client.
func NewResolver(client Client, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{client: client, logger: log}
}

// NewResolverFromConfig builds a Resolver from the ambient AWS configuration.
func NewResolverFromConfig(ctx context.Context, log *slog.Logger) (*Resolver, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return NewResolver(NewClientAdapter(ssm.NewFromConfig(awsCfg)), log), nil
}

// SigningSecret fetches the decrypted value of the named parameter.
func (r *Resolver) SigningSecret(ctx context.Context, name string) (string, error) {
	out, err := r.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			r.logger.Error("signing secret lookup failed",
				"parameter", name, "errorCode", apiErr.ErrorCode())
		}
		return "", fmt.Errorf("failed to resolve signing secret parameter %q: %w", name, err)
	}

	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("signing secret parameter %q has no value", name)
	}

	return *out.Parameter.Value, nil
}
