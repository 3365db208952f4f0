package secrets

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockClient struct {
	getParameterFunc func(ctx context.Context, params *ssm.GetParameterInput) (*ssm.GetParameterOutput, error)
}

func (m *mockClient) GetParameter(
	ctx context.Context,
	params *ssm.GetParameterInput,
	_ ...func(*ssm.Options),
) (*ssm.GetParameterOutput, error) {
	return m.getParameterFunc(ctx, params)
}

func TestSigningSecret(t *testing.T) {
	client := &mockClient{
		getParameterFunc: func(_ context.Context, params *ssm.GetParameterInput) (*ssm.GetParameterOutput, error) {
			assert.Equal(t, "/hookbridge/signing-secret", aws.ToString(params.Name))
			assert.True(t, aws.ToBool(params.WithDecryption))
			return &ssm.GetParameterOutput{
				Parameter: &types.Parameter{Value: aws.String("super-secret")},
			}, nil
		},
	}

	resolver := NewResolver(client, nil)
	secret, err := resolver.SigningSecret(context.Background(), "/hookbridge/signing-secret")
	require.NoError(t, err)
	assert.Equal(t, "super-secret", secret)
}

func TestSigningSecretLookupFailure(t *testing.T) {
	client := &mockClient{
		getParameterFunc: func(_ context.Context, _ *ssm.GetParameterInput) (*ssm.GetParameterOutput, error) {
			return nil, &types.ParameterNotFound{}
		},
	}

	resolver := NewResolver(client, nil)
	_, err := resolver.SigningSecret(context.Background(), "/missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/missing")
}

func TestSigningSecretEmptyParameter(t *testing.T) {
	client := &mockClient{
		getParameterFunc: func(_ context.Context, _ *ssm.GetParameterInput) (*ssm.GetParameterOutput, error) {
			return &ssm.GetParameterOutput{}, nil
		},
	}

	resolver := NewResolver(client, nil)
	_, err := resolver.SigningSecret(context.Background(), "/empty")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no value")
}

func TestSigningSecretWrapsUnderlyingError(t *testing.T) {
	cause := errors.New("throttled")
	client := &mockClient{
		getParameterFunc: func(_ context.Context, _ *ssm.GetParameterInput) (*ssm.GetParameterOutput, error) {
			return nil, cause
		},
	}

	resolver := NewResolver(client, nil)
	_, err := resolver.SigningSecret(context.Background(), "/p")
	require.ErrorIs(t, err, cause)
}
