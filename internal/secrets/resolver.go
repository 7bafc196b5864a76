// Package secrets resolves the LINE channel credentials from AWS Secrets
// Manager. Credentials are fetched fresh on every call and never cached:
// the secret may be rotated at any time and an invocation must not observe
// a stale token.
package secrets

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/okelab/line-bot-lambda/internal/common"
)

// Credentials is the decoded secret payload. Field tags match the JSON
// blob shape stored in Secrets Manager.
type Credentials struct {
	ChannelAccessToken string `json:"CHANNEL_ACCESS_TOKEN"`
	ChannelSecret      string `json:"CHANNEL_SECRET"`
}

// SecretsAPI is the slice of the Secrets Manager client the resolver needs.
type SecretsAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// Resolver fetches and decodes a credential secret by its logical name.
type Resolver struct {
	client     SecretsAPI
	secretName string
}

func NewResolver(client SecretsAPI, secretName string) *Resolver {
	return &Resolver{client: client, secretName: secretName}
}

// Resolve fetches the secret and decodes it into Credentials.
//
// Failures map onto two sentinel kinds: common.ErrSecretUnavailable when
// the store call fails or returns no string payload, and
// common.ErrMalformedSecret when the payload is not valid JSON. Callers
// treat either as fatal for the current invocation; there is no retry.
func (r *Resolver) Resolve(ctx context.Context) (*Credentials, error) {
	out, err := r.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(r.secretName),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: fetching %s: %v", common.ErrSecretUnavailable, r.secretName, err)
	}

	if out.SecretString == nil || *out.SecretString == "" {
		return nil, fmt.Errorf("%w: secret %s has no string payload", common.ErrSecretUnavailable, r.secretName)
	}

	creds := &Credentials{}
	if err := json.Unmarshal([]byte(*out.SecretString), creds); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", common.ErrMalformedSecret, r.secretName, err)
	}

	return creds, nil
}
