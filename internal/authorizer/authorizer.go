// Package authorizer implements the API Gateway request authorizer in
// front of the webhook. It is a coarse pre-filter only: it checks that the
// LINE signature header is present and forwards its raw value downstream.
// The cryptographic check happens in the webhook handler, because a
// REQUEST authorizer never sees the request body.
package authorizer

import (
	"context"

	"github.com/aws/aws-lambda-go/events"

	"github.com/okelab/line-bot-lambda/internal/common"
	"github.com/okelab/line-bot-lambda/internal/logging"
)

const (
	principalAllowed = "line-user"
	principalDenied  = "user"
)

type Authorizer struct {
	logger logging.Logger
}

func New(logger logging.Logger) *Authorizer {
	return &Authorizer{logger: logger}
}

// Handle decides Allow or Deny for one gateway request.
//
// Allow requires only that the signature header is present, independent of
// its validity; the raw value travels to the handler in the authorizer
// context. Anything else, including a nil header map, is a Deny. Handle
// never returns an error: an error reply from an authorizer surfaces to
// the caller as a 500 instead of a clean 403.
func (a *Authorizer) Handle(ctx context.Context, request events.APIGatewayCustomAuthorizerRequestTypeRequest) (events.APIGatewayCustomAuthorizerResponse, error) {
	signature := common.HeaderValue(request.Headers, common.SignatureHeaderName)

	if signature == "" {
		a.logger.Warn(ctx, "missing signature header, denying", "methodArn", request.MethodArn)
		return generatePolicy(principalDenied, "Deny", request.MethodArn, nil), nil
	}

	a.logger.Info(ctx, "signature header found, allowing request")
	return generatePolicy(principalAllowed, "Allow", request.MethodArn, map[string]interface{}{
		common.SignatureContextKey: signature,
	}), nil
}

// generatePolicy builds the IAM policy document the gateway expects from a
// request authorizer, plus the optional context map passed to the backend.
func generatePolicy(principalID, effect, resource string, authContext map[string]interface{}) events.APIGatewayCustomAuthorizerResponse {
	response := events.APIGatewayCustomAuthorizerResponse{
		PrincipalID: principalID,
	}

	if effect != "" && resource != "" {
		response.PolicyDocument = events.APIGatewayCustomAuthorizerPolicy{
			Version: "2012-10-17",
			Statement: []events.IAMPolicyStatement{
				{
					Action:   []string{"execute-api:Invoke"},
					Effect:   effect,
					Resource: []string{resource},
				},
			},
		}
	}

	if authContext != nil {
		response.Context = authContext
	}

	return response
}
