package webhook

import (
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
)

// jsonResponse builds the gateway response envelope. Every response,
// success or failure, is application/json with a single message field.
func jsonResponse(statusCode int, message string) events.APIGatewayProxyResponse {
	body, _ := json.Marshal(map[string]string{"message": message})
	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}
}
