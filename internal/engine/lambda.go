package engine

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	lambdasdk "github.com/aws/aws-sdk-go-v2/service/lambda"
)

// translatorRequest is the payload sent to the translator Lambda.
type translatorRequest struct {
	Sources []string `json:"source"`
}

// translatorResponse is the translator Lambda's reply.
type translatorResponse struct {
	Translations []string `json:"translation"`
	Error        string   `json:"error,omitempty"`
}

// LambdaEngine invokes the deployed fairseq translator Lambda. The model
// checkpoint lives inside that function; one LambdaEngine handle may be
// shared across concurrent requests.
type LambdaEngine struct {
	client       *lambdasdk.Client
	functionName string
}

// NewLambda builds a LambdaEngine for the named translator function using
// the default AWS configuration.
func NewLambda(ctx context.Context, functionName string) (*LambdaEngine, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &LambdaEngine{
		client:       lambdasdk.NewFromConfig(cfg),
		functionName: functionName,
	}, nil
}

// Translate sends one batch of canonical sequences to the translator and
// returns the translated sequences in input order.
func (e *LambdaEngine) Translate(ctx context.Context, sources []string) ([]string, error) {
	payload, err := json.Marshal(translatorRequest{Sources: sources})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	result, err := e.client.Invoke(ctx, &lambdasdk.InvokeInput{
		FunctionName: aws.String(e.functionName),
		Payload:      payload,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to invoke %s: %w", e.functionName, err)
	}
	if result.FunctionError != nil {
		return nil, fmt.Errorf("lambda error: %s", *result.FunctionError)
	}

	var resp translatorResponse
	if err := json.Unmarshal(result.Payload, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("translator error: %s", resp.Error)
	}
	if len(resp.Translations) != len(sources) {
		return nil, fmt.Errorf("translator returned %d sequences for %d sources",
			len(resp.Translations), len(sources))
	}
	return resp.Translations, nil
}
