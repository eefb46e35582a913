package sentiment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
)

const classifierInstructions = `You are a financial sentiment classifier.
Given a short statement about a market outlook, classify its sentiment as
"positive", "negative" or "neutral" from an investor's perspective, with a
confidence score between 0 and 1. Respond with JSON only.`

// DefaultRequestTimeout bounds one classification call. Expiry is treated the
// same as any other upstream failure.
const DefaultRequestTimeout = 8 * time.Second

type classifyResponse struct {
	Label string  `json:"label" jsonschema:"enum=positive,enum=negative,enum=neutral"`
	Score float64 `json:"score"`
}

var classifySchema = generateSchema[classifyResponse]()

// OpenAIClassifier classifies terms through the OpenAI Responses API with a
// strict JSON schema output format.
type OpenAIClassifier struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

func NewOpenAIClassifier(apiKey, model string) *OpenAIClassifier {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIClassifier{
		client:  &client,
		model:   model,
		timeout: DefaultRequestTimeout,
	}
}

func (c *OpenAIClassifier) Classify(ctx context.Context, text string) (Classification, error) {
	if c.model == "" {
		return Classification{}, errors.New("OpenAIClassifier: model is empty")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	format := responses.ResponseFormatTextConfigUnionParam{
		OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
			Name:        "TermSentiment",
			Schema:      classifySchema,
			Strict:      openai.Bool(true),
			Description: openai.String("Sentiment label with confidence"),
			Type:        "json_schema",
		},
	}

	params := responses.ResponseNewParams{
		Model:           c.model,
		MaxOutputTokens: openai.Int(100),
		Instructions:    openai.String(classifierInstructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(text, responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: format,
		},
	}

	resp, err := c.client.Responses.New(ctx, params)
	if err != nil {
		return Classification{}, fmt.Errorf("classification request failed: %w", err)
	}

	var out classifyResponse
	if err := json.Unmarshal([]byte(strings.TrimSpace(resp.OutputText())), &out); err != nil {
		return Classification{}, fmt.Errorf("unmarshal classification: %w", err)
	}

	return Classification{Label: out.Label, Score: out.Score}, nil
}

func generateSchema[T any]() map[string]interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	b, err := reflector.Reflect(v).MarshalJSON()
	if err != nil {
		panic(err)
	}
	var schema map[string]interface{}
	if err := json.Unmarshal(b, &schema); err != nil {
		panic(err)
	}
	ensureStrictObject(schema)
	return schema
}

// ensureStrictObject marks every object in the schema as closed and fully
// required, which the strict structured-output mode demands.
func ensureStrictObject(schema map[string]interface{}) {
	if t, ok := schema["type"].(string); ok && t == "object" {
		schema["additionalProperties"] = false
		if properties, ok := schema["properties"].(map[string]interface{}); ok {
			required := make([]string, 0, len(properties))
			for name := range properties {
				required = append(required, name)
			}
			if len(required) > 0 {
				schema["required"] = required
			}
			for _, prop := range properties {
				if propMap, ok := prop.(map[string]interface{}); ok {
					ensureStrictObject(propMap)
				}
			}
		}
	}
	if items, ok := schema["items"].(map[string]interface{}); ok {
		ensureStrictObject(items)
	}
}
