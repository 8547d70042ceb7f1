// Package openai adapts the OpenAI chat completion API to the
// generation.ProviderClient interface.
//
// Each GenerateText call sends exactly one chat completion request and maps
// the outcome onto the provider failure kinds of the generation package:
// rejected credentials, rate limiting, transport failures and unusable
// responses. Retrying is left to the caller.
package openai
