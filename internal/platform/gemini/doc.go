// Package gemini provides an implementation of the generation.ProviderClient
// interface that uses Google's Gemini API.
//
// This package is an infrastructure adapter in the hexagonal architecture,
// connecting the document pipeline to Google's external Gemini service
// without exposing the details of that service to the core application.
//
// Key behaviour:
//
// 1. Provider:
//   - Implements the generation.ProviderClient interface
//   - Sends exactly one GenerateContent request per call
//   - Applies the configured model, system instruction and sampling options
//
// 2. Response Processing:
//   - Concatenates the text parts of the first candidate
//   - Treats missing candidates, missing content, empty text and responses
//     blocked by safety filters as malformed responses
//
// 3. Error Handling:
//   - Translates API errors into generation failure kinds (auth, rate limit,
//     network, malformed response)
//   - Never retries; retry policy belongs to the caller
//
// The package depends on Google's google.golang.org/genai client library.
package gemini
