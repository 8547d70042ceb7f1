// Package generation defines the boundary between the meeting document
// pipeline and external AI/LLM text-generation services. It declares the
// ProviderClient interface every backend adapter implements, the
// ModelOptions passed on each call and the ProviderError classification
// (Auth, RateLimit, Network, MalformedResponse) that the orchestrator uses to
// decide between retrying and recording a failed document.
//
// Concrete adapters live under internal/platform (openai, gemini). Callers
// depend only on the interface.
package generation
