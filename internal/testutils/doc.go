// Package testutils provides testing utilities shared across packages.
//
// This package contains helpers for:
// 1. Setting up test servers for API testing
// 2. Asserting API error responses
// 3. Writing temporary configuration files
// 4. Faking the OpenAI and Gemini HTTP endpoints
//
// # Fake Providers
//
// FakeProviders answers both provider APIs from one httptest server, so the
// real provider clients can be exercised end to end:
//
//	fake := testutils.NewFakeProviders(t)
//	fake.OpenAIText = "Notice body"
//	cfg.Providers.OpenAI.BaseURL = fake.URL()
//	cfg.Providers.Gemini.BaseURL = fake.URL()
//
//	// Make every call fail with 401:
//	fake.SetStatus(http.StatusUnauthorized)
//
// # Response Assertions
//
//	resp := testutils.PostJSON(t, server, "/api/documents", body)
//	testutils.AssertErrorResponse(t, resp, http.StatusBadRequest, "Invalid meeting request")
package testutils
