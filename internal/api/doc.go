// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package api provides the HTTP client for the ForgeFit backend.

Every call is a single JSON request with no retries. Failures come back as
*ClientError, split into two tiers:

  - ErrTypeApplication: the server answered with success=false or an error
    field. Message carries the server text and may be empty.
  - ErrTypeTransport: the request could not be sent or the body could not be
    decoded.

Usage:

	client, err := api.NewClientWithConfig(&api.ClientConfig{
	    BaseURL:       "http://127.0.0.1:5000",
	    SessionCookie: os.Getenv("FORGEFIT_SESSION"),
	})
	results, err := client.SearchFood(ctx, "chicken")
*/
package api
