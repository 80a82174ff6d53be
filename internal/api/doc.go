// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

/*
Package api serves the storefront over HTTP with a chi router.

Every response uses one envelope:

	{
	  "success": true,
	  "data": {...},
	  "error": {"code": "PRODUCT_NOT_FOUND", "message": "..."},
	  "meta": {"request_id": "...", "session_id": "...", "timestamp": "...", "duration_ms": 0}
	}

Session-scoped routes live under /api/v1/sessions/{sid}. The session is
opened (and hydrated from storage on first use) by the handler; the id must
be printable ASCII without spaces, colons or slashes.

Middleware, outermost first: RealIP, request ID with logging context,
panic recovery, Prometheus request metrics, request logging, security
headers, CORS. The /api/v1 group adds per-IP rate limiting (httprate) and a
request body cap; tracking routes add a per-session token bucket
(x/time/rate).
*/
package api
