// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

/*
Package metrics provides Prometheus metrics for the storefront.

Metrics are registered on the default registry at init and exposed at
/metrics in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

HTTP Metrics:
  - http_requests_total: Total HTTP requests (counter)
    Labels: method, endpoint, status
  - http_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - http_requests_in_flight: Active requests (gauge)

Session Metrics:
  - tigana_sessions_open: Sessions held by the session manager (gauge)
  - tigana_cart_mutations_total: Cart actions applied (counter)
    Labels: action
  - tigana_tracker_events_total: Behavior events recorded (counter)
    Labels: event

Recommendation Metrics:
  - tigana_recommend_duration_seconds: Time to compute a list (histogram)
    Labels: surface
  - tigana_recommend_results: Items returned per list (histogram)
    Labels: surface

Persistence Metrics:
  - tigana_storage_writes_total: Record writes (counter)
    Labels: record, result
  - tigana_hydration_fallbacks_total: Records replaced by defaults (counter)
    Labels: record, reason
  - circuit_breaker_state: Breaker state, 0=closed 1=half-open 2=open (gauge)
    Labels: name
  - circuit_breaker_state_transitions_total: Breaker transitions (counter)
    Labels: name, from_state, to_state

Other:
  - tigana_faq_responses_total: Chat answers (counter)
    Labels: route
  - tigana_promo_applications_total: Promo code checks (counter)
    Labels: result
  - tigana_events_consumed_total: Behavior events seen by the consumer (counter)
    Labels: kind
  - tigana_events_publish_failures_total: Failed event publishes (counter)
*/
package metrics
