// Package streamservice implements the real-time broadcast surface of the
// listing-launchpad context.
//
// The hub keeps a sharded per-topic registry with entity-scoped narrowing
// and a per-user index for direct sends. Delivery is strictly non-blocking:
// each websocket session owns a bounded outbound buffer, and a session that
// cannot keep up is evicted rather than allowed to stall a publisher.
package streamservice
