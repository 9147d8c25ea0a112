// Package launchpadservice implements the community listing launchpad inside
// the listing-launchpad context.
//
// The module owns the proposal lifecycle (draft through completed IPO), the
// quorum vote tally, and the Dutch-auction pricing and allocation engine.
// Business rules live in the domain and application layers; storage, event
// fan-out, and HTTP exposure sit behind ports and adapters. Per-auction price
// tickers run as supervised workers that publish through the broadcast hub.
package launchpadservice
