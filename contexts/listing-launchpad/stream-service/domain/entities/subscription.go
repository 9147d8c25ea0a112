package entities

import "launchpad/internal/shared/events"

// Subscription is one connection's interest in a topic, optionally narrowed
// to a single entity. An empty EntityID means the whole topic.
type Subscription struct {
	ConnectionID string
	Topic        string
	EntityID     string
}

var knownTopics = map[string]struct{}{
	events.TopicTrades:        {},
	events.TopicPrices:        {},
	events.TopicAuctions:      {},
	events.TopicGovernance:    {},
	events.TopicNotifications: {},
}

func ValidTopic(topic string) bool {
	_, ok := knownTopics[topic]
	return ok
}

func Topics() []string {
	return []string{
		events.TopicTrades,
		events.TopicPrices,
		events.TopicAuctions,
		events.TopicGovernance,
		events.TopicNotifications,
	}
}
