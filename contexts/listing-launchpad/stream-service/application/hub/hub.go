package hub

import (
	"log/slog"
	"sync"

	"launchpad/contexts/listing-launchpad/stream-service/domain/entities"
	domainerrors "launchpad/contexts/listing-launchpad/stream-service/domain/errors"
	"launchpad/contexts/listing-launchpad/stream-service/ports"
	"launchpad/internal/shared/events"
)

// Hub is the in-process broadcast registry. One shard per topic, each with
// its own lock, so publishes on busy topics never contend with quiet ones.
// The hub never blocks on a subscriber: delivery is a non-blocking TrySend,
// and a subscriber that cannot keep up is evicted from every index on the
// spot. Per-subscriber order is the publish order; nothing is promised
// across subscribers.
type Hub struct {
	shards map[string]*topicShard
	logger *slog.Logger

	usersMu sync.RWMutex
	users   map[string]map[string]ports.Conn
}

type topicShard struct {
	mu sync.RWMutex

	// conns holds the topic-wide subscribers; byEntity holds subscribers
	// narrowed to a single entity. A connection sits in exactly one of the
	// two per subscription.
	conns    map[string]ports.Conn
	byEntity map[string]map[string]ports.Conn
}

func New(logger *slog.Logger) *Hub {
	shards := make(map[string]*topicShard, len(entities.Topics()))
	for _, topic := range entities.Topics() {
		shards[topic] = &topicShard{
			conns:    make(map[string]ports.Conn),
			byEntity: make(map[string]map[string]ports.Conn),
		}
	}
	return &Hub{
		shards: shards,
		logger: logger,
		users:  make(map[string]map[string]ports.Conn),
	}
}

// Subscribe registers the connection for the topic, optionally narrowed to
// one entity. Subscribing twice to the same target is a no-op.
func (h *Hub) Subscribe(topic string, entityID string, conn ports.Conn) error {
	shard, ok := h.shards[topic]
	if !ok {
		return domainerrors.ErrUnknownTopic
	}
	shard.mu.Lock()
	defer shard.mu.Unlock()
	if entityID == "" {
		shard.conns[conn.ID()] = conn
		return nil
	}
	set, ok := shard.byEntity[entityID]
	if !ok {
		set = make(map[string]ports.Conn)
		shard.byEntity[entityID] = set
	}
	set[conn.ID()] = conn
	return nil
}

// Unsubscribe removes the connection from the topic target. An empty entity
// ID drops the connection from the whole topic, entity sets included, so a
// plain topic unsubscribe silences earlier entity-scoped subscriptions too.
// Unknown topics and absent subscriptions are no-ops.
func (h *Hub) Unsubscribe(topic string, entityID string, connID string) {
	shard, ok := h.shards[topic]
	if !ok {
		return
	}
	shard.mu.Lock()
	defer shard.mu.Unlock()
	if entityID == "" {
		delete(shard.conns, connID)
		for entityID, set := range shard.byEntity {
			delete(set, connID)
			if len(set) == 0 {
				delete(shard.byEntity, entityID)
			}
		}
		return
	}
	set, ok := shard.byEntity[entityID]
	if !ok {
		return
	}
	delete(set, connID)
	if len(set) == 0 {
		delete(shard.byEntity, entityID)
	}
}

// RegisterUser binds the connection to a user identity for direct sends. A
// user may hold several connections at once.
func (h *Hub) RegisterUser(userID string, conn ports.Conn) {
	if userID == "" {
		return
	}
	h.usersMu.Lock()
	defer h.usersMu.Unlock()
	set, ok := h.users[userID]
	if !ok {
		set = make(map[string]ports.Conn)
		h.users[userID] = set
	}
	set[conn.ID()] = conn
}

// Drop evicts the connection from every topic, every entity set, and the
// user index, then closes it. Safe to call more than once.
func (h *Hub) Drop(conn ports.Conn) {
	connID := conn.ID()
	for _, shard := range h.shards {
		shard.mu.Lock()
		delete(shard.conns, connID)
		for entityID, set := range shard.byEntity {
			delete(set, connID)
			if len(set) == 0 {
				delete(shard.byEntity, entityID)
			}
		}
		shard.mu.Unlock()
	}
	h.usersMu.Lock()
	for userID, set := range h.users {
		delete(set, connID)
		if len(set) == 0 {
			delete(h.users, userID)
		}
	}
	h.usersMu.Unlock()
	_ = conn.Close()
}

// Publish fans the event out to the topic-wide subscribers plus the
// subscribers scoped to the event's entity. Subscribers that refuse the
// event are evicted after the fan-out; the publisher never waits.
func (h *Hub) Publish(topic string, entityID string, event events.Envelope) {
	shard, ok := h.shards[topic]
	if !ok {
		return
	}

	shard.mu.RLock()
	recipients := make(map[string]ports.Conn, len(shard.conns))
	for connID, conn := range shard.conns {
		recipients[connID] = conn
	}
	if entityID != "" {
		for connID, conn := range shard.byEntity[entityID] {
			recipients[connID] = conn
		}
	}
	shard.mu.RUnlock()

	var dead []ports.Conn
	for _, conn := range recipients {
		if !conn.TrySend(event) {
			dead = append(dead, conn)
		}
	}
	h.evict(dead, topic, event.EventType)
}

// SendToUser delivers the event to every connection the user holds.
func (h *Hub) SendToUser(userID string, event events.Envelope) {
	h.usersMu.RLock()
	set := h.users[userID]
	recipients := make([]ports.Conn, 0, len(set))
	for _, conn := range set {
		recipients = append(recipients, conn)
	}
	h.usersMu.RUnlock()

	var dead []ports.Conn
	for _, conn := range recipients {
		if !conn.TrySend(event) {
			dead = append(dead, conn)
		}
	}
	h.evict(dead, "user", event.EventType)
}

// SubscriberCount reports the live subscriber total for a topic, entity
// sets included.
func (h *Hub) SubscriberCount(topic string) int {
	shard, ok := h.shards[topic]
	if !ok {
		return 0
	}
	shard.mu.RLock()
	defer shard.mu.RUnlock()
	seen := make(map[string]struct{}, len(shard.conns))
	for connID := range shard.conns {
		seen[connID] = struct{}{}
	}
	for _, set := range shard.byEntity {
		for connID := range set {
			seen[connID] = struct{}{}
		}
	}
	return len(seen)
}

func (h *Hub) evict(dead []ports.Conn, topic string, eventType string) {
	for _, conn := range dead {
		h.Drop(conn)
		if h.logger != nil {
			h.logger.Warn("slow or closed subscriber dropped",
				"event", "stream_subscriber_dropped",
				"module", "listing-launchpad/stream-service",
				"layer", "application",
				"connection_id", conn.ID(),
				"topic", topic,
				"event_type", eventType,
			)
		}
	}
}
