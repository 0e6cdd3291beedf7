package mq

import (
	"context"
	"encoding/json"
	"log"

	"pgfinder/rdx"
)

const channel = "pg-events"

// Index describes a listing mutation for downstream consumers
// (cache warmers, search indexers on other instances).
type Index struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityId   string `json:"entity_id"`
}

// Emit publishes a mutation event to Redis. Best effort: a failed
// publish is logged and never fails the request that triggered it.
func Emit(ctx context.Context, eventName string, content Index) {
	if rdx.Conn == nil {
		return
	}

	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[Emit] failed to marshal %s event: %v", eventName, err)
		return
	}

	if err := rdx.Conn.Publish(ctx, channel, data).Err(); err != nil {
		log.Printf("[Emit] failed to publish %s event: %v", eventName, err)
	}
}
