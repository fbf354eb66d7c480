// Package events defines the run progress events exchanged between the
// executor side and the status tracker.
package events

import (
	"time"

	"github.com/paygrid/paygrid/pkg/models"
)

type EventType string

// Topic carries every run progress event.
const Topic = "paygrid.run.events"

const EventKeyMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	// Run lifecycle events.
	RunStartedEvent   EventType = "run.started"
	RunFinishedEvent  EventType = "run.finished"
	RunFailedEvent    EventType = "run.failed"
	RunCancelledEvent EventType = "run.cancelled"

	// Per-node progress events.
	NodeProgressEvent EventType = "run.node.progress"
)

type BaseEvent struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	JobID     string         `json:"job_id"`
	RunID     string         `json:"run_id"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// RunStarted announces a confirmed run. Reachable carries the node ids the
// tracker must reset to pending; everything else returns to idle.
type RunStarted struct {
	BaseEvent

	TriggerIDs []string       `json:"trigger_ids"`
	Reachable  []string       `json:"reachable"`
	TotalMicro int64          `json:"total_micro"`
	Inputs     map[string]any `json:"inputs,omitempty"`
}

func (r RunStarted) GetType() EventType {
	return RunStartedEvent
}

// NodeProgress reports one node's state change. Delivery may be duplicated or
// out of order; the tracker reducer absorbs both.
type NodeProgress struct {
	BaseEvent

	NodeID   string            `json:"node_id"`
	Status   models.NodeStatus `json:"status"`
	Progress *float64          `json:"progress,omitempty"`
	Output   map[string]any    `json:"output,omitempty"`
	Error    string            `json:"error,omitempty"`
}

func (n NodeProgress) GetType() EventType {
	return NodeProgressEvent
}

type RunFinished struct {
	BaseEvent

	Duration time.Duration  `json:"duration"`
	Result   map[string]any `json:"result,omitempty"`
}

func (r RunFinished) GetType() EventType {
	return RunFinishedEvent
}

type RunFailed struct {
	BaseEvent

	Error    string        `json:"error"`
	Duration time.Duration `json:"duration"`
}

func (r RunFailed) GetType() EventType {
	return RunFailedEvent
}

// RunCancelled is a single external signal; the tracker moves every
// non-terminal node back to idle without raising an error.
type RunCancelled struct {
	BaseEvent
}

func (r RunCancelled) GetType() EventType {
	return RunCancelledEvent
}
