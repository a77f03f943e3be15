package webhook

import (
	"context"

	"github.com/sidequesthq/sidequest/internal/application/ports"
)

// NoopEmitter drops every event. Used when no webhook endpoint is
// configured; audit events still reach the structured log.
type NoopEmitter struct{}

func NewNoopEmitter() *NoopEmitter { return &NoopEmitter{} }

func (NoopEmitter) Emit(context.Context, ports.AuditEvent) error { return nil }

var _ ports.WebhookEmitter = (*NoopEmitter)(nil)
