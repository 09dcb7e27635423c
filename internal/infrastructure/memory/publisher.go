package memory

import (
	"context"

	"github.com/jobhive/auth-service/internal/application/identity"
)

// NoopPublisher drops events. Used in dev mode when no broker is
// configured.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

func (NoopPublisher) PublishRegistered(context.Context, identity.RegisteredEvent) error {
	return nil
}
