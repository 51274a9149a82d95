package registry

import (
	"github.com/nfrund/learnhub/internal/domain"
	"github.com/nfrund/learnhub/internal/pubsub"
	"github.com/nfrund/learnhub/internal/storage"
)

// Keys of the core services the server registers before any module.
// Module services declare their own keys next to the service type.
const (
	StoreKey      Key[domain.Store]      = "core.store"
	PublisherKey  Key[pubsub.Publisher]  = "core.publisher"
	SubscriberKey Key[pubsub.Subscriber] = "core.subscriber"
	AssetsKey     Key[storage.Store]     = "core.assets"
)
