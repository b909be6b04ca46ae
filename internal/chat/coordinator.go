package chat

import (
	channelrepo "cryptochat-backend/internal/features/channel/repository"
	messagerepo "cryptochat-backend/internal/features/message/repository"
	userrepo "cryptochat-backend/internal/features/user/repository"
)

// Coordinator binds ephemeral connections to durable identities and fans
// chat traffic out to every live connection. It is safe for concurrent use:
// events for different connections run concurrently and synchronise only on
// the registry and on per-document store writes.
type Coordinator struct {
	registry *Registry
	sender   Sender
	users    userrepo.UserRepository
	messages messagerepo.MessageRepository
	channels channelrepo.ChannelRepository

	// broadcastChannels is the fixed channel set an all-channel broadcast
	// fans out over.
	broadcastChannels []string
}

func NewCoordinator(
	registry *Registry,
	sender Sender,
	users userrepo.UserRepository,
	messages messagerepo.MessageRepository,
	channels channelrepo.ChannelRepository,
	broadcastChannels []string,
) *Coordinator {
	return &Coordinator{
		registry:          registry,
		sender:            sender,
		users:             users,
		messages:          messages,
		channels:          channels,
		broadcastChannels: broadcastChannels,
	}
}
