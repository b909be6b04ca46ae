package chat

import (
	"context"
	"encoding/json"
	"time"

	"cryptochat-backend/internal/common/logger"
	usermodels "cryptochat-backend/internal/features/user/models"
)

// HandleJoin processes a join event. A payload carrying a username and
// wallet address moves the user online; an absent payload is an explicit
// leave. Join failures are reported to the originating connection only.
func (co *Coordinator) HandleJoin(connID string, data json.RawMessage) {
	if isEmptyPayload(data) {
		co.handleLeave(connID, "leave")
		return
	}

	var identity usermodels.Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		co.sender.SendTo(connID, mustEncode(EventJoinError, ErrorPayload{Error: "invalid join payload"}))
		return
	}
	if identity.Username == "" || identity.WalletAddress == "" {
		// No usable identity claim: treated the same as an empty payload.
		co.handleLeave(connID, "leave")
		return
	}

	ctx := context.Background()

	// First match on username or wallet wins; the $or lookup deliberately
	// tolerates wallet rotation and renames.
	user, err := co.users.FindByUsernameOrWallet(ctx, identity.Username, identity.WalletAddress)
	if err != nil {
		logger.Error().Str("conn_id", connID).Err(err).Msg("Join lookup failed")
		co.sender.SendTo(connID, mustEncode(EventJoinError, ErrorPayload{Error: "failed to join chat"}))
		return
	}

	if user == nil {
		now := time.Now()
		user = &usermodels.User{
			Username:      identity.Username,
			WalletAddress: identity.WalletAddress,
			Avatar:        identity.Avatar,
			Role:          identity.Role,
			IsOnline:      true,
			SocketID:      connID,
			LastSeen:      now,
			JoinedAt:      now,
		}
		if err := co.users.Create(ctx, user); err != nil {
			logger.Error().Str("conn_id", connID).Str("username", identity.Username).Err(err).Msg("User create failed")
			co.sender.SendTo(connID, mustEncode(EventJoinError, ErrorPayload{Error: "failed to join chat"}))
			return
		}
		logger.Info().Str("username", user.Username).Msg("New user joined")
	} else {
		if err := co.users.BindSocket(ctx, user.ID, connID, identity.Avatar, identity.Role); err != nil {
			logger.Error().Str("conn_id", connID).Str("username", user.Username).Err(err).Msg("Socket bind failed")
			co.sender.SendTo(connID, mustEncode(EventJoinError, ErrorPayload{Error: "failed to join chat"}))
			return
		}
		if identity.Avatar != "" {
			user.Avatar = identity.Avatar
		}
		logger.Info().Str("username", user.Username).Msg("User rejoined")
	}

	co.registry.Bind(connID, user.ID.Hex())

	co.sender.BroadcastExcept(connID, mustEncode(EventUserJoined, UserJoinedPayload{
		Username: user.Username,
		Avatar:   user.Avatar,
		IsOnline: true,
	}))
}

// HandleDisconnect processes a transport-level drop. Nobody is listening for
// a reply on that connection anymore, so failures are only logged.
func (co *Coordinator) HandleDisconnect(connID string) {
	co.handleLeave(connID, "disconnect")
}

func (co *Coordinator) handleLeave(connID, cause string) {
	userIDHex, ok := co.registry.Resolve(connID)
	if !ok {
		// The connection never completed a join; nothing to tear down.
		logger.Debug().Str("conn_id", connID).Str("cause", cause).Msg("Leave for unbound connection")
		return
	}

	ctx := context.Background()

	userID, err := parseObjectID(userIDHex)
	if err != nil {
		logger.Error().Str("conn_id", connID).Str("user_id", userIDHex).Err(err).Msg("Corrupt registry entry")
		co.registry.Unbind(connID)
		return
	}

	user, err := co.users.FindByID(ctx, userID)
	if err != nil {
		logger.Error().Str("conn_id", connID).Err(err).Msg("Leave lookup failed")
	}

	if err := co.users.SetOffline(ctx, userID); err != nil {
		logger.Error().Str("conn_id", connID).Err(err).Msg("Offline update failed")
	}

	if user != nil {
		co.sender.BroadcastExcept(connID, mustEncode(EventUserLeft, UserLeftPayload{
			Username: user.Username,
			Avatar:   user.Avatar,
		}))
		logger.Info().Str("username", user.Username).Str("cause", cause).Msg("User left")
	}

	co.registry.Unbind(connID)
}
