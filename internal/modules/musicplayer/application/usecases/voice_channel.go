package usecases

import (
	"context"
	"fmt"

	"github.com/disgoorg/snowflake/v2"

	"github.com/arvoh/manabot/internal/modules/musicplayer/application/ports"
	"github.com/arvoh/manabot/internal/modules/musicplayer/domain"
)

// JoinInput contains the input for the Join use case.
type JoinInput struct {
	GuildID snowflake.ID
	UserID  snowflake.ID
}

// JoinOutput contains the result of the Join use case.
type JoinOutput struct {
	VoiceChannelID snowflake.ID
}

// LeaveInput contains the input for the Leave use case.
type LeaveInput struct {
	GuildID snowflake.ID
}

// FlagInput contains the input for the SetMute and SetDeafen use cases.
type FlagInput struct {
	GuildID snowflake.ID
	Desired bool
}

// VoiceChannelService handles voice channel operations.
type VoiceChannelService struct {
	repo       domain.SessionRepository
	gateway    ports.VoiceGateway
	voiceState ports.VoiceStateProvider
}

// NewVoiceChannelService creates a new VoiceChannelService.
func NewVoiceChannelService(
	repo domain.SessionRepository,
	gateway ports.VoiceGateway,
	voiceState ports.VoiceStateProvider,
) *VoiceChannelService {
	return &VoiceChannelService{
		repo:       repo,
		gateway:    gateway,
		voiceState: voiceState,
	}
}

// Join connects the bot to the requesting user's voice channel. A session is
// only ever created here; on any failure the registry is left untouched.
// Joining while already connected replaces the target channel and preserves
// the queue and flags.
func (v *VoiceChannelService) Join(ctx context.Context, input JoinInput) (*JoinOutput, error) {
	channelID, err := v.voiceState.GetUserVoiceChannel(input.GuildID, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransportCommand, err)
	}
	if channelID == 0 {
		return nil, ErrNotInVoiceChannel
	}

	existing := v.repo.Get(input.GuildID)
	if existing == nil {
		if err := v.gateway.JoinChannel(ctx, input.GuildID, channelID, false, false); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrTransportCommand, err)
		}
		v.repo.Save(domain.NewSession(input.GuildID, channelID))
		return &JoinOutput{VoiceChannelID: channelID}, nil
	}

	existing.Lock()
	defer existing.Unlock()

	// Re-issue the join with the session's current flags so moving channels
	// does not silently unmute or undeafen the bot.
	if err := v.gateway.JoinChannel(ctx, input.GuildID, channelID, existing.Muted(), existing.Deafened()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransportCommand, err)
	}
	existing.SetVoiceChannel(channelID)

	return &JoinOutput{VoiceChannelID: channelID}, nil
}

// Leave tears down the voice connection and removes the session.
func (v *VoiceChannelService) Leave(ctx context.Context, input LeaveInput) error {
	session := v.repo.Get(input.GuildID)
	if session == nil {
		return ErrNotConnected
	}

	session.Lock()
	defer session.Unlock()

	if err := v.gateway.LeaveChannel(ctx, input.GuildID); err != nil {
		return fmt.Errorf("%w: %w", ErrTransportCommand, err)
	}

	v.repo.Delete(input.GuildID)
	return nil
}

// SetMute sets the self-mute flag. A request matching the current state is a
// no-op that reports already-in-state without issuing a transport call; the
// local flag is only updated once the transport confirms success.
func (v *VoiceChannelService) SetMute(ctx context.Context, input FlagInput) error {
	session := v.repo.Get(input.GuildID)
	if session == nil {
		return ErrNotConnected
	}

	session.Lock()
	defer session.Unlock()

	if session.Muted() == input.Desired {
		if input.Desired {
			return ErrAlreadyMuted
		}
		return ErrAlreadyUnmuted
	}

	err := v.gateway.UpdateVoiceFlags(ctx, input.GuildID, session.VoiceChannelID(), input.Desired, session.Deafened())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransportCommand, err)
	}

	session.SetMuted(input.Desired)
	return nil
}

// SetDeafen sets the self-deafen flag with the same no-op and
// confirm-before-apply semantics as SetMute.
func (v *VoiceChannelService) SetDeafen(ctx context.Context, input FlagInput) error {
	session := v.repo.Get(input.GuildID)
	if session == nil {
		return ErrNotConnected
	}

	session.Lock()
	defer session.Unlock()

	if session.Deafened() == input.Desired {
		if input.Desired {
			return ErrAlreadyDeafened
		}
		return ErrAlreadyUndeafened
	}

	err := v.gateway.UpdateVoiceFlags(ctx, input.GuildID, session.VoiceChannelID(), session.Muted(), input.Desired)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransportCommand, err)
	}

	session.SetDeafened(input.Desired)
	return nil
}
