package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/disgoorg/snowflake/v2"

	"github.com/arvoh/manabot/internal/modules/musicplayer/domain"
)

const (
	testGuild   = snowflake.ID(100)
	testUser    = snowflake.ID(200)
	testChannel = snowflake.ID(300)
)

func TestJoinCreatesSession(t *testing.T) {
	repo := newFakeRepo()
	gateway := &mockGateway{}
	voiceState := &mockVoiceState{channels: map[snowflake.ID]snowflake.ID{testUser: testChannel}}
	svc := NewVoiceChannelService(repo, gateway, voiceState)

	output, err := svc.Join(context.Background(), JoinInput{GuildID: testGuild, UserID: testUser})
	if err != nil {
		t.Fatalf("Join() error = %v", err)
	}

	if output.VoiceChannelID != testChannel {
		t.Errorf("VoiceChannelID = %v, want %v", output.VoiceChannelID, testChannel)
	}
	session := repo.Get(testGuild)
	if session == nil {
		t.Fatal("Join() did not create a session")
	}
	if session.VoiceChannelID() != testChannel {
		t.Errorf("session channel = %v, want %v", session.VoiceChannelID(), testChannel)
	}
	if gateway.joinCalls != 1 {
		t.Errorf("JoinChannel calls = %d, want 1", gateway.joinCalls)
	}
}

func TestJoinUserNotInVoiceChannel(t *testing.T) {
	repo := newFakeRepo()
	gateway := &mockGateway{}
	voiceState := &mockVoiceState{channels: map[snowflake.ID]snowflake.ID{}}
	svc := NewVoiceChannelService(repo, gateway, voiceState)

	_, err := svc.Join(context.Background(), JoinInput{GuildID: testGuild, UserID: testUser})
	if !errors.Is(err, ErrNotInVoiceChannel) {
		t.Fatalf("Join() error = %v, want ErrNotInVoiceChannel", err)
	}

	if repo.Get(testGuild) != nil {
		t.Error("failed Join() must leave the registry untouched")
	}
	if gateway.joinCalls != 0 {
		t.Errorf("JoinChannel calls = %d, want 0", gateway.joinCalls)
	}
}

func TestJoinTransportFailureLeavesRegistryUntouched(t *testing.T) {
	repo := newFakeRepo()
	gateway := &mockGateway{joinErr: errors.New("handshake timeout")}
	voiceState := &mockVoiceState{channels: map[snowflake.ID]snowflake.ID{testUser: testChannel}}
	svc := NewVoiceChannelService(repo, gateway, voiceState)

	_, err := svc.Join(context.Background(), JoinInput{GuildID: testGuild, UserID: testUser})
	if !errors.Is(err, ErrTransportCommand) {
		t.Fatalf("Join() error = %v, want ErrTransportCommand", err)
	}
	if repo.Get(testGuild) != nil {
		t.Error("failed Join() must not create a session")
	}
}

func TestJoinWhileConnectedReplacesChannelAndPreservesState(t *testing.T) {
	repo := newFakeRepo()
	gateway := &mockGateway{}
	newChannel := snowflake.ID(400)
	voiceState := &mockVoiceState{channels: map[snowflake.ID]snowflake.ID{testUser: newChannel}}
	svc := NewVoiceChannelService(repo, gateway, voiceState)

	session := domain.NewSession(testGuild, testChannel)
	session.SetMuted(true)
	session.Enqueue(&domain.Track{Encoded: "a", Title: "Pending"})
	repo.Save(session)

	output, err := svc.Join(context.Background(), JoinInput{GuildID: testGuild, UserID: testUser})
	if err != nil {
		t.Fatalf("Join() error = %v", err)
	}

	if output.VoiceChannelID != newChannel {
		t.Errorf("VoiceChannelID = %v, want %v", output.VoiceChannelID, newChannel)
	}
	if session.VoiceChannelID() != newChannel {
		t.Errorf("session channel = %v, want %v", session.VoiceChannelID(), newChannel)
	}
	// Queue and flags survive the move
	if !session.Muted() {
		t.Error("mute flag lost on channel move")
	}
	if session.QueueLen() != 1 {
		t.Error("queue lost on channel move")
	}
	// The re-issued join must carry the current flags
	if !gateway.lastMute {
		t.Error("JoinChannel must be issued with the session's mute flag")
	}
}

func TestLeave(t *testing.T) {
	repo := newFakeRepo()
	gateway := &mockGateway{}
	svc := NewVoiceChannelService(repo, gateway, &mockVoiceState{})

	t.Run("not connected", func(t *testing.T) {
		err := svc.Leave(context.Background(), LeaveInput{GuildID: testGuild})
		if !errors.Is(err, ErrNotConnected) {
			t.Errorf("Leave() error = %v, want ErrNotConnected", err)
		}
	})

	t.Run("connected", func(t *testing.T) {
		repo.Save(domain.NewSession(testGuild, testChannel))

		if err := svc.Leave(context.Background(), LeaveInput{GuildID: testGuild}); err != nil {
			t.Fatalf("Leave() error = %v", err)
		}
		if repo.Get(testGuild) != nil {
			t.Error("Leave() must remove the session")
		}
		if gateway.leaveCalls != 1 {
			t.Errorf("LeaveChannel calls = %d, want 1", gateway.leaveCalls)
		}
	})

	t.Run("transport failure keeps session", func(t *testing.T) {
		repo.Save(domain.NewSession(testGuild, testChannel))
		gateway.leaveErr = errors.New("gateway down")

		err := svc.Leave(context.Background(), LeaveInput{GuildID: testGuild})
		if !errors.Is(err, ErrTransportCommand) {
			t.Fatalf("Leave() error = %v, want ErrTransportCommand", err)
		}
		if repo.Get(testGuild) == nil {
			t.Error("failed Leave() must keep the session")
		}
	})
}

func TestSetMute(t *testing.T) {
	tests := []struct {
		name        string
		initial     bool
		desired     bool
		wantErr     error
		wantCalls   int
		wantApplied bool
	}{
		{"mute when unmuted", false, true, nil, 1, true},
		{"unmute when muted", true, false, nil, 1, false},
		{"mute twice", true, true, ErrAlreadyMuted, 0, true},
		{"unmute twice", false, false, ErrAlreadyUnmuted, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			gateway := &mockGateway{}
			svc := NewVoiceChannelService(repo, gateway, &mockVoiceState{})

			session := domain.NewSession(testGuild, testChannel)
			session.SetMuted(tt.initial)
			repo.Save(session)

			err := svc.SetMute(context.Background(), FlagInput{GuildID: testGuild, Desired: tt.desired})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SetMute() error = %v, want %v", err, tt.wantErr)
			}
			// No transport call for a no-op request
			if gateway.updateCalls != tt.wantCalls {
				t.Errorf("UpdateVoiceFlags calls = %d, want %d", gateway.updateCalls, tt.wantCalls)
			}
			if session.Muted() != tt.wantApplied {
				t.Errorf("Muted() = %v, want %v", session.Muted(), tt.wantApplied)
			}
		})
	}
}

func TestSetMuteTransportFailureKeepsFlag(t *testing.T) {
	repo := newFakeRepo()
	gateway := &mockGateway{updateErr: errors.New("gateway down")}
	svc := NewVoiceChannelService(repo, gateway, &mockVoiceState{})

	session := domain.NewSession(testGuild, testChannel)
	repo.Save(session)

	err := svc.SetMute(context.Background(), FlagInput{GuildID: testGuild, Desired: true})
	if !errors.Is(err, ErrTransportCommand) {
		t.Fatalf("SetMute() error = %v, want ErrTransportCommand", err)
	}
	if session.Muted() {
		t.Error("local flag must not change when the transport call fails")
	}
}

func TestSetDeafen(t *testing.T) {
	repo := newFakeRepo()
	gateway := &mockGateway{}
	svc := NewVoiceChannelService(repo, gateway, &mockVoiceState{})

	session := domain.NewSession(testGuild, testChannel)
	session.SetMuted(true)
	repo.Save(session)

	if err := svc.SetDeafen(context.Background(), FlagInput{GuildID: testGuild, Desired: true}); err != nil {
		t.Fatalf("SetDeafen() error = %v", err)
	}
	if !session.Deafened() {
		t.Error("deafen flag not applied")
	}
	// The transport update must preserve the unrelated mute flag
	if !gateway.lastMute || !gateway.lastDeaf {
		t.Errorf("UpdateVoiceFlags(mute=%v, deaf=%v), want both true", gateway.lastMute, gateway.lastDeaf)
	}

	err := svc.SetDeafen(context.Background(), FlagInput{GuildID: testGuild, Desired: true})
	if !errors.Is(err, ErrAlreadyDeafened) {
		t.Errorf("SetDeafen() repeat error = %v, want ErrAlreadyDeafened", err)
	}
	if gateway.updateCalls != 1 {
		t.Errorf("UpdateVoiceFlags calls = %d, want 1 (no call for no-op)", gateway.updateCalls)
	}
}

func TestFlagOpsWithoutSession(t *testing.T) {
	svc := NewVoiceChannelService(newFakeRepo(), &mockGateway{}, &mockVoiceState{})

	if err := svc.SetMute(context.Background(), FlagInput{GuildID: testGuild, Desired: true}); !errors.Is(err, ErrNotConnected) {
		t.Errorf("SetMute() error = %v, want ErrNotConnected", err)
	}
	if err := svc.SetDeafen(context.Background(), FlagInput{GuildID: testGuild, Desired: true}); !errors.Is(err, ErrNotConnected) {
		t.Errorf("SetDeafen() error = %v, want ErrNotConnected", err)
	}
}
