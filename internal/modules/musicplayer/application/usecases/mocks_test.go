package usecases

import (
	"context"
	"time"

	"github.com/disgoorg/snowflake/v2"

	"github.com/arvoh/manabot/internal/modules/musicplayer/application/ports"
	"github.com/arvoh/manabot/internal/modules/musicplayer/domain"
)

// fakeRepo is a map-backed SessionRepository for tests.
type fakeRepo struct {
	sessions map[snowflake.ID]*domain.Session
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{sessions: make(map[snowflake.ID]*domain.Session)}
}

func (r *fakeRepo) Get(guildID snowflake.ID) *domain.Session { return r.sessions[guildID] }

func (r *fakeRepo) Save(s *domain.Session) { r.sessions[s.GuildID()] = s }

func (r *fakeRepo) Delete(guildID snowflake.ID) { delete(r.sessions, guildID) }

// mockGateway records voice transport calls.
type mockGateway struct {
	joinCalls   int
	leaveCalls  int
	updateCalls int

	lastMute bool
	lastDeaf bool

	joinErr   error
	leaveErr  error
	updateErr error
}

func (g *mockGateway) JoinChannel(_ context.Context, _, _ snowflake.ID, mute, deaf bool) error {
	g.joinCalls++
	g.lastMute = mute
	g.lastDeaf = deaf
	return g.joinErr
}

func (g *mockGateway) LeaveChannel(_ context.Context, _ snowflake.ID) error {
	g.leaveCalls++
	return g.leaveErr
}

func (g *mockGateway) UpdateVoiceFlags(_ context.Context, _, _ snowflake.ID, mute, deaf bool) error {
	g.updateCalls++
	g.lastMute = mute
	g.lastDeaf = deaf
	return g.updateErr
}

// mockPlayer records playback calls.
type mockPlayer struct {
	playCalls int
	stopCalls int
	played    []*domain.Track

	position time.Duration

	playErr error
	stopErr error
}

func (p *mockPlayer) Play(_ context.Context, _ snowflake.ID, track *domain.Track) error {
	p.playCalls++
	if p.playErr != nil {
		return p.playErr
	}
	p.played = append(p.played, track)
	return nil
}

func (p *mockPlayer) Stop(_ context.Context, _ snowflake.ID) error {
	p.stopCalls++
	return p.stopErr
}

func (p *mockPlayer) Position(_ snowflake.ID) time.Duration {
	return p.position
}

// mockResolver returns a canned load result.
type mockResolver struct {
	result *ports.LoadResult
	err    error

	lastQuery string
}

func (r *mockResolver) LoadTracks(_ context.Context, query string) (*ports.LoadResult, error) {
	r.lastQuery = query
	if r.err != nil {
		return nil, r.err
	}
	return r.result, nil
}

// mockVoiceState maps users to voice channels.
type mockVoiceState struct {
	channels map[snowflake.ID]snowflake.ID
	err      error
}

func (v *mockVoiceState) GetUserVoiceChannel(_, userID snowflake.ID) (snowflake.ID, error) {
	if v.err != nil {
		return 0, v.err
	}
	return v.channels[userID], nil
}

var (
	_ domain.SessionRepository = (*fakeRepo)(nil)
	_ ports.VoiceGateway       = (*mockGateway)(nil)
	_ ports.AudioPlayer        = (*mockPlayer)(nil)
	_ ports.TrackResolver      = (*mockResolver)(nil)
	_ ports.VoiceStateProvider = (*mockVoiceState)(nil)
)
