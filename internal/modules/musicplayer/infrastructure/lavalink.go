package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/disgolink/v3/disgolink"
	"github.com/disgoorg/disgolink/v3/lavalink"
	"github.com/disgoorg/snowflake/v2"

	"github.com/arvoh/manabot/internal/modules/musicplayer/application/ports"
	"github.com/arvoh/manabot/internal/modules/musicplayer/domain"
)

// voiceConnectTimeout is the maximum time to wait for the voice handshake.
const voiceConnectTimeout = 10 * time.Second

// TrackEndHandler is invoked when Lavalink reports a track end.
type TrackEndHandler func(guildID snowflake.ID, reason domain.TrackEndReason)

// pendingJoin tracks an in-flight voice handshake. Discord delivers a
// VoiceStateUpdate and a VoiceServerUpdate in either order; the join is
// complete once both arrived.
type pendingJoin struct {
	mu             sync.Mutex
	hasVoiceState  bool
	hasVoiceServer bool
	ready          chan struct{}
}

func (p *pendingJoin) onEvent(isVoiceState bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if isVoiceState {
		p.hasVoiceState = true
	} else {
		p.hasVoiceServer = true
	}

	if p.hasVoiceState && p.hasVoiceServer {
		select {
		case <-p.ready:
			// Already closed
		default:
			close(p.ready)
		}
	}
}

// voiceEventBuffer holds voice events until both halves of the handshake are
// present, so Lavalink never sees a partial voice state.
type voiceEventBuffer struct {
	mu sync.Mutex

	// From VoiceStateUpdate
	hasVoiceState bool
	channelID     *snowflake.ID
	sessionID     string

	// From VoiceServerUpdate
	hasVoiceServer bool
	token          string
	endpoint       string
}

func (b *voiceEventBuffer) setVoiceState(channelID *snowflake.ID, sessionID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.hasVoiceState = true
	b.channelID = channelID
	b.sessionID = sessionID

	return b.hasVoiceState && b.hasVoiceServer
}

func (b *voiceEventBuffer) setVoiceServer(token, endpoint string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.hasVoiceServer = true
	b.token = token
	b.endpoint = endpoint

	return b.hasVoiceState && b.hasVoiceServer
}

// take returns the buffered data and resets the buffer.
func (b *voiceEventBuffer) take() (channelID *snowflake.ID, sessionID, token, endpoint string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	channelID = b.channelID
	sessionID = b.sessionID
	token = b.token
	endpoint = b.endpoint

	b.hasVoiceState = false
	b.hasVoiceServer = false
	b.channelID = nil
	b.sessionID = ""
	b.token = ""
	b.endpoint = ""

	return
}

// LavalinkGateway wraps DisGoLink to implement the voice transport, audio
// player, and track resolver ports.
type LavalinkGateway struct {
	link    disgolink.Client
	session *discordgo.Session
	botID   snowflake.ID

	pendingMu sync.Mutex
	pending   map[snowflake.ID]*pendingJoin

	bufferMu sync.Mutex
	buffers  map[snowflake.ID]*voiceEventBuffer

	onTrackEnd TrackEndHandler
}

// LavalinkConfig contains Lavalink connection configuration.
type LavalinkConfig struct {
	Address  string
	Password string
}

// NewLavalinkGateway creates a LavalinkGateway connected to a single node.
func NewLavalinkGateway(session *discordgo.Session, config LavalinkConfig) (*LavalinkGateway, error) {
	botID, err := snowflake.Parse(session.State.User.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bot ID: %w", err)
	}

	gw := &LavalinkGateway{
		session: session,
		botID:   botID,
		pending: make(map[snowflake.ID]*pendingJoin),
		buffers: make(map[snowflake.ID]*voiceEventBuffer),
	}

	link := disgolink.New(botID,
		disgolink.WithListenerFunc(gw.handleTrackStart),
		disgolink.WithListenerFunc(gw.handleTrackEnd),
		disgolink.WithListenerFunc(gw.handleTrackException),
		disgolink.WithListenerFunc(gw.handleTrackStuck),
	)
	gw.link = link

	node, err := link.AddNode(context.Background(), disgolink.NodeConfig{
		Name:     "main",
		Address:  config.Address,
		Password: config.Password,
		Secure:   false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add Lavalink node: %w", err)
	}

	slog.Info("connected to Lavalink", "node", node.Config().Name, "address", config.Address)

	return gw, nil
}

// SetTrackEndHandler registers the callback invoked on track end events.
func (g *LavalinkGateway) SetTrackEndHandler(handler TrackEndHandler) {
	g.onTrackEnd = handler
}

// Close shuts down the Lavalink connection.
func (g *LavalinkGateway) Close() {
	g.link.Close()
}

// JoinChannel connects to a voice channel with the given self-mute/deafen
// flags and waits until both handshake events arrived.
func (g *LavalinkGateway) JoinChannel(ctx context.Context, guildID, channelID snowflake.ID, mute, deaf bool) error {
	pending := &pendingJoin{
		ready: make(chan struct{}),
	}

	g.pendingMu.Lock()
	g.pending[guildID] = pending
	g.pendingMu.Unlock()

	defer func() {
		g.pendingMu.Lock()
		delete(g.pending, guildID)
		g.pendingMu.Unlock()
	}()

	err := g.session.ChannelVoiceJoinManual(guildID.String(), channelID.String(), mute, deaf)
	if err != nil {
		return fmt.Errorf("failed to join voice channel: %w", err)
	}

	select {
	case <-pending.ready:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("context cancelled while waiting for voice connection: %w", ctx.Err())
	case <-time.After(voiceConnectTimeout):
		return fmt.Errorf("timeout waiting for voice connection")
	}
}

// LeaveChannel disconnects from the voice channel and destroys the player.
func (g *LavalinkGateway) LeaveChannel(ctx context.Context, guildID snowflake.ID) error {
	player := g.link.ExistingPlayer(guildID)
	if player != nil {
		if err := player.Destroy(ctx); err != nil {
			slog.Warn("failed to destroy player", "guild_id", guildID, "error", err)
		}
	}

	err := g.session.ChannelVoiceJoinManual(guildID.String(), "", false, false)
	if err != nil {
		return fmt.Errorf("failed to leave voice channel: %w", err)
	}
	return nil
}

// UpdateVoiceFlags re-issues the voice state update with the desired flags.
// Unlike JoinChannel, this does not wait for a handshake: the connection is
// already established and Discord only acknowledges the flag change.
func (g *LavalinkGateway) UpdateVoiceFlags(_ context.Context, guildID, channelID snowflake.ID, mute, deaf bool) error {
	err := g.session.ChannelVoiceJoinManual(guildID.String(), channelID.String(), mute, deaf)
	if err != nil {
		return fmt.Errorf("failed to update voice flags: %w", err)
	}
	return nil
}

// Play starts playback of a track.
func (g *LavalinkGateway) Play(ctx context.Context, guildID snowflake.ID, track *domain.Track) error {
	player := g.link.Player(guildID)

	if err := player.Update(ctx, lavalink.WithEncodedTrack(track.Encoded)); err != nil {
		return fmt.Errorf("failed to play track: %w", err)
	}

	return nil
}

// Stop halts the current playback.
func (g *LavalinkGateway) Stop(ctx context.Context, guildID snowflake.ID) error {
	player := g.link.Player(guildID)

	if err := player.Update(ctx, lavalink.WithNullTrack()); err != nil {
		return fmt.Errorf("failed to stop playback: %w", err)
	}

	return nil
}

// Position returns the elapsed playback time of the current track.
func (g *LavalinkGateway) Position(guildID snowflake.ID) time.Duration {
	player := g.link.ExistingPlayer(guildID)
	if player == nil {
		return 0
	}
	return time.Duration(player.Position()) * time.Millisecond
}

// LoadTracks resolves a URL or search query through the Lavalink node.
func (g *LavalinkGateway) LoadTracks(ctx context.Context, query string) (*ports.LoadResult, error) {
	node := g.link.BestNode()
	if node == nil {
		return nil, fmt.Errorf("no available Lavalink node")
	}

	result, err := node.LoadTracks(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load tracks: %w", err)
	}

	return convertLoadResult(result), nil
}

func convertLoadResult(result *lavalink.LoadResult) *ports.LoadResult {
	switch data := result.Data.(type) {
	case lavalink.Track:
		return &ports.LoadResult{
			Type:   ports.LoadTypeTrack,
			Tracks: []*ports.TrackInfo{convertTrack(data)},
		}

	case lavalink.Playlist:
		tracks := make([]*ports.TrackInfo, len(data.Tracks))
		for i, track := range data.Tracks {
			tracks[i] = convertTrack(track)
		}
		return &ports.LoadResult{
			Type:   ports.LoadTypeTrack,
			Tracks: tracks,
		}

	case lavalink.Search:
		tracks := make([]*ports.TrackInfo, len(data))
		for i, track := range data {
			tracks[i] = convertTrack(track)
		}
		return &ports.LoadResult{
			Type:   ports.LoadTypeSearch,
			Tracks: tracks,
		}

	case lavalink.Empty:
		return &ports.LoadResult{
			Type: ports.LoadTypeEmpty,
		}

	case lavalink.Exception:
		return &ports.LoadResult{
			Type: ports.LoadTypeError,
		}

	default:
		return &ports.LoadResult{
			Type: ports.LoadTypeEmpty,
		}
	}
}

func convertTrack(track lavalink.Track) *ports.TrackInfo {
	info := track.Info

	uri := ""
	if info.URI != nil {
		uri = *info.URI
	}
	artworkURL := ""
	if info.ArtworkURL != nil {
		artworkURL = *info.ArtworkURL
	}

	return &ports.TrackInfo{
		Encoded:    track.Encoded,
		Title:      info.Title,
		Artist:     info.Author,
		Duration:   time.Duration(info.Length) * time.Millisecond,
		URI:        uri,
		ArtworkURL: artworkURL,
		SourceName: info.SourceName,
		IsStream:   info.IsStream,
	}
}

// HandleVoiceServerUpdate must be called from the Discord event handler.
func (g *LavalinkGateway) HandleVoiceServerUpdate(event *discordgo.VoiceServerUpdate) {
	guildID, err := snowflake.Parse(event.GuildID)
	if err != nil {
		slog.Error("failed to parse guild ID in voice server update", "error", err)
		return
	}

	buffer := g.voiceBuffer(guildID)
	if buffer.setVoiceServer(event.Token, event.Endpoint) {
		g.forwardVoiceEvents(guildID, buffer)
	}

	g.signalPending(guildID, false)
}

// HandleVoiceStateUpdate must be called from the Discord event handler.
func (g *LavalinkGateway) HandleVoiceStateUpdate(event *discordgo.VoiceStateUpdate) {
	// Only the bot's own voice state matters to the transport
	if event.UserID != g.botID.String() {
		return
	}

	guildID, err := snowflake.Parse(event.GuildID)
	if err != nil {
		slog.Error("failed to parse guild ID in voice state update", "error", err)
		return
	}

	var channelID *snowflake.ID
	if event.ChannelID != "" {
		id, err := snowflake.Parse(event.ChannelID)
		if err != nil {
			slog.Error("failed to parse channel ID in voice state update", "error", err)
			return
		}
		channelID = &id
	}

	// A disconnect needs no matching VoiceServerUpdate
	if channelID == nil {
		g.link.OnVoiceStateUpdate(context.Background(), guildID, nil, event.SessionID)
		g.clearVoiceBuffer(guildID)
		return
	}

	buffer := g.voiceBuffer(guildID)
	if buffer.setVoiceState(channelID, event.SessionID) {
		g.forwardVoiceEvents(guildID, buffer)
	}

	g.signalPending(guildID, true)
}

func (g *LavalinkGateway) signalPending(guildID snowflake.ID, isVoiceState bool) {
	g.pendingMu.Lock()
	pending := g.pending[guildID]
	g.pendingMu.Unlock()

	if pending != nil {
		pending.onEvent(isVoiceState)
	}
}

func (g *LavalinkGateway) voiceBuffer(guildID snowflake.ID) *voiceEventBuffer {
	g.bufferMu.Lock()
	defer g.bufferMu.Unlock()

	buffer, exists := g.buffers[guildID]
	if !exists {
		buffer = &voiceEventBuffer{}
		g.buffers[guildID] = buffer
	}
	return buffer
}

func (g *LavalinkGateway) clearVoiceBuffer(guildID snowflake.ID) {
	g.bufferMu.Lock()
	defer g.bufferMu.Unlock()
	delete(g.buffers, guildID)
}

// forwardVoiceEvents sends the buffered handshake to Lavalink in order.
func (g *LavalinkGateway) forwardVoiceEvents(guildID snowflake.ID, buffer *voiceEventBuffer) {
	channelID, sessionID, token, endpoint := buffer.take()

	slog.Debug("forwarding voice handshake to Lavalink",
		"guild_id", guildID,
		"channel", channelID,
	)

	g.link.OnVoiceStateUpdate(context.Background(), guildID, channelID, sessionID)
	g.link.OnVoiceServerUpdate(context.Background(), guildID, token, endpoint)
}

func (g *LavalinkGateway) handleTrackStart(player disgolink.Player, event lavalink.TrackStartEvent) {
	slog.Debug("track started", "guild_id", player.GuildID(), "track", event.Track.Info.Title)
}

func (g *LavalinkGateway) handleTrackEnd(player disgolink.Player, event lavalink.TrackEndEvent) {
	slog.Debug("track ended", "guild_id", player.GuildID(), "reason", event.Reason)

	if g.onTrackEnd != nil {
		g.onTrackEnd(player.GuildID(), convertEndReason(event.Reason))
	}
}

func (g *LavalinkGateway) handleTrackException(player disgolink.Player, event lavalink.TrackExceptionEvent) {
	slog.Warn("track exception", "guild_id", player.GuildID(), "error", event.Exception.Message)
}

func (g *LavalinkGateway) handleTrackStuck(player disgolink.Player, event lavalink.TrackStuckEvent) {
	slog.Warn("track stuck", "guild_id", player.GuildID(), "threshold", event.Threshold)
}

func convertEndReason(reason lavalink.TrackEndReason) domain.TrackEndReason {
	switch reason {
	case lavalink.TrackEndReasonFinished:
		return domain.TrackEndFinished
	case lavalink.TrackEndReasonLoadFailed:
		return domain.TrackEndLoadFailed
	case lavalink.TrackEndReasonStopped:
		return domain.TrackEndStopped
	case lavalink.TrackEndReasonReplaced:
		return domain.TrackEndReplaced
	case lavalink.TrackEndReasonCleanup:
		return domain.TrackEndCleanup
	default:
		return domain.TrackEndStopped
	}
}

// Ensure LavalinkGateway implements the port interfaces.
var (
	_ ports.VoiceGateway  = (*LavalinkGateway)(nil)
	_ ports.AudioPlayer   = (*LavalinkGateway)(nil)
	_ ports.TrackResolver = (*LavalinkGateway)(nil)
)
