package player

import (
	"context"
	"fmt"
	"math"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"

	"github.com/tessro/onair/internal/logging"
)

const (
	// SampleRate is the rate the speaker is opened at; streams with another
	// rate are resampled.
	SampleRate        = beep.SampleRate(44100)
	SpeakerBufferSize = 250 * time.Millisecond
	ResampleQuality   = 4

	VolumeCurveExponent = 0.5
	MinVolumeDB         = -10.0
)

// StreamOutput plays an MP3 stream over HTTP on the system speaker.
type StreamOutput struct {
	url        string
	userAgent  string
	httpClient *http.Client

	mu          sync.Mutex
	level       float64
	speakerInit bool
	volume      *effects.Volume
	streamer    beep.StreamSeekCloser
	cancel      context.CancelFunc
}

// NewStreamOutput creates an output for the stream at url.
func NewStreamOutput(url, userAgent string) *StreamOutput {
	return &StreamOutput{
		url:       url,
		userAgent: userAgent,
		level:     DefaultVolume,
		httpClient: &http.Client{
			// No overall timeout: the stream is long-lived.
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: 15 * time.Second,
				DisableCompression:    true,
			},
		},
	}
}

// Start connects to the stream and starts the speaker. ctx bounds the
// connection attempt only.
func (o *StreamOutput) Start(ctx context.Context, done func(err error)) error {
	o.Stop()

	streamCtx, cancel := context.WithCancel(context.Background())
	stopConnectWatch := context.AfterFunc(ctx, cancel)

	req, err := http.NewRequestWithContext(streamCtx, http.MethodGet, o.url, nil)
	if err != nil {
		cancel()
		return fmt.Errorf("failed to create request: %w", err)
	}
	if o.userAgent != "" {
		req.Header.Set("User-Agent", o.userAgent)
	}

	logging.Debug("connecting to stream", logging.String("url", o.url))
	resp, err := o.httpClient.Do(req)
	if err != nil {
		cancel()
		return fmt.Errorf("failed to fetch stream: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		cancel()
		return fmt.Errorf("stream returned status %d", resp.StatusCode)
	}

	streamer, format, err := mp3.Decode(resp.Body)
	if err != nil {
		resp.Body.Close()
		cancel()
		return fmt.Errorf("failed to decode stream: %w", err)
	}
	stopConnectWatch()

	if err := o.initSpeaker(); err != nil {
		streamer.Close()
		cancel()
		return err
	}

	var source beep.Streamer = streamer
	if format.SampleRate != SampleRate {
		source = beep.Resample(ResampleQuality, format.SampleRate, SampleRate, streamer)
	}

	o.mu.Lock()
	volume := &effects.Volume{
		Streamer: source,
		Base:     2,
		Volume:   levelToExponent(o.level),
		Silent:   o.level == 0,
	}
	o.volume = volume
	o.streamer = streamer
	o.cancel = cancel
	o.mu.Unlock()

	speaker.Play(beep.Seq(volume, beep.Callback(func() {
		// Runs on the speaker goroutine, which holds the speaker lock.
		go done(streamer.Err())
	})))

	logging.Debug("stream playing",
		logging.Int("sample_rate", int(format.SampleRate)),
		logging.Int("channels", format.NumChannels))
	return nil
}

func (o *StreamOutput) initSpeaker() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.speakerInit {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(SpeakerBufferSize)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}
	o.speakerInit = true
	return nil
}

// Stop clears the speaker and closes the stream.
func (o *StreamOutput) Stop() {
	o.mu.Lock()
	streamer, cancel := o.streamer, o.cancel
	initialized := o.speakerInit
	o.streamer, o.cancel, o.volume = nil, nil, nil
	o.mu.Unlock()

	if streamer == nil {
		return
	}
	if initialized {
		// speaker.Clear takes the speaker lock itself.
		speaker.Clear()
		speaker.Lock()
		streamer.Close()
		speaker.Unlock()
	} else {
		streamer.Close()
	}
	cancel()
}

// SetVolume applies level to the playing stream and to later starts.
func (o *StreamOutput) SetVolume(level float64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.level = level
	if o.volume == nil {
		return
	}

	speaker.Lock()
	o.volume.Volume = levelToExponent(level)
	o.volume.Silent = level == 0
	speaker.Unlock()
}

// Close stops playback and shuts the speaker down.
func (o *StreamOutput) Close() error {
	o.Stop()

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.speakerInit {
		speaker.Close()
		o.speakerInit = false
	}
	return nil
}

// levelToExponent maps a 0.0-1.0 level onto a base-2 exponent so the slider
// feels linear to the ear.
func levelToExponent(level float64) float64 {
	if level <= 0 {
		return MinVolumeDB
	}
	if level >= 1 {
		return 0
	}
	adjusted := math.Pow(level, VolumeCurveExponent)
	return (1.0 - adjusted) * MinVolumeDB
}
