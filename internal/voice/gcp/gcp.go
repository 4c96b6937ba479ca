// Package gcp implements voice.Capability with Google Cloud Speech-to-Text
// and Text-to-Speech. Microphone capture and audio playback are delegated
// to command line tools found on PATH.
package gcp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	speech "cloud.google.com/go/speech/apiv1"
	speechpb "cloud.google.com/go/speech/apiv1/speechpb"
	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/googleapis/gax-go/v2"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/abhisek/edunova/internal/voice"
)

// Config configures the Google speech capability.
type Config struct {
	LanguageCode    string // BCP-47, default en-US
	SampleRate      int    // Hz, default 16000
	RecordSeconds   int    // default 5
	MaxAlternatives int    // default 5

	// Recorder and Player override the auto-detected commands. The first
	// element is the program, the rest its arguments.
	Recorder []string
	Player   []string

	// Credentials is a service account JSON document or a path to one.
	// Empty uses Application Default Credentials.
	Credentials string
}

func (c *Config) applyDefaults() {
	if c.LanguageCode == "" {
		c.LanguageCode = "en-US"
	}
	if c.SampleRate <= 0 {
		c.SampleRate = 16000
	}
	if c.RecordSeconds <= 0 {
		c.RecordSeconds = 5
	}
	if c.MaxAlternatives <= 0 {
		c.MaxAlternatives = 5
	}
}

// ClientOptions turns a credentials setting into client options. A value
// starting with "{" is inline JSON, anything else a file path.
func ClientOptions(creds string) []option.ClientOption {
	creds = strings.TrimSpace(creds)
	if creds == "" {
		creds = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON"))
	}
	if creds == "" {
		return nil
	}
	if strings.HasPrefix(creds, "{") {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(creds))}
	}
	return []option.ClientOption{option.WithCredentialsFile(creds)}
}

// synthesizer is the part of the Text-to-Speech client Speak uses.
type synthesizer interface {
	SynthesizeSpeech(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest, opts ...gax.CallOption) (*texttospeechpb.SynthesizeSpeechResponse, error)
	Close() error
}

// Capability is the production voice.Capability.
type Capability struct {
	cfg   Config
	stt   *speech.Client
	tts   synthesizer
	audio *audio
	log   *zap.Logger

	mu           sync.Mutex
	rejectedHint string // voice name the API refused; not sent again
}

var (
	_ voice.Capability = (*Capability)(nil)
	_ voice.Prober     = (*Capability)(nil)
)

// New dials both speech services. Extra options are appended after the
// credential options derived from cfg.
func New(ctx context.Context, cfg Config, log *zap.Logger, opts ...option.ClientOption) (*Capability, error) {
	cfg.applyDefaults()
	if log == nil {
		log = zap.NewNop()
	}
	all := append(ClientOptions(cfg.Credentials), opts...)

	stt, err := speech.NewClient(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("speech client: %w", err)
	}
	tts, err := texttospeech.NewClient(ctx, all...)
	if err != nil {
		stt.Close()
		return nil, fmt.Errorf("text-to-speech client: %w", err)
	}

	return &Capability{
		cfg:   cfg,
		stt:   stt,
		tts:   tts,
		audio: newAudio(cfg, execRunner{}),
		log:   log.With(zap.String("component", "voice.gcp")),
	}, nil
}

// Close releases both clients.
func (c *Capability) Close() error {
	return errors.Join(c.stt.Close(), c.tts.Close())
}

// Probe checks that a recorder and a player are installed.
func (c *Capability) Probe(context.Context) error {
	if _, err := c.audio.recorder(); err != nil {
		return fmt.Errorf("%w: %v", voice.ErrUnsupported, err)
	}
	if _, err := c.audio.player(); err != nil {
		return fmt.Errorf("%w: %v", voice.ErrUnsupported, err)
	}
	return nil
}

// RecognizeOnce records one clip from the microphone and transcribes it.
func (c *Capability) RecognizeOnce(ctx context.Context) (voice.Recognition, error) {
	pcm, err := c.audio.record(ctx)
	if err != nil {
		return voice.Recognition{}, &voice.CapabilityError{Op: "recognize", Err: err}
	}
	if len(pcm) == 0 {
		return voice.Recognition{}, &voice.CapabilityError{Op: "recognize", Err: errors.New("no audio captured")}
	}

	resp, err := c.stt.Recognize(ctx, recognizeRequest(c.cfg, pcm))
	if err != nil {
		return voice.Recognition{}, &voice.CapabilityError{Op: "recognize", Err: grpcError(err)}
	}

	rec := recognitionFrom(resp)
	c.log.Debug("recognized", zap.Int("alternatives", len(rec.Alternatives)))
	return rec, nil
}

// Speak synthesizes text as MP3 and plays it, returning when playback ends.
// Text longer than one request allows is spoken in consecutive chunks.
func (c *Capability) Speak(ctx context.Context, text string, opts voice.SpeakOptions) error {
	opts.VoiceHint = c.usableHint(opts.VoiceHint)
	for _, chunk := range splitForSynthesis(text, maxSynthesisBytes) {
		if err := ctx.Err(); err != nil {
			return &voice.CapabilityError{Op: "speak", Err: err}
		}
		mp3, err := c.synthesize(ctx, chunk, &opts)
		if err != nil {
			return &voice.CapabilityError{Op: "speak", Err: grpcError(err)}
		}
		if err := c.audio.play(ctx, mp3); err != nil {
			return &voice.CapabilityError{Op: "speak", Err: err}
		}
	}
	return nil
}

// synthesize renders one chunk. A voice hint the API rejects is dropped
// for this and every later request.
func (c *Capability) synthesize(ctx context.Context, text string, opts *voice.SpeakOptions) ([]byte, error) {
	resp, err := c.tts.SynthesizeSpeech(ctx, synthesizeRequest(c.cfg, text, *opts))
	if err != nil && opts.VoiceHint != "" && status.Code(err) == codes.InvalidArgument {
		c.log.Warn("voice hint rejected, using the language default",
			zap.String("voice", opts.VoiceHint), zap.Error(err))
		c.mu.Lock()
		c.rejectedHint = opts.VoiceHint
		c.mu.Unlock()
		opts.VoiceHint = ""
		resp, err = c.tts.SynthesizeSpeech(ctx, synthesizeRequest(c.cfg, text, *opts))
	}
	if err != nil {
		return nil, err
	}
	return resp.GetAudioContent(), nil
}

func (c *Capability) usableHint(hint string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if hint == c.rejectedHint {
		return ""
	}
	return hint
}

func recognizeRequest(cfg Config, pcm []byte) *speechpb.RecognizeRequest {
	return &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:            int32(cfg.SampleRate),
			AudioChannelCount:          1,
			LanguageCode:               cfg.LanguageCode,
			MaxAlternatives:            int32(cfg.MaxAlternatives),
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: pcm},
		},
	}
}

// recognitionFrom keeps every alternative of a single result. Several
// results are consecutive segments of one clip and are joined into one
// hypothesis from their top alternatives.
func recognitionFrom(resp *speechpb.RecognizeResponse) voice.Recognition {
	var rec voice.Recognition
	if resp == nil {
		return rec
	}
	results := resp.GetResults()
	if len(results) == 1 {
		for _, a := range results[0].GetAlternatives() {
			rec.Alternatives = append(rec.Alternatives, voice.Alternative{
				Transcript: strings.TrimSpace(a.GetTranscript()),
				Confidence: a.GetConfidence(),
			})
		}
		return rec
	}

	var (
		parts []string
		conf  float32
		n     int
	)
	for _, r := range results {
		alts := r.GetAlternatives()
		if len(alts) == 0 {
			continue
		}
		if t := strings.TrimSpace(alts[0].GetTranscript()); t != "" {
			parts = append(parts, t)
			conf += alts[0].GetConfidence()
			n++
		}
	}
	if n > 0 {
		rec.Alternatives = append(rec.Alternatives, voice.Alternative{
			Transcript: strings.Join(parts, " "),
			Confidence: conf / float32(n),
		})
	}
	return rec
}

func synthesizeRequest(cfg Config, text string, opts voice.SpeakOptions) *texttospeechpb.SynthesizeSpeechRequest {
	return &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: cfg.LanguageCode,
			Name:         opts.VoiceHint,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
			SpeakingRate:  clamp(opts.Rate, 0.25, 4),
			Pitch:         clamp(opts.Pitch, -20, 20),
			VolumeGainDb:  clamp(opts.Volume, -96, 16),
		},
	}
}

// clamp bounds v to the API range. Zero passes through as "default".
func clamp(v, lo, hi float64) float64 {
	switch {
	case v == 0:
		return 0
	case v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}

func grpcError(err error) error {
	code := status.Code(err)
	switch code {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("check Google credentials (%s): %w", code, err)
	case codes.Unknown:
		return err
	}
	return fmt.Errorf("%s: %w", code, err)
}
