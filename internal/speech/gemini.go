package speech

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/wordwhizkids/wordwhiz/internal/grading"
)

// contentGenerator is the slice of *genai.Models the speech clients use.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Clip is raw 16-bit mono PCM at SampleRate.
type Clip struct {
	PCM        []byte
	SampleRate int
}

// WAV returns the clip wrapped in a WAV header.
func (c Clip) WAV() []byte {
	return EncodeWAV(c.PCM, c.SampleRate)
}

// Synthesizer turns text into audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (Clip, error)
}

// GeminiSynthesizer speaks text with a Gemini TTS model and prebuilt voice.
type GeminiSynthesizer struct {
	models     contentGenerator
	model      string
	voice      string
	sampleRate int
}

// NewGeminiSynthesizer creates a synthesizer from client and cfg.
func NewGeminiSynthesizer(client *genai.Client, cfg Config) *GeminiSynthesizer {
	return &GeminiSynthesizer{
		models:     client.Models,
		model:      cfg.TTSModel,
		voice:      cfg.Voice,
		sampleRate: cfg.SampleRate,
	}
}

func (g *GeminiSynthesizer) Synthesize(ctx context.Context, text string) (Clip, error) {
	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: text}},
	}}
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: g.voice},
			},
		},
	}

	resp, err := g.models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return Clip{}, fmt.Errorf("gemini tts: %w", err)
	}

	pcm := inlineAudio(resp)
	if len(pcm) == 0 {
		return Clip{}, ErrNoAudio
	}
	return Clip{PCM: pcm, SampleRate: g.sampleRate}, nil
}

func inlineAudio(resp *genai.GenerateContentResponse) []byte {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	c := resp.Candidates[0].Content
	if c == nil {
		return nil
	}
	for _, p := range c.Parts {
		if p != nil && p.InlineData != nil && len(p.InlineData.Data) > 0 {
			return p.InlineData.Data
		}
	}
	return nil
}

// Transcriber turns recorded speech into text.
type Transcriber interface {
	// Transcribe returns the words spoken in audio. hint is the on-screen
	// context that helps disambiguate short answers.
	Transcribe(ctx context.Context, audio []byte, mimeType, hint string) (string, error)
}

// GeminiTranscriber transcribes with a multimodal Gemini model.
type GeminiTranscriber struct {
	models contentGenerator
	model  string
}

// NewGeminiTranscriber creates a transcriber from client and cfg.
func NewGeminiTranscriber(client *genai.Client, cfg Config) *GeminiTranscriber {
	return &GeminiTranscriber{models: client.Models, model: cfg.TranscribeModel}
}

func transcribePrompt(hint string) string {
	return fmt.Sprintf(`Transcribe this audio strictly. If it is silent or unintelligible, return "%s". The context is: %s`, Silence, hint)
}

func (g *GeminiTranscriber) Transcribe(ctx context.Context, audio []byte, mimeType, hint string) (string, error) {
	contents := []*genai.Content{{
		Role: "user",
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{MIMEType: mimeType, Data: audio}},
			{Text: transcribePrompt(hint)},
		},
	}}

	resp, err := g.models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini transcribe: %w", err)
	}
	return strings.TrimSpace(resp.Text()), nil
}

// Silence is the transcript for audio with no recognizable words.
const Silence = grading.SilenceMarker

// TranscribeOrSilence always yields a transcript. Failures and empty
// results become Silence; the error is returned only so it can be logged.
func TranscribeOrSilence(ctx context.Context, t Transcriber, audio []byte, mimeType, hint string) (string, error) {
	if t == nil || len(audio) == 0 {
		return Silence, ErrNoAudio
	}
	text, err := t.Transcribe(ctx, audio, mimeType, hint)
	if err != nil {
		return Silence, err
	}
	if text == "" {
		return Silence, nil
	}
	return text, nil
}
