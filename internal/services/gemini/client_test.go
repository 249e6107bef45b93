package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"google.golang.org/genai"

	"dooze/internal/brief"
	"dooze/internal/narration"
	"dooze/internal/services"
)

type fakeModels struct {
	resp   *genai.GenerateContentResponse
	err    error
	model  string
	config *genai.GenerateContentConfig
	input  []*genai.Content
	calls  int
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.model = model
	f.input = contents
	f.config = config
	return f.resp, f.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func testConfig() Config {
	return Config{
		APIKey:      "key",
		TextModel:   "text-model",
		VideoModel:  "video-model",
		SpeechModel: "speech-model",
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(context.Background(), Config{})
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestGenerateScriptUsesTextModel(t *testing.T) {
	fake := &fakeModels{resp: textResponse("Narator: Selamat datang!")}
	client, err := New(context.Background(), testConfig(), withModels(fake))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	script, err := client.GenerateScript(context.Background(), brief.Brief{
		ContentType: narration.WebShowcase,
		ProductName: "Portfolio",
		Description: "Go dan HTMX",
	})
	if err != nil {
		t.Fatalf("GenerateScript: %v", err)
	}
	if script != "Narator: Selamat datang!" {
		t.Fatalf("unexpected script %q", script)
	}
	if fake.model != "text-model" {
		t.Fatalf("expected text-model, got %q", fake.model)
	}
	system := fake.config.SystemInstruction.Parts[0].Text
	if !strings.Contains(system, "Developer Advocate") {
		t.Fatalf("expected web showcase persona, got %q", system)
	}
	if !strings.Contains(fake.input[0].Parts[0].Text, "Portfolio") {
		t.Fatalf("expected product name in prompt")
	}
}

func TestGenerateScriptEmptyResponse(t *testing.T) {
	fake := &fakeModels{resp: textResponse("   ")}
	client := newClient(testConfig(), withModels(fake))
	_, err := client.GenerateScript(context.Background(), brief.Brief{ProductName: "A", Description: "B"})
	if !errors.Is(err, services.ErrExternalService) {
		t.Fatalf("expected external service error, got %v", err)
	}
}

func TestGenerateScriptPropagatesSDKError(t *testing.T) {
	fake := &fakeModels{err: errors.New("quota exceeded")}
	client := newClient(testConfig(), withModels(fake))
	_, err := client.GenerateScript(context.Background(), brief.Brief{ProductName: "A", Description: "B"})
	if !errors.Is(err, services.ErrExternalService) {
		t.Fatalf("expected external service error, got %v", err)
	}
	if fake.calls != 1 {
		t.Fatalf("expected a single attempt, got %d", fake.calls)
	}
}

func TestHealthCheck(t *testing.T) {
	fake := &fakeModels{resp: textResponse("OK")}
	client, err := New(context.Background(), testConfig(), withModels(fake))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := client.HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck: %v", err)
	}
	if fake.model != "text-model" {
		t.Fatalf("expected text model, got %q", fake.model)
	}

	fake.resp = textResponse("  ")
	if err := client.HealthCheck(context.Background()); !errors.Is(err, services.ErrExternalService) {
		t.Fatalf("expected external service error, got %v", err)
	}
}

func TestAnalyzeVideoDecodesJSON(t *testing.T) {
	fake := &fakeModels{resp: textResponse("```json\n{\"productName\":\"Kopi Senja\",\"description\":\"Kedai kopi\",\"targetAudience\":\"Mahasiswa\"}\n```")}
	client := newClient(testConfig(), withModels(fake))
	analysis, err := client.AnalyzeVideo(context.Background(), []byte("video-bytes"), "video/mp4", brief.English)
	if err != nil {
		t.Fatalf("AnalyzeVideo: %v", err)
	}
	if analysis.ProductName != "Kopi Senja" || analysis.TargetAudience != "Mahasiswa" {
		t.Fatalf("unexpected analysis %+v", analysis)
	}
	if fake.model != "video-model" {
		t.Fatalf("expected video-model, got %q", fake.model)
	}
	if fake.config.ResponseMIMEType != "application/json" || fake.config.ResponseSchema == nil {
		t.Fatalf("expected JSON response schema, got %+v", fake.config)
	}
	parts := fake.input[0].Parts
	if parts[0].InlineData == nil || parts[0].InlineData.MIMEType != "video/mp4" {
		t.Fatalf("expected inline video part, got %+v", parts[0])
	}
	if !strings.Contains(parts[1].Text, "ENGLISH") {
		t.Fatalf("expected English instruction, got %q", parts[1].Text)
	}
}

func TestAnalyzeVideoRejectsInput(t *testing.T) {
	client := newClient(testConfig(), withModels(&fakeModels{}))
	if _, err := client.AnalyzeVideo(context.Background(), nil, "video/mp4", brief.Indonesian); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for empty video, got %v", err)
	}
	if _, err := client.AnalyzeVideo(context.Background(), []byte("x"), "image/png", brief.Indonesian); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for image, got %v", err)
	}
}

func TestSynthesizeReturnsClip(t *testing.T) {
	pcm := []byte{0x01, 0x00, 0xff, 0x7f}
	fake := &fakeModels{resp: &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{
				InlineData: &genai.Blob{Data: pcm, MIMEType: "audio/L16;codec=pcm;rate=22050"},
			}}},
		}},
	}}
	client := newClient(testConfig(), withModels(fake))
	clip, err := client.Synthesize(context.Background(), "Halo semua", brief.Voice("Puck"))
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if clip.Format.SampleRate != 22050 || clip.Format.Channels != 1 || clip.Format.BitsPerSample != 16 {
		t.Fatalf("unexpected format %+v", clip.Format)
	}
	if len(clip.Data) != len(pcm) {
		t.Fatalf("expected %d bytes, got %d", len(pcm), len(clip.Data))
	}
	voice := fake.config.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName
	if voice != "Puck" {
		t.Fatalf("expected voice Puck, got %q", voice)
	}
	if len(fake.config.ResponseModalities) != 1 || fake.config.ResponseModalities[0] != "AUDIO" {
		t.Fatalf("expected AUDIO modality, got %v", fake.config.ResponseModalities)
	}
}

func TestSynthesizeWithoutAudio(t *testing.T) {
	client := newClient(testConfig(), withModels(&fakeModels{resp: textResponse("no audio")}))
	_, err := client.Synthesize(context.Background(), "Halo", brief.DefaultVoice)
	if !errors.Is(err, services.ErrExternalService) {
		t.Fatalf("expected external service error, got %v", err)
	}
}

func TestMissingModelIsConfigurationError(t *testing.T) {
	cfg := testConfig()
	cfg.SpeechModel = ""
	client := newClient(cfg, withModels(&fakeModels{}))
	_, err := client.Synthesize(context.Background(), "Halo", brief.DefaultVoice)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestSampleRateFromMIME(t *testing.T) {
	tests := []struct {
		mime string
		want int
	}{
		{mime: "audio/L16;codec=pcm;rate=24000", want: 24000},
		{mime: "audio/L16; rate=16000", want: 16000},
		{mime: "audio/L16;codec=pcm", want: 24000},
		{mime: "audio/L16;rate=abc", want: 24000},
		{mime: "", want: 24000},
	}
	for _, tt := range tests {
		t.Run(tt.mime, func(t *testing.T) {
			if got := SampleRateFromMIME(tt.mime, 24000); got != tt.want {
				t.Fatalf("got %d, want %d", got, tt.want)
			}
		})
	}
}
