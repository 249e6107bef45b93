package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"dooze/internal/audio"
	"dooze/internal/brief"
	"dooze/internal/config"
	"dooze/internal/fileutil"
	"dooze/internal/logging"
	"dooze/internal/narration"
	"dooze/internal/services"
	"dooze/internal/studio"
	"dooze/internal/textutil"
)

func newSpeakCommand(ctx *commandContext) *cobra.Command {
	var sessionID string
	var voiceFlag string
	var outPath string
	var play bool

	cmd := &cobra.Command{
		Use:   "speak [file]",
		Short: "Synthesize the speech narration of a script to a WAV file",
		Long: "Cleans a script with the speech filter and synthesizes it with the configured voice. " +
			"With --session the stored session's script is used and its audio state is updated.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if sessionID != "" && len(args) > 0 {
				return errors.New("pass either a script file or --session, not both")
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			voice, err := brief.ParseVoice(firstSet(voiceFlag, cfg.Generator.DefaultVoice))
			if err != nil {
				return fmt.Errorf("--voice: %w", err)
			}

			handle, err := ctx.openStudio(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer handle.Close()

			var clip audio.Clip
			var written string
			if sessionID != "" {
				clip, written, err = speakSession(cmd.Context(), handle, sessionID, voice, outPath)
			} else {
				clip, written, err = speakScript(cmd, handle, args, voice, outPath)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote %s (%s, voice %s)\n", written, clip.Duration().Round(10*time.Millisecond), voice)
			if play {
				return playClip(cmd.Context(), cfg, handle, clip)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&sessionID, "session", "s", "", "Speak the script stored in this session")
	cmd.Flags().StringVarP(&voiceFlag, "voice", "v", "", "Voice (Kore, Puck, Charon, Fenrir, Zephyr)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output WAV path (default dooze-voice-<voice>.wav, or the session audio file)")
	cmd.Flags().BoolVar(&play, "play", false, "Play the result through audio.player_command")
	return cmd
}

func speakSession(ctx context.Context, handle *studioHandle, id string, voice brief.Voice, outPath string) (audio.Clip, string, error) {
	sess, err := handle.service.Speak(ctx, id, voice)
	if err != nil {
		var failure *studio.Failure
		if errors.As(err, &failure) {
			handle.logger.Debug("speech failure detail", logging.Error(failure.Err))
			return audio.Clip{}, "", errors.New(failure.Message)
		}
		return audio.Clip{}, "", err
	}
	data, err := os.ReadFile(sess.AudioPath)
	if err != nil {
		return audio.Clip{}, "", fmt.Errorf("read session audio: %w", err)
	}
	clip, err := audio.ParseWAV(data)
	if err != nil {
		return audio.Clip{}, "", err
	}
	if outPath == "" {
		return clip, sess.AudioPath, nil
	}
	if err := fileutil.CopyFileVerified(sess.AudioPath, outPath); err != nil {
		return audio.Clip{}, "", fmt.Errorf("export audio: %w", err)
	}
	return clip, outPath, nil
}

func speakScript(cmd *cobra.Command, handle *studioHandle, args []string, voice brief.Voice, outPath string) (audio.Clip, string, error) {
	raw, err := readInput(cmd, args)
	if err != nil {
		return audio.Clip{}, "", err
	}
	text := narration.Speech(raw)
	if strings.TrimSpace(text) == "" {
		return audio.Clip{}, "", errors.New(brief.Message(brief.Language(handle.cfg.Generator.Language), brief.MsgEmptyScript))
	}
	if handle.collab.synthesizer == nil {
		return audio.Clip{}, "", services.Wrap(services.ErrConfiguration, "speak", "synthesize", "gemini.api_key is required for speech", nil)
	}
	clip, err := handle.collab.synthesizer.Synthesize(cmd.Context(), text, voice)
	if err != nil {
		return audio.Clip{}, "", err
	}
	if outPath == "" {
		outPath = textutil.AudioDownloadName(string(voice))
	}
	if err := writeClip(outPath, clip); err != nil {
		return audio.Clip{}, "", err
	}
	return clip, outPath, nil
}

func writeClip(path string, clip audio.Clip) error {
	payload, err := audio.EncodeWAV(clip.Data, clip.Format)
	if err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(path, payload, 0o644)
}

func playClip(ctx context.Context, cfg *config.Config, handle *studioHandle, clip audio.Clip) error {
	player := audio.NewPlayer(audio.CommandSink{Command: cfg.Audio.PlayerCommand}, handle.logger)
	defer player.Close()
	if err := player.Play(ctx, clip); err != nil {
		return err
	}
	if err := player.Wait(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("playback: %w", err)
	}
	return nil
}
