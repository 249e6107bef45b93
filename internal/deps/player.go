package deps

import "strings"

// PlayerRequirement describes the audio player from a configured command
// line such as ["aplay", "-q", "-"]. Playback is optional: synthesized WAV
// files are still written when no player is installed.
func PlayerRequirement(command []string) Requirement {
	binary := ""
	if len(command) > 0 {
		binary = strings.TrimSpace(command[0])
	}
	return Requirement{
		Name:        "Audio player",
		Command:     binary,
		Description: "Plays synthesized narration (dooze speak --play)",
		Optional:    true,
	}
}

// CheckPlayer resolves the configured audio player binary.
func CheckPlayer(command []string) Status {
	return checkBinary(PlayerRequirement(command))
}
