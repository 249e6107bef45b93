// Package gemini talks to the Gemini API through the genai SDK.
//
// One Client serves three models: the text model writes scripts from a
// brief, the video model reads an uploaded clip into brief fields (JSON
// constrained by a response schema) and the speech model turns narration
// into 16-bit PCM with a prebuilt voice. Each call is a single attempt bounded
// by the configured timeout.
package gemini
