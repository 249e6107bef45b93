package brief

// MessageKey identifies a user-facing message.
type MessageKey string

const (
	MsgGenerateFailed MessageKey = "generate_failed"
	MsgAnalyzeFailed  MessageKey = "analyze_failed"
	MsgSpeechFailed   MessageKey = "speech_failed"
	MsgEmptyScript    MessageKey = "empty_script"
)

var messages = map[Language]map[MessageKey]string{
	Indonesian: {
		MsgGenerateFailed: "Mohon maaf, terjadi kendala teknis. Silakan periksa kunci API dan coba kembali.",
		MsgAnalyzeFailed:  "Mohon maaf, kami gagal mempelajari video Anda.",
		MsgSpeechFailed:   "Mohon maaf, suara gagal dibuat. Silakan coba kembali.",
		MsgEmptyScript:    "Belum ada naskah untuk dibacakan.",
	},
	English: {
		MsgGenerateFailed: "We apologize, a technical issue occurred. Please check your API key and try again.",
		MsgAnalyzeFailed:  "We apologize, we failed to learn from your video.",
		MsgSpeechFailed:   "We apologize, the voice-over could not be created. Please try again.",
		MsgEmptyScript:    "There is no script to read yet.",
	},
}

// Message returns the localized text for key, falling back to Indonesian.
func Message(lang Language, key MessageKey) string {
	if table, ok := messages[lang]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	return messages[Indonesian][key]
}
