package narration

// Result bundles every view derived from one raw script.
type Result struct {
	Main    string `json:"main"`
	SEO     string `json:"seo"`
	Display string `json:"display"`
	Speech  string `json:"speech"`
}

// Process splits raw once and derives both narrations. The display narration
// is built from the main script; the speech narration is built from raw and
// performs its own SEO cut.
func Process(raw string, ct ContentType) Result {
	split := SplitSEO(raw)
	return Result{
		Main:    split.Main,
		SEO:     split.SEO,
		Display: Display(split.Main, ct),
		Speech:  Speech(raw),
	}
}
