package brief

import "strings"

// VideoAnalysis is what the video model extracts from an uploaded clip.
type VideoAnalysis struct {
	ProductName    string `json:"productName"`
	Description    string `json:"description"`
	TargetAudience string `json:"targetAudience"`
}

// Empty reports whether the analysis carries nothing usable.
func (v VideoAnalysis) Empty() bool {
	return strings.TrimSpace(v.ProductName) == "" &&
		strings.TrimSpace(v.Description) == "" &&
		strings.TrimSpace(v.TargetAudience) == ""
}

// ApplyTo returns b with every non-empty analysis field copied over it.
func (v VideoAnalysis) ApplyTo(b Brief) Brief {
	if s := strings.TrimSpace(v.ProductName); s != "" {
		b.ProductName = s
	}
	if s := strings.TrimSpace(v.Description); s != "" {
		b.Description = s
	}
	if s := strings.TrimSpace(v.TargetAudience); s != "" {
		b.TargetAudience = s
	}
	return b
}
