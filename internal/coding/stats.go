package coding

import "time"

// Stats summarizes a coding run.
type Stats struct {
	Stories          int           `json:"stories"`
	Sentences        int           `json:"sentences"`
	Events           int           `json:"events"`
	Empty            int           `json:"empty"`
	DiscardSentences int           `json:"discard_sentences"`
	DiscardStories   int           `json:"discard_stories"`
	NoParse          int           `json:"no_parse"`
	CoderFailures    int           `json:"coder_failures"`
	CodingTime       time.Duration `json:"coding_time"`
}

// AverageLatency is the mean coder latency per coded sentence.
func (s Stats) AverageLatency() time.Duration {
	if s.Sentences == 0 {
		return 0
	}
	return s.CodingTime / time.Duration(s.Sentences)
}
