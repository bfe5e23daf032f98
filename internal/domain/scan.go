package domain

// ScanResult is the structured analysis of a scanned textbook page.
type ScanResult struct {
	Title         string    `json:"title"`
	Concepts      []Concept `json:"concepts"`
	Summary       string    `json:"summary"`
	Examples      []Example `json:"examples,omitempty"`
	RelatedTopics []string  `json:"relatedTopics,omitempty"`
}

type Concept struct {
	Name        string `json:"name"`
	Explanation string `json:"explanation"`
}

type Example struct {
	Problem  string `json:"problem"`
	Solution string `json:"solution"`
}
