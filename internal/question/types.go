package question

// Choice is one selectable option, with an ID unique within its question.
type Choice struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Question is one multiple-choice item from the seeded bank. Immutable once
// seeded; CorrectChoiceID never leaves the server.
type Question struct {
	ID              string   `json:"id"`
	ExamType        string   `json:"exam_type"`
	Category        string   `json:"category"`
	Prompt          string   `json:"prompt"`
	Choices         []Choice `json:"choices"`
	CorrectChoiceID string   `json:"correct_choice_id,omitempty"`
	Explanation     string   `json:"explanation,omitempty"`
}

// SeedSummary reports how many questions were written per track.
type SeedSummary struct {
	Seeded int `json:"seeded"`
	Pro    int `json:"pro"`
	SubPro int `json:"sub_pro"`
}
