package model

import "time"

// Question is a single practice problem. The numeric ID comes from the
// counter-backed allocator, the link is globally unique, and SolvedBy holds
// each username at most once.
type Question struct {
	QuestionID int64     `json:"question_id"`
	Title      string    `json:"title"`
	Link       string    `json:"link"`
	Tags       []string  `json:"tags"`
	SolvedBy   []string  `json:"solved_by"`
	CreatedAt  time.Time `json:"created_at"`
}
