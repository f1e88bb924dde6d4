package models

import "fmt"

// WeeklyReflection holds the answers to the three fixed weekly review prompts.
// One record per week.
type WeeklyReflection struct {
	ID        string `json:"id"`
	WeekKey   string `json:"weekKey"`
	Q1        string `json:"q1"`
	Q2        string `json:"q2"`
	Q3        string `json:"q3"`
	Summary   string `json:"summary,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// ReflectionID derives the deterministic record id for a week's reflection.
func ReflectionID(weekKey string) string {
	return fmt.Sprintf("%s-reflection", weekKey)
}
