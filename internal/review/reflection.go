package review

import (
	"github.com/Tsukasa80/rg-app-v2/internal/models"
	"github.com/Tsukasa80/rg-app-v2/internal/utils"
)

// LoadReflection returns the stored reflection for a week, or nil.
func (s *Service) LoadReflection(year, week int) (*models.WeeklyReflection, error) {
	return s.Store.GetReflection(utils.FormatWeekKey(year, week))
}

// SaveReflection upserts the week's answers to the three review prompts.
// Saves are wholesale; unanswered prompts store as empty strings.
func (s *Service) SaveReflection(year, week int, q1, q2, q3, summary string) (models.WeeklyReflection, error) {
	weekKey := utils.FormatWeekKey(year, week)
	return s.Store.PutReflection(models.WeeklyReflection{
		ID:      models.ReflectionID(weekKey),
		WeekKey: weekKey,
		Q1:      q1,
		Q2:      q2,
		Q3:      q3,
		Summary: summary,
	})
}
