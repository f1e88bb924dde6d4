package models

// ExportVersion is the fixed interchange format version.
const ExportVersion = "1.0"

// ExportPayload is the full-dataset interchange object. The field names and
// the version string are a compatibility contract; do not rename.
type ExportPayload struct {
	Version           string             `json:"version"`
	ExportedAt        string             `json:"exportedAt"`
	Entries           []ActivityEntry    `json:"entries"`
	WeeklySelections  []WeeklySelection  `json:"weeklySelections"`
	WeeklyReflections []WeeklyReflection `json:"weeklyReflections"`
}
