package models

// Settings represents application-wide settings, persisted in the store's
// key-value settings table and merged over defaults at load time.
type Settings struct {
	WeekStartsOn         int    `json:"week_starts_on"`         // first weekday of the week, 0=Sunday..6=Saturday
	Locale               string `json:"locale"`                 // BCP 47 locale tag used by the display layer
	EnableNotifications  bool   `json:"enable_notifications"`   // whether entry reminders are enabled
	EnableWeeklyReminder bool   `json:"enable_weekly_reminder"` // whether the weekly review reminder is enabled
}

// DefaultSettings returns the settings applied before any user overrides.
func DefaultSettings() Settings {
	return Settings{
		WeekStartsOn:         1,
		Locale:               "ja-JP",
		EnableNotifications:  false,
		EnableWeeklyReminder: false,
	}
}
