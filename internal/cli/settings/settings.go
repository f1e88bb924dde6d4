package settings

import (
	"fmt"

	"github.com/Tsukasa80/rg-app-v2/internal/cli"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	WeekStartsOn   *int    `help:"First weekday of the week (0=Sunday..6=Saturday)."`
	Locale         *string `help:"Display locale (BCP 47 tag, e.g. ja-JP)."`
	Notifications  *bool   `help:"Enable or disable entry reminders."`
	WeeklyReminder *bool   `help:"Enable or disable the weekly review reminder."`
	Rekey          bool    `help:"Re-file all entries after changing the week start."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Week Starts On:   %d (0=Sunday..6=Saturday)\n", settings.WeekStartsOn)
		fmt.Printf("  Locale:           %s\n", settings.Locale)
		fmt.Printf("  Notifications:    %v\n", settings.EnableNotifications)
		fmt.Printf("  Weekly Reminder:  %v\n", settings.EnableWeeklyReminder)
		return nil
	}

	updated := false
	weekStartChanged := false
	if c.WeekStartsOn != nil {
		if *c.WeekStartsOn < 0 || *c.WeekStartsOn > 6 {
			return fmt.Errorf("week-starts-on must be between 0 and 6")
		}
		weekStartChanged = settings.WeekStartsOn != *c.WeekStartsOn
		settings.WeekStartsOn = *c.WeekStartsOn
		updated = true
	}
	if c.Locale != nil {
		settings.Locale = *c.Locale
		updated = true
	}
	if c.Notifications != nil {
		settings.EnableNotifications = *c.Notifications
		updated = true
	}
	if c.WeeklyReminder != nil {
		settings.EnableWeeklyReminder = *c.WeeklyReminder
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	if err := ctx.State.UpdateSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println("Settings updated successfully.")

	if weekStartChanged {
		if c.Rekey {
			changed, err := ctx.Journal.RekeyAll(settings)
			if err != nil {
				return fmt.Errorf("settings saved but rekey failed: %w", err)
			}
			fmt.Printf("Re-filed %d entries under week-start %d.\n", changed, settings.WeekStartsOn)
		} else {
			fmt.Println("Week start changed: existing entries keep their old week keys.")
			fmt.Println("Run 'rgx settings --week-starts-on N --rekey' (or import --rekey) to re-file them.")
		}
	}

	return nil
}
