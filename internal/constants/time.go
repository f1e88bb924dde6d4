package constants

// DateFormat is the layout for bare dates (YYYY-MM-DD).
const DateFormat = "2006-01-02"

// DisplayDateFormat is the layout for dates in CLI output.
const DisplayDateFormat = "Mon 2006-01-02"

// DisplayDateTimeFormat is the layout for timestamps in CLI output.
const DisplayDateTimeFormat = "2006-01-02 15:04"
