package constants

// AppName is the binary/product name.
const AppName = "rgx"

// DefaultDBFile is the default storage path relative to the user config dir.
const DefaultDBFile = "~/.config/rgx/rgx.db"

// Reflection prompts. The weekly review always asks these three questions, in
// this order; answers map to q1/q2/q3 on the stored reflection.
const (
	ReflectionPromptQ1 = "How could you make more use of your strengths?"
	ReflectionPromptQ2 = "What activities would give you more energy?"
	ReflectionPromptQ3 = "How could you handle draining situations more effectively?"
)
