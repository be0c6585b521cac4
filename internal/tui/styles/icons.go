package styles

const (
	CheckIcon   string = "✓"
	ErrorIcon   string = "✗"
	LockIcon    string = "🔒"
	EditedIcon  string = "✎"
	AutoIcon    string = "⟳"
	PendingIcon string = "…"
)
