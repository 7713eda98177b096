package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconVersion   = "\uf02b" // tag
	IconGitBranch = "\ue725" // git branch
	IconCalendar  = "\uf073" // calendar
	IconGithub    = "\uf09b" // github
	IconGo        = "\ue627" // go gopher

	IconCheck   = "\uf00c" // check
	IconX       = "\uf00d" // x
	IconWarning = "\uf071" // warning
	IconLock    = "\uf023" // lock
	IconCursor  = "\uf054" // chevron-right
	IconDot     = "\u25cf" // filled circle

	IconDashboard = "\uf0e4" // tachometer
	IconTab       = "\uf0ce" // table
	IconPin       = "\uf08d" // thumb-tack
	IconHistory   = "\uf1da" // history
	IconSync      = "\uf021" // refresh
	IconSearch    = "\uf002" // search
	IconExpand    = "\uf065" // expand
	IconCollapse  = "\uf066" // compress
)
