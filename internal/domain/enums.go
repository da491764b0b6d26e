package domain

type SessionStatus string

const (
	SessionActive  SessionStatus = "active"
	SessionStopped SessionStatus = "stopped"
)

type DisplayMode string

const (
	ModeDay   DisplayMode = "day"
	ModeWeek  DisplayMode = "week"
	ModeMonth DisplayMode = "month"
)

// ValidDisplayModes is the canonical set of accepted display mode strings.
var ValidDisplayModes = map[string]bool{
	"day": true, "week": true, "month": true,
}

type ColorCode string

const (
	ColorRed    ColorCode = "red"
	ColorOrange ColorCode = "orange"
	ColorYellow ColorCode = "yellow"
	ColorGreen  ColorCode = "green"
	ColorBlue   ColorCode = "blue"
	ColorPurple ColorCode = "purple"
	ColorPink   ColorCode = "pink"
	ColorGray   ColorCode = "gray"
)

// ValidColorCodes is the canonical set of accepted topic color strings.
var ValidColorCodes = map[string]bool{
	"red": true, "orange": true, "yellow": true, "green": true,
	"blue": true, "purple": true, "pink": true, "gray": true,
}
