package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines viewer colors.
type ColorTheme struct {
	HeaderBg       tcell.Color
	HeaderFg       tcell.Color
	BodyBg         tcell.Color
	BodyFg         tcell.Color
	NoticeFg       tcell.Color
	WarningFg      tcell.Color
	MatchBg        tcell.Color
	MatchFg        tcell.Color
	CurrentMatchBg tcell.Color
	CurrentMatchFg tcell.Color
	FooterBg       tcell.Color
	FooterFg       tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		HeaderBg:       tcell.Color33,
		HeaderFg:       tcell.ColorWhite,
		BodyBg:         tcell.ColorDefault,
		BodyFg:         tcell.ColorDefault,
		NoticeFg:       tcell.ColorLightSlateGray,
		WarningFg:      tcell.Color214,
		MatchBg:        tcell.Color58,
		MatchFg:        tcell.ColorWhite,
		CurrentMatchBg: tcell.Color220,
		CurrentMatchFg: tcell.ColorBlack,
		FooterBg:       tcell.ColorDefault,
		FooterFg:       tcell.ColorDefault,
	}
}
