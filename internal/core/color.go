package core

// Color is the role of a screen cell. The platform decides how each role
// looks on the terminal it draws to.
type Color uint8

const (
	ColorDefault Color = iota
	ColorWall          // maze walls
	ColorGoal          // the goal cell
	ColorPlayer        // player heading marker
	ColorHUD           // status line
	ColorHint          // help and secondary text
	ColorTitle         // overlay titles
)
