package action

// Player-facing messages shared across handlers.
const (
	MsgUnknownLine1   = "I don't understand that command. Type HELP for"
	MsgUnknownLine2   = "a list of available commands."
	MsgNothingHappens = "Nothing happens."
	MsgInventoryEmpty = "Your inventory is empty."
	MsgPickUpFirst    = "You'll need to pick that up first."
	MsgNotHere        = "You don't see that here."
	MsgCannotExamine  = "You can't get a close look at that right now."
	MsgNothingSpecial = "You see nothing special."
	MsgKeepIt         = "You'd better hang on to that."
	MsgDropped        = "Dropped."
	MsgTaken          = "Taken."
	MsgCannotEat      = "You can't eat that!"
	MsgMustHold       = "You need to be holding that."
	MsgLocked         = "It's locked."
	MsgQuitArm        = "Are you sure? Type QUIT (in capitals) to confirm."
	MsgQuitDone       = "Thanks for playing! Resetting the world..."
	MsgRestart        = "Starting over..."
	MsgNoSaving       = "Saving is not available here."
	MsgNoHistory      = "No commands yet."
)

// defaultThrowLines are used for items without their own throw responses.
// Each takes the item's display name.
var defaultThrowLines = []string{
	"You wind up to throw %s, then think better of it.",
	"You toss %s into the air and catch it again. Show off.",
	"You pretend to throw %s. Nobody is fooled.",
	"You throw %s with all your might. It lands right back in your bag. Spooky.",
}
