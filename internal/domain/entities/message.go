package entities

// Sender identifies who produced an inbound event and where to reply
type Sender struct {
	UserID      int64
	ChatID      int64
	DisplayName string
}

// ActionPress is an inbound button press
type ActionPress struct {
	ID        string
	ChatID    int64
	MessageID int
	Action    Action
}

// ImageVariant is one resolution of an uploaded photo
type ImageVariant struct {
	Ref    string
	Width  int
	Height int
}

// LargestImage returns the highest-resolution variant (the last one), or false if none.
func LargestImage(variants []ImageVariant) (ImageVariant, bool) {
	if len(variants) == 0 {
		return ImageVariant{}, false
	}
	return variants[len(variants)-1], true
}

// Button is an action control rendered under a message
type Button struct {
	Text   string
	Action Action
}

// OutboundMessage is a text message sent through the transport
type OutboundMessage struct {
	Text     string
	Markdown bool
	Buttons  [][]Button
}

// OutboundPhoto is an image sent through the transport
type OutboundPhoto struct {
	ImageRef string
	Caption  string
	Buttons  [][]Button
}
