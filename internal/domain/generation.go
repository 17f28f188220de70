package domain

// Mode identifies which input panel a generation belongs to.
// Values include ModeText and ModeImage. Each mode owns its own
// caption batch; operations on one mode never touch the other's.
type Mode string

const (
	ModeText  Mode = "text"
	ModeImage Mode = "image"
)

// IsValid reports whether m is a known generation mode.
func (m Mode) IsValid() bool {
	return m == ModeText || m == ModeImage
}

// Label returns the user-facing name of the mode for notifications.
// Parameters: none.
// Returns:
//   - string: "Text" or "Image", or the raw value for unknown modes.
func (m Mode) Label() string {
	switch m {
	case ModeText:
		return "Text"
	case ModeImage:
		return "Image"
	default:
		return string(m)
	}
}

// EncodedMedia is a base64 media payload ready for the model wire format.
type EncodedMedia struct {
	Data     string
	MIMEType string
}
