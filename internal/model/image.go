package model

// ImageDescriptor is a corpus entry: a content reference plus the
// fallback description used when nobody ever tagged the image.
type ImageDescriptor struct {
	URL                string `json:"url"`
	DefaultDescription string `json:"defaultDescription"`
}

// GameImage is one card on the board.
type GameImage struct {
	ID       string    `json:"id"`
	URL      string    `json:"url"`
	Team     ImageTeam `json:"team"`
	Tags     []Tag     `json:"tags"`
	Selected bool      `json:"selected"`
	Matched  bool      `json:"matched"`

	// Set once Matched is true and frozen afterwards. MatchedTag and
	// MatchedDescription are mutually exclusive: the former when a
	// live tag won the comparison, the latter when the ledger or the
	// default description did.
	MatchedWord         string  `json:"matchedWord,omitempty"`
	MatchedTag          *Tag    `json:"matchedTag,omitempty"`
	MatchedDescription  string  `json:"matchedDescription,omitempty"`
	Similarity          float64 `json:"similarity,omitempty"`
	FormattedSimilarity string  `json:"formattedSimilarity,omitempty"`
}

// TagBy returns the image's current tag by the given player, if any.
func (img *GameImage) TagBy(playerID string) *Tag {
	for i := range img.Tags {
		if img.Tags[i].PlayerID == playerID {
			return &img.Tags[i]
		}
	}
	return nil
}
