package domain

// ViewerPrefs is the per-viewer preference blob: the hidden-profile list,
// the last-used search radius, the browse-location override, and one-time
// flags for banners and advisories. It is stored as a single JSON value; a
// blob that fails to parse loads as the zero value, never as an error.
type ViewerPrefs struct {
	HiddenUserIDs  []int           `json:"hidden_user_ids,omitempty"`
	RadiusKm       float64         `json:"radius_km,omitempty"`
	BrowseLocation string          `json:"browse_location,omitempty"`
	SeenFlags      map[string]bool `json:"seen_flags,omitempty"`
}

// FlagLocationAdvisory marks that the viewer has seen the one-time advisory
// that their own location could not be resolved for radius search.
const FlagLocationAdvisory = "location_advisory"

// IsHidden reports whether the viewer has hidden the given user.
func (p *ViewerPrefs) IsHidden(userID int) bool {
	for _, id := range p.HiddenUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Hide adds userID to the hidden list. Adding an already hidden id is a
// no-op.
func (p *ViewerPrefs) Hide(userID int) {
	if !p.IsHidden(userID) {
		p.HiddenUserIDs = append(p.HiddenUserIDs, userID)
	}
}

// Unhide removes userID from the hidden list.
func (p *ViewerPrefs) Unhide(userID int) {
	out := p.HiddenUserIDs[:0]
	for _, id := range p.HiddenUserIDs {
		if id != userID {
			out = append(out, id)
		}
	}
	p.HiddenUserIDs = out
}

// HasSeen reports whether a one-time flag has been recorded.
func (p *ViewerPrefs) HasSeen(flag string) bool {
	return p.SeenFlags[flag]
}

// MarkSeen records a one-time flag.
func (p *ViewerPrefs) MarkSeen(flag string) {
	if p.SeenFlags == nil {
		p.SeenFlags = make(map[string]bool)
	}
	p.SeenFlags[flag] = true
}
