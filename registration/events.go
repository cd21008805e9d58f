// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registration

// MatchRule decides when a submitted member collides with an indexed member
// of another team.
type MatchRule int

const (
	// MatchPhone: same phone number
	MatchPhone MatchRule = iota
	// MatchNameAndPhone: same phone number and same name, ignoring case
	MatchNameAndPhone
	// MatchNone skips the member index; only the vice-captain is checked
	MatchNone
)

func (m MatchRule) String() string {
	switch m {
	case MatchPhone:
		return "phone"
	case MatchNameAndPhone:
		return "name+phone"
	case MatchNone:
		return "none"
	default:
		return "unknown"
	}
}

// Event is the configuration one registration service runs with.
// Member bounds count team members only, not the leader or vice-captain.
type Event struct {
	Slug  string
	Title string

	MinMembers int
	MaxMembers int

	RequireDepartment  bool
	RequireYear        bool
	RequireViceCaptain bool

	MemberPhoneRequired bool
	MemberEmailRequired bool

	Match MatchRule
}

var (
	Business = Event{
		Slug:                "business",
		Title:               "Business Hackathon",
		MinMembers:          2,
		MaxMembers:          4,
		RequireDepartment:   true,
		RequireYear:         true,
		MemberPhoneRequired: true,
		Match:               MatchPhone,
	}

	// Member names repeat across treasure hunt teams, so the member index
	// is not consulted.
	Treasure = Event{
		Slug:               "treasure",
		Title:              "Treasure Hunt",
		MinMembers:         1,
		MaxMembers:         3,
		RequireDepartment:  true,
		RequireYear:        true,
		RequireViceCaptain: true,
		Match:              MatchNone,
	}

	BidWise = Event{
		Slug:                "bid-wise",
		Title:               "Bid-Wise",
		MinMembers:          2,
		MaxMembers:          4,
		MemberPhoneRequired: true,
		MemberEmailRequired: true,
		Match:               MatchPhone,
	}

	Adovation = Event{
		Slug:                "adovation",
		Title:               "Adovation",
		MinMembers:          1,
		MaxMembers:          3,
		MemberPhoneRequired: true,
		Match:               MatchNameAndPhone,
	}
)

// Events returns the built-in events in route order.
func Events() []Event {
	return []Event{Business, Treasure, BidWise, Adovation}
}

// Lookup finds a built-in event by slug.
func Lookup(slug string) (Event, bool) {
	for _, e := range Events() {
		if e.Slug == slug {
			return e, true
		}
	}
	return Event{}, false
}
