package media

// RuleKind selects how a rule decides zone membership.
type RuleKind int

const (
	// MatchPosition assigns assets whose position metadata equals the rule's value.
	MatchPosition RuleKind = iota
	// BucketByPrimaryTag assigns assets to the zone named after their first
	// tag, for first tags inside the rule's vocabulary.
	BucketByPrimaryTag
	// WholeFolder assigns every remaining asset of the folder to one zone.
	WholeFolder
)

// Rule is one clause of a classification scheme. Defaults are filled into an
// asset's metadata when the keys are absent, because downstream rendering
// assumes their presence.
type Rule struct {
	Kind       RuleKind
	Zone       Zone
	Position   string
	Vocabulary []Zone
	Defaults   map[string]string
}

// Scheme drives both classification and ingestion validation for one folder.
// Adding a zone is a change to this table, not new branching logic.
type Scheme struct {
	Folder   string
	Rules    []Rule
	Required []string
	Optional []string
}

// Zones lists every zone the scheme can produce, in rule order.
func (s Scheme) Zones() []Zone {
	var zones []Zone
	for _, r := range s.Rules {
		switch r.Kind {
		case BucketByPrimaryTag:
			zones = append(zones, r.Vocabulary...)
		default:
			zones = append(zones, r.Zone)
		}
	}
	return zones
}

// zoneFor returns the first rule matching the asset. Assets matching no rule
// belong to no zone and are dropped from classification.
func (s Scheme) zoneFor(a Asset) (Zone, map[string]string, bool) {
	for _, r := range s.Rules {
		switch r.Kind {
		case MatchPosition:
			if a.Metadata[MetaPosition] == r.Position {
				return r.Zone, r.Defaults, true
			}
		case BucketByPrimaryTag:
			if len(a.Tags) == 0 {
				continue
			}
			// only the first tag decides bucket membership
			primary := Zone(a.Tags[0])
			for _, allowed := range r.Vocabulary {
				if primary == allowed {
					return primary, r.Defaults, true
				}
			}
		case WholeFolder:
			return r.Zone, r.Defaults, true
		}
	}
	return "", nil, false
}

const (
	// DefaultPrice is substituted when a listing has no price metadata.
	DefaultPrice = "no price available"
	// DefaultDescription is substituted when a listing has no description.
	DefaultDescription = "no description available"
)

// DefaultSchemes returns the classification table for the property's site
// sections.
func DefaultSchemes() map[string]Scheme {
	listingDefaults := map[string]string{
		"price":       DefaultPrice,
		"description": DefaultDescription,
	}

	return map[string]Scheme{
		"hotel": {
			Folder: "hotel",
			Rules: []Rule{
				{Kind: MatchPosition, Zone: ZoneHero, Position: "hero"},
				{Kind: MatchPosition, Zone: ZoneGallery, Position: "gallery"},
				{Kind: MatchPosition, Zone: ZonePreference, Position: "preference"},
				{Kind: MatchPosition, Zone: ZoneBanquet, Position: "banquet"},
			},
			Required: []string{MetaPosition},
		},
		"food-court": {
			Folder: "food-court",
			Rules: []Rule{
				{Kind: MatchPosition, Zone: ZoneHero, Position: "hero"},
				{Kind: MatchPosition, Zone: ZoneGallery, Position: "gallery"},
				{Kind: MatchPosition, Zone: ZonePreference, Position: "preference"},
			},
			Required: []string{MetaPosition},
		},
		"bakery": {
			Folder: "bakery",
			Rules: []Rule{
				{Kind: MatchPosition, Zone: ZoneHero, Position: "hero"},
				{
					Kind:       BucketByPrimaryTag,
					Vocabulary: []Zone{ZoneBread, ZoneBiscuit, ZoneRusk, ZonePuffAndSnacks},
					Defaults:   listingDefaults,
				},
			},
			Optional: []string{"name", "price", "description"},
		},
		"hotel-rooms": {
			Folder: "hotel-rooms",
			Rules: []Rule{
				{Kind: MatchPosition, Zone: ZoneRooms, Position: "rooms", Defaults: listingDefaults},
			},
			Required: []string{MetaPosition, "room_type", "price", "occupancy"},
			Optional: []string{"description", "room_no"},
		},
		"events": {
			Folder: "events",
			Rules: []Rule{
				{Kind: WholeFolder, Zone: ZoneEvents},
			},
			Required: []string{"name", "date", "time"},
			Optional: []string{"description"},
		},
		"gallery": {
			Folder: "gallery",
			Rules: []Rule{
				{Kind: WholeFolder, Zone: ZoneGallery},
			},
		},
	}
}
