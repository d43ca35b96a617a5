package match

// PlayerTraits are small boolean style flags that nudge positioning and
// decision-making away from the generic role default (spec §4.6: "inverted"
// winger, "false-9" striker).
type PlayerTraits struct {
	Inverted            bool // winger cuts inside rather than hugging the line
	FalseNine           bool // CF drops deep rather than leading the line
	OverlappingFullback bool
}

// Player is a team member's immutable (for the life of the match) profile:
// identity, natural role and attribute ratings. Per-tick mutable state lives
// separately in PlayerState — the Match owns both and pairs them by ID
// (spec §3 Ownership).
type Player struct {
	ID          string
	Name        string
	NaturalRole Role
	Attributes  Attributes
	Traits      PlayerTraits
}

// Team is a club taking part in the match: identity, full squad and primary
// tactic. Roster must carry at least 11 players (spec §3); formations here
// assume up to 18 (11 starters + 7 substitutes, spec §12 supplement).
type Team struct {
	ID      string
	Name    string
	Roster  []*Player
	Tactic  *Tactic // nil = balanced defaults (spec §3)
}

// EffectiveTactic returns the team's tactic, or balanced defaults if absent.
func (t *Team) EffectiveTactic() Tactic {
	return EffectiveTactic(t.Tactic)
}

// PlayerByID finds a squad member by ID, or nil if absent.
func (t *Team) PlayerByID(id string) *Player {
	for _, p := range t.Roster {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// MaxBenchSize caps the number of usable substitutes (spec §12 supplement).
const MaxBenchSize = 7

// MaxSubstitutionsPerTeam caps in-match substitutions (spec §12 supplement).
const MaxSubstitutionsPerTeam = 3
