package match

import "fmt"

// commentary is a pure function from Event to a line of text. Tone and
// synonyms are drawn from closed lists; the only source of variety is the
// match's own seeded PRNG, never an independent random source (spec §4.14).

var goalPhrases = []string{
	"%s finds the net! %s score!",
	"GOAL! %s slots it home for %s!",
	"%s buries it — %s lead the celebrations!",
}

var shotOnTargetPhrases = []string{
	"%s forces a save from the keeper.",
	"Good effort from %s, but it's straight at the goalkeeper.",
	"%s tests the keeper with a firm strike.",
}

var shotOffTargetPhrases = []string{
	"%s drags the shot wide.",
	"%s can't keep that one down, well over the bar.",
	"%s's effort sails past the post.",
}

var passPhrases = []string{
	"%s finds %s with a clean pass.",
	"Nice ball from %s into %s.",
}

var crossPhrases = []string{
	"%s whips a cross in toward %s.",
	"%s floats it across for %s.",
}

var substitutionPhrases = []string{
	"%s makes way, replaced by %s.",
	"Substitution for %s: on comes %s.",
}

var passFailedPhrases = []string{
	"%s's pass goes astray.",
	"That pass from %s doesn't find anyone in %s colours.",
}

var tacklePhrases = []string{
	"%s wins the ball cleanly.",
	"Strong challenge from %s.",
}

var interceptionPhrases = []string{
	"%s reads it and cuts the pass out.",
	"Intercepted by %s!",
}

var foulPhrases = []string{
	"Foul called against %s.",
	"%s concedes a free kick.",
}

var penaltyPhrases = []string{
	"Penalty! %s brought down in the box.",
	"The referee points to the spot after a foul on %s.",
}

var yellowCardPhrases = []string{
	"%s goes into the book.",
	"Yellow card shown to %s.",
}

var redCardPhrases = []string{
	"%s is sent off!",
	"Red card for %s — down to ten men.",
}

var offsidePhrases = []string{
	"%s strays offside.",
	"Flag goes up against %s.",
}

var cornerPhrases = []string{
	"Corner kick for %s.",
	"%s win a corner.",
}

var savePhrases = []string{
	"Great save from the %s goalkeeper!",
	"The %s keeper is equal to it.",
}

// pick draws a deterministic index from phrases using the match's own RNG,
// never any other random source (spec §4.14).
func pick(phrases []string, rng *RNG) string {
	return phrases[rng.IntN(len(phrases))]
}

// Describe renders ev as a single commentary line, using playerName and
// teamName to fill the template and rng only for which synonym to use.
func Describe(ev Event, playerName, targetName, teamName string, rng *RNG) string {
	switch ev.Type {
	case EventGoal:
		return fmt.Sprintf(pick(goalPhrases, rng), playerName, teamName)
	case EventShotOnTarget:
		return fmt.Sprintf(pick(shotOnTargetPhrases, rng), playerName)
	case EventShotOffTarget:
		return fmt.Sprintf(pick(shotOffTargetPhrases, rng), playerName)
	case EventPass:
		return fmt.Sprintf(pick(passPhrases, rng), playerName, targetName)
	case EventCross:
		return fmt.Sprintf(pick(crossPhrases, rng), playerName, targetName)
	case EventPassFailed:
		return fmt.Sprintf(pick(passFailedPhrases, rng), playerName, teamName)
	case EventTackle:
		return fmt.Sprintf(pick(tacklePhrases, rng), playerName)
	case EventInterception:
		return fmt.Sprintf(pick(interceptionPhrases, rng), playerName)
	case EventClearance:
		return fmt.Sprintf("%s clears the danger.", playerName)
	case EventFoul:
		return fmt.Sprintf(pick(foulPhrases, rng), playerName)
	case EventPenalty:
		return fmt.Sprintf(pick(penaltyPhrases, rng), playerName)
	case EventYellowCard:
		return fmt.Sprintf(pick(yellowCardPhrases, rng), playerName)
	case EventRedCard:
		return fmt.Sprintf(pick(redCardPhrases, rng), playerName)
	case EventOffside:
		return fmt.Sprintf(pick(offsidePhrases, rng), playerName)
	case EventCorner:
		return fmt.Sprintf(pick(cornerPhrases, rng), teamName)
	case EventSave:
		return fmt.Sprintf(pick(savePhrases, rng), teamName)
	case EventPressing:
		return fmt.Sprintf("%s closes down under pressure.", playerName)
	case EventSubstitution:
		return fmt.Sprintf(pick(substitutionPhrases, rng), playerName, targetName)
	default:
		return ""
	}
}
