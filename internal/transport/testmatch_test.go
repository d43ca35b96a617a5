package transport

import "matchengine/internal/match"

// buildTestMatch assembles a minimal valid 11-a-side match usable across
// this package's tests, independent of the HTTP request payloads handlers
// decode (those are exercised separately via JSON bodies in router_test.go).
func buildTestMatch(seed int64) *match.Match {
	roles := []match.Role{
		match.RoleGK, match.RoleCB, match.RoleCB, match.RoleRB, match.RoleLB,
		match.RoleWM, match.RoleCM, match.RoleCM, match.RoleWM, match.RoleST, match.RoleST,
	}
	home := &match.Team{ID: "home", Name: "Home FC", Roster: buildRoster("h", roles)}
	away := &match.Team{ID: "away", Name: "Away FC", Roster: buildRoster("a", roles)}

	m, err := match.NewMatch(match.MatchConfig{
		HomeTeam: home, AwayTeam: away,
		HomeFormation: "4-4-2", AwayFormation: "4-4-2",
		Seed: seed,
	})
	if err != nil {
		panic(err)
	}
	return m
}

func buildRoster(prefix string, roles []match.Role) []*match.Player {
	roster := make([]*match.Player, 0, len(roles))
	for i, role := range roles {
		roster = append(roster, &match.Player{
			ID:          prefix + string(rune('0'+i)),
			Name:        prefix + "-player",
			NaturalRole: role,
			Attributes: match.Attributes{
				Finishing: 12, Passing: 12, Crossing: 12, Tackling: 12, Heading: 12, BallControl: 12, Dribbling: 12,
				Pace: 12, NaturalFitness: 12, Composure: 12, Anticipation: 12, Aggression: 10, Reactions: 12,
			},
		})
	}
	return roster
}
