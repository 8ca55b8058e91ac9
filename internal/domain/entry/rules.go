package entry

import "github.com/riskibarqy/fpl-live-league/internal/domain/autosub"

// LeagueRules holds every scoring difference between league kinds.
type LeagueRules struct {
	Name                 string
	CaptainMultiplierCap int
	IgnoreBenchBoost     bool
	DeductTransferHits   bool
}

func IndividualRules() LeagueRules {
	return LeagueRules{
		Name:               "individual",
		DeductTransferHits: true,
	}
}

// TeamRules caps triple captain at double and ignores bench boost.
func TeamRules() LeagueRules {
	return LeagueRules{
		Name:                 "team",
		CaptainMultiplierCap: 2,
		IgnoreBenchBoost:     true,
		DeductTransferHits:   true,
	}
}

// RulesFor returns the default rules of an entry kind.
func RulesFor(kind Kind) LeagueRules {
	if kind == KindTeam {
		return TeamRules()
	}
	return IndividualRules()
}

func (r LeagueRules) options() autosub.Options {
	return autosub.Options{
		CaptainMultiplierCap: r.CaptainMultiplierCap,
		IgnoreBenchBoost:     r.IgnoreBenchBoost,
		DeductTransferHits:   r.DeductTransferHits,
	}
}
