package memory

import (
	"github.com/riskibarqy/scoresync/internal/domain/competition"
)

// SeedCompetitions registers the competitions tracked by default. Metadata is
// filled in by the first primary sync.
func SeedCompetitions() []competition.Competition {
	return []competition.Competition{
		{ID: 2021, Code: "PL", Name: "Premier League", AreaName: "England", Active: true},
		{ID: 2016, Code: "ELC", Name: "Championship", AreaName: "England", Active: true},
		{ID: 2014, Code: "PD", Name: "Primera Division", AreaName: "Spain", Active: true},
		{ID: 2002, Code: "BL1", Name: "Bundesliga", AreaName: "Germany", Active: true},
		{ID: 2019, Code: "SA", Name: "Serie A", AreaName: "Italy", Active: true},
		{ID: 2015, Code: "FL1", Name: "Ligue 1", AreaName: "France", Active: true},
		{ID: 2003, Code: "DED", Name: "Eredivisie", AreaName: "Netherlands", Active: true},
		{ID: 2017, Code: "PPL", Name: "Primeira Liga", AreaName: "Portugal", Active: true},
		{ID: 2001, Code: "CL", Name: "UEFA Champions League", AreaName: "Europe", Active: true},
	}
}
