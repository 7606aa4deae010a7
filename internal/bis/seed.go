package bis

// jobCatalogue is the fixed set of combat jobs, in party-list order.
var jobCatalogue = []Job{
	{Code: "PLD", Name: "Paladin", Role: "tank", Ordering: 1},
	{Code: "WAR", Name: "Warrior", Role: "tank", Ordering: 2},
	{Code: "DRK", Name: "Dark Knight", Role: "tank", Ordering: 3},
	{Code: "GNB", Name: "Gunbreaker", Role: "tank", Ordering: 4},
	{Code: "WHM", Name: "White Mage", Role: "heal", Ordering: 5},
	{Code: "SCH", Name: "Scholar", Role: "heal", Ordering: 6},
	{Code: "AST", Name: "Astrologian", Role: "heal", Ordering: 7},
	{Code: "SGE", Name: "Sage", Role: "heal", Ordering: 8},
	{Code: "MNK", Name: "Monk", Role: "dps", Ordering: 9},
	{Code: "DRG", Name: "Dragoon", Role: "dps", Ordering: 10},
	{Code: "NIN", Name: "Ninja", Role: "dps", Ordering: 11},
	{Code: "SAM", Name: "Samurai", Role: "dps", Ordering: 12},
	{Code: "RPR", Name: "Reaper", Role: "dps", Ordering: 13},
	{Code: "BRD", Name: "Bard", Role: "dps", Ordering: 14},
	{Code: "MCH", Name: "Machinist", Role: "dps", Ordering: 15},
	{Code: "DNC", Name: "Dancer", Role: "dps", Ordering: 16},
	{Code: "BLM", Name: "Black Mage", Role: "dps", Ordering: 17},
	{Code: "SMN", Name: "Summoner", Role: "dps", Ordering: 18},
	{Code: "RDM", Name: "Red Mage", Role: "dps", Ordering: 19},
}

// JobCatalogue returns a copy of the seed job list.
func JobCatalogue() []Job {
	jobs := make([]Job, len(jobCatalogue))
	copy(jobs, jobCatalogue)
	return jobs
}
