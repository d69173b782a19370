package scoring

import "math"

// CalculatePoints is the rule-based fantasy score for a stat line: a point per
// full hour played, position-weighted goals and clean sheets, one point per
// three saves for keepers, plus assists and bonus, minus cards.
func CalculatePoints(stats RatingInput) int {
	minutes := math.Floor(stats["minutes"] / 60)
	goals := stats["goals_scored"]
	assists := stats["assists"]
	cleanSheets := stats["clean_sheets"]

	points := minutes
	switch int(stats[positionFeature]) {
	case 1:
		points += 6*goals + 4*cleanSheets + math.Floor(stats["saves"]/3)
	case 2:
		points += 6*goals + 4*cleanSheets
	case 3:
		points += 5*goals + 3*assists + cleanSheets
	case 4:
		points += 4*goals + 3*assists
	}
	points += assists + stats["bonus"] - stats["yellow_cards"] - 2*stats["red_cards"]

	return int(points)
}
