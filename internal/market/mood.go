package market

// Moods steer the generated headline for a day.
var Moods = [...]string{"Major Crash", "Bad News", "Neutral", "Good News", "Huge Pump"}

// PickMood draws a market mood uniformly.
func PickMood(rng Rand) string {
	return Moods[rng.IntN(len(Moods))]
}
