package ai

import (
	"math/rand"

	"github.com/frgonzalezb/Udemy-Battle-City/engine/core"
)

// CompositionRatios gives the percentage of basic, fast, power and armor
// tanks per stage, cycling past the end
var CompositionRatios = [][core.NumEnemyClasses]int{
	{50, 30, 20, 0},
	{40, 30, 20, 10},
	{30, 30, 25, 15},
	{25, 25, 25, 25},
	{20, 30, 20, 30},
	{10, 30, 30, 30},
	{10, 20, 30, 40},
	{0, 25, 25, 50},
}

// RatiosFor returns the composition of stage (1-based)
func RatiosFor(stage int) [core.NumEnemyClasses]int {
	if stage < 1 {
		stage = 1
	}
	return CompositionRatios[(stage-1)%len(CompositionRatios)]
}

// ClassCounts splits count enemies by ratios. The rounding remainder goes
// to the class with the largest ratio.
func ClassCounts(count int, ratios [core.NumEnemyClasses]int) [core.NumEnemyClasses]int {
	var out [core.NumEnemyClasses]int
	total, largest := 0, 0
	for c, r := range ratios {
		out[c] = count * r / 100
		total += out[c]
		if r > ratios[largest] {
			largest = c
		}
	}
	out[largest] += count - total
	return out
}

// BuildQueue returns a shuffled spawn order of enemy classes for stage
func BuildQueue(rng *rand.Rand, stage, count int) []int {
	counts := ClassCounts(count, RatiosFor(stage))
	queue := make([]int, 0, count)
	for c, n := range counts {
		for i := 0; i < n; i++ {
			queue = append(queue, c)
		}
	}
	rng.Shuffle(len(queue), func(i, j int) { queue[i], queue[j] = queue[j], queue[i] })
	return queue
}
