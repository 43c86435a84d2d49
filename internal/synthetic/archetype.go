package synthetic

// Archetype is one of the calibrated candidate templates
type Archetype string

// Archetype constants
const (
	// ArchetypeGolden is fully qualified with no embedded defects
	ArchetypeGolden Archetype = "golden"
	// ArchetypeNearMiss is plausible but carries a soft defect
	ArchetypeNearMiss Archetype = "near_miss"
	// ArchetypeRedFlag carries a hard defect
	ArchetypeRedFlag Archetype = "red_flag"
)

type weightedArchetype struct {
	archetype Archetype
	weight    float64
}

// archetypeWeights is the categorical distribution for archetype draws, in percent
var archetypeWeights = []weightedArchetype{
	{archetype: ArchetypeGolden, weight: 30},
	{archetype: ArchetypeNearMiss, weight: 40},
	{archetype: ArchetypeRedFlag, weight: 30},
}

// drawArchetype maps a uniform draw u in [0,1) onto the cumulative weight table
func drawArchetype(u float64) Archetype {
	total := 0.0
	for _, w := range archetypeWeights {
		total += w.weight
	}

	target := u * total
	cumulative := 0.0
	for _, w := range archetypeWeights {
		cumulative += w.weight
		if target < cumulative {
			return w.archetype
		}
	}
	return archetypeWeights[len(archetypeWeights)-1].archetype
}
