// Package generator produces random sample guests for demos and load
// testing. All randomness flows through an explicit *rand.Rand so runs
// are reproducible from a seed; nothing here touches the global source.
package generator

import (
	"fmt"
	"math/rand"

	"fete/internal/models"
)

// Diversity controls how spread out generated preferences are.
type Diversity string

const (
	DiversityLow       Diversity = "low"
	DiversityMedium    Diversity = "medium"
	DiversityHigh      Diversity = "high"
	DiversityRealistic Diversity = "realistic"
)

// IntimacyDistribution selects the shape of generated intimacy values.
type IntimacyDistribution string

const (
	IntimacyNormal  IntimacyDistribution = "normal"
	IntimacyUniform IntimacyDistribution = "uniform"
	IntimacyBimodal IntimacyDistribution = "bimodal"
)

const (
	intimacyMean   = 6.0
	intimacyStdDev = 2.0
	maxGenerate    = 500
)

var firstNames = []string{
	"Alex", "Sam", "Jordan", "Taylor", "Morgan", "Casey", "Riley", "Avery",
	"Quinn", "Charlie", "Skylar", "Dakota", "Emma", "Liam", "Olivia", "Noah",
	"Ava", "Ethan", "Sophia", "Mason", "Isabella", "William", "Mia", "James",
	"Charlotte", "Benjamin", "Amelia", "Lucas", "Harper", "Henry", "Evelyn",
	"Alexander", "Abigail", "Jack", "Emily", "Sebastian", "Elizabeth",
	"Michael", "Sofia", "Daniel", "Ella", "Matthew", "Madison", "David",
	"Scarlett", "Joseph", "Victoria", "Carter", "Aria", "Owen", "Grace",
	"Wyatt", "Chloe", "John", "Camila", "Leo", "Penelope", "Jackson",
	"Aiden", "Layla",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
	"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
	"Lee", "Perez", "Thompson", "White", "Harris", "Sanchez", "Clark",
	"Ramirez", "Lewis", "Robinson", "Walker", "Young", "Allen", "King",
	"Wright", "Scott", "Torres", "Nguyen", "Hill", "Flores", "Green",
	"Adams", "Nelson", "Baker", "Hall", "Rivera", "Campbell", "Mitchell",
}

// dietaryOptions pairs a tag set with its sampling probability; the
// probabilities sum to 1.0.
var dietaryOptions = []struct {
	tags []string
	prob float64
}{
	{nil, 0.60},
	{[]string{"vegetarian"}, 0.15},
	{[]string{"vegan"}, 0.08},
	{[]string{"gluten-free"}, 0.07},
	{[]string{"dairy-free"}, 0.04},
	{[]string{"nut-free"}, 0.03},
	{[]string{"vegetarian", "gluten-free"}, 0.02},
	{[]string{"vegan", "gluten-free"}, 0.01},
}

// Generator creates random guests from a seeded source.
type Generator struct {
	rng  *rand.Rand
	used map[string]bool
}

// New builds a generator over an explicit random source.
func New(rng *rand.Rand) *Generator {
	return &Generator{rng: rng, used: make(map[string]bool)}
}

// GenerateGuests builds count random guests rating the given foods.
func (g *Generator) GenerateGuests(count int, foods []string, diversity Diversity, dist IntimacyDistribution) ([]models.Guest, error) {
	if count < 1 || count > maxGenerate {
		return nil, fmt.Errorf("guest count must be 1-%d, got %d", maxGenerate, count)
	}

	intimacies := g.generateIntimacies(count, dist)
	guests := make([]models.Guest, 0, count)
	for i := 0; i < count; i++ {
		guest, err := models.NewGuest(
			g.generateName(),
			g.generatePreferences(foods, diversity),
			intimacies[i],
			g.generateDietaryTags(),
		)
		if err != nil {
			return nil, err
		}
		guests = append(guests, guest)
	}
	return guests, nil
}

// generateName draws first/last name pairs until an unused one appears,
// falling back to a numeric suffix on a saturated pool.
func (g *Generator) generateName() string {
	for attempt := 0; attempt < 1000; attempt++ {
		name := firstNames[g.rng.Intn(len(firstNames))] + " " + lastNames[g.rng.Intn(len(lastNames))]
		if !g.used[name] {
			g.used[name] = true
			return name
		}
	}
	name := fmt.Sprintf("%s %s %d",
		firstNames[g.rng.Intn(len(firstNames))],
		lastNames[g.rng.Intn(len(lastNames))],
		g.rng.Intn(9999)+1)
	g.used[name] = true
	return name
}

func (g *Generator) generateIntimacies(count int, dist IntimacyDistribution) []int {
	values := make([]int, count)
	switch dist {
	case IntimacyUniform:
		for i := range values {
			values[i] = g.rng.Intn(models.MaxIntimacy-models.MinIntimacy+1) + models.MinIntimacy
		}
	case IntimacyBimodal:
		half := count / 2
		for i := 0; i < half; i++ {
			values[i] = g.rng.Intn(models.MaxIntimacy-7+1) + 7
		}
		for i := half; i < count; i++ {
			values[i] = g.rng.Intn(4) + models.MinIntimacy
		}
		g.rng.Shuffle(count, func(i, j int) {
			values[i], values[j] = values[j], values[i]
		})
	default: // normal
		for i := range values {
			values[i] = clampIntimacy(int(g.rng.NormFloat64()*intimacyStdDev + intimacyMean + 0.5))
		}
	}
	return values
}

func (g *Generator) generatePreferences(foods []string, diversity Diversity) map[string]int {
	prefs := make(map[string]int, len(foods))
	switch diversity {
	case DiversityRealistic:
		base := 3
		if g.rng.Float64() >= 0.6 {
			base = 4
		}
		for _, food := range foods {
			prefs[food] = clampPreference(base + g.rng.Intn(5) - 2)
		}
	case DiversityLow:
		base := g.rng.Intn(3) + 2
		for _, food := range foods {
			prefs[food] = clampPreference(base + g.rng.Intn(3) - 1)
		}
	default: // medium or high
		for _, food := range foods {
			prefs[food] = g.rng.Intn(models.MaxPreference-models.MinPreference+1) + models.MinPreference
		}
	}
	return prefs
}

func (g *Generator) generateDietaryTags() []string {
	roll := g.rng.Float64()
	cumulative := 0.0
	for _, option := range dietaryOptions {
		cumulative += option.prob
		if roll < cumulative {
			return option.tags
		}
	}
	return nil
}

func clampIntimacy(v int) int {
	if v < models.MinIntimacy {
		return models.MinIntimacy
	}
	if v > models.MaxIntimacy {
		return models.MaxIntimacy
	}
	return v
}

func clampPreference(v int) int {
	if v < models.MinPreference {
		return models.MinPreference
	}
	if v > models.MaxPreference {
		return models.MaxPreference
	}
	return v
}
