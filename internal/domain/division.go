package domain

// Division is a weight/gender classification bracket. MinWeight is an
// exclusive lower bound, MaxWeight an inclusive upper bound, so for a given
// gender the brackets tile the weight axis without overlap. ID is the
// divisions table key; entries of the in-code reference set carry no id.
type Division struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Gender    string  `json:"gender"`
	MinWeight float64 `json:"min_weight"`
	MaxWeight float64 `json:"max_weight"`
}

// Divisions is the league's reference bracket set. The divisions table is
// seeded from the same values; this copy backs pure weight classification.
var Divisions = []Division{
	{Name: "Lightweight", Gender: GenderMale, MinWeight: 0, MaxWeight: 165},
	{Name: "Welterweight", Gender: GenderMale, MinWeight: 165, MaxWeight: 190},
	{Name: "Light Heavyweight", Gender: GenderMale, MinWeight: 190, MaxWeight: 215},
	{Name: "Heavyweight", Gender: GenderMale, MinWeight: 215, MaxWeight: 285},
	{Name: "Flyweight", Gender: GenderFemale, MinWeight: 0, MaxWeight: 125},
	{Name: "Bantamweight", Gender: GenderFemale, MinWeight: 125, MaxWeight: 145},
	{Name: "Open/Heavyweight", Gender: GenderFemale, MinWeight: 145, MaxWeight: 185},
}

// ClassifyDivision returns the bracket containing the given weight for the
// given gender. The lower bound is exclusive even at zero, so a weight of 0
// never classifies.
func ClassifyDivision(weight float64, gender string) (Division, bool) {
	for _, d := range Divisions {
		if d.Gender != gender {
			continue
		}
		if weight > d.MinWeight && weight <= d.MaxWeight {
			return d, true
		}
	}
	return Division{}, false
}

// DivisionByName looks up a bracket by display name and gender.
func DivisionByName(name, gender string) (Division, bool) {
	for _, d := range Divisions {
		if d.Name == name && d.Gender == gender {
			return d, true
		}
	}
	return Division{}, false
}
