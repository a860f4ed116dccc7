package domain

type Gender string

const (
	GenderAll    Gender = "all"
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// TargetingEntity é um interesse ou comportamento do catálogo de segmentação da plataforma
type TargetingEntity struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	// Type é "interests" ou "behaviors"; vazio equivale a "interests"
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
}

// TargetingSpec é passado por valor para a criação do conjunto de anúncios e nunca é alterado
type TargetingSpec struct {
	GeoCountries      []string            `json:"geo_countries" yaml:"geo_countries"`
	AgeMin            int                 `json:"age_min" yaml:"age_min"`
	AgeMax            int                 `json:"age_max" yaml:"age_max"`
	Genders           []Gender            `json:"genders" yaml:"genders"`
	InterestGroups    [][]TargetingEntity `json:"interest_groups" yaml:"interest_groups"`
	IncludedAudiences []string            `json:"included_audiences" yaml:"included_audiences"`
	ExcludedAudiences []string            `json:"excluded_audiences" yaml:"excluded_audiences"`
}

// TargetsAllGenders retorna true quando nenhum filtro de gênero deve ser enviado
func (t TargetingSpec) TargetsAllGenders() bool {
	if len(t.Genders) == 0 {
		return true
	}

	for _, g := range t.Genders {
		if g == GenderAll {
			return true
		}
	}

	return false
}

// PlacementConfig define os posicionamentos. Com Automatic=true nenhum campo de posicionamento é enviado.
type PlacementConfig struct {
	Automatic          bool     `json:"automatic" yaml:"automatic"`
	Platforms          []string `json:"platforms,omitempty" yaml:"platforms,omitempty"`
	FacebookPositions  []string `json:"facebook_positions,omitempty" yaml:"facebook_positions,omitempty"`
	InstagramPositions []string `json:"instagram_positions,omitempty" yaml:"instagram_positions,omitempty"`
}
