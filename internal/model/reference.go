package model

// ReferenceMaterial is a static environmental-impact catalog entry.
type ReferenceMaterial struct {
	ID                EntryID `json:"id" yaml:"id"`
	Material          string  `json:"material" yaml:"material"`
	DecompositionTime string  `json:"decompositionTime" yaml:"decompositionTime"`
	FunFact           string  `json:"funFact" yaml:"funFact"`
	Tips              string  `json:"tips" yaml:"tips"`
	RecyclingRate     float64 `json:"recyclingRate" yaml:"recyclingRate"`
	CO2PerKg          float64 `json:"co2PerKg" yaml:"co2PerKg"`
}

// Category returns the material as a Category.
func (r ReferenceMaterial) Category() Category {
	return ParseCategory(r.Material)
}
