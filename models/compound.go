package models

// Compound repräsentiert einen sekundären Pflanzenstoff (Phytochemikalie).
type Compound struct {
	ID                uint   `json:"compound_id" gorm:"column:compound_id;primaryKey"`
	Name              string `json:"compound_name" gorm:"column:compound_name;index"`
	Function          string `json:"function" gorm:"column:function;type:text"`
	ChemicalStructure string `json:"chemical_structure" gorm:"column:chemical_structure"`
	CompoundType      string `json:"compound_type" gorm:"column:compound_type"`
	SourceURL         string `json:"source_url" gorm:"column:source_url"`
}

// TableName gibt den expliziten Tabellennamen für GORM an.
func (Compound) TableName() string {
	return "phytochemicals"
}
