package models

// Herb repräsentiert eine Heilpflanze mit beschreibenden und Herkunftsangaben.
type Herb struct {
	ID             uint   `json:"herb_id" gorm:"column:herb_id;primaryKey"`
	Name           string `json:"herb_name" gorm:"column:herb_name;index"`
	ScientificName string `json:"scientific_name" gorm:"column:scientific_name"`
	Uses           string `json:"uses" gorm:"column:uses;type:text"`
	Origin         string `json:"origin" gorm:"column:origin"`
	SourceURL      string `json:"source_url" gorm:"column:source_url"`
}

// TableName gibt den expliziten Tabellennamen für GORM an.
func (Herb) TableName() string {
	return "herbs"
}
