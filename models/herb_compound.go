package models

// HerbCompound modelliert die n:m-Kante zwischen Pflanze und Wirkstoff.
// Die Referenzen werden nicht von dieser Schicht erzwungen.
type HerbCompound struct {
	HerbID     uint `json:"herb_id" gorm:"column:herb_id;primaryKey;autoIncrement:false;index"`
	CompoundID uint `json:"compound_id" gorm:"column:compound_id;primaryKey;autoIncrement:false;index"`
}

func (HerbCompound) TableName() string { return "herb_phytochemical" }
