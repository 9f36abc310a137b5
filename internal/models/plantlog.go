package models

import "time"

// Season, Status and Location are closed enumerations. Values outside the
// sets below are rejected by the service layer before they reach the store.
type Season string

type Status string

type Location string

const (
	SeasonWinter Season = "Winter"
	SeasonSpring Season = "Spring"
	SeasonSummer Season = "Summer"
	SeasonAutumn Season = "Autumn"

	StatusSeed      Status = "Seed"
	StatusSprout    Status = "Sprout"
	StatusGrowing   Status = "Growing"
	StatusFlowering Status = "Flowering"
	StatusHarvested Status = "Harvested"

	LocationIndoor  Location = "Indoor"
	LocationOutdoor Location = "Outdoor"
	LocationPot     Location = "Pot"
	LocationGround  Location = "Ground"
)

// Seasons lists every valid Season, in display order.
func Seasons() []Season {
	return []Season{SeasonWinter, SeasonSpring, SeasonSummer, SeasonAutumn}
}

// Statuses lists every valid Status, in lifecycle order.
func Statuses() []Status {
	return []Status{StatusSeed, StatusSprout, StatusGrowing, StatusFlowering, StatusHarvested}
}

// Locations lists every valid Location.
func Locations() []Location {
	return []Location{LocationIndoor, LocationOutdoor, LocationPot, LocationGround}
}

// Valid reports whether s is a member of the Season enumeration.
func (s Season) Valid() bool {
	switch s {
	case SeasonWinter, SeasonSpring, SeasonSummer, SeasonAutumn:
		return true
	}
	return false
}

// Valid reports whether s is a member of the Status enumeration.
func (s Status) Valid() bool {
	switch s {
	case StatusSeed, StatusSprout, StatusGrowing, StatusFlowering, StatusHarvested:
		return true
	}
	return false
}

// Valid reports whether l is a member of the Location enumeration.
func (l Location) Valid() bool {
	switch l {
	case LocationIndoor, LocationOutdoor, LocationPot, LocationGround:
		return true
	}
	return false
}

// PlantLog is a single plant record owned by exactly one user. Every read,
// write and delete must be scoped by UserID alongside the record ID.
type PlantLog struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID       uint      `json:"user_id" gorm:"index;not null"`
	User         User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	PlantName    string    `json:"plant_name" gorm:"type:varchar(120);not null" validate:"required"`
	PlantingDate time.Time `json:"planting_date" gorm:"type:date;not null" validate:"required"`
	Season       Season    `json:"season" gorm:"type:varchar(10);not null"`
	Status       Status    `json:"status" gorm:"type:varchar(10);not null"`
	Location     Location  `json:"location" gorm:"type:varchar(10);not null"`
	Notes        string    `json:"notes" gorm:"type:text"`
	Photo        []byte    `json:"-"`
	PhotoMime    string    `json:"photo_mime,omitempty" gorm:"type:varchar(40)"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName keeps the table name aligned with the persisted schema.
func (PlantLog) TableName() string {
	return "plant_logs"
}
