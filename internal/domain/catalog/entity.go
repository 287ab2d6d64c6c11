// internal/domain/catalog/entity.go
package catalog

import (
	"encoding/json"
	"time"
)

// Vinyl represents a record in the catalog
type Vinyl struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null;size:255" json:"title"`
	Slug      string    `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	Artist    string    `gorm:"not null;size:255" json:"artist"`
	Price     float64   `gorm:"not null;type:decimal(10,2)" json:"price"`
	RealPrice float64   `gorm:"type:decimal(10,2)" json:"real_price"`
	Genre     string    `gorm:"size:100;index" json:"genre"`
	Tracklist string    `gorm:"type:text" json:"tracklist"` // JSON-encoded ordered track titles
	Img       string    `gorm:"size:500" json:"img"`
	Type      *string   `gorm:"size:50" json:"type"`
	Stock     int       `gorm:"not null;default:0" json:"stock"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Vinyl) TableName() string {
	return "vinyls"
}

// Tracks decodes the serialized tracklist. A malformed tracklist yields nil.
func (v *Vinyl) Tracks() []string {
	var tracks []string
	if err := json.Unmarshal([]byte(v.Tracklist), &tracks); err != nil {
		return nil
	}
	return tracks
}

// SetTracks serializes an ordered track listing onto the entity
func (v *Vinyl) SetTracks(tracks []string) error {
	data, err := json.Marshal(tracks)
	if err != nil {
		return err
	}
	v.Tracklist = string(data)
	return nil
}

// IsInStock returns true when at least one copy remains
func (v *Vinyl) IsInStock() bool {
	return v.Stock > 0
}
