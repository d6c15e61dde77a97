package state

import (
	"time"

	"github.com/gibzwein/RCE-reader/pkg/price"
	"github.com/gibzwein/RCE-reader/pkg/tier"
)

// Snapshot is the outcome of one successful refresh.
type Snapshot struct {
	Time    time.Time   `json:"time"`
	Date    string      `json:"date"`
	Hour    int         `json:"hour"`
	Price   float64     `json:"price"`
	Stats   price.Stats `json:"stats"`
	Tier    tier.Tier   `json:"tier"`
	Records int         `json:"records"`
}

func (s Snapshot) Color() tier.RGB {
	return s.Tier.Color()
}

func (s Snapshot) Map() map[string]interface{} {
	c := s.Color()
	return map[string]interface{}{
		"time":    s.Time.Format(time.RFC3339),
		"date":    s.Date,
		"hour":    s.Hour,
		"price":   s.Price,
		"average": s.Stats.Average,
		"min":     s.Stats.Min,
		"max":     s.Stats.Max,
		"tier":    s.Tier.String(),
		"letter":  s.Tier.Letter(),
		"records": s.Records,
		"color":   []uint8{c.R, c.G, c.B},
	}
}
