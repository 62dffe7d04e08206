package api

import (
	"time"

	"github.com/lcrown/tickerdata/internal/model"
)

// NowMicro returns the current time in microseconds since epoch.
func NowMicro() int64 {
	return time.Now().UnixMicro()
}

// ToModel converts an APICompany to model.Ticker.
func (c *APICompany) ToModel() model.Ticker {
	return model.Ticker{
		Symbol:      c.Symbol,
		Name:        c.Name,
		Description: c.Description,
		Tags:        c.Tags,
		Similar:     c.Similar,
		Industry:    c.Industry,
		Sector:      c.Sector,
		Exchange:    c.Exchange,
		Active:      c.Active,
		UpdatedAt:   NowMicro(),
	}
}
