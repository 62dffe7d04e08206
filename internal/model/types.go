package model

// Ticker is the persisted projection of an instrument's detail record,
// uniquely keyed by Symbol. At most one live row exists per symbol; a
// re-ingested symbol converges to the latest detail fetch rather than
// duplicating rows.
type Ticker struct {
	Symbol      string   // Primary key (e.g., "AAPL")
	Name        string   // Display name
	Description string   // Company description
	Tags        []string // Free-form classification tags
	Similar     []string // Related symbols, remote ordering preserved
	Industry    string   // Industry classification
	Sector      string   // Sector classification
	Exchange    string   // Listing exchange
	Active      bool     // Tradable flag as reported by the detail endpoint
	UpdatedAt   int64    // Last update (µs since epoch)
}
