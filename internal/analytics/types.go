package analytics

// Defaults for the popularity ranking and history lookups
const (
	DefaultPopularDays  = 7
	MaxPopularDays      = 90
	DefaultPopularLimit = 20
	MaxPopularLimit     = 100
	DefaultHistoryLimit = 50
)

// ViewRequest is a client's playback report
type ViewRequest struct {
	WatchDuration int64   `json:"watchDuration" validate:"min=0"`
	WatchProgress float64 `json:"watchProgress" validate:"min=0,max=1"`
	DeviceInfo    string  `json:"deviceInfo" validate:"max=255"`
}

// PopularRequest selects the popularity window
type PopularRequest struct {
	Days  int `form:"days"`
	Limit int `form:"limit"`
}

func (r PopularRequest) normalize() PopularRequest {
	if r.Days <= 0 {
		r.Days = DefaultPopularDays
	} else if r.Days > MaxPopularDays {
		r.Days = MaxPopularDays
	}
	if r.Limit <= 0 {
		r.Limit = DefaultPopularLimit
	} else if r.Limit > MaxPopularLimit {
		r.Limit = MaxPopularLimit
	}
	return r
}
