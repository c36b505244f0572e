package analytics

// ReliabilityDistribution количество клиентов мастера по категориям надежности
type ReliabilityDistribution struct {
	Reliable        int `json:"reliable"`
	New             int `json:"new"`
	NeedsProtection int `json:"needsProtection"`
}

// AnalyticsResponse сводка по мастеру
type AnalyticsResponse struct {
	MasterID          int64                   `json:"masterId"`
	TotalBookings     int                     `json:"totalBookings"`
	CompletedBookings int                     `json:"completedBookings"`
	NoShows           int                     `json:"noShows"`
	Cancelled         int                     `json:"cancelled"`
	ActiveBookings    int                     `json:"activeBookings"`
	NoShowRate        float64                 `json:"noShowRate"` // проценты, 1 знак
	ProtectedAmount   float64                 `json:"protectedAmount"`
	AverageDeposit    float64                 `json:"averageDeposit"`
	WalletBalance     float64                 `json:"walletBalance"`
	Clients           ReliabilityDistribution `json:"clients"`
}
