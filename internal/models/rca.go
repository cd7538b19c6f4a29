package models

// RCACard summarizes root-cause analysis for one vehicle subsystem.
type RCACard struct {
	Title      string   `json:"title"`
	Percent    int      `json:"percent"`
	Total      int      `json:"total"`
	Trend      string   `json:"trend"`
	BadgeClass string   `json:"badge_class"`
	Common     []string `json:"common"`
}

// CAPAReport is a corrective/preventive action item tracked against a team.
type CAPAReport struct {
	Title       string `json:"title"`
	Team        string `json:"team"`
	Status      string `json:"status"`
	StatusClass string `json:"status_class"`
	Priority    string `json:"priority"`
	Due         string `json:"due"`
}

// ChartDataset is one line of the failure-trend chart.
type ChartDataset struct {
	Label           string `json:"label"`
	Data            []int  `json:"data"`
	BorderColor     string `json:"borderColor"`
	BackgroundColor string `json:"backgroundColor"`
	Fill            bool   `json:"fill"`
}

// TrendChart is the six-month failure-trend chart payload.
type TrendChart struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

// RCAReport bundles everything the RCA insights view needs.
type RCAReport struct {
	Cards       []RCACard    `json:"cards"`
	CAPAReports []CAPAReport `json:"capa_reports"`
	Chart       TrendChart   `json:"chart"`
}
