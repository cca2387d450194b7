package transport

import (
	"math"

	"hireflow_backend/internal/analytics/service"
)

type FunnelStage struct {
	Stage string `json:"stage"`
	Count int    `json:"count"`
}

type TimeToHireResponse struct {
	HiredCount  int     `json:"hiredCount"`
	AverageDays float64 `json:"averageDays"`
	MedianDays  float64 `json:"medianDays"`
}

type OfferOutcomesResponse struct {
	Sent           int     `json:"sent"`
	Accepted       int     `json:"accepted"`
	Declined       int     `json:"declined"`
	Rejected       int     `json:"rejected"`
	Expired        int     `json:"expired"`
	Withdrawn      int     `json:"withdrawn"`
	Pending        int     `json:"pending"`
	AcceptanceRate float64 `json:"acceptanceRate"`
}

type OverviewResponse struct {
	Funnel     []FunnelStage         `json:"funnel"`
	TimeToHire TimeToHireResponse    `json:"timeToHire"`
	Offers     OfferOutcomesResponse `json:"offers"`
}

func ToOverviewResponse(o service.Overview) OverviewResponse {
	funnel := make([]FunnelStage, 0, len(o.Funnel))
	for _, stage := range o.Funnel {
		funnel = append(funnel, FunnelStage{Stage: string(stage.Stage), Count: stage.Count})
	}
	return OverviewResponse{
		Funnel: funnel,
		TimeToHire: TimeToHireResponse{
			HiredCount:  o.TimeToHire.HiredCount,
			AverageDays: round2(o.TimeToHire.AverageDays),
			MedianDays:  round2(o.TimeToHire.MedianDays),
		},
		Offers: OfferOutcomesResponse{
			Sent:           o.Offers.Sent,
			Accepted:       o.Offers.Accepted,
			Declined:       o.Offers.Declined,
			Rejected:       o.Offers.Rejected,
			Expired:        o.Offers.Expired,
			Withdrawn:      o.Offers.Withdrawn,
			Pending:        o.Offers.Pending,
			AcceptanceRate: round2(o.OfferAcceptRate),
		},
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
