package usecase

import (
	"sort"

	"cashradar/internal/domain"

	"github.com/shopspring/decimal"
)

// DetectRiskDays returns, in chronological order, every day of the combined
// historical+forecast series whose balance is strictly below the threshold.
func DetectRiskDays(points []domain.DailyBalancePoint, threshold decimal.Decimal) []domain.RiskDay {
	risk := make([]domain.RiskDay, 0)
	for _, p := range points {
		balance := p.Balance()
		if balance.LessThan(threshold) {
			risk = append(risk, domain.RiskDay{
				Date:       p.Date,
				Balance:    balance,
				Forecasted: p.IsForecast(),
			})
		}
	}
	return risk
}

// RankBiggestDrops ranks days by net outflow. The per-day net flow is the
// difference between consecutive balance points; the first point's flow is
// measured against the opening balance. Only net-outflow days rank, ordered
// most negative first with ties broken by the earlier date.
func RankBiggestDrops(points []domain.DailyBalancePoint, opening decimal.Decimal, k int) []domain.DropDay {
	drops := make([]domain.DropDay, 0)
	prev := opening
	for _, p := range points {
		balance := p.Balance()
		flow := balance.Sub(prev)
		prev = balance
		if flow.IsNegative() {
			drops = append(drops, domain.DropDay{Date: p.Date, NetFlow: flow, Balance: balance})
		}
	}

	// points arrive chronological, so a stable sort on flow alone keeps
	// the earlier date first on ties.
	sort.SliceStable(drops, func(i, j int) bool {
		return drops[i].NetFlow.LessThan(drops[j].NetFlow)
	})
	if len(drops) > k {
		drops = drops[:k]
	}
	return drops
}
