package service

import (
	"context"

	"toolshare-backend/internal/logger"
	"toolshare-backend/internal/repository"
)

type dashboardService struct {
	paymentRepo repository.PaymentRepository
	toolRepo    repository.ToolRepository
}

func NewDashboardService(paymentRepo repository.PaymentRepository, toolRepo repository.ToolRepository) DashboardService {
	return &dashboardService{paymentRepo: paymentRepo, toolRepo: toolRepo}
}

// GetEarnings walks every settled payment and totals the lines that sell
// this owner's tools. Earnings are attributed to the tool owner at the
// time of payment via the stored line snapshot, so later ownership or
// price changes never rewrite history.
func (s *dashboardService) GetEarnings(ctx context.Context, userID int32) (*EarningsReport, error) {
	logger.EnterMethod("DashboardService.GetEarnings", "user_id", userID)

	tools, _, err := s.toolRepo.ListByOwner(ctx, userID, 1, 1000)
	if err != nil {
		return nil, err
	}
	names := make(map[int32]string, len(tools))
	for _, t := range tools {
		names[t.ID] = t.Name
	}

	payments, err := s.paymentRepo.ListPaid(ctx)
	if err != nil {
		return nil, err
	}

	report := &EarningsReport{Tools: []ToolEarnings{}}
	perTool := make(map[int32]*ToolEarnings)
	counted := make(map[int32]bool)

	for _, p := range payments {
		for _, item := range p.Items {
			if item.OwnerID != userID {
				continue
			}
			report.TotalCents += item.LineTotalCents
			if !counted[p.ID] {
				counted[p.ID] = true
				report.PaymentCount++
			}
			e := perTool[item.ToolID]
			if e == nil {
				name := names[item.ToolID]
				if name == "" {
					name = item.ToolName
				}
				e = &ToolEarnings{ToolID: item.ToolID, ToolName: name}
				perTool[item.ToolID] = e
			}
			e.RentalCount += item.Quantity
			e.EarningsCents += item.LineTotalCents
		}
	}

	for _, e := range perTool {
		report.Tools = append(report.Tools, *e)
	}

	logger.ExitMethod("DashboardService.GetEarnings", "total_cents", report.TotalCents)
	return report, nil
}
