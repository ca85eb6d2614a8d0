package service

import (
	"errors"
	"math"

	"oaks-mart-backend/internal/model"
	"oaks-mart-backend/internal/repository"

	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("product not found")

// safetyTargetDays is the stock horizon the reorder suggestion aims to cover.
const safetyTargetDays = 14

type SuggestMetrics struct {
	TotalSoldInHistory int      `json:"total_sold_in_history"`
	AvgDailyEstimate   float64  `json:"avg_daily_estimate"`
	DaysOfCover        *float64 `json:"days_of_cover"` // nil when nothing ever sold
}

type SuggestAdvice struct {
	SuggestedReorderQty int     `json:"suggested_reorder_qty"`
	SafetyTargetDays    int     `json:"safety_target_days"`
	MarginKes           float64 `json:"margin_kes"`
	MarginPct           float64 `json:"margin_pct"`
}

type ResearchNote struct {
	Type string `json:"type"`
	Note string `json:"note"`
}

type SuggestResponse struct {
	Product     model.Product  `json:"product"`
	Metrics     SuggestMetrics `json:"metrics"`
	Suggestions SuggestAdvice  `json:"suggestions"`
	Research    []ResearchNote `json:"research"`
}

// SuggestService computes the reorder heuristic: total historical sales
// divided by the lookback window gives a daily rate, projected over the
// safety horizon. It reads the ledger but mutates nothing.
type SuggestService interface {
	Suggest(barcode string, lookbackDays int) (*SuggestResponse, error)
}

type suggestService struct {
	productRepo     repository.ProductRepository
	transactionRepo repository.TransactionRepository
}

func NewSuggestService(pRepo repository.ProductRepository, tRepo repository.TransactionRepository) SuggestService {
	return &suggestService{
		productRepo:     pRepo,
		transactionRepo: tRepo,
	}
}

func (s *suggestService) Suggest(barcode string, lookbackDays int) (*SuggestResponse, error) {
	product, err := s.productRepo.FindByBarcode(barcode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	// Sold quantity is summed across all history, not the window; the
	// lookback only scales the daily-rate estimate.
	totalSold, err := s.transactionRepo.TotalSoldByBarcode(barcode)
	if err != nil {
		return nil, err
	}

	if lookbackDays < 1 {
		lookbackDays = 1
	}
	avgDaily := float64(totalSold) / float64(lookbackDays)

	var daysOfCover *float64
	suggestedReorder := 0
	if avgDaily > 0 {
		cover := math.Round(float64(product.Qty)/avgDaily*10) / 10
		daysOfCover = &cover

		target := int(avgDaily * safetyTargetDays)
		if target < 5 {
			target = 5
		}
		if target > product.Qty {
			suggestedReorder = target - product.Qty
		}
	}

	margin := product.Price - product.Cost
	marginPct := 0.0
	if product.Price != 0 {
		marginPct = margin / product.Price * 100
	}

	return &SuggestResponse{
		Product: *product,
		Metrics: SuggestMetrics{
			TotalSoldInHistory: totalSold,
			AvgDailyEstimate:   avgDaily,
			DaysOfCover:        daysOfCover,
		},
		Suggestions: SuggestAdvice{
			SuggestedReorderQty: suggestedReorder,
			SafetyTargetDays:    safetyTargetDays,
			MarginKes:           margin,
			MarginPct:           marginPct,
		},
		Research: []ResearchNote{
			{Type: "placeholder", Note: "Competitor pricing research / supplier ETA not implemented."},
		},
	}, nil
}
