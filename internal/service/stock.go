package service

import (
	"context"

	"github.com/guttosm/stockfn/internal/domain/models"
	"github.com/guttosm/stockfn/internal/logger"
	"github.com/guttosm/stockfn/internal/storage"
)

// DefaultStock is the record created by Add. It does not depend on the
// code the caller asked about.
var DefaultStock = models.Stock{
	Category:    "Health Care Equipment & Services",
	Code:        "5168",
	CountryCode: "MY",
	DY:          30.57,
	Name:        "Hartalega Holdings Berhad",
	PE:          5.64,
	Price:       1.75,
	ROE:         20.83,
	Symbol:      "HARTA",
	Top:         true,
}

var updatedPrice = 9.10

// UpdatePatch is the fixed patch written by Update.
var UpdatePatch = models.StockPatch{Price: &updatedPrice}

// StockService defines the operations behind the stock endpoints.
// Every returned error is, or wraps, an *Error.
type StockService interface {
	Lookup(ctx context.Context, code string) (*models.StockDocument, error)
	Show(ctx context.Context, code string) (*models.Stock, error)
	Update(ctx context.Context, code string) (*models.Stock, error)
	Add(ctx context.Context, code string) (*models.Stock, error)
}

type stockService struct {
	repo storage.StockRepository
}

// NewStockService returns a StockService backed by repo.
func NewStockService(repo storage.StockRepository) StockService {
	return &stockService{repo: repo}
}

// Lookup returns the single document whose code equals code.
func (s *stockService) Lookup(ctx context.Context, code string) (*models.StockDocument, error) {
	docs, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		logger.L().Error().Err(err).Str("code", code).Msg("stock lookup failed")
		return nil, NewError(KindStore, err)
	}

	switch len(docs) {
	case 0:
		return nil, NewError(KindNotFound, nil)
	case 1:
		return &docs[0], nil
	default:
		logger.L().Warn().Str("code", code).Int("matches", len(docs)).Msg("duplicate stock code")
		return nil, NewError(KindAmbiguous, nil)
	}
}

// Show returns the data of the document matching code.
func (s *stockService) Show(ctx context.Context, code string) (*models.Stock, error) {
	doc, err := s.Lookup(ctx, code)
	if err != nil {
		return nil, err
	}
	return &doc.Stock, nil
}

// Update writes UpdatePatch to the document matching code and returns the
// document as stored after the write.
func (s *stockService) Update(ctx context.Context, code string) (*models.Stock, error) {
	doc, err := s.Lookup(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, doc.ID, UpdatePatch); err != nil {
		logger.L().Error().Err(err).Str("code", code).Str("id", doc.ID).Msg("stock update failed")
		return nil, NewError(KindStore, err)
	}

	updated, err := s.repo.Get(ctx, doc.ID)
	if err != nil {
		logger.L().Error().Err(err).Str("code", code).Str("id", doc.ID).Msg("stock re-read failed")
		return nil, NewError(KindStore, err)
	}
	return &updated.Stock, nil
}

// Add inserts DefaultStock when nothing matches code and returns the stored data.
//
// Only a NotFound lookup leads to an insert. The existence check and the insert
// are separate store calls, so concurrent calls can both insert.
func (s *stockService) Add(ctx context.Context, code string) (*models.Stock, error) {
	_, err := s.Lookup(ctx, code)
	if err == nil {
		return nil, NewError(KindExists, nil)
	}
	if KindOf(err) != KindNotFound {
		return nil, err
	}

	id, err := s.repo.Insert(ctx, DefaultStock)
	if err != nil {
		logger.L().Error().Err(err).Str("code", code).Msg("stock insert failed")
		return nil, NewError(KindStore, err)
	}

	created, err := s.repo.Get(ctx, id)
	if err != nil {
		logger.L().Error().Err(err).Str("code", code).Str("id", id).Msg("stock re-read failed")
		return nil, NewError(KindStore, err)
	}
	logger.L().Info().Str("code", code).Str("id", id).Msg("stock created")
	return &created.Stock, nil
}
