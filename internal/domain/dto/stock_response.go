package dto

import "github.com/guttosm/stockfn/internal/domain/models"

// StockResponse is the success body of /showStock, /updateStock and /addStock.
type StockResponse struct {
	Doc models.Stock `json:"doc"`
}

// StockFailureResponse is the failure body of the stock endpoints.
// It is always sent with HTTP 200; the failure is carried by the body shape only.
type StockFailureResponse struct {
	Error string `json:"error" example:"No record found!"`
}
