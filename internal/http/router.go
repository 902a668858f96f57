package http

import (
	"weighbridge-backend/internal/handlers"
	"weighbridge-backend/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	accessHandler *handlers.AccessHandler,
	customerHandler *handlers.CustomerHandler,
	entryHandler *handlers.EntryHandler,
	transactionHandler *handlers.TransactionHandler,
	reportHandler *handlers.ReportHandler,
	backupHandler *handlers.BackupHandler,
	paymentHandler *handlers.PaymentHandler,
	healthHandler *handlers.HealthHandler,
	gate *middleware.GateMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public routes: the PIN gate itself, liveness and scrape endpoints.
	r.HandleFunc("/api/verify-pin", accessHandler.VerifyPIN).Methods("POST")
	r.HandleFunc("/api/health", healthHandler.Check).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Customer directory
	customersAPI := r.PathPrefix("/api/customers").Subrouter()
	customersAPI.Use(gate.Authenticate)
	customersAPI.HandleFunc("", customerHandler.ListCustomers).Methods("GET")
	customersAPI.HandleFunc("", customerHandler.UpsertCustomer).Methods("POST")
	customersAPI.HandleFunc("/find", customerHandler.FindByTruckNumber).Methods("GET")
	customersAPI.HandleFunc("/{id}", customerHandler.UpdateCustomer).Methods("PUT")
	customersAPI.HandleFunc("/{id}/payment-link", paymentHandler.CreatePaymentLink).Methods("POST")

	// Gate-in entries
	entriesAPI := r.PathPrefix("/api/entries").Subrouter()
	entriesAPI.Use(gate.Authenticate)
	entriesAPI.HandleFunc("", entryHandler.ListEntries).Methods("GET")
	entriesAPI.HandleFunc("", entryHandler.CreateEntry).Methods("POST")
	entriesAPI.HandleFunc("/pending", entryHandler.ListPendingEntries).Methods("GET")
	entriesAPI.HandleFunc("/find", entryHandler.FindPendingByTruckNumber).Methods("GET")
	entriesAPI.HandleFunc("/next-number", entryHandler.NextEntryNumber).Methods("GET")
	entriesAPI.HandleFunc("/{id}", entryHandler.DeleteEntry).Methods("DELETE")

	// Settled transactions
	transactionsAPI := r.PathPrefix("/api/transactions").Subrouter()
	transactionsAPI.Use(gate.Authenticate)
	transactionsAPI.HandleFunc("", transactionHandler.ListTransactions).Methods("GET")
	transactionsAPI.HandleFunc("", transactionHandler.Settle).Methods("POST")
	transactionsAPI.HandleFunc("/{id}", transactionHandler.GetTransaction).Methods("GET")
	transactionsAPI.HandleFunc("/{id}", transactionHandler.UpdateTransaction).Methods("PUT")
	transactionsAPI.HandleFunc("/{id}", transactionHandler.DeleteTransaction).Methods("DELETE")
	transactionsAPI.HandleFunc("/{id}/receipt", transactionHandler.Receipt).Methods("GET")

	// Reports & maintenance
	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.Use(gate.Authenticate)
	reportsAPI.HandleFunc("/transactions.csv", reportHandler.ExportTransactionsCSV).Methods("GET")

	backupAPI := r.PathPrefix("/api/backup").Subrouter()
	backupAPI.Use(gate.Authenticate)
	backupAPI.HandleFunc("/run", backupHandler.Run).Methods("POST")

	return r
}
