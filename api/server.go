package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/provlabs/bilateral-escrow/api/handlers"
)

type Server struct {
	ch         handlers.ContractHandler
	listenAddr string
	logger     *zap.Logger
}

func NewServer(ch handlers.ContractHandler, address string, logger *zap.Logger) Server {
	return Server{
		ch:         ch,
		listenAddr: address,
		logger:     logger.With(zap.String("module", "api")),
	}
}

func (s Server) Start() error {
	router := mux.NewRouter()

	// Query routes
	router.HandleFunc("/contract/info", s.ch.GetContractInfo).Methods("GET")
	router.HandleFunc("/asks/{id}", s.ch.GetAsk).Methods("GET")
	router.HandleFunc("/bids/{id}", s.ch.GetBid).Methods("GET")

	// Execute route: body carries the sender, attached funds, and a single
	// execute message variant.
	router.HandleFunc("/execute", s.ch.Execute).Methods("POST")

	s.logger.Info("serving contract api", zap.String("address", s.listenAddr))
	return http.ListenAndServe(s.listenAddr, router)
}
