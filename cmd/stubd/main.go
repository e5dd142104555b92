package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/armazemdigital/vendas-core.git/internal/config"
	"github.com/armazemdigital/vendas-core.git/internal/sale"
	"github.com/armazemdigital/vendas-core.git/internal/stubapi"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	store := stubapi.NewStore()
	store.Seed(
		[]sale.Customer{
			{ID: "c1", Name: "Maria Souza", CPF: "111.222.333-44"},
			{ID: "c2", Name: "João Lima", CPF: "555.666.777-88"},
		},
		[]stubapi.StockedProduct{
			{Product: sale.Product{ID: "p1", Name: "Camiseta", Price: decimal.NewFromFloat(49.90)}, Stock: 25},
			{Product: sale.Product{ID: "p2", Name: "Caneca", Price: decimal.NewFromFloat(19.50)}, Stock: 40},
			{Product: sale.Product{ID: "p3", Name: "Boné", Price: decimal.NewFromFloat(34.00)}, Stock: 10},
		},
	)

	srv := &http.Server{
		Addr:    cfg.StubAddr,
		Handler: (&stubapi.Server{Store: store, Token: cfg.AuthToken}).Router(),
	}

	go func() {
		log.Printf("stub backend listening at %s", cfg.StubAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}
