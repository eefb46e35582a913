package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CandiaAntonio/secular-hub/internal/aggregate"
	"github.com/CandiaAntonio/secular-hub/internal/compare"
	"github.com/CandiaAntonio/secular-hub/internal/sentiment"
	"github.com/CandiaAntonio/secular-hub/internal/server"
	"github.com/CandiaAntonio/secular-hub/internal/storage"
	"github.com/CandiaAntonio/secular-hub/internal/textstats"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	dbPath := flag.String("db", "outlooks.db", "Path to the outlook corpus database")
	logPath := flag.String("log", "secular-hub.log", "Path to the log file")
	maxWords := flag.Int("max-words", textstats.DefaultMaxWords, "Word cloud payload cap")
	sentimentModel := flag.String("sentiment-model", "gpt-5-mini", "Model used for sentiment classification")
	semanticPath := flag.String("semantic", "", "Optional path to a JSON term projection file for word rain")
	flag.Parse()

	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logFile.Close()

	multiWriter := io.MultiWriter(os.Stdout, logFile)
	log.SetOutput(multiWriter)

	log.Printf("Starting secular-hub...")
	log.Printf("Database: %s", *dbPath)

	db, err := storage.NewOutlookDB(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Printf("Warning: OPENAI_API_KEY not set, sentiment queries will return neutral fallbacks")
	}
	classifier := sentiment.NewOpenAIClassifier(apiKey, *sentimentModel)
	analyzer := sentiment.NewAnalyzer(classifier, nil)

	var semantic textstats.SemanticProvider
	if *semanticPath != "" {
		provider, err := loadSemanticProjection(*semanticPath)
		if err != nil {
			log.Fatalf("Failed to load semantic projection: %v", err)
		}
		log.Printf("Loaded semantic projection with %d terms", len(provider))
		semantic = provider
	}

	srv := server.New(
		aggregate.NewEngine(db),
		compare.NewComparator(db),
		textstats.NewWordStats(db, *maxWords),
		analyzer,
		semantic,
	)

	httpServer := &http.Server{
		Addr:    *addr,
		Handler: srv.Routes(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		log.Println("Shutting down gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("Listening on %s", *addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server stopped")
}

// loadSemanticProjection reads a term → coordinate table produced by the
// offline embedding projection.
func loadSemanticProjection(path string) (textstats.StaticProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	provider := make(textstats.StaticProvider)
	if err := json.Unmarshal(data, &provider); err != nil {
		return nil, err
	}
	return provider, nil
}
