package main

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/pdag/league-page/config"
	"github.com/pdag/league-page/controller"
	"github.com/pdag/league-page/db"
	"github.com/pdag/league-page/league"
	"github.com/pdag/league-page/sleeper"
	"github.com/pdag/league-page/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	clock := clock.New()

	// The store connects on first use so that the public pages keep working
	// without a database.
	dbs := db.NewLazy(cfg.PostgresConnString, clock)
	if !cfg.DatabaseConfigured() {
		log.Printf("POSTGRES_CONN_STR is not set, manager verification is disabled")
	}

	sleeperClient, err := sleeper.NewWithURL(cfg.SleeperURL)
	if err != nil {
		log.Fatalf("error creating sleeper client: %v", err)
	}

	static, err := league.Load(cfg.StaticManagersFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Fatalf("error loading static league data: %v", err)
		}
		log.Printf("static league data not found, serving database profiles only: %v", err)
	}

	leagueID := cfg.SleeperLeagueID
	if leagueID == "" {
		leagueID = static.LeagueID
	}
	if leagueID == "" {
		log.Printf("no sleeper league id configured, verification will be rejected")
	}
	roster := league.NewSleeperRoster(sleeperClient, leagueID)

	ctrl, err := controller.New(clock, dbs, sleeperClient, roster, static, nil, controller.Options{
		VerificationTTL: cfg.VerificationTTL,
		SessionTTL:      cfg.SessionTTL,
	})
	if err != nil {
		log.Fatalf("error creating a new controller: %v", err)
	}

	server, err := web.NewServer(cfg.Port, cfg.RequestTimeout, ctrl)
	if err != nil {
		log.Fatalf("error creating new web server: %v", err)
	}

	shutdown := make(chan bool)
	wg := &sync.WaitGroup{}

	// Setup a handler to catch ctrl-c signals and properly shutdown everything.
	intChannel := make(chan os.Signal, 2)
	signal.Notify(intChannel, os.Interrupt)
	go func() {
		<-intChannel
		close(shutdown)

		if err := waitTimeout(wg, 10*time.Second); err != nil {
			log.Printf("timed out waiting for proper shutdown")
			os.Exit(255)
		}
	}()

	// Start the web server
	wg.Add(1)
	go server.ListenAndServe(shutdown, wg)

	// Wait for everything to stop.
	wg.Wait()
	log.Printf("server shutdown")
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration) error {
	c := make(chan any)
	go func() {
		defer close(c)
		wg.Wait()
	}()

	select {
	case <-c:
		return nil // completed normally
	case <-time.After(timeout):
		return errors.New("timed out waiting")
	}
}
