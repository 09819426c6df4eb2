package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/mahbubzaman/gobazaar/app/cmd"
	"github.com/mahbubzaman/gobazaar/app/configs"
	"github.com/mahbubzaman/gobazaar/app/routes"
)

func main() {
	env := configs.LoadEnv()

	if len(os.Args) > 1 {
		cmd.RunCli()
		return
	}

	keys, err := configs.LoadSessionKeysFromEnv()
	if err != nil {
		log.Fatalf("session keys: %v (run `gobazaar generate-keys` to create a pair)", err)
	}

	db, err := configs.OpenConnection()
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	log.Println("database connected")

	router := routes.NewRouter(db, env, keys)

	addr := env.Port
	if addr == "" {
		addr = ":8080"
	}

	server := http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("server starting on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatal("server stopped:", err)
	}
}
