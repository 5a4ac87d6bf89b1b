package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"alexis-backoffice/internal/server"
)

const defaultPort = "8000"

var counts int64

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	log.Println("Starting Alexis Autos API")

	ctx := context.Background()

	var repo server.Repository
	if os.Getenv("DATABASE_HOST") == "" {
		log.Println("DATABASE_HOST not set, running with in-memory storage")
		repo = server.NewMemoryRepository()
	} else {
		conn := connectToDB()
		if conn == nil {
			log.Panic("can't connect to Postgres")
		}
		pg := server.NewPostgresRepository(conn)
		if err := pg.Init(ctx); err != nil {
			log.Panic(err)
		}
		repo = pg
	}

	if err := server.Seed(ctx, repo); err != nil {
		log.Panic(err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: server.New(repo).Routes(),
	}

	log.Printf("Listening on port %s", port)
	if err := srv.ListenAndServe(); err != nil {
		log.Panic(err)
	}
}

func openDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, err
	}
	return db, nil
}

func connectToDB() *sqlx.DB {
	host := os.Getenv("DATABASE_HOST")
	port := os.Getenv("DATABASE_PORT")
	user := os.Getenv("DATABASE_USER")
	password := os.Getenv("DATABASE_PASSWORD")
	dbname := os.Getenv("DATABASE_NAME")
	sslmode := os.Getenv("DATABASE_SSLMODE")
	if port == "" {
		port = "5432"
	}
	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode,
	)

	for {
		connection, err := openDB(dsn)
		if err != nil {
			log.Println("Postgres not yet ready ...")
			counts++
		} else {
			log.Println("Connected to Postgres ...")
			return connection
		}

		if counts > 10 {
			log.Println(err)
			return nil
		}

		log.Println("backing off for 2 seconds")
		time.Sleep(2 * time.Second)
	}
}
