package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/asdine/storm/v3"
	"github.com/caarlos0/env/v6"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/CodedInternet/smartstepper/motor"
)

type EnvConfig struct {
	JWT_ISSUER string `env:"DEVICE_UUID" envDefault:"DEV"`
	PRODUCTION bool   `env:"PRODUCTION" envDefault:"0"`
	DEBUG      bool   `env:"DEBUG" envDefault:"0"`
	SRCDIR     string `env:"SRCDIR" envDefault:"."`
	HTMLDIR    string `env:"HTMLDIR" envDefault:"./frontend/dist/"`
	DB         *storm.DB
}

var (
	ENV *EnvConfig
)

func init() {
	// Load main config
	ENV = new(EnvConfig)
	env.Parse(ENV)

	// setup database
	// get db path, this depends on where we are deployed
	var dbFile string
	if ENV.PRODUCTION {
		dbFile = "/data/live.db"
	} else {
		dbFile, _ = filepath.Abs("./tmp/dev.db")
		dir := filepath.Dir(dbFile)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			os.Mkdir(dir, 0755)
		}
	}

	db, err := openDb(dbFile)
	if err != nil {
		panic(err)
	}
	ENV.DB = db
}

func main() {
	// process flags
	addr := flag.String("addr", "", "Override the ip:port to listen on")
	configPath := flag.String("config", "", "Path to the YAML config file")
	runShell := flag.Bool("shell", false, "Start the local development shell")
	flag.Parse()

	defer ENV.DB.Close() // close database when finished

	// Load the motor configuration, falling back to defaults when no
	// file is present
	filename := *configPath
	if filename == "" {
		var err error
		filename, err = filepath.Abs(ENV.SRCDIR + "/config.yaml")
		if err != nil {
			panic(err)
		}
	}
	config, err := motor.LoadConfig(filename)
	if err != nil {
		panic(fmt.Sprintf("Unable to load config: %v", err))
	}

	listen := config.Server.Addr()
	if *addr != "" {
		listen = *addr
	}

	//---
	// Build the motor core
	//---
	registry := motor.NewRegistry()
	ctrl := motor.NewController(registry)
	api := NewAPI(ctrl, config)

	r := chi.NewRouter()

	// A good base middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.RedirectSlashes)
	r.Use(middleware.Recoverer) // make sure this is last

	//---
	// Create a local shell
	//---
	if *runShell {
		shell := newShell(ctrl, config)
		// Start an instance of the shell so it can be controlled from the CLI
		go shell.Start()
	}

	//---
	// Build the API routes
	//---
	r.Route("/api", func(r chi.Router) {
		r.Use(AllowAll)

		// login
		r.Post("/login", Login)

		r.Group(func(r chi.Router) {
			if ENV.PRODUCTION && !ENV.DEBUG {
				// Seek, verify and validate JWT tokens
				r.Use(ValidateJWT)
			} else {
				fmt.Println("Running in debug mode. Authentication disabled.")
			}

			r.Get("/refresh_token", JWTRefresh)
			api.Routes(r)
		})
	})

	// Add websocket routes
	r.Route("/ws", func(r chi.Router) {
		if ENV.PRODUCTION && !ENV.DEBUG {
			// Enable JWT validation in production
			r.Use(ValidateJWT)
		}

		r.Get("/status", api.StatusStream)
	})

	// add static base routes
	FileServer(r, "/", http.Dir(ENV.HTMLDIR))

	fmt.Println("Listening on", listen)
	if err := http.ListenAndServe(listen, r); err != nil {
		log.Fatal(err)
	}
}

func openDb(dbFile string) (db *storm.DB, err error) {
	db, err = storm.Open(dbFile)
	if err != nil {
		return
	}

	// call inits for each type
	if err := db.Init(&User{}); err != nil {
		return nil, err
	}

	return
}

// FileServer conveniently sets up a http.FileServer handler to serve
// static files from a http.FileSystem.
func FileServer(r chi.Router, path string, root http.FileSystem) {
	if strings.ContainsAny(path, "{}*") {
		panic("FileServer does not permit URL parameters.")
	}

	fs := http.StripPrefix(path, http.FileServer(root))

	if path != "/" && path[len(path)-1] != '/' {
		r.Get(path, http.RedirectHandler(path+"/", 301).ServeHTTP)
		path += "/"
	}
	path += "*"

	r.Get(path, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fs.ServeHTTP(w, r)
	}))
}
