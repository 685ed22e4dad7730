package main

import (
	"log"

	"github.com/boypt/simple-explorer/server"
	"github.com/jpillora/opts"
)

var VERSION = "0.0.0-src" //set with ldflags

func main() {
	s := server.Server{
		Port:       3000,
		ConfigPath: "tree-explorer.yaml",
	}

	opts.New(&s).
		Version(VERSION).
		Repo("github.com/boypt/simple-explorer").
		Parse()

	log.Printf("############# tree-explorer ver[%s] #############\n", VERSION)
	if err := s.Run(VERSION); err != nil {
		log.Fatal(err)
	}
}
