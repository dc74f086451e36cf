package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/cricklet/magician/internal/attacks"
	. "github.com/cricklet/magician/internal/helpers"
	"github.com/cricklet/magician/internal/server"
	"github.com/gorilla/mux"
)

// newRouter publishes the process-wide attack service and routes to it.
func newRouter(dir string) (*mux.Router, Error) {
	err := attacks.Init(dir, attacks.WithLogger(&DefaultLogger))
	if !IsNil(err) {
		return nil, err
	}
	return server.NewRouter(attacks.Default()), NilError
}

func main() {
	port := 8002
	dir := ""

	args := os.Args[1:]
	for _, arg := range args {
		if parsed, err := strconv.ParseInt(arg, 10, 64); err == nil {
			port = int(parsed)
		} else if strings.HasPrefix(arg, "dir=") {
			dir = strings.TrimPrefix(arg, "dir=")
		}
	}

	router, err := newRouter(dir)
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log.Println("serving at", port)

	err = Wrap(http.ListenAndServe(fmt.Sprintf(":%v", port), router))
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
