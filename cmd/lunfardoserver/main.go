/*
Lunfardoserver runs the Lunfardo script execution service: an HTTP API for
registering users, logging in, and storing and running Lunfardo scripts on
the server's behalf.

Usage:

	lunfardoserver [flags]

The flags are:

	-l, --listen ADDRESS
		The address to listen for connections on. Defaults to ":8080".

	-s, --secret SECRET
		The secret used to sign JWT auth tokens. Must be between 32 and 64
		bytes. If not given, LUNFARDO_TOKEN_SECRET is checked, and if that
		is also unset, a well-known default is used (fine for local
		testing, unsafe for anything else).

	--db ENGINE[:PARAMS]
		The database engine to use for persistence, either "inmem" or
		"sqlite:PATH". Defaults to LUNFARDO_DATABASE, or "inmem" if that is
		also unset.

	-v, --version
		Print the server version and exit.

On first run with a fresh persistence store there are no users, so an
initial admin account is created automatically from LUNFARDO_ADMIN_USER and
LUNFARDO_ADMIN_PASSWORD if both are set and no such user already exists.
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/lunfardo-lang/lunfardo/server"
	"github.com/lunfardo-lang/lunfardo/server/api"
	"github.com/lunfardo-lang/lunfardo/server/dao"
)

var (
	showVersion = pflag.BoolP("version", "v", false, "Print version and exit")
	listenAddr  = pflag.StringP("listen", "l", "", "Address to listen on, e.g. ':8080'")
	secretFlag  = pflag.StringP("secret", "s", "", "Secret used to sign JWT auth tokens")
	dbConnFlag  = pflag.String("db", "", "Database engine to use, 'inmem' or 'sqlite:PATH'")
)

func main() {
	pflag.Parse()

	if *showVersion {
		fmt.Printf("lunfardoserver %s (API %s)\n", api.LunfardoVersion, api.ServerVersion)
		os.Exit(0)
	}

	addr := *listenAddr
	if addr == "" {
		addr = os.Getenv("LUNFARDO_LISTEN_ADDRESS")
	}
	if addr == "" {
		addr = ":8080"
	}

	secret := *secretFlag
	if secret == "" {
		secret = os.Getenv("LUNFARDO_TOKEN_SECRET")
	}
	var secretBytes []byte
	if secret != "" {
		secretBytes = []byte(secret)
	}

	dbConnStr := *dbConnFlag
	if dbConnStr == "" {
		dbConnStr = os.Getenv("LUNFARDO_DATABASE")
	}
	if dbConnStr == "" {
		dbConnStr = "inmem"
	}

	dbConf, err := server.ParseDBConnString(dbConnStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lunfardoserver: %v\n", err)
		os.Exit(1)
	}

	cfg := server.Config{
		TokenSecret: secretBytes,
		DB:          dbConf,
	}

	srv, err := server.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lunfardoserver: %v\n", err)
		os.Exit(1)
	}
	defer srv.Close()

	adminUser := os.Getenv("LUNFARDO_ADMIN_USER")
	adminPass := os.Getenv("LUNFARDO_ADMIN_PASSWORD")
	if adminUser != "" && adminPass != "" {
		if err := srv.CreateUser(adminUser, adminPass, "", dao.Admin); err != nil {
			fmt.Fprintf(os.Stderr, "lunfardoserver: create initial admin: %v\n", err)
		}
	}

	fmt.Printf("lunfardoserver listening on %s\n", addr)
	if err := srv.ServeForever(addr); err != nil {
		fmt.Fprintf(os.Stderr, "lunfardoserver: %v\n", err)
		os.Exit(1)
	}
}
