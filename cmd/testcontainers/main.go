// main.go
//
// Relational data backend for users, gemstones and reviews
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of gemstonesdb, derived from jam-build-propsdb.
// gemstonesdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// gemstonesdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with gemstonesdb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/localnerve/gemstonesdb/internal/testutil"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	var dbType string
	flag.StringVar(&dbType, "t", "postgres", "database type: postgres or mariadb")
	var image string
	flag.StringVar(&image, "i", "", "container image, defaults per database type")
	flag.Parse()

	usage := `
Run a gemstonesdb database in a testcontainer and print its DATABASE_URL.

Usage:

testcontainers [-h] [-f ENV_FILE_PATH] [-t postgres|mariadb] [-i IMAGE]

ENV_FILE_PATH: path to the .env file

example
  testcontainers -t mariadb -i mariadb:11
`
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		log.Printf("Loading environment variables from %s\n", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v\n", err)
		}
	} else {
		log.Printf("No environment file specified, using current environment variables\n")
	}

	ctx := context.Background()

	var (
		db  *testutil.Database
		err error
	)
	switch dbType {
	case "postgres":
		db, err = testutil.StartPostgres(ctx, image)
	case "mariadb", "mysql":
		db, err = testutil.StartMariaDB(ctx, image)
	default:
		log.Fatalf("Unknown database type %q\n", dbType)
	}
	if err != nil {
		log.Fatalf("Failed to create test container: %v\n", err)
	}

	fmt.Printf("DATABASE_URL=%s\n", db.URL)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	sig := <-sigs
	log.Printf("\nReceived signal: %v, terminating test container...\n", sig)
	if err := db.Terminate(ctx); err != nil {
		log.Printf("Failed to terminate container: %v\n", err)
	}
}
