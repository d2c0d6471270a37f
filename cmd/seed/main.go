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
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/localnerve/gemstonesdb/internal/config"
	"github.com/localnerve/gemstonesdb/internal/database"
	"github.com/localnerve/gemstonesdb/internal/logger"
	"github.com/localnerve/gemstonesdb/internal/seed"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer appLog.Sync()

	db, err := database.Connect(cfg, appLog)
	if err != nil {
		appLog.Fatal("Failed to connect to database", "error", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		appLog.Fatal("Failed to run migrations", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []seed.Option{seed.WithLogger(appLog)}
	if value, ok := config.GetEnvAsInt64("SEED"); ok {
		opts = append(opts, seed.WithSeed(value))
	}

	result, err := seed.ResetAndSeed(ctx, db, opts...)
	if err != nil {
		appLog.Fatal("Seeding failed", "error", err)
	}

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		appLog.Fatal("Failed to marshal seed result", "error", err)
	}
	fmt.Println(string(output))
}
