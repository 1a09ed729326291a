package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"

	_ "modernc.org/sqlite"
)

const devConfig = `{
	port: 8000,
	telemetry: {},
	auth: {
		database: { file: "dev/.state/auth.db" },
		signing_key: "dev-signing-key-do-not-deploy",
		token_ttl_minutes: 60,
	},
	vitidata: {
		database: { file: "dev/.state/vitidata.db" },
		portal: {
			base_url: "http://vitibrasil.cnpuv.embrapa.br/index.php",
			timeout_seconds: 30,
		},
		refresh: { enable: false },
	},
}
`

func createEmptyServiceDB(path, schemaFile string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()
	schema, err := os.ReadFile(schemaFile)
	if err != nil {
		return err
	}
	_, err = db.Exec(string(schema))
	return err
}

func create(recreate bool) error {
	_, err := os.Stat("go.mod")
	if os.IsNotExist(err) {
		return fmt.Errorf("the dev environment must be created in the repository root (the same directory as the 'go.mod' file)")
	}

	if recreate {
		err = os.RemoveAll("dev/.state")
		if err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	err = os.MkdirAll("dev/.state", 0777)
	if err != nil && !os.IsExist(err) {
		return err
	}

	err = createEmptyServiceDB("dev/.state/auth.db", "services/auth/db/schema.sql")
	if err != nil {
		return err
	}
	err = createEmptyServiceDB("dev/.state/vitidata.db", "services/vitidata/db/schema.sql")
	if err != nil {
		return err
	}

	_, err = os.Stat("config.json5")
	if os.IsNotExist(err) {
		err = os.WriteFile("config.json5", []byte(devConfig), 0666)
		if err != nil {
			return err
		}
		slog.Info("wrote config.json5")
	} else {
		slog.Info("config.json5 already exists, leaving it alone")
	}

	return nil
}

func main() {
	recreate := flag.Bool("recreate", false, "recreate the dev environment from scratch")
	flag.Parse()

	err := create(*recreate)
	if err != nil {
		slog.Error("failed to create dev environment", "err", err.Error())
		os.Exit(1)
	}

	slog.Info("dev environment created successfully!")
}
