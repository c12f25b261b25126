package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/rotaworks/rota-api-go/pkg/database"
	"github.com/rotaworks/rota-api-go/pkg/models"
)

// Seeds the snapshot database from a dataset JSON file so the server can
// run with DATA_SOURCE=db.
func main() {
	_ = godotenv.Load("../.env")

	if len(os.Args) < 2 {
		fmt.Println("Usage: go run main.go <dataset.json>")
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Printf("Error: could not read %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}

	var payload models.DataPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		fmt.Printf("Error: could not parse dataset: %v\n", err)
		os.Exit(1)
	}

	db, err := database.Open()
	if err != nil {
		fmt.Printf("Error: could not open database: %v\n", err)
		os.Exit(1)
	}

	if err := database.SavePayload(db, payload); err != nil {
		fmt.Printf("Error: could not save snapshot: %v\n", err)
		os.Exit(1)
	}

	shifts := 0
	for _, r := range payload.Rosters {
		shifts += len(r.Shifts)
	}
	fmt.Printf("Seeded %d teams, %d members, %d shifts\n",
		len(payload.Teams), len(payload.Members), shifts)
}
