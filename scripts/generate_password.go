package main

import (
	"fmt"
	"log"
	"os"

	"github.com/your-org/manufacturing-backend/internal/pkg/auth"
)

// Generates a bcrypt hash for seeding operator accounts by hand.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run scripts/generate_password.go <password>")
	}

	password := os.Args[1]

	hash, err := auth.HashPassword(password, 12)
	if err != nil {
		log.Fatal("Error generating hash:", err)
	}

	fmt.Printf("Password: %s\n", password)
	fmt.Printf("Hash: %s\n", hash)

	if !auth.CheckPassword(password, hash) {
		log.Fatal("Hash verification failed")
	}

	fmt.Println("✅ Hash verified successfully!")
}
