package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/srichai/gradebench/internal/config"
	"github.com/srichai/gradebench/internal/logger"
	"github.com/srichai/gradebench/internal/service"
	"golang.org/x/term"
)

// gen-token prints a teacher JWT for the seeded account. Useful for
// driving the API with curl or for the e2e test suite without going
// through the login endpoint.
func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	authService, err := service.NewAuthService(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize auth service")
	}

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Generate Teacher Token ===")

	// Email
	fmt.Print("Enter Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)
	if email == "" {
		fmt.Println("Error: Email is required")
		return
	}

	// Password
	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	password := string(bytePassword)
	fmt.Println() // Newline after password input

	token, err := authService.Login(email, password)
	if err != nil {
		fmt.Println("Error: Email or password is incorrect")
		os.Exit(1)
	}

	fmt.Println("\nToken:")
	fmt.Println(token)
}
