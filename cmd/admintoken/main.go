// Command admintoken mints a bearer token for the /admin routes, signed with JWT_SECRET.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"zone37/config"
	"zone37/internal/adapters/auth"
	"zone37/internal/domain"
)

func main() {
	email := flag.String("email", "", "organizer email embedded in the token")
	subject := flag.String("sub", "", "user ID; a random UUID when empty")
	expiry := flag.Duration("expiry", 12*time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	if *subject == "" {
		*subject = uuid.NewString()
	}

	token, err := auth.NewJWTIssuer(cfg.JWTSecret).Issue(*subject, *email, []string{domain.RoleAdmin}, *expiry)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(token)
}
