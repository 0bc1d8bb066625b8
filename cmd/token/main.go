// token emite un JWT firmado con JWT_SECRET para operar las rutas de escritura.
//
// Uso: go run ./cmd/token -sub ops@empresa.com -role admin
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/catalogo-api/pkg/config"
	"github.com/jhoicas/catalogo-api/pkg/jwt"
)

func main() {
	subject := flag.String("sub", "", "sujeto del token (usuario o servicio)")
	role := flag.String("role", jwt.RoleEditor, "rol: admin | editor")
	minutes := flag.Int("exp", 0, "minutos de validez (0 = JWT_EXPIRATION_MINUTES)")
	flag.Parse()

	if *subject == "" {
		fmt.Fprintln(os.Stderr, "Uso: token -sub <sujeto> [-role admin|editor] [-exp minutos]")
		os.Exit(1)
	}
	if *role != jwt.RoleAdmin && *role != jwt.RoleEditor {
		fmt.Fprintf(os.Stderr, "Rol desconocido %q\n", *role)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if !cfg.JWT.Enabled() {
		fmt.Fprintln(os.Stderr, "JWT_SECRET no configurado")
		os.Exit(1)
	}

	exp := cfg.JWT.Expiration
	if *minutes > 0 {
		exp = *minutes
	}
	tok, err := jwt.Generate(cfg.JWT.Secret, *subject, *role, cfg.JWT.Issuer, exp)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
