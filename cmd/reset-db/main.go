// reset-db borra todas las citas y reinicia los IDs. Solo para entornos que no son producción.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/lizet96/citas-backend/config"
	"github.com/lizet96/citas-backend/database"
)

func main() {
	confirmar := flag.Bool("confirmar", false, "confirma que se borrarán todas las citas")
	forzar := flag.Bool("forzar", false, "permite ejecutar con ENVIRONMENT=production")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Error de configuración: %v", err)
	}
	if cfg.IsProduction() && !*forzar {
		log.Fatal("❌ ENVIRONMENT=production: usa -forzar si de verdad quieres borrar las citas")
	}
	if !*confirmar {
		log.Fatal("❌ Esta operación es irreversible, vuelve a ejecutar con -confirmar")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := database.ConnectDB(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Error conectando a la base de datos: %v", err)
	}

	log.Println("🗑️  Borrando todas las citas y reiniciando IDs...")
	err = database.TruncarCitas(ctx, pool)
	database.CloseDB(pool)
	if err != nil {
		log.Printf("❌ Error borrando datos: %v", err)
		os.Exit(1)
	}
	log.Println("✅ Base de datos limpiada exitosamente.")
}
