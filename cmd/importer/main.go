// Importador de línea de comandos: procesa un export de la tienda sin pasar
// por el servidor HTTP. Útil para cargas iniciales y para validar archivos con
// -dry-run antes de tocar la base.
//
// Uso:
//
//	importer products   -file export.xlsx [-dry-run]
//	importer sales      -file ventas.xlsx [-dry-run] [-create-missing]
//	importer categories -file categorias.xlsx
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/catalogo-api/internal/application/importer"
	"github.com/jhoicas/catalogo-api/internal/domain/catalog"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/excel"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/postgres"
	"github.com/jhoicas/catalogo-api/pkg/config"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]

	fs := flag.NewFlagSet(sub, flag.ExitOnError)
	file := fs.String("file", "", "ruta del archivo a importar (.xlsx/.xls/.csv)")
	dryRun := fs.Bool("dry-run", false, "simular sin escribir en la base")
	createMissing := fs.Bool("create-missing", false, "crear productos mínimos para SKUs desconocidos (solo ventas)")
	_ = fs.Parse(os.Args[2:])

	if *file == "" {
		fmt.Fprintln(os.Stderr, "se requiere -file")
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	rules := catalog.Default()
	rules.BrandNoise = append(rules.BrandNoise, cfg.Import.BrandNoiseTokens()...)
	reader := excel.NewReader()

	var rep *importer.Report
	switch sub {
	case "products":
		uc := importer.NewProductImportUseCase(productRepo, categoryRepo, reader, rules, log)
		rep, err = uc.Import(ctx, *file, *dryRun)
	case "sales":
		uc := importer.NewSalesImportUseCase(productRepo, txRunner, reader, rules, log)
		rep, err = uc.Import(ctx, *file, *dryRun, *createMissing)
	case "categories":
		uc := importer.NewCategoryImportUseCase(categoryRepo, reader, log)
		rep, err = uc.Import(ctx, *file)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("importación fallida")
	}

	fmt.Println(rep.Summary())
	if *dryRun {
		fmt.Println("(dry-run: no se escribió nada en la base)")
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `uso: importer <products|sales|categories> -file <ruta> [-dry-run] [-create-missing]`)
}
