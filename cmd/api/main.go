package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/application/usecase"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
	"github.com/jhoicas/kardex-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/kardex-api/internal/infrastructure/pdf"
	"github.com/jhoicas/kardex-api/internal/infrastructure/postgres"
	"github.com/jhoicas/kardex-api/internal/infrastructure/seed"
	httpRouter "github.com/jhoicas/kardex-api/internal/interfaces/http"
	"github.com/jhoicas/kardex-api/pkg/config"
	"github.com/jhoicas/kardex-api/pkg/logger"
	"github.com/jhoicas/kardex-api/pkg/numparse"
)

// storage repositorios y runner del backend elegido con APP_STORAGE.
type storage struct {
	materials    repository.MaterialRepository
	transactions repository.TransactionRepository
	products     repository.ProductRepository
	boms         repository.BOMRepository
	txRunner     inventory.TxRunner
	close        func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET requerido")
	}

	ctx := context.Background()
	st, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer st.close()

	format := numparse.NewFormatter(cfg.Kardex.Locale)
	ledgerUC := inventory.NewLedgerUseCase(st.txRunner, st.materials, st.transactions, format, log)
	kittingUC := inventory.NewKittingUseCase(ledgerUC, st.products, st.materials, st.boms, cfg.Kardex.KittingPrecision, log)
	kardexUC := inventory.NewKardexUseCase(st.materials, st.transactions, infrapdf.NewKardexPDFGenerator(format), log)
	materialUC := usecase.NewMaterialUseCase(st.materials)

	app := httpRouter.NewApp(cfg.App.Name, httpRouter.RouterDeps{
		MaterialUC: materialUC,
		LedgerUC:   ledgerUC,
		KittingUC:  kittingUC,
		KardexUC:   kardexUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.App.Storage == "memory" {
		store := memory.NewStore()
		if cfg.App.SeedFile != "" {
			if err := loadSeed(ctx, store, cfg.App.SeedFile); err != nil {
				return nil, err
			}
			log.Info().Str("file", cfg.App.SeedFile).Msg("catálogo inicial cargado")
		}
		return &storage{
			materials:    memory.NewMaterialRepository(store),
			transactions: memory.NewTransactionRepository(store),
			products:     memory.NewProductRepository(store),
			boms:         memory.NewBOMRepository(store),
			txRunner:     memory.NewTxRunner(store),
			close:        func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &storage{
		materials:    postgres.NewMaterialRepository(pool),
		transactions: postgres.NewTransactionRepository(pool),
		products:     postgres.NewProductRepository(pool),
		boms:         postgres.NewBOMRepository(pool),
		txRunner:     postgres.NewTxRunner(pool),
		close:        pool.Close,
	}, nil
}

func loadSeed(ctx context.Context, store *memory.Store, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	cat, err := seed.Decode(f)
	if err != nil {
		return err
	}
	data, err := cat.Build(time.Now())
	if err != nil {
		return err
	}
	return seed.LoadMemory(ctx, store, data)
}
