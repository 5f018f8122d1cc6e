// import_products carga el catálogo de productos desde un CSV exportado de Excel
// (Windows-1252, separado por ';').
//
// Uso: go run ./cmd/import_products [ruta/productos.csv]
// Columnas: codigo;nombre;precio_compra;precio_venta;stock;stock_minimo;categoria
// El stock de cada producto queda registrado como Entrada "Inventario inicial" en el kardex.
// Los códigos que ya existen se omiten.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/sauna-pos/internal/application/dto"
	"github.com/jhoicas/sauna-pos/internal/application/inventory"
	"github.com/jhoicas/sauna-pos/internal/domain"
	"github.com/jhoicas/sauna-pos/internal/infrastructure/postgres"
	"github.com/jhoicas/sauna-pos/pkg/config"
	"github.com/jhoicas/sauna-pos/pkg/logger"
)

const importActor = "import_products"

var header = []string{"codigo", "nombre", "precio_compra", "precio_venta", "stock", "stock_minimo", "categoria"}

func main() {
	csvPath := "productos.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	f, err := os.Open(csvPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", csvPath).Msg("abrir CSV")
	}
	defer f.Close()

	rows, rowErrs := parseProducts(f)
	for _, e := range rowErrs {
		log.Warn().Err(e).Msg("fila omitida")
	}
	if len(rows) == 0 {
		log.Fatal().Msg("el archivo no tiene productos válidos")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	uc := inventory.NewProductUseCase(postgres.NewTxRunner(pool), postgres.NewRepos(pool), log)
	created, skipped := 0, 0
	for _, in := range rows {
		if _, err := uc.Create(ctx, importActor, in); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				skipped++
				log.Info().Str("code", in.Code).Msg("código existente, se omite")
				continue
			}
			log.Error().Err(err).Str("code", in.Code).Msg("no se pudo crear el producto")
			continue
		}
		created++
	}
	log.Info().Int("created", created).Int("skipped", skipped).Int("invalid", len(rowErrs)).Msg("importación terminada")
}

// parseProducts decodifica el CSV (Windows-1252) y devuelve las filas válidas y un error por fila inválida.
// La primera fila se toma como encabezado si coincide con las columnas esperadas.
func parseProducts(r io.Reader) ([]dto.CreateProductRequest, []error) {
	cr := csv.NewReader(transform.NewReader(r, charmap.Windows1252.NewDecoder()))
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var out []dto.CreateProductRequest
	var errs []error
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("línea %d: %w", line, err))
			continue
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), header[0]) {
			continue
		}
		in, err := parseRow(rec)
		if err != nil {
			errs = append(errs, fmt.Errorf("línea %d: %w", line, err))
			continue
		}
		out = append(out, in)
	}
	return out, errs
}

func parseRow(rec []string) (dto.CreateProductRequest, error) {
	if len(rec) < 6 {
		return dto.CreateProductRequest{}, fmt.Errorf("se esperaban al menos 6 columnas, hay %d", len(rec))
	}
	for i := range rec {
		rec[i] = strings.TrimSpace(rec[i])
	}
	in := dto.CreateProductRequest{Code: rec[0], Name: rec[1]}
	if in.Code == "" || in.Name == "" {
		return in, fmt.Errorf("codigo y nombre son obligatorios")
	}
	var err error
	if in.PurchasePrice, err = parseMoney(rec[2]); err != nil {
		return in, fmt.Errorf("precio_compra: %w", err)
	}
	if in.SalePrice, err = parseMoney(rec[3]); err != nil {
		return in, fmt.Errorf("precio_venta: %w", err)
	}
	if in.InitialStock, err = strconv.Atoi(rec[4]); err != nil {
		return in, fmt.Errorf("stock: %w", err)
	}
	if in.MinStock, err = strconv.Atoi(rec[5]); err != nil {
		return in, fmt.Errorf("stock_minimo: %w", err)
	}
	if len(rec) > 6 {
		in.CategoryID = rec[6]
	}
	return in, nil
}

// parseMoney acepta formato colombiano de Excel: "$ 12.500,50" o "12500".
func parseMoney(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
