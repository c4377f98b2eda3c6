// comanda2xlsx parses an already-recognized comanda text file into line items
// and writes them as a spreadsheet. Useful for checking parsing behavior on
// saved OCR output without running the server.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/PMCGrupo4/handwritely-excelizer-73/internal/entity"
	"github.com/PMCGrupo4/handwritely-excelizer-73/internal/export"
	"github.com/PMCGrupo4/handwritely-excelizer-73/internal/ocr"
	"github.com/PMCGrupo4/handwritely-excelizer-73/internal/parse"
)

func main() {
	in := flag.String("in", "", "path to a recognized-text file")
	out := flag.String("out", "comanda.xlsx", "output spreadsheet path")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *in == "" {
		fmt.Fprintln(os.Stderr, "usage: comanda2xlsx -in recognized.txt [-out comanda.xlsx]")
		os.Exit(2)
	}

	raw, err := os.ReadFile(*in)
	if err != nil {
		logger.Error("read input", "error", err)
		os.Exit(1)
	}

	items, err := parse.ParseText(ocr.CleanText(string(raw)))
	if errors.Is(err, parse.ErrNoUsableInput) {
		fmt.Println("nothing usable was recognized; try a clearer photo")
		return
	}
	if err != nil {
		logger.Error("parse", "error", err)
		os.Exit(1)
	}

	rec := &entity.Receipt{
		ID:        uuid.New(),
		Items:     items,
		CreatedAt: time.Now(),
	}

	data, err := export.NewService(logger).ReceiptXLSX(rec)
	if err != nil {
		logger.Error("export", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		logger.Error("write output", "error", err)
		os.Exit(1)
	}

	fmt.Printf("wrote %d rows (total %.2f) to %s\n", len(rec.Items), rec.Total(), *out)
}
