package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/aims-retail/aims-backend/internal/config"
	"github.com/aims-retail/aims-backend/internal/domain"
	"github.com/aims-retail/aims-backend/internal/repository"
	"github.com/aims-retail/aims-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

// Importer polls a Drive folder for inventory CSV exports and upserts
// their rows into the inventory table. Files are re-imported only when
// their modified time changes.
type Importer struct {
	client    *driveClient
	inventory repository.InventoryRepository
	folder    string
	interval  time.Duration

	imported map[string]string // file id -> modified time
}

func New(cfg config.ImporterConfig, inventory repository.InventoryRepository) (*Importer, error) {
	if cfg.CredentialsJSON == "" {
		return nil, fmt.Errorf("importer: drive credentials are required")
	}

	client, err := newDriveClient(context.Background(), cfg.CredentialsJSON)
	if err != nil {
		return nil, err
	}

	interval := time.Duration(cfg.PollSeconds) * time.Second
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	return &Importer{
		client:    client,
		inventory: inventory,
		folder:    cfg.FolderPath,
		interval:  interval,
		imported:  make(map[string]string),
	}, nil
}

// Run polls until the context is cancelled. Sweep failures are logged
// and retried on the next tick.
func (i *Importer) Run(ctx context.Context) {
	log := logger.WithComponent("importer")
	log.Info().Str("folder", i.folder).Dur("interval", i.interval).Msg("importer started")

	ticker := time.NewTicker(i.interval)
	defer ticker.Stop()

	for {
		if err := i.sweep(ctx); err != nil {
			log.Error().Err(err).Msg("import sweep failed")
		}

		select {
		case <-ctx.Done():
			log.Info().Msg("importer stopped")
			return
		case <-ticker.C:
		}
	}
}

func (i *Importer) sweep(ctx context.Context) error {
	folderID, err := i.client.findFolderByPath(i.folder)
	if err != nil {
		return err
	}

	files, err := i.client.listFiles(folderID)
	if err != nil {
		return err
	}

	log := logger.WithComponent("importer")
	for _, f := range files {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !strings.HasSuffix(strings.ToLower(f.Name), ".csv") {
			continue
		}
		if i.imported[f.ID] == f.ModifiedTime {
			continue
		}

		count, err := i.importFile(ctx, f.ID)
		if err != nil {
			log.Error().Err(err).Str("file", f.Name).Msg("file import failed")
			continue
		}

		i.imported[f.ID] = f.ModifiedTime
		log.Info().Str("file", f.Name).Int("rows", count).Msg("file imported")
	}

	return nil
}

func (i *Importer) importFile(ctx context.Context, fileID string) (int, error) {
	pr, pw := io.Pipe()
	go func() {
		pw.CloseWithError(i.client.download(fileID, pw))
	}()

	items, err := parseInventoryCSV(pr)
	if err != nil {
		return 0, err
	}

	return i.inventory.BulkUpsert(ctx, items)
}

// parseInventoryCSV reads rows keyed by header name, so exports may
// order or extend columns freely. sku and name are mandatory.
func parseInventoryCSV(r io.Reader) ([]domain.InventoryItem, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colMap := make(map[string]int)
	for idx, col := range header {
		colMap[strings.ToLower(strings.TrimSpace(col))] = idx
	}
	for _, col := range []string{"sku", "name"} {
		if _, ok := colMap[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	var items []domain.InventoryItem
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}

		getValue := func(col string) string {
			if idx, ok := colMap[col]; ok && idx < len(record) {
				return strings.TrimSpace(record[idx])
			}
			return ""
		}
		getInt := func(col string) int {
			f, _ := strconv.ParseFloat(getValue(col), 64)
			return int(f)
		}

		item := domain.InventoryItem{
			SKU:          getValue("sku"),
			Name:         getValue("name"),
			Barcode:      getValue("barcode"),
			Category:     getValue("category"),
			Unit:         getValue("unit"),
			Location:     getValue("location"),
			CurrentStock: getInt("current_stock"),
			OptimalStock: getInt("optimal_stock"),
		}
		if item.SKU == "" || item.Name == "" {
			continue
		}

		if price, err := decimal.NewFromString(getValue("price")); err == nil {
			item.Price = price
		}
		if raw := getValue("expiry_date"); raw != "" {
			if expiry, err := time.Parse("2006-01-02", raw); err == nil {
				item.ExpiryDate = &expiry
			}
		}

		items = append(items, item)
	}

	return items, nil
}
