package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/aims-retail/aims-backend/internal/config"
	"github.com/aims-retail/aims-backend/internal/domain"
	"github.com/aims-retail/aims-backend/internal/realtime"
	"github.com/aims-retail/aims-backend/internal/repository"
	"github.com/rs/zerolog/log"
)

const (
	detectionConfidenceFloor = 0.5
	detectionRestockBump     = 10
)

// DetectedProduct is one shelf detection matched against inventory.
type DetectedProduct struct {
	Name       string  `json:"name"`
	SKU        string  `json:"sku"`
	Confidence float64 `json:"confidence"`
}

// DetectionResult is the vision endpoint's response payload.
type DetectionResult struct {
	DetectedCount   int               `json:"detected_count"`
	Products        []DetectedProduct `json:"products"`
	DetectionMethod string            `json:"detection_method"`
	Confidence      float64           `json:"confidence"`
	SKU             string            `json:"sku,omitempty"`
}

type mlPrediction struct {
	Class      string  `json:"class"`
	Confidence float64 `json:"confidence"`
}

type mlResponse struct {
	Predictions []mlPrediction `json:"predictions"`
}

// VisionService proxies shelf photos to the external detection model
// and reconciles detections with inventory. With no model configured it
// falls back to a simulated detection so the UI flow stays usable.
type VisionService struct {
	inventory repository.InventoryRepository
	hub       *realtime.Hub
	client    *http.Client
	serviceURL string
}

func NewVisionService(cfg config.VisionConfig, inventory repository.InventoryRepository, hub *realtime.Hub) *VisionService {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &VisionService{
		inventory:  inventory,
		hub:        hub,
		client:     &http.Client{Timeout: timeout},
		serviceURL: cfg.ServiceURL,
	}
}

// Detect runs the image through the model, matches detections to
// inventory by name keywords, and when a target SKU is given with a
// confident match, bumps its stock by the standard restock increment.
func (s *VisionService) Detect(ctx context.Context, image []byte, sku string) (*DetectionResult, error) {
	items, err := s.inventory.List(ctx)
	if err != nil {
		return nil, err
	}

	var (
		products []DetectedProduct
		method   string
	)

	if s.serviceURL != "" {
		products, err = s.callModel(ctx, image, items)
		method = "model"
		if err != nil {
			log.Warn().Err(err).Msg("vision: model call failed, falling back to simulation")
			products = simulateDetection(items)
			method = "simulated-fallback"
		}
	} else {
		products = simulateDetection(items)
		method = "simulated"
	}

	result := &DetectionResult{
		DetectedCount:   len(products),
		Products:        products,
		DetectionMethod: method,
		SKU:             sku,
	}
	if len(products) > 0 {
		sum := 0.0
		for _, p := range products {
			sum += p.Confidence
		}
		result.Confidence = sum / float64(len(products))
	}

	if sku != "" && len(products) > 0 {
		if err := s.applyDetection(ctx, sku, products); err != nil {
			return result, err
		}
	}

	return result, nil
}

func (s *VisionService) callModel(ctx context.Context, image []byte, items []domain.InventoryItem) ([]DetectedProduct, error) {
	encoded := base64.StdEncoding.EncodeToString(image)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.serviceURL,
		bytes.NewBufferString(encoded))
	if err != nil {
		return nil, fmt.Errorf("build detection request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("detection request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("detection service returned %s", resp.Status)
	}

	var decoded mlResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode detection response: %w", err)
	}

	return matchDetections(decoded.Predictions, items), nil
}

// matchDetections links model classes to inventory items by shared
// name keywords, one entry per SKU.
func matchDetections(predictions []mlPrediction, items []domain.InventoryItem) []DetectedProduct {
	var matched []DetectedProduct
	seen := make(map[string]bool)

	for _, pred := range predictions {
		className := strings.ToLower(pred.Class)
		for _, item := range items {
			if seen[item.SKU] {
				continue
			}
			if !nameMatches(className, item.Name) {
				continue
			}

			confidence := pred.Confidence
			if confidence == 0 {
				confidence = 0.7
			}
			matched = append(matched, DetectedProduct{
				Name:       item.Name,
				SKU:        item.SKU,
				Confidence: confidence,
			})
			seen[item.SKU] = true
			break
		}
	}

	return matched
}

func nameMatches(className, itemName string) bool {
	for _, word := range strings.Fields(strings.ToLower(itemName)) {
		if len(word) <= 2 {
			continue
		}
		if strings.Contains(className, word) || strings.Contains(word, className) {
			return true
		}
	}
	return false
}

func simulateDetection(items []domain.InventoryItem) []DetectedProduct {
	if len(items) == 0 {
		return []DetectedProduct{{Name: "Sample Product", SKU: "DEMO-001", Confidence: 0.85}}
	}

	count := rand.Intn(3) + 1
	if count > len(items) {
		count = len(items)
	}

	picked := rand.Perm(len(items))[:count]
	products := make([]DetectedProduct, 0, count)
	for _, i := range picked {
		products = append(products, DetectedProduct{
			Name:       items[i].Name,
			SKU:        items[i].SKU,
			Confidence: 0.7 + rand.Float64()*0.25,
		})
	}
	return products
}

func (s *VisionService) applyDetection(ctx context.Context, sku string, products []DetectedProduct) error {
	detected := products[0]
	for _, p := range products {
		if p.SKU == sku {
			detected = p
			break
		}
	}

	if detected.Confidence <= detectionConfidenceFloor {
		return nil
	}

	after, err := s.inventory.IncrementStock(ctx, sku, detectionRestockBump)
	if err != nil {
		return err
	}

	s.hub.Broadcast(realtime.EventStockChanged, map[string]interface{}{
		"sku":       sku,
		"new_stock": after.CurrentStock,
	})
	return nil
}
