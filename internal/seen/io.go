package seen

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jimezsa/tecnoscrape/internal/models"
)

// ReadOffers reads a JSON array of offers from path.
func ReadOffers(path string) ([]models.Offer, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return []models.Offer{}, nil
	}

	var offers []models.Offer
	if err := json.Unmarshal(data, &offers); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if offers == nil {
		return []models.Offer{}, nil
	}
	return offers, nil
}

// ReadOffersAllowMissing reads offers and treats missing files as empty history.
func ReadOffersAllowMissing(path string) ([]models.Offer, error) {
	offers, err := ReadOffers(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []models.Offer{}, nil
		}
		return nil, err
	}
	return offers, nil
}

// WriteOffers writes offers as pretty JSON.
func WriteOffers(path string, offers []models.Offer) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("path is required")
	}
	if offers == nil {
		offers = []models.Offer{}
	}
	data, err := json.MarshalIndent(offers, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
