package adapters

import (
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"orderup_backend/internal/feature/catalog/usecase"
)

// menuFile is the YAML layout read by LoadMenu:
//
//	items:
//	  - name: Margherita
//	    price: "12.50"
//	    category: main
type menuFile struct {
	Items []menuItem `yaml:"items"`
}

type menuItem struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Price       string   `yaml:"price"`
	Image       string   `yaml:"image"`
	Category    string   `yaml:"category"`
	Calories    *int     `yaml:"calories"`
	Protein     *float64 `yaml:"protein"`
	Carbs       *float64 `yaml:"carbs"`
	Fat         *float64 `yaml:"fat"`
	Available   *bool    `yaml:"available"`
}

// LoadMenu parses a YAML menu into create inputs. Prices are decimal strings.
func LoadMenu(r io.Reader) ([]usecase.CreateInput, error) {
	var f menuFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse menu: %w", err)
	}

	out := make([]usecase.CreateInput, 0, len(f.Items))
	for i, it := range f.Items {
		price, err := decimal.NewFromString(it.Price)
		if err != nil {
			return nil, fmt.Errorf("item %d (%s): invalid price %q: %w", i, it.Name, it.Price, err)
		}
		out = append(out, usecase.CreateInput{
			Name:        it.Name,
			Description: it.Description,
			Price:       &price,
			Image:       it.Image,
			Category:    it.Category,
			Calories:    it.Calories,
			Protein:     it.Protein,
			Carbs:       it.Carbs,
			Fat:         it.Fat,
			IsAvailable: it.Available,
		})
	}
	return out, nil
}
