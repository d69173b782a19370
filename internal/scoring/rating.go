package scoring

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats/scalar"
)

var (
	ErrMissingFeatures = errors.New("missing features")
	ErrInvalidPrice    = errors.New("price must be positive")
	ErrUnknownFeature  = errors.New("model expects an unknown feature")
)

// RequiredFeatures must all be present in a rating request. Price is only
// used for normalization and is never passed to the model.
var RequiredFeatures = []string{
	"minutes", "goals_scored", "assists", "clean_sheets",
	"yellow_cards", "red_cards", "bonus", "saves", "price",
}

const positionFeature = "element_type"

// maxPriceByPosition is the most expensive player per element_type, in millions
var maxPriceByPosition = map[int]float64{
	1: 5.8,
	2: 7.3,
	3: 13.5,
	4: 15.3,
}

// RatingInput is a flat set of named player stats
type RatingInput map[string]float64

type RatingResult struct {
	PredictedRating float64 `json:"predicted_rating"`
	BasePoints      int     `json:"base_points"`
}

// RatingService turns raw player stats into a price-adjusted rating
type RatingService struct {
	scorer   Scorer
	features []string
}

// NewRatingService wires a scorer. When the scorer records the feature order
// it was trained with, that order is used to build the input vector.
func NewRatingService(scorer Scorer) (*RatingService, error) {
	if scorer == nil {
		return nil, errors.New("scorer is required")
	}

	features := modelFeatures()
	if named, ok := scorer.(interface{ FeatureNames() []string }); ok && len(named.FeatureNames()) > 0 {
		features = named.FeatureNames()
		for _, f := range features {
			if !isModelFeature(f) {
				return nil, fmt.Errorf("%w: %q", ErrUnknownFeature, f)
			}
		}
	}

	return &RatingService{scorer: scorer, features: features}, nil
}

// PredictRating rounds the model output up to a whole number and, for a known
// position, blends in how cheap the player is relative to the position's most
// expensive player.
func (s *RatingService) PredictRating(input RatingInput) (*RatingResult, error) {
	if missing := input.missing(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingFeatures, strings.Join(missing, ", "))
	}

	vector := make([]float64, len(s.features))
	for i, name := range s.features {
		vector[i] = input[name]
	}

	raw, err := s.scorer.Predict(vector)
	if err != nil {
		return nil, fmt.Errorf("predict rating: %w", err)
	}
	rating := math.Ceil(raw)

	position := int(input[positionFeature])
	if maxPrice, ok := maxPriceByPosition[position]; ok {
		price := input["price"]
		if price <= 0 {
			return nil, fmt.Errorf("%w: got %.2f", ErrInvalidPrice, price)
		}
		rating = rating*0.9 + 0.1*rating*(maxPrice/price)
	}

	return &RatingResult{
		PredictedRating: scalar.Round(rating, 2),
		BasePoints:      CalculatePoints(input),
	}, nil
}

func (in RatingInput) missing() []string {
	var missing []string
	for _, f := range RequiredFeatures {
		if _, ok := in[f]; !ok {
			missing = append(missing, f)
		}
	}
	if _, ok := in[positionFeature]; !ok {
		missing = append(missing, positionFeature)
	}
	return missing
}

func modelFeatures() []string {
	features := make([]string, 0, len(RequiredFeatures)-1)
	for _, f := range RequiredFeatures {
		if f != "price" {
			features = append(features, f)
		}
	}
	return features
}

func isModelFeature(name string) bool {
	for _, f := range modelFeatures() {
		if f == name {
			return true
		}
	}
	return false
}
