package scoring

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/jstittsworth/fplmate/internal/models"
)

// Scorer maps a feature vector to a predicted score. Implementations must be
// safe for concurrent use once constructed.
type Scorer interface {
	Predict(features []float64) (float64, error)
}

// LinearModel is an exported linear regression: intercept + coefficients . x
type LinearModel struct {
	intercept    float64
	coefficients *mat.VecDense
	featureNames []string
}

type linearModelFile struct {
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
	FeatureNames []string  `json:"feature_names"`
}

func NewLinearModel(intercept float64, coefficients []float64, featureNames []string) (*LinearModel, error) {
	if len(coefficients) == 0 {
		return nil, errors.New("linear model has no coefficients")
	}
	if len(featureNames) > 0 && len(featureNames) != len(coefficients) {
		return nil, fmt.Errorf("linear model has %d coefficients but %d feature names", len(coefficients), len(featureNames))
	}

	coef := make([]float64, len(coefficients))
	copy(coef, coefficients)

	return &LinearModel{
		intercept:    intercept,
		coefficients: mat.NewVecDense(len(coef), coef),
		featureNames: append([]string(nil), featureNames...),
	}, nil
}

// LoadLinearModel reads a model exported as JSON
func LoadLinearModel(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &models.ResourceNotFoundError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("read model file: %w", err)
	}

	var file linearModelFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode model file %s: %w", path, err)
	}

	return NewLinearModel(file.Intercept, file.Coefficients, file.FeatureNames)
}

func (m *LinearModel) Predict(features []float64) (float64, error) {
	if len(features) != m.coefficients.Len() {
		return 0, fmt.Errorf("expected %d features, got %d", m.coefficients.Len(), len(features))
	}
	x := mat.NewVecDense(len(features), append([]float64(nil), features...))
	return m.intercept + mat.Dot(m.coefficients, x), nil
}

// FeatureNames is the input order the model was trained with, if recorded
func (m *LinearModel) FeatureNames() []string {
	return m.featureNames
}
