package recognitionService

import (
	"ProjectDevanagari/internal/api/recognition"
	"ProjectDevanagari/internal/entity"
	contextPkg "ProjectDevanagari/pkg/context"
	"ProjectDevanagari/pkg/devanagari"
	"ProjectDevanagari/pkg/inference"
	"ProjectDevanagari/pkg/log"
	"errors"
	"fmt"
	"golang.org/x/net/context"
	"math"
)

var errEmptyScores = errors.New("model returned no scores")

func (s *recognitionService) ModelState() inference.State {
	return s.classifier.State()
}

func (s *recognitionService) Ready() error {
	if s.classifier.State() != inference.StateLoaded {
		return recognition.ErrModelFailedToLoad
	}
	return nil
}

func (s *recognitionService) Predict(ctx context.Context, image []byte) (*entity.PredictionResult, error) {
	if err := s.Ready(); err != nil {
		s.metrics.ObserveFailure("model_unavailable")
		return nil, err
	}

	tensor, err := s.preprocessor.Preprocess(image)
	if err != nil {
		s.metrics.ObserveFailure("invalid_image")
		return nil, fmt.Errorf("%w: %v", recognition.ErrInvalidImageFile, err)
	}

	result, err := s.classify(ctx, func() ([]float32, error) {
		return s.classifier.Infer(tensor)
	})
	if err != nil {
		if errors.Is(err, inference.ErrModelUnavailable) {
			s.metrics.ObserveFailure("model_unavailable")
			return nil, fmt.Errorf("%w: %v", recognition.ErrModelFailedToLoad, err)
		}
		s.metrics.ObserveFailure("inference")
		return nil, fmt.Errorf("%w: %v", recognition.ErrFailedToPredict, err)
	}

	s.metrics.ObservePrediction(result.Label)
	return result, nil
}

func (s *recognitionService) classify(ctx context.Context, infer func() ([]float32, error)) (result *entity.PredictionResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("panic during inference: %v", r)
		}
	}()

	scores, err := infer()
	if err != nil {
		return nil, err
	}

	index, err := ArgMax(scores)
	if err != nil {
		return nil, err
	}

	label := devanagari.Label(index)
	result = &entity.PredictionResult{
		Index:           index,
		Label:           label,
		ExtractedNumber: devanagari.ExtractNumber(label),
		Score:           scores[index],
	}

	s.log.WithFields(log.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"index":      index,
		"label":      label,
		"score":      result.Score,
	}).Debug("Prediction computed")

	return result, nil
}

// ArgMax returns the index of the highest score. Ties resolve to the lowest
// index and NaN never wins over a number.
func ArgMax(scores []float32) (int, error) {
	if len(scores) == 0 {
		return 0, errEmptyScores
	}

	best := -1
	for i, v := range scores {
		if math.IsNaN(float64(v)) {
			continue
		}
		if best == -1 || v > scores[best] {
			best = i
		}
	}
	if best == -1 {
		return 0, errors.New("model returned only NaN scores")
	}
	return best, nil
}

func (s *recognitionService) Labels() []entity.ClassLabel {
	names := devanagari.Labels()
	out := make([]entity.ClassLabel, 0, len(names))
	for i, name := range names {
		out = append(out, entity.ClassLabel{
			Index:           i,
			Label:           name,
			ExtractedNumber: devanagari.ExtractNumber(name),
		})
	}
	return out
}
