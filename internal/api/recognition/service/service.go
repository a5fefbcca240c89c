package recognitionService

import (
	"ProjectDevanagari/internal/entity"
	"ProjectDevanagari/pkg/inference"
	"ProjectDevanagari/pkg/metrics"
	"ProjectDevanagari/pkg/preprocess"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IRecognitionService interface {
	Ready() error
	ModelState() inference.State
	Predict(ctx context.Context, image []byte) (*entity.PredictionResult, error)
	Labels() []entity.ClassLabel
}

// Classifier is the slice of *inference.Model the service depends on.
type Classifier interface {
	State() inference.State
	Infer(tensor *preprocess.Tensor) ([]float32, error)
}

type Preprocessor interface {
	Preprocess(raw []byte) (*preprocess.Tensor, error)
}

type recognitionService struct {
	log          *logrus.Logger
	classifier   Classifier
	preprocessor Preprocessor
	metrics      *metrics.Metrics
}

func NewRecognitionService(
	log *logrus.Logger,
	classifier Classifier,
	preprocessor Preprocessor,
	metrics *metrics.Metrics,
) IRecognitionService {
	return &recognitionService{
		log:          log,
		classifier:   classifier,
		preprocessor: preprocessor,
		metrics:      metrics,
	}
}
