package ports

import "context"

// Prediction is the classifier's answer for one image. Confidence is the
// softmax probability mass on the predicted class, in [0, 1].
type Prediction struct {
	Label      string
	Confidence float64
}

// Classifier turns an image into a food label. Implementations may be slow
// (hundreds of ms to seconds); callers reach them through the bounded
// inference gateway rather than directly.
type Classifier interface {
	Classify(ctx context.Context, image []byte) (Prediction, error)
}
