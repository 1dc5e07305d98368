package classifier

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	rektypes "github.com/aws/aws-sdk-go-v2/service/rekognition/types"

	"github.com/nutritrack/foodlog-api/internal/core/ports"
)

// RekognitionClassifier backs the gateway with AWS Rekognition label
// detection. Construct once at startup; the underlying client is safe for
// concurrent use by the pool workers.
type RekognitionClassifier struct {
	client        *rekognition.Client
	minConfidence float32
}

// NewRekognitionClassifier builds a classifier for the given region.
// minConfidence is a percentage in [0, 100]; zero disables gating so that
// low-confidence predictions still reach the catalog lookup.
func NewRekognitionClassifier(ctx context.Context, region string, minConfidence float32) (*RekognitionClassifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &RekognitionClassifier{
		client:        rekognition.NewFromConfig(cfg),
		minConfidence: minConfidence,
	}, nil
}

// Classify returns the top detected label with its confidence scaled to
// [0, 1]. An image with no detectable label yields an empty prediction, which
// downstream treats as unrecognized.
func (r *RekognitionClassifier) Classify(ctx context.Context, image []byte) (ports.Prediction, error) {
	out, err := r.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &rektypes.Image{Bytes: image},
		MaxLabels:     aws.Int32(1),
		MinConfidence: aws.Float32(r.minConfidence),
	})
	if err != nil {
		return ports.Prediction{}, fmt.Errorf("detect labels: %w", err)
	}

	if len(out.Labels) == 0 {
		return ports.Prediction{}, nil
	}

	top := out.Labels[0]
	return ports.Prediction{
		Label:      aws.ToString(top.Name),
		Confidence: float64(aws.ToFloat32(top.Confidence)) / 100,
	}, nil
}
