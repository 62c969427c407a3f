package imagegen

import (
	"context"
	"encoding/base64"
	"fmt"

	"google.golang.org/genai"

	"stickerbingo/internal/prompt"
)

const (
	defaultRegion     = "europe-west1"
	DefaultImageModel = "imagen-3.0-generate-002"
)

// imageModels is the slice of genai.Models used here.
type imageModels interface {
	GenerateImages(ctx context.Context, model, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
}

// Gemini generates images on Vertex AI and returns them inline as data URLs.
type Gemini struct {
	models    imageModels
	modelName string
}

// NewGemini creates a client using Application Default Credentials.
func NewGemini(ctx context.Context, projectID, region string) (*Gemini, error) {
	if region == "" {
		region = defaultRegion
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: region,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Gemini{models: client.Models, modelName: DefaultImageModel}, nil
}

func (g *Gemini) Generate(ctx context.Context, req prompt.Request) (string, error) {
	resp, err := g.models.GenerateImages(ctx, g.modelName, req.Prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    "1:1",
		OutputMIMEType: "image/png",
	})
	if err != nil {
		return "", fmt.Errorf("imagen generate: %w", err)
	}
	if resp == nil || len(resp.GeneratedImages) == 0 {
		return "", ErrNoImage
	}
	img := resp.GeneratedImages[0].Image
	if img == nil || len(img.ImageBytes) == 0 {
		return "", fmt.Errorf("imagen generate: empty image: %w", ErrNoImage)
	}
	mime := img.MIMEType
	if mime == "" {
		mime = "image/png"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(img.ImageBytes), nil
}
