// Package extract converts uploaded document bytes into plain text. It routes
// by declared MIME type to one of three converters: Google Cloud Vision for
// PDFs and images, and a pure-Go parser for DOCX. All failures carry a
// classified Reason so callers never inspect error text.
package extract

import (
	"context"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"
)

const (
	// MimePDF and MimeDOCX are matched exactly; images are matched against
	// imageMimeTypes.
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

	// minTextLength is the shortest normalized output accepted as a result.
	minTextLength = 10
)

var imageMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/bmp":  true,
	"image/tiff": true,
	"image/webp": true,
}

// Annotator is the slice of the Vision client the converters use. The
// concrete client is created per call and must be closed on every exit path.
type Annotator interface {
	BatchAnnotateImages(ctx context.Context, req *visionpb.BatchAnnotateImagesRequest) (*visionpb.BatchAnnotateImagesResponse, error)
	BatchAnnotateFiles(ctx context.Context, req *visionpb.BatchAnnotateFilesRequest) (*visionpb.BatchAnnotateFilesResponse, error)
	Close() error
}

type gcvAnnotator struct {
	c *vision.ImageAnnotatorClient
}

func (g gcvAnnotator) BatchAnnotateImages(ctx context.Context, req *visionpb.BatchAnnotateImagesRequest) (*visionpb.BatchAnnotateImagesResponse, error) {
	return g.c.BatchAnnotateImages(ctx, req)
}

func (g gcvAnnotator) BatchAnnotateFiles(ctx context.Context, req *visionpb.BatchAnnotateFilesRequest) (*visionpb.BatchAnnotateFilesResponse, error) {
	return g.c.BatchAnnotateFiles(ctx, req)
}

func (g gcvAnnotator) Close() error {
	return g.c.Close()
}

// newVisionAnnotator builds a Vision client using credentials from the
// environment: GOOGLE_CREDENTIALS (inline JSON), GOOGLE_APPLICATION_CREDENTIALS
// (file path), or application default credentials.
func newVisionAnnotator(ctx context.Context) (Annotator, error) {
	var c *vision.ImageAnnotatorClient
	var err error

	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		c, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
	} else if credFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credFile != "" {
		c, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsFile(credFile))
	} else {
		c, err = vision.NewImageAnnotatorClient(ctx)
	}
	if err != nil {
		return nil, err
	}
	return gcvAnnotator{c: c}, nil
}

// Extractor routes a byte buffer plus declared MIME type to a converter.
type Extractor struct {
	newAnnotator func(ctx context.Context) (Annotator, error)
}

// New returns an Extractor backed by Google Cloud Vision.
func New() *Extractor {
	return &Extractor{newAnnotator: newVisionAnnotator}
}

// NewWithAnnotator returns an Extractor with a custom annotator factory.
// Used by tests to observe acquisition and release.
func NewWithAnnotator(factory func(ctx context.Context) (Annotator, error)) *Extractor {
	return &Extractor{newAnnotator: factory}
}

// Extract converts buf into plain text. Unknown MIME types fail immediately
// without touching the buffer.
func (e *Extractor) Extract(ctx context.Context, buf []byte, mimeType string) (string, error) {
	switch {
	case mimeType == MimePDF:
		return e.extractPDF(ctx, buf)
	case mimeType == MimeDOCX:
		return extractDOCX(buf)
	case imageMimeTypes[mimeType]:
		return e.extractImage(ctx, buf)
	default:
		return "", &Error{Op: "route", Reason: ReasonUnsupportedType}
	}
}

var (
	spaceRuns   = regexp.MustCompile(`[ \t\r\f\v]+`)
	newlineRuns = regexp.MustCompile(`\n{3,}`)
)

// normalizeText collapses runs of horizontal whitespace and caps consecutive
// newlines at two.
func normalizeText(s string) string {
	s = spaceRuns.ReplaceAllString(s, " ")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	s = strings.Join(lines, "\n")
	s = newlineRuns.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// finishText normalizes converter output and rejects results too short to
// summarize.
func finishText(op, raw string) (string, error) {
	text := normalizeText(raw)
	if utf8.RuneCountInString(text) < minTextLength {
		return "", &Error{Op: op, Reason: ReasonEmptyResult}
	}
	return text, nil
}
